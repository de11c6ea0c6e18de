package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach runs action for every element with at most limit goroutines at a
// time (unlimited when limit < 1). The first error cancels ctx for the other
// actions and is returned once all of them have finished.
func ForEach[T any](ctx context.Context, items []T, limit int, action func(ctx context.Context, index int, item T) error) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return action(ctx, i, item)
		})
	}
	return g.Wait()
}

// Map applies mapFn to every element concurrently and keeps the input order.
func Map[T, R any](ctx context.Context, items []T, limit int, mapFn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	out := make([]R, len(items))
	err := ForEach(ctx, items, limit, func(ctx context.Context, i int, item T) error {
		r, err := mapFn(ctx, item)
		if err != nil {
			return err
		}
		out[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
