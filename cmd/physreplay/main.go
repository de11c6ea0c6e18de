package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/scene"
	"github.com/zeusync/physics2d/internal/core/systems/physics"
	"github.com/zeusync/physics2d/pkg/concurrent"
)

var errDiverged = errors.New("replays diverged")

func main() {
	scenePath := flag.String("scene", "", "scene file (yaml or json)")
	runs := flag.Int("runs", 4, "number of independent replays")
	steps := flag.Int("steps", 600, "steps per replay")
	rate := flag.Int("rate", 60, "steps per simulated second")
	parallel := flag.Int("parallel", runtime.GOMAXPROCS(0), "replays running at once")
	flag.Parse()

	logger := log.New(log.LevelInfo).With(log.String("component", "physreplay"))

	if *scenePath == "" || *runs < 1 || *steps < 0 || *rate < 1 {
		flag.Usage()
		os.Exit(2)
	}

	sc, err := scene.LoadFile(*scenePath)
	if err != nil {
		logger.Fatal("Failed to load scene", log.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	digests, err := replay(ctx, sc, *runs, *steps, 1/float64(*rate), *parallel)
	if err != nil {
		logger.Fatal("Replay failed", log.Error(err))
	}
	for i, d := range digests {
		fmt.Printf("run %d: %016x\n", i, d)
	}
	if err = compare(digests); err != nil {
		logger.Error("Replays diverged", log.Error(err))
		os.Exit(1)
	}
	logger.Info("Replays match",
		log.Int("runs", *runs),
		log.Int("steps", *steps),
		log.String("digest", fmt.Sprintf("%016x", digests[0])))
}

// replay builds sc into runs independent worlds, advances each by steps
// fixed steps of dT and returns their final digests in run order.
func replay(ctx context.Context, sc *scene.Scene, runs, steps int, dT float64, parallel int) ([]uint64, error) {
	ids := make([]int, runs)
	for i := range ids {
		ids[i] = i
	}
	return concurrent.Map(ctx, ids, parallel, func(ctx context.Context, _ int) (uint64, error) {
		w, err := scene.Build(sc, physics.WithLogger(log.Nop()))
		if err != nil {
			return 0, err
		}
		for range steps {
			if err = ctx.Err(); err != nil {
				return 0, err
			}
			if _, err = w.System.Step(dT); err != nil {
				return 0, err
			}
		}
		return w.System.Digest(), nil
	})
}

func compare(digests []uint64) error {
	for i, d := range digests[1:] {
		if d != digests[0] {
			return fmt.Errorf("%w: run %d has %016x, run 0 has %016x", errDiverged, i+1, d, digests[0])
		}
	}
	return nil
}
