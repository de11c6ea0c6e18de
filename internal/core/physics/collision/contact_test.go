package collision

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/physics2d/internal/core/physics/geometry"
)

func randomShape(t *testing.T, rng *rand.Rand) *Shape {
	t.Helper()
	var (
		s   *Shape
		err error
	)
	if rng.IntN(3) == 0 {
		s, err = NewCircle(0.5 + rng.Float64()*2)
	} else {
		s, err = NewRegularPolygon(0.5+rng.Float64()*2, 3+rng.IntN(6))
	}
	require.NoError(t, err)
	s.SetTransform(geometry.Transform{
		Position: geometry.Vec(rng.Float64()*6-3, rng.Float64()*6-3),
		Rotation: rng.Float64() * 2 * math.Pi,
		Scale:    0.5 + rng.Float64(),
	})
	return s
}

func TestFindContact_BroadPhaseRejects(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		a, b := randomShape(t, rng), randomShape(t, rng)
		if a.HasAABBIntersection(b) {
			continue
		}
		_, ok := a.FindContact(b, true)
		assert.False(t, ok)
	}
}

func TestFindContact_CircleProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for range 1000 {
		ra, rb := 0.1+rng.Float64()*3, 0.1+rng.Float64()*3
		a := mustCircle(t, ra, geometry.Vec(rng.Float64()*10-5, rng.Float64()*10-5))
		b := mustCircle(t, rb, geometry.Vec(rng.Float64()*10-5, rng.Float64()*10-5))

		diff := b.Center().Sub(a.Center())
		d := diff.Magnitude()
		if math.Abs(d-(ra+rb)) < 1e-9 {
			continue
		}

		c, ok := a.FindContact(b, true)
		require.Equal(t, d < ra+rb, ok)
		if !ok {
			continue
		}
		assert.InDelta(t, ra+rb-d, c.Depth, 1e-9)
		if d > 1e-9 {
			assert.InDelta(t, diff.X/d, c.Normal.X, 1e-9)
			assert.InDelta(t, diff.Y/d, c.Normal.Y, 1e-9)
		}

		rev, ok := b.FindContact(a, true)
		require.True(t, ok)
		assert.InDelta(t, c.Depth, rev.Depth, 1e-12)
		assert.InDelta(t, -c.Normal.X, rev.Normal.X, 1e-12)
		assert.InDelta(t, -c.Normal.Y, rev.Normal.Y, 1e-12)
	}
}

func TestFindContact_ManifoldInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	hits := 0
	for range 2000 {
		a, b := randomShape(t, rng), randomShape(t, rng)
		c, ok := a.FindContact(b, true)
		if !ok {
			continue
		}
		hits++

		assert.GreaterOrEqual(t, c.Depth, 0.0)
		assert.InDelta(t, 1, c.Normal.Magnitude(), 1e-9)
		assert.GreaterOrEqual(t, c.Normal.Dot(b.Center().Sub(a.Center())), -1e-9)
		assert.LessOrEqual(t, c.PointCount, MaxContactPoints)
		for _, p := range c.ContactPoints() {
			assert.GreaterOrEqual(t, p.Depth, 0.0)
		}

		again, _ := a.FindContact(b, true)
		assert.Equal(t, c, again)
	}
	assert.Greater(t, hits, 100)
}

func TestFindContact_VertexOrderInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for range 200 {
		sides := 3 + rng.IntN(5)
		base, err := geometry.RegularPolygonVertices(1+rng.Float64(), sides)
		require.NoError(t, err)
		shift := rng.IntN(sides)
		rotated := append(append([]geometry.Vector2{}, base[shift:]...), base[:shift]...)

		pa := mustPolygon(t, base)
		pb := mustPolygon(t, rotated)
		require.Equal(t, pa.LocalVertices(), pb.LocalVertices())

		other := randomShape(t, rng)
		tr := geometry.Transform{
			Position: geometry.Vec(rng.Float64()*2-1, rng.Float64()*2-1),
			Rotation: rng.Float64(),
			Scale:    1,
		}
		pa.SetTransform(tr)
		pb.SetTransform(tr)

		ca, okA := pa.FindContact(other, true)
		cb, okB := pb.FindContact(other, true)
		require.Equal(t, okA, okB)
		assert.Equal(t, ca, cb)
	}
}
