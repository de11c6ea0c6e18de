package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
	"github.com/zeusync/physics2d/internal/core/physics/geometry"
)

const dT = 1.0 / 60

func newCircle(t *testing.T, radius float64, opts ...body.BodyOption) *body.RigidBody {
	t.Helper()
	s, err := collision.NewCircle(radius)
	require.NoError(t, err)
	b, err := body.New(s, opts...)
	require.NoError(t, err)
	return b
}

func newBox(t *testing.T, w, h float64, opts ...body.BodyOption) *body.RigidBody {
	t.Helper()
	s, err := collision.NewRectangle(w, h)
	require.NoError(t, err)
	b, err := body.New(s, opts...)
	require.NoError(t, err)
	return b
}

func contact(t *testing.T, a, b *body.RigidBody) collision.Contact {
	t.Helper()
	c, ok := a.Shape().FindContact(b.Shape(), true)
	require.True(t, ok)
	return c
}

func TestStepBody_GravityOneStep(t *testing.T) {
	s, err := collision.NewCircle(1, collision.WithDensity(1/math.Pi))
	require.NoError(t, err)
	b, err := body.New(s)
	require.NoError(t, err)
	require.InDelta(t, 1, b.Mass(), 1e-12)

	StepBody(b, DefaultGravity(), 10, dT)

	assert.InDelta(t, 9.81/60, b.Velocity().Y, 1e-12)
	assert.Zero(t, b.Velocity().X)
	assert.InDelta(t, b.Velocity().Y*10*dT, b.Position().Y, 1e-12)
	assert.InDelta(t, b.Position().Y, s.Center().Y, 1e-12)
}

func TestStepBody_StaticAndKinematic(t *testing.T) {
	floor := newBox(t, 10, 1, body.WithStatic(), body.WithVelocity(geometry.Vec(5, 5)))
	StepBody(floor, DefaultGravity(), 10, dT)
	assert.Equal(t, geometry.Vector2{}, floor.Position())

	k := newCircle(t, 1, body.WithKinematic(), body.WithVelocity(geometry.Vec(6, 0)), body.WithAngularVelocity(0.6))
	k.ApplyForce(geometry.Vec(100, 100), nil)
	StepBody(k, DefaultGravity(), 10, dT)

	assert.Equal(t, geometry.Vec(6, 0), k.Velocity())
	assert.InDelta(t, 1, k.Position().X, 1e-12)
	assert.Zero(t, k.Position().Y)
	assert.InDelta(t, 0.1, k.Rotation(), 1e-12)
}

func TestStepBody_ForceTorqueAndDrag(t *testing.T) {
	noGravity := Gravity{}

	b := newCircle(t, 1)
	b.ApplyForce(geometry.Vec(6, 0), nil)
	StepBody(b, noGravity, 10, dT)
	assert.InDelta(t, 6, b.Velocity().X, 1e-9)
	assert.Equal(t, geometry.Vector2{}, b.Force())

	StepBody(b, noGravity, 10, dT)
	assert.InDelta(t, 6, b.Velocity().X, 1e-9, "force is consumed by one step")

	spin := newCircle(t, 1)
	at := geometry.Vec(1, 0)
	spin.ApplyForce(geometry.Vec(0, 3), &at)
	StepBody(spin, noGravity, 10, dT)
	assert.InDelta(t, 3*dT, spin.AngularVelocity(), 1e-12)
	assert.Zero(t, spin.Torque())

	dragged := newCircle(t, 1,
		body.WithVelocity(geometry.Vec(4, 4)),
		body.WithDrag(geometry.Vec(1, 0)),
		body.WithAngularVelocity(2),
		body.WithAngularDrag(1),
	)
	StepBody(dragged, noGravity, 10, dT)
	assert.Zero(t, dragged.Velocity().X)
	assert.Equal(t, 4.0, dragged.Velocity().Y)
	assert.Zero(t, dragged.AngularVelocity())
}

func TestSeparateBodies_StaticFloor(t *testing.T) {
	floor := newBox(t, 20, 2, body.WithStatic(), body.WithPosition(geometry.Vec(0, 10)))
	ball := newCircle(t, 1, body.WithPosition(geometry.Vec(0, 8.3)))

	c := contact(t, ball, floor)
	require.InDelta(t, 0.3, c.Depth, 1e-9)
	require.Equal(t, geometry.Vec(0, 1), c.Normal)

	SeparateBodies(ball, floor, &c)
	assert.InDelta(t, 8.0, ball.Position().Y, 1e-9)
	assert.Equal(t, geometry.Vec(0, 10), floor.Position())
	assert.InDelta(t, 8.0, ball.Shape().Center().Y, 1e-9)

	ball.SetPosition(geometry.Vec(0, 8.3))
	c = contact(t, floor, ball)
	SeparateBodies(floor, ball, &c)
	assert.InDelta(t, 8.0, ball.Position().Y, 1e-9)
	assert.Equal(t, geometry.Vec(0, 10), floor.Position())
}

func TestSeparateBodies_SplitsBetweenDynamicBodies(t *testing.T) {
	a := newCircle(t, 1)
	b := newCircle(t, 1, body.WithPosition(geometry.Vec(1.5, 0)))

	c := contact(t, a, b)
	SeparateBodies(a, b, &c)

	assert.InDelta(t, -0.25, a.Position().X, 1e-12)
	assert.InDelta(t, 1.75, b.Position().X, 1e-12)
	_, ok := a.Shape().FindContact(b.Shape(), false)
	assert.False(t, ok)
}

func TestResolveCollision_SeparatingVelocity(t *testing.T) {
	a := newCircle(t, 1, body.WithVelocity(geometry.Vec(-1, 0)))
	b := newCircle(t, 1, body.WithPosition(geometry.Vec(1.9, 0)), body.WithVelocity(geometry.Vec(1, 0)))

	c := contact(t, a, b)
	assert.False(t, NewSolver().ResolveCollision(a, b, &c))
	assert.Equal(t, geometry.Vec(-1, 0), a.Velocity())
	assert.Equal(t, geometry.Vec(1, 0), b.Velocity())
	assert.Zero(t, a.AngularVelocity())
	assert.Zero(t, b.AngularVelocity())
}

func TestResolveCollision_NoManifold(t *testing.T) {
	a := newCircle(t, 1, body.WithVelocity(geometry.Vec(1, 0)))
	b := newCircle(t, 1, body.WithPosition(geometry.Vec(1.9, 0)))

	c, ok := a.Shape().FindContact(b.Shape(), false)
	require.True(t, ok)
	assert.False(t, NewSolver().ResolveCollision(a, b, &c))
	assert.Equal(t, geometry.Vec(1, 0), a.Velocity())
}

func TestResolveCollision_PerfectlyInelastic(t *testing.T) {
	material := []body.BodyOption{
		body.WithRestitution(0),
		body.WithFriction(body.Friction{Static: 1, Dynamic: 1}),
	}
	a := newCircle(t, 1, append(material, body.WithVelocity(geometry.Vec(1, 0)))...)
	b := newCircle(t, 1, append(material,
		body.WithPosition(geometry.Vec(1.9, 0)),
		body.WithVelocity(geometry.Vec(-1, 0)))...)

	c := contact(t, a, b)
	require.True(t, NewSolver().ResolveCollision(a, b, &c))

	n := c.Normal
	assert.InDelta(t, a.Velocity().Dot(n), b.Velocity().Dot(n), 1e-9)
	assert.InDelta(t, 0, a.AngularVelocity(), 1e-12)
}

func TestResolveCollision_ElasticSwap(t *testing.T) {
	a := newCircle(t, 1, body.WithRestitution(1), body.WithVelocity(geometry.Vec(1, 0)))
	b := newCircle(t, 1, body.WithRestitution(1), body.WithPosition(geometry.Vec(1.9, 0)))

	c := contact(t, a, b)
	require.True(t, NewSolver().ResolveCollision(a, b, &c))
	assert.InDelta(t, 0, a.Velocity().X, 1e-9)
	assert.InDelta(t, 1, b.Velocity().X, 1e-9)
}

func TestResolveCollision_DynamicFriction(t *testing.T) {
	floor := newBox(t, 20, 2, body.WithStatic(), body.WithPosition(geometry.Vec(0, 1.9)))
	ball := newCircle(t, 1, body.WithVelocity(geometry.Vec(1, 1)))

	c := contact(t, ball, floor)
	require.Equal(t, 1, c.PointCount)
	require.True(t, NewSolver().ResolveCollision(ball, floor, &c))

	// m = pi, I = pi/2, lever 0.9 below the centre
	denom := 1 + 0.81*2
	slip := 0.36 / denom
	assert.InDelta(t, -0.2, ball.Velocity().Y, 1e-9)
	assert.InDelta(t, 1-slip, ball.Velocity().X, 1e-9)
	assert.InDelta(t, 0.9*slip*2, ball.AngularVelocity(), 1e-9)
	assert.Equal(t, geometry.Vector2{}, floor.Velocity())
}

func TestResolveCollision_TwoPointManifold(t *testing.T) {
	floor := newBox(t, 20, 2, body.WithStatic(), body.WithPosition(geometry.Vec(0, 1.9)))
	crate := newBox(t, 2, 2, body.WithVelocity(geometry.Vec(0, 1)))

	c := contact(t, crate, floor)
	require.Equal(t, 2, c.PointCount)
	require.True(t, NewSolver().ResolveCollision(crate, floor, &c))

	// each point carries half the depth weight and half the count share
	assert.InDelta(t, 0.76, crate.Velocity().Y, 1e-9)
	assert.InDelta(t, 0, crate.Velocity().X, 1e-12)
	assert.InDelta(t, 0, crate.AngularVelocity(), 1e-12)
}

func TestCombineCoefficients(t *testing.T) {
	a := newCircle(t, 1, body.WithRestitution(0.1), body.WithFriction(body.Friction{Static: 0.2, Dynamic: 0.4}))
	b := newCircle(t, 1, body.WithRestitution(0.7), body.WithFriction(body.Friction{Static: 0.6, Dynamic: 0.0}))

	k := CombineCoefficients(a, b)
	assert.Equal(t, 0.7, k.Restitution)
	assert.InDelta(t, 0.4, k.Friction.Static, 1e-12)
	assert.InDelta(t, 0.2, k.Friction.Dynamic, 1e-12)
}
