package engine

import (
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
)

// StepBody advances b by dT seconds with semi-implicit Euler. Static bodies
// are skipped. Kinematic bodies ignore gravity, force and torque but still
// move by their velocities. Velocities are converted to world units by ppm.
func StepBody(b *body.RigidBody, g Gravity, ppm, dT float64) {
	if b.IsStatic() {
		return
	}

	v := b.Velocity()
	w := b.AngularVelocity()

	if !b.IsKinematic() {
		forces := g.Acceleration().Add(b.Force().Div(dT))
		drag := b.Drag()

		v.X += forces.X * dT
		v.X *= 1 - drag.X
		v.Y += forces.Y * dT
		v.Y *= 1 - drag.Y

		w += b.Torque() * dT
		w *= 1 - b.AngularDrag()

		b.ClearForces()
		b.SetVelocity(v)
		b.SetAngularVelocity(w)
	}

	t := b.Transform()
	t.Position.X += v.X * ppm * dT
	t.Position.Y += v.Y * ppm * dT
	t.Rotation += w * ppm * dT
	b.SetTransform(t)
}

// SeparateBodies pushes a and b apart along the contact normal by its depth.
// A static side stays put and the other body takes the whole correction;
// otherwise each moves half.
func SeparateBodies(a, b *body.RigidBody, c *collision.Contact) {
	correction := c.Normal.Scale(c.Depth)
	switch {
	case a.IsStatic():
		b.Translate(correction)
	case b.IsStatic():
		a.Translate(correction.Negate())
	default:
		half := correction.Scale(0.5)
		a.Translate(half.Negate())
		b.Translate(half)
	}
}
