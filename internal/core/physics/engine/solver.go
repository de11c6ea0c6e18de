package engine

import (
	"math"

	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
	"github.com/zeusync/physics2d/internal/core/physics/geometry"
)

const maxPoints = collision.MaxContactPoints

// Coefficients are the combined material values of a colliding pair.
type Coefficients struct {
	Restitution float64
	Friction    body.Friction
}

// CombineCoefficients takes the larger restitution and the mean of each
// friction coefficient.
func CombineCoefficients(a, b *body.RigidBody) Coefficients {
	fa, fb := a.Friction(), b.Friction()
	return Coefficients{
		Restitution: math.Max(a.Restitution(), b.Restitution()),
		Friction: body.Friction{
			Static:  geometry.Average(fa.Static, fb.Static),
			Dynamic: geometry.Average(fa.Dynamic, fb.Dynamic),
		},
	}
}

// Solver applies impulses to colliding bodies. It keeps per-point scratch
// between calls and must not be shared between goroutines.
type Solver struct {
	rA, rB         [maxPoints]geometry.Vector2
	rAOrth, rBOrth [maxPoints]geometry.Vector2
	jr             [maxPoints]float64
	impulse        [maxPoints]geometry.Vector2
	friction       [maxPoints]geometry.Vector2
}

func NewSolver() *Solver {
	return &Solver{}
}

// ResolveCollision applies normal and friction impulses for c, whose normal
// points from a toward b. It returns false, leaving both bodies untouched,
// when the contact has no manifold or the bodies already separate at any
// contact point.
func (s *Solver) ResolveCollision(a, b *body.RigidBody, c *collision.Contact) bool {
	if !c.HasManifold() {
		return false
	}

	points := c.ContactPoints()
	count := float64(len(points))
	k := CombineCoefficients(a, b)
	sumInvMass := a.InvMass() + b.InvMass()
	totalDepth := c.TotalDepth()
	n := c.Normal

	s.clear()

	for i, cp := range points {
		s.resetRadii(a, b, cp.Point, i)
		vrn := s.relativeVelocity(a, b, i).Dot(n)
		if vrn > 0 {
			return false
		}

		s.jr[i] = -(1 + k.Restitution) * vrn
		rAn := s.rA[i].Cross(n)
		rBn := s.rB[i].Cross(n)
		denom := sumInvMass + rAn*rAn*a.InvInertia() + rBn*rBn*b.InvInertia()

		w := weight(cp.Depth, totalDepth, len(points))
		s.impulse[i] = s.impulse[i].Add(n.Scale(w * s.jr[i] / denom / count))
	}

	for i, cp := range points {
		s.resetRadii(a, b, cp.Point, i)
		vr := s.relativeVelocity(a, b, i)

		tangent := vr.Sub(n.Scale(vr.Dot(n)))
		if tangent.IsNearlyEqual(geometry.Vector2{}, geometry.NearlyZeroMagnitude) {
			continue
		}
		tangent = tangent.Normalize()

		vrt := vr.Dot(tangent)
		jf := -s.jr[i] * k.Friction.Dynamic
		if vrt == 0 || math.Abs(vrt) <= s.jr[i]*k.Friction.Static {
			jf = -vrt
		}
		rAt := s.rAOrth[i].Dot(tangent)
		rBt := s.rBOrth[i].Dot(tangent)
		denom := sumInvMass + rAt*rAt*a.InvInertia() + rBt*rBt*b.InvInertia()

		w := weight(cp.Depth, totalDepth, len(points))
		s.friction[i] = s.friction[i].Add(tangent.Scale(w * jf / denom / count))
	}

	s.apply(a, &s.rA, len(points), -1)
	s.apply(b, &s.rB, len(points), 1)
	return true
}

// weight is the share of a point in the manifold. A manifold made only of
// zero-depth points is shared evenly.
func weight(depth, total float64, count int) float64 {
	if total <= 0 {
		return 1 / float64(count)
	}
	return depth / total
}

func (s *Solver) clear() {
	s.impulse = [maxPoints]geometry.Vector2{}
	s.friction = [maxPoints]geometry.Vector2{}
	s.jr = [maxPoints]float64{}
}

func (s *Solver) resetRadii(a, b *body.RigidBody, p geometry.Vector2, i int) {
	s.rA[i] = p.Sub(a.Position())
	s.rB[i] = p.Sub(b.Position())
	s.rAOrth[i] = s.rA[i].Orthogonal()
	s.rBOrth[i] = s.rB[i].Orthogonal()
}

func (s *Solver) relativeVelocity(a, b *body.RigidBody, i int) geometry.Vector2 {
	vb := b.Velocity().Add(s.rBOrth[i].Scale(b.AngularVelocity()))
	va := a.Velocity().Add(s.rAOrth[i].Scale(a.AngularVelocity()))
	return vb.Sub(va)
}

func (s *Solver) apply(rb *body.RigidBody, r *[maxPoints]geometry.Vector2, count int, sign float64) {
	if rb.IsStatic() {
		return
	}
	v := rb.Velocity()
	w := rb.AngularVelocity()
	for i := range count {
		jr, jf := s.impulse[i], s.friction[i]
		v.X += sign * (jr.X + jf.X) * rb.InvMass()
		v.Y += sign * (jr.Y + jf.Y) * rb.InvMass()
		w += sign * (r[i].Cross(jr) + r[i].Cross(jf)) * rb.InvInertia()
	}
	rb.SetVelocity(v)
	rb.SetAngularVelocity(w)
}
