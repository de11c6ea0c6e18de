package body

import (
	"fmt"
	"math"

	"github.com/zeusync/physics2d/internal/core/physics/collision"
	"github.com/zeusync/physics2d/internal/core/physics/geometry"
)

// RigidBody owns a shape and the dynamic state that moves it. The body is the
// source of truth for the transform; SyncShape pushes it into the shape.
type RigidBody struct {
	shape *collision.Shape

	static    bool
	kinematic bool

	transform geometry.Transform

	velocity        geometry.Vector2
	angularVelocity float64

	force  geometry.Vector2
	torque float64

	mass       float64
	invMass    float64
	inertia    float64
	invInertia float64

	restitution float64
	friction    Friction
	drag        geometry.Vector2
	angularDrag float64
}

// New creates a body around shape. Mass and inertia come from the shape's
// area properties; static bodies get zero for both.
func New(shape *collision.Shape, opts ...BodyOption) (*RigidBody, error) {
	if shape == nil {
		return nil, ErrNilShape
	}
	cfg := defaultBodyConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Scale == 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidScale, cfg.Scale)
	}
	if cfg.Layer != 0 {
		shape.SetLayer(cfg.Layer)
	}

	b := &RigidBody{
		shape:     shape,
		static:    cfg.Static,
		kinematic: cfg.Kinematic,
		transform: geometry.Transform{
			Position: cfg.Position,
			Rotation: cfg.Rotation,
			Scale:    cfg.Scale,
		},
		velocity:        cfg.Velocity,
		angularVelocity: cfg.AngularVelocity,
	}

	if !b.static {
		props := shape.AreaProperties()
		b.mass = props.Mass
		b.inertia = props.MomentOfInertia
	}
	b.invMass = inverse(b.mass)
	b.invInertia = inverse(b.inertia)

	b.SetRestitution(cfg.Restitution)
	b.SetFriction(cfg.Friction)
	b.SetDrag(cfg.Drag)
	b.SetAngularDrag(cfg.AngularDrag)

	b.SyncShape()
	return b, nil
}

func inverse(v float64) float64 {
	if v > 0 {
		return 1 / v
	}
	return 0
}

func (b *RigidBody) Shape() *collision.Shape {
	return b.shape
}

func (b *RigidBody) IsStatic() bool {
	return b.static
}

func (b *RigidBody) IsKinematic() bool {
	return b.kinematic
}

func (b *RigidBody) Transform() geometry.Transform {
	return b.transform
}

// SetTransform replaces position, rotation and scale at once. A zero scale
// panics in the shape.
func (b *RigidBody) SetTransform(t geometry.Transform) {
	b.transform = t
	b.SyncShape()
}

func (b *RigidBody) Position() geometry.Vector2 {
	return b.transform.Position
}

// SetPosition teleports the body and updates its shape.
func (b *RigidBody) SetPosition(p geometry.Vector2) {
	b.transform.Position = p
	b.SyncShape()
}

func (b *RigidBody) Rotation() float64 {
	return b.transform.Rotation
}

func (b *RigidBody) SetRotation(radians float64) {
	b.transform.Rotation = radians
	b.SyncShape()
}

// Translate moves the body by delta and updates its shape.
func (b *RigidBody) Translate(delta geometry.Vector2) {
	b.transform.Position = b.transform.Position.Add(delta)
	b.SyncShape()
}

// Direction is the unit vector the body faces.
func (b *RigidBody) Direction() geometry.Vector2 {
	sin, cos := math.Sincos(b.transform.Rotation)
	return geometry.Vector2{X: cos, Y: sin}
}

// SyncShape copies the body transform into the shape, invalidating its cache.
func (b *RigidBody) SyncShape() {
	b.shape.SetTransform(b.transform)
}

func (b *RigidBody) Velocity() geometry.Vector2 {
	return b.velocity
}

func (b *RigidBody) SetVelocity(v geometry.Vector2) {
	b.velocity = v
}

func (b *RigidBody) AngularVelocity() float64 {
	return b.angularVelocity
}

func (b *RigidBody) SetAngularVelocity(w float64) {
	b.angularVelocity = w
}

func (b *RigidBody) Mass() float64 {
	return b.mass
}

func (b *RigidBody) InvMass() float64 {
	return b.invMass
}

func (b *RigidBody) Inertia() float64 {
	return b.inertia
}

func (b *RigidBody) InvInertia() float64 {
	return b.invInertia
}

func (b *RigidBody) Restitution() float64 {
	return b.restitution
}

// SetRestitution stores e clamped to [0, 1].
func (b *RigidBody) SetRestitution(e float64) {
	b.restitution = geometry.Clamp01(e)
}

func (b *RigidBody) Friction() Friction {
	return b.friction
}

// SetFriction stores both coefficients clamped to [0, 1].
func (b *RigidBody) SetFriction(f Friction) {
	b.friction = Friction{
		Static:  geometry.Clamp01(f.Static),
		Dynamic: geometry.Clamp01(f.Dynamic),
	}
}

// Drag returns the stored per-axis drag, already raised to the 4th power.
func (b *RigidBody) Drag() geometry.Vector2 {
	return b.drag
}

// SetDrag clamps each axis to [0, 1] and stores its 4th power.
func (b *RigidBody) SetDrag(d geometry.Vector2) {
	b.drag = geometry.Vector2{X: steepen(d.X), Y: steepen(d.Y)}
}

func (b *RigidBody) AngularDrag() float64 {
	return b.angularDrag
}

func (b *RigidBody) SetAngularDrag(d float64) {
	b.angularDrag = steepen(d)
}

func steepen(v float64) float64 {
	v = geometry.Clamp01(v)
	v *= v
	return v * v
}

// ApplyForce accumulates force until the next integration. A force applied
// away from the body origin also accumulates torque from the lever arm taken
// in local space. Pass nil to apply at the origin.
func (b *RigidBody) ApplyForce(force geometry.Vector2, point *geometry.Vector2) {
	b.force = b.force.Add(force)
	at := b.transform.Position
	if point != nil {
		at = *point
	}
	lever := b.transform.Matrix().ApplyInverse(at)
	b.torque += lever.Cross(force)
}

func (b *RigidBody) Force() geometry.Vector2 {
	return b.force
}

func (b *RigidBody) Torque() float64 {
	return b.torque
}

// ClearForces resets the force and torque accumulators.
func (b *RigidBody) ClearForces() {
	b.force = geometry.Vector2{}
	b.torque = 0
}
