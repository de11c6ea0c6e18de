package body

import "github.com/zeusync/physics2d/internal/core/physics/geometry"

// Friction holds the Coulomb coefficients of a body.
type Friction struct {
	Static  float64 `yaml:"static" json:"static"`
	Dynamic float64 `yaml:"dynamic" json:"dynamic"`
}

// Default material values for a new body.
const (
	DefaultRestitution     = 0.2
	DefaultStaticFriction  = 0.5
	DefaultDynamicFriction = 0.3
)

// BodyOption is a function that configures a rigid body.
type BodyOption func(*BodyConfig)

// BodyConfig holds the construction parameters of a rigid body. Coefficients
// are raw values; they are clamped when applied.
type BodyConfig struct {
	Static    bool
	Kinematic bool
	Layer     uint32 // 0 keeps the shape's own layer

	Position geometry.Vector2
	Rotation float64
	Scale    float64

	Velocity        geometry.Vector2
	AngularVelocity float64

	Restitution float64
	Friction    Friction
	Drag        geometry.Vector2
	AngularDrag float64
}

func defaultBodyConfig() BodyConfig {
	return BodyConfig{
		Scale:       1,
		Restitution: DefaultRestitution,
		Friction:    Friction{Static: DefaultStaticFriction, Dynamic: DefaultDynamicFriction},
	}
}

// WithStatic makes the body immovable with zero mass and inertia.
func WithStatic() BodyOption {
	return func(c *BodyConfig) { c.Static = true }
}

// WithKinematic makes the body ignore gravity, forces and torque while still
// moving by its velocity.
func WithKinematic() BodyOption {
	return func(c *BodyConfig) { c.Kinematic = true }
}

func WithLayer(layer uint32) BodyOption {
	return func(c *BodyConfig) { c.Layer = layer }
}

func WithPosition(p geometry.Vector2) BodyOption {
	return func(c *BodyConfig) { c.Position = p }
}

func WithRotation(radians float64) BodyOption {
	return func(c *BodyConfig) { c.Rotation = radians }
}

func WithScale(scale float64) BodyOption {
	return func(c *BodyConfig) { c.Scale = scale }
}

func WithVelocity(v geometry.Vector2) BodyOption {
	return func(c *BodyConfig) { c.Velocity = v }
}

func WithAngularVelocity(w float64) BodyOption {
	return func(c *BodyConfig) { c.AngularVelocity = w }
}

func WithRestitution(e float64) BodyOption {
	return func(c *BodyConfig) { c.Restitution = e }
}

func WithFriction(f Friction) BodyOption {
	return func(c *BodyConfig) { c.Friction = f }
}

// WithDrag sets the per-axis linear drag in [0, 1].
func WithDrag(d geometry.Vector2) BodyOption {
	return func(c *BodyConfig) { c.Drag = d }
}

func WithAngularDrag(d float64) BodyOption {
	return func(c *BodyConfig) { c.AngularDrag = d }
}
