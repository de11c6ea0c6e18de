package engine

import "github.com/zeusync/physics2d/internal/core/physics/geometry"

// Gravity is a direction scaled by a magnitude.
type Gravity struct {
	Vector geometry.Vector2 `yaml:"vector" json:"vector"`
	Value  float64          `yaml:"value" json:"value"`
}

// DefaultGravity points down the screen at 9.81.
func DefaultGravity() Gravity {
	return Gravity{Vector: geometry.Vector2{X: 0, Y: 1}, Value: 9.81}
}

// Acceleration returns Vector scaled by Value.
func (g Gravity) Acceleration() geometry.Vector2 {
	return g.Vector.Scale(g.Value)
}
