package geometry

import "math"

// Transform is a world placement with uniform scale.
type Transform struct {
	Position Vector2
	Rotation float64
	Scale    float64
}

// Identity places a shape at the origin with unit scale.
func Identity() Transform {
	return Transform{Scale: 1}
}

// Matrix returns the affine matrix of t: translate * rotate * scale.
func (t Transform) Matrix() Matrix {
	sin, cos := math.Sincos(t.Rotation)
	return Matrix{
		A: cos * t.Scale, B: sin * t.Scale,
		C: -sin * t.Scale, D: cos * t.Scale,
		TX: t.Position.X, TY: t.Position.Y,
	}
}

// Matrix is a 2D affine matrix laid out as
//
//	| A C TX |
//	| B D TY |
type Matrix struct {
	A, B, C, D, TX, TY float64
}

func (m Matrix) Apply(p Vector2) Vector2 {
	return Vector2{
		X: m.A*p.X + m.C*p.Y + m.TX,
		Y: m.B*p.X + m.D*p.Y + m.TY,
	}
}

// ApplyInverse maps a world point back into local space.
func (m Matrix) ApplyInverse(p Vector2) Vector2 {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Vector2{}
	}
	id := 1 / det
	x, y := p.X-m.TX, p.Y-m.TY
	return Vector2{
		X: (m.D*x - m.C*y) * id,
		Y: (m.A*y - m.B*x) * id,
	}
}
