package geometry

import "math"

// Vector2 is a 2D vector value. All operations return new values.
type Vector2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Vec is a shorthand constructor.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

func (v Vector2) Div(s float64) Vector2 {
	return Vector2{X: v.X / s, Y: v.Y / s}
}

func (v Vector2) Negate() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vector2) Cross(o Vector2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// CrossScalar returns the cross product of v with a scalar z axis scaled by s.
func (v Vector2) CrossScalar(s float64) Vector2 {
	return Vector2{X: -v.Y * s, Y: v.X * s}
}

// Orthogonal rotates v by 90 degrees.
func (v Vector2) Orthogonal() Vector2 {
	return Vector2{X: -v.Y, Y: v.X}
}

func (v Vector2) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns the unit vector of v. It panics on a zero vector.
func (v Vector2) Normalize() Vector2 {
	n, ok := v.TryNormalize()
	if !ok {
		panic(ErrZeroVector)
	}
	return n
}

// TryNormalize returns the unit vector of v, or false when v has zero length.
func (v Vector2) TryNormalize() (Vector2, bool) {
	mag := v.Magnitude()
	if mag == 0 {
		return Vector2{}, false
	}
	inv := 1 / mag
	return Vector2{X: v.X * inv, Y: v.Y * inv}, true
}

func (v Vector2) Clamp(min, max Vector2) Vector2 {
	return Vector2{X: Clamp(v.X, min.X, max.X), Y: Clamp(v.Y, min.Y, max.Y)}
}

func (v Vector2) ClampScalar(min, max float64) Vector2 {
	return Vector2{X: Clamp(v.X, min, max), Y: Clamp(v.Y, min, max)}
}

// IsNearlyEqual reports whether o lies within tolerance distance of v.
func (v Vector2) IsNearlyEqual(o Vector2, tolerance float64) bool {
	return v.Sub(o).MagnitudeSquared() <= tolerance*tolerance
}

func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
