package geometry

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min, Max Vector2
}

// Intersects is the separating-axis test on two boxes. Touching boxes intersect.
func (a AABB) Intersects(b AABB) bool {
	return !(a.Max.X < b.Min.X || a.Max.Y < b.Min.Y || b.Max.X < a.Min.X || b.Max.Y < a.Min.Y)
}

func (a AABB) Center() Vector2 {
	return Vector2{X: (a.Min.X + a.Max.X) * 0.5, Y: (a.Min.Y + a.Max.Y) * 0.5}
}

func (a AABB) Contains(p Vector2) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

// BoundsOf returns the tightest box around points. It needs at least one point.
func BoundsOf(points []Vector2) AABB {
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.X < box.Min.X {
			box.Min.X = p.X
		}
		if p.Y < box.Min.Y {
			box.Min.Y = p.Y
		}
		if p.X > box.Max.X {
			box.Max.X = p.X
		}
		if p.Y > box.Max.Y {
			box.Max.Y = p.Y
		}
	}
	return box
}
