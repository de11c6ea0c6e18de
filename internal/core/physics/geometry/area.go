package geometry

import "math"

// AreaProperties are derived once from a shape's local geometry.
type AreaProperties struct {
	// Centroid is the local offset of the centre of mass from the transform origin.
	Centroid Vector2
	Area     float64
	Mass     float64
	// MomentOfInertia is taken about the centroid.
	MomentOfInertia float64
}

// CircleAreaProperties uses the solid disk formulas.
func CircleAreaProperties(radius, density float64, offset Vector2) AreaProperties {
	area := math.Pi * radius * radius
	mass := area * density
	return AreaProperties{
		Centroid:        offset,
		Area:            area,
		Mass:            mass,
		MomentOfInertia: mass * radius * radius / 2,
	}
}

// PolygonAreaProperties integrates over the triangle fan from the local origin.
// The vertices must be counter-clockwise (positive signed area).
func PolygonAreaProperties(vertices []Vector2, density float64) AreaProperties {
	var (
		cx, cy     float64
		doubleArea float64
		inertia    float64
	)
	n := len(vertices)
	for i := 0; i < n; i++ {
		p0 := vertices[i]
		p1 := vertices[(i+1)%n]
		cross := p0.X*p1.Y - p1.X*p0.Y

		cx += (p0.X + p1.X) * cross
		cy += (p0.Y + p1.Y) * cross
		doubleArea += cross

		// second moment of triangle (origin, p0, p1) about the origin
		inertia += cross / 12 * (p0.Dot(p0) + p0.Dot(p1) + p1.Dot(p1))
	}

	area := doubleArea / 2
	centroid := Vector2{X: cx / (3 * doubleArea), Y: cy / (3 * doubleArea)}
	mass := area * density
	inertia = inertia*density - mass*centroid.Dot(centroid)

	return AreaProperties{
		Centroid:        centroid,
		Area:            area,
		Mass:            mass,
		MomentOfInertia: inertia,
	}
}
