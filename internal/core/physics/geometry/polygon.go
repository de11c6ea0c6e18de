package geometry

import "math"

// ProjectionRange projects every vertex on axis.
func ProjectionRange(vertices []Vector2, axis Vector2) Range {
	r := EmptyRange()
	for _, v := range vertices {
		r = r.Extend(v.Dot(axis))
	}
	return r
}

// CircleProjectionRange projects a circle on a unit axis.
func CircleProjectionRange(center Vector2, radius float64, axis Vector2) Range {
	d := center.Dot(axis)
	if radius < 0 {
		radius = -radius
	}
	return Range{Min: d - radius, Max: d + radius}
}

// MaxProjectionIndex returns the first vertex with the largest projection on axis.
func MaxProjectionIndex(vertices []Vector2, axis Vector2) int {
	idx := -1
	best := math.Inf(-1)
	for i, v := range vertices {
		if p := v.Dot(axis); p > best {
			best = p
			idx = i
		}
	}
	return idx
}

// ClosestVertexIndex returns the first vertex nearest to p.
func ClosestVertexIndex(vertices []Vector2, p Vector2) int {
	idx := -1
	best := math.Inf(1)
	for i, v := range vertices {
		if d := v.Sub(p).MagnitudeSquared(); d < best {
			best = d
			idx = i
		}
	}
	return idx
}

// EdgeAcrossNormal finds the vertex furthest along normal and returns whichever
// of its two adjacent edges is more perpendicular to normal. The previous edge
// runs from the vertex to its predecessor and the next edge from the successor
// to the vertex, so both keep the polygon's winding direction reversed.
func EdgeAcrossNormal(vertices []Vector2, normal Vector2) Segment {
	n := len(vertices)
	i := MaxProjectionIndex(vertices, normal)
	v := vertices[i]
	prev := vertices[(i+n-1)%n]
	next := vertices[(i+1)%n]

	prevEdge := Segment{A: v, B: prev}
	nextEdge := Segment{A: next, B: v}
	if math.Abs(prevEdge.Vector().Dot(normal)) <= math.Abs(nextEdge.Vector().Dot(normal)) {
		return prevEdge
	}
	return nextEdge
}

// EdgeNormal returns the unit normal of the edge starting at vertex i.
func EdgeNormal(vertices []Vector2, i int) Vector2 {
	next := vertices[(i+1)%len(vertices)]
	return next.Sub(vertices[i]).Orthogonal().Normalize()
}

// SignedDoubleArea is twice the signed shoelace area; positive for
// counter-clockwise vertices in a y-up frame.
func SignedDoubleArea(vertices []Vector2) float64 {
	sum := 0.0
	n := len(vertices)
	for i := 0; i < n; i++ {
		sum += vertices[i].Cross(vertices[(i+1)%n])
	}
	return sum
}

// IsConvex reports whether the outline turns the same way at every vertex
// and winds around exactly once. Collinear vertices are tolerated.
func IsConvex(vertices []Vector2) bool {
	n := len(vertices)
	sign := 0
	winding := 0.0
	for i := 0; i < n; i++ {
		a, b, c := vertices[i], vertices[(i+1)%n], vertices[(i+2)%n]
		e0, e1 := b.Sub(a), c.Sub(b)
		turn := e0.Cross(e1)
		switch {
		case turn > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case turn < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
		winding += math.Atan2(turn, e0.Dot(e1))
	}
	return sign != 0 && math.Abs(math.Abs(winding)-2*math.Pi) < 1e-6
}

// RectangleVertices returns a width x height box centred on the origin.
func RectangleVertices(width, height float64) ([]Vector2, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidExtents
	}
	hw, hh := width/2, height/2
	return []Vector2{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}, nil
}

// RegularPolygonVertices returns sides vertices on a circle of radius.
func RegularPolygonVertices(radius float64, sides int) ([]Vector2, error) {
	if sides < 3 {
		return nil, ErrInvalidSides
	}
	if radius <= 0 {
		return nil, ErrInvalidExtents
	}
	out := make([]Vector2, sides)
	step := 2 * math.Pi / float64(sides)
	for i := range out {
		sin, cos := math.Sincos(float64(i) * step)
		out[i] = Vector2{X: cos * radius, Y: sin * radius}
	}
	return out, nil
}
