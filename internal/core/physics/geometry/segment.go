package geometry

// Segment is a directed line segment from A to B.
type Segment struct {
	A, B Vector2
}

// Vector returns B - A.
func (s Segment) Vector() Vector2 {
	return s.B.Sub(s.A)
}

func (s Segment) MagnitudeSquared() float64 {
	return s.Vector().MagnitudeSquared()
}

// PointAt returns the point at normalized distance t, clamped to the endpoints.
func (s Segment) PointAt(t float64) Vector2 {
	switch {
	case t <= 0:
		return s.A
	case t >= 1:
		return s.B
	default:
		return s.A.Add(s.Vector().Scale(t))
	}
}

// ClosestPoint returns the point of s nearest to p.
func (s Segment) ClosestPoint(p Vector2) Vector2 {
	lenSq := s.MagnitudeSquared()
	if lenSq == 0 {
		return s.A
	}
	return s.PointAt(p.Sub(s.A).Dot(s.Vector()) / lenSq)
}

// ClipByMargin projects both endpoints on axis and, when they straddle margin,
// replaces the endpoint below it by the crossing point.
func (s *Segment) ClipByMargin(axis Vector2, margin float64) {
	a := axis.Dot(s.A) - margin
	b := axis.Dot(s.B) - margin
	if a*b >= 0 {
		return
	}
	p := s.PointAt(a / (a - b))
	if a < 0 {
		s.A = p
	} else {
		s.B = p
	}
}
