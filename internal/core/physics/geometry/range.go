package geometry

import "math"

// Range is a closed interval on a projection axis. Min <= Max.
type Range struct {
	Min, Max float64
}

// EmptyRange is the identity for Extend.
func EmptyRange() Range {
	return Range{Min: math.Inf(1), Max: math.Inf(-1)}
}

// PointRange is the degenerate interval [v, v].
func PointRange(v float64) Range {
	return Range{Min: v, Max: v}
}

// Extend grows r to include v.
func (r Range) Extend(v float64) Range {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

// Overlaps reports a strictly positive overlap; touching intervals do not overlap.
func (r Range) Overlaps(o Range) bool {
	return !(r.Max <= o.Min || o.Max <= r.Min)
}

// ProjectionOverlap tracks the minimum penetration found over a set of axes.
type ProjectionOverlap struct {
	Depth  float64
	Normal Vector2
}

// NewProjectionOverlap returns an overlap primed for minimum tracking.
func NewProjectionOverlap() ProjectionOverlap {
	return ProjectionOverlap{Depth: math.Inf(1)}
}

// EvaluateProjectionOverlap returns false when a and b are disjoint on axis.
// Otherwise it records axis in out if the overlap on it is the smallest so far.
func EvaluateProjectionOverlap(a, b Range, axis Vector2, out *ProjectionOverlap) bool {
	if !a.Overlaps(b) {
		return false
	}
	depth := math.Min(a.Max-b.Min, b.Max-a.Min)
	if depth < out.Depth {
		out.Depth = depth
		out.Normal = axis
	}
	return true
}
