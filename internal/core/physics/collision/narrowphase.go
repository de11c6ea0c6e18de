package collision

import "github.com/zeusync/physics2d/internal/core/physics/geometry"

// coincidentNormal is used when two circle centres coincide exactly.
var coincidentNormal = geometry.Vector2{X: 1, Y: 0}

func circleCircle(a, b *Shape, includePoints bool) (Contact, bool) {
	radii := a.Radius() + b.Radius()
	diff := b.center.Sub(a.center)
	distSq := diff.MagnitudeSquared()
	if distSq >= radii*radii {
		return Contact{}, false
	}

	normal, ok := diff.TryNormalize()
	if !ok {
		normal = coincidentNormal
	}
	c := Contact{
		Depth:  radii - diff.Magnitude(),
		Normal: normal,
	}
	if includePoints {
		c.addPoint(a.center.Add(normal.Scale(a.Radius())), c.Depth)
	}
	return c, true
}

func circlePolygon(circle, poly *Shape, includePoints bool) (Contact, bool) {
	out := geometry.NewProjectionOverlap()
	if !nearestVertexAxisOverlap(circle, poly, &out) || !edgeAxesOverlap(poly, circle, &out) {
		return Contact{}, false
	}
	orientNormal(circle, poly, &out)

	c := Contact{Depth: out.Depth, Normal: out.Normal}
	if includePoints {
		edge := geometry.EdgeAcrossNormal(poly.world, out.Normal.Negate())
		c.addPoint(edge.ClosestPoint(circle.center), out.Depth)
	}
	return c, true
}

func polygonPolygon(a, b *Shape, includePoints bool) (Contact, bool) {
	out := geometry.NewProjectionOverlap()
	if !edgeAxesOverlap(a, b, &out) || !edgeAxesOverlap(b, a, &out) {
		return Contact{}, false
	}
	orientNormal(a, b, &out)

	c := Contact{Depth: out.Depth, Normal: out.Normal}
	if includePoints {
		clipContactPoints(a, b, &c)
	}
	return c, true
}

// nearestVertexAxisOverlap tests the axis from the circle centre toward the
// closest polygon vertex. A centre lying exactly on a vertex has no such
// axis and defers to the polygon's edge normals.
func nearestVertexAxisOverlap(circle, poly *Shape, out *geometry.ProjectionOverlap) bool {
	i := geometry.ClosestVertexIndex(poly.world, circle.center)
	axis, ok := poly.world[i].Sub(circle.center).TryNormalize()
	if !ok {
		return true
	}
	return geometry.EvaluateProjectionOverlap(
		circle.ProjectionRange(axis),
		poly.ProjectionRange(axis),
		axis,
		out,
	)
}

// edgeAxesOverlap tests every edge normal of poly, stopping at the first
// separating axis.
func edgeAxesOverlap(poly, other *Shape, out *geometry.ProjectionOverlap) bool {
	for i := range poly.world {
		axis := geometry.EdgeNormal(poly.world, i)
		if !geometry.EvaluateProjectionOverlap(
			poly.ProjectionRange(axis),
			other.ProjectionRange(axis),
			axis,
			out,
		) {
			return false
		}
	}
	return true
}
