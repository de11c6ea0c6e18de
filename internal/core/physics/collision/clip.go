package collision

import (
	"math"

	"github.com/zeusync/physics2d/internal/core/physics/geometry"
)

// clipContactPoints fills c with up to two points using reference/incident
// edge clipping. The reference edge is the candidate most perpendicular to the
// normal; the incident edge is clipped to its extent and every surviving point
// behind the reference face is kept. The manifold depth becomes the mean of
// the kept points.
func clipContactPoints(a, b *Shape, c *Contact) {
	n := c.Normal
	edgeA := geometry.EdgeAcrossNormal(a.world, n)
	edgeB := geometry.EdgeAcrossNormal(b.world, n.Negate())

	ref, inc := edgeB, edgeA
	if math.Abs(edgeA.Vector().Dot(n)) < math.Abs(edgeB.Vector().Dot(n)) {
		ref, inc = edgeA, edgeB
	}

	axis := ref.Vector().Normalize()
	inc.ClipByMargin(axis, axis.Dot(ref.A))
	axis = axis.Negate()
	inc.ClipByMargin(axis, axis.Dot(ref.B))

	refNormal := axis.CrossScalar(-1)
	refProj := refNormal.Dot(ref.A)

	total := 0.0
	for _, p := range [2]geometry.Vector2{inc.A, inc.B} {
		if depth := refProj - refNormal.Dot(p); depth >= 0 {
			c.addPoint(p, depth)
			total += depth
		}
	}
	if c.PointCount > 0 {
		c.Depth = total / float64(c.PointCount)
	}
}
