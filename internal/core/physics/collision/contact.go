package collision

import "github.com/zeusync/physics2d/internal/core/physics/geometry"

// MaxContactPoints bounds the size of a contact manifold.
const MaxContactPoints = 2

// ContactPoint is a world point with its own penetration depth.
type ContactPoint struct {
	Point geometry.Vector2
	Depth float64
}

// Contact describes how two shapes overlap. Normal is a unit vector pointing
// from the first shape toward the second. A contact without points carries no
// manifold and must not be resolved.
type Contact struct {
	Depth      float64
	Normal     geometry.Vector2
	Points     [MaxContactPoints]ContactPoint
	PointCount int
}

// ContactPoints returns the populated part of the manifold.
func (c *Contact) ContactPoints() []ContactPoint {
	return c.Points[:c.PointCount]
}

// HasManifold reports whether the contact can be fed to the solver.
func (c *Contact) HasManifold() bool {
	return c.PointCount > 0
}

// TotalDepth sums the depth of every contact point.
func (c *Contact) TotalDepth() float64 {
	total := 0.0
	for _, p := range c.ContactPoints() {
		total += p.Depth
	}
	return total
}

func (c *Contact) addPoint(p geometry.Vector2, depth float64) {
	if c.PointCount == MaxContactPoints {
		return
	}
	c.Points[c.PointCount] = ContactPoint{Point: p, Depth: depth}
	c.PointCount++
}

// FindContact runs the broad phase and then the narrow-phase routine for the
// pair of kinds. With includePoints the manifold is generated as well.
func (s *Shape) FindContact(other *Shape, includePoints bool) (Contact, bool) {
	if !s.HasAABBIntersection(other) {
		return Contact{}, false
	}

	switch s.kind {
	case KindCircle:
		switch other.kind {
		case KindCircle:
			return circleCircle(s, other, includePoints)
		case KindPolygon:
			return circlePolygon(s, other, includePoints)
		}
	case KindPolygon:
		switch other.kind {
		case KindCircle:
			c, ok := circlePolygon(other, s, includePoints)
			if ok {
				c.Normal = c.Normal.Negate()
			}
			return c, ok
		case KindPolygon:
			return polygonPolygon(s, other, includePoints)
		}
	}
	return Contact{}, false
}

// orientNormal flips out so that it points from a toward b.
func orientNormal(a, b *Shape, out *geometry.ProjectionOverlap) {
	if b.center.Sub(a.center).Dot(out.Normal) < 0 {
		out.Normal = out.Normal.Negate()
	}
}
