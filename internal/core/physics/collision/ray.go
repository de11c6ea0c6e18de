package collision

import "github.com/zeusync/physics2d/internal/core/physics/geometry"

// Ray is a finite segment query filtered by a layer mask.
type Ray struct {
	Origin geometry.Vector2
	Target geometry.Vector2
	Mask   uint32
}

// IntersectsRay tests the shape against r along the ray direction and across it.
func (s *Shape) IntersectsRay(r Ray) bool {
	if s.layer&r.Mask == 0 {
		return false
	}
	axis, ok := r.Target.Sub(r.Origin).TryNormalize()
	if !ok {
		return false
	}
	along := geometry.Range{Min: axis.Dot(r.Origin), Max: axis.Dot(r.Target)}
	if !s.ProjectionRange(axis).Overlaps(along) {
		return false
	}
	across := axis.Orthogonal()
	return s.ProjectionRange(across).Overlaps(geometry.PointRange(across.Dot(r.Origin)))
}
