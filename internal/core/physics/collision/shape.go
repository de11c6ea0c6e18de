package collision

import (
	"fmt"
	"math"

	"github.com/zeusync/physics2d/internal/core/physics/geometry"
)

// Kind tags the concrete boundary of a Shape.
type Kind uint8

const (
	KindCircle Kind = iota + 1
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ShapeOption is a function that configures a shape.
type ShapeOption func(*ShapeConfig)

// ShapeConfig holds the construction parameters of a shape.
type ShapeConfig struct {
	Layer   uint32           // Collision layer bitmask
	Density float64          // Mass per unit area
	Offset  geometry.Vector2 // Local centre offset, circles only
}

func defaultShapeConfig() ShapeConfig {
	return ShapeConfig{Layer: 1, Density: 1}
}

// WithLayer sets the collision layer bitmask.
func WithLayer(layer uint32) ShapeOption {
	return func(c *ShapeConfig) { c.Layer = layer }
}

// WithDensity sets the area density used for mass and inertia.
func WithDensity(density float64) ShapeOption {
	return func(c *ShapeConfig) { c.Density = density }
}

// WithOffset moves a circle's centre away from its transform origin.
func WithOffset(offset geometry.Vector2) ShapeOption {
	return func(c *ShapeConfig) { c.Offset = offset }
}

// Shape is a convex boundary, either a circle or a convex polygon, placed in
// the world by a transform. World vertices, centre and AABB are cached and
// recomputed lazily after the transform changes.
type Shape struct {
	kind  Kind
	layer uint32

	radius float64
	local  []geometry.Vector2
	world  []geometry.Vector2

	transform geometry.Transform
	matrix    geometry.Matrix
	center    geometry.Vector2
	aabb      geometry.AABB
	area      geometry.AreaProperties
	dirty     bool
}

// NewCircle creates a circle of the given local radius.
func NewCircle(radius float64, opts ...ShapeOption) (*Shape, error) {
	cfg := defaultShapeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	if cfg.Density < 0 {
		return nil, ErrInvalidDensity
	}

	s := &Shape{
		kind:   KindCircle,
		layer:  cfg.Layer,
		radius: radius,
		area:   geometry.CircleAreaProperties(radius, cfg.Density, cfg.Offset),
	}
	s.SetTransform(geometry.Identity())
	return s, nil
}

// NewPolygon creates a convex polygon. Vertices may be given in either
// winding; they are stored counter-clockwise. Non-convex, degenerate or
// short outlines are rejected.
func NewPolygon(vertices []geometry.Vector2, opts ...ShapeOption) (*Shape, error) {
	cfg := defaultShapeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(vertices))
	}
	if cfg.Density < 0 {
		return nil, ErrInvalidDensity
	}

	local := make([]geometry.Vector2, len(vertices))
	copy(local, vertices)

	doubleArea := geometry.SignedDoubleArea(local)
	if math.Abs(doubleArea) < 1e-12 {
		return nil, ErrDegeneratePolygon
	}
	if doubleArea < 0 {
		for i, j := 0, len(local)-1; i < j; i, j = i+1, j-1 {
			local[i], local[j] = local[j], local[i]
		}
	}
	if !geometry.IsConvex(local) {
		return nil, ErrNonConvexPolygon
	}
	for i := range local {
		if local[i] == local[(i+1)%len(local)] {
			return nil, ErrDegeneratePolygon
		}
	}
	local = canonicalStart(local)

	s := &Shape{
		kind:  KindPolygon,
		layer: cfg.Layer,
		local: local,
		world: make([]geometry.Vector2, len(local)),
		area:  geometry.PolygonAreaProperties(local, cfg.Density),
	}
	s.SetTransform(geometry.Identity())
	return s, nil
}

// canonicalStart rotates the outline to begin at its lowest, then leftmost,
// vertex so that the same polygon always yields the same axis order.
func canonicalStart(vs []geometry.Vector2) []geometry.Vector2 {
	start := 0
	for i, v := range vs {
		lo := vs[start]
		if v.Y < lo.Y || (v.Y == lo.Y && v.X < lo.X) {
			start = i
		}
	}
	if start == 0 {
		return vs
	}
	out := make([]geometry.Vector2, 0, len(vs))
	out = append(out, vs[start:]...)
	return append(out, vs[:start]...)
}

// NewRectangle creates a width x height box centred on the transform origin.
func NewRectangle(width, height float64, opts ...ShapeOption) (*Shape, error) {
	vs, err := geometry.RectangleVertices(width, height)
	if err != nil {
		return nil, err
	}
	return NewPolygon(vs, opts...)
}

// NewRegularPolygon creates a polygon with sides vertices on a circle of radius.
func NewRegularPolygon(radius float64, sides int, opts ...ShapeOption) (*Shape, error) {
	vs, err := geometry.RegularPolygonVertices(radius, sides)
	if err != nil {
		return nil, err
	}
	return NewPolygon(vs, opts...)
}

func (s *Shape) Kind() Kind {
	return s.kind
}

func (s *Shape) Layer() uint32 {
	return s.layer
}

func (s *Shape) SetLayer(layer uint32) {
	s.layer = layer
}

func (s *Shape) Transform() geometry.Transform {
	return s.transform
}

// SetTransform places the shape and invalidates its cached world data.
// A zero scale is a programming error and panics.
func (s *Shape) SetTransform(t geometry.Transform) {
	if t.Scale == 0 {
		panic(ErrZeroScale)
	}
	s.transform = t
	s.matrix = t.Matrix()
	s.dirty = true
}

// Invalidate forces the next query to rebuild world vertices and AABB.
func (s *Shape) Invalidate() {
	s.dirty = true
}

// UpdateVerticesIfNeeded rebuilds the world cache when the transform changed.
func (s *Shape) UpdateVerticesIfNeeded() {
	if !s.dirty {
		return
	}
	s.center = s.matrix.Apply(s.area.Centroid)

	switch s.kind {
	case KindCircle:
		r := s.Radius()
		s.aabb = geometry.AABB{
			Min: geometry.Vector2{X: s.center.X - r, Y: s.center.Y - r},
			Max: geometry.Vector2{X: s.center.X + r, Y: s.center.Y + r},
		}
	case KindPolygon:
		for i, v := range s.local {
			s.world[i] = s.matrix.Apply(v)
		}
		s.aabb = geometry.BoundsOf(s.world)
	}
	s.dirty = false
}

// Vertices returns the world-space vertices. Circles have none. The slice is
// owned by the shape and must not be modified.
func (s *Shape) Vertices() []geometry.Vector2 {
	s.UpdateVerticesIfNeeded()
	return s.world
}

// LocalVertices returns the stored, counter-clockwise local outline.
func (s *Shape) LocalVertices() []geometry.Vector2 {
	return s.local
}

func (s *Shape) AABB() geometry.AABB {
	s.UpdateVerticesIfNeeded()
	return s.aabb
}

// Center is the world position of the centroid.
func (s *Shape) Center() geometry.Vector2 {
	s.UpdateVerticesIfNeeded()
	return s.center
}

// Radius is the world radius of a circle; zero for polygons.
func (s *Shape) Radius() float64 {
	return s.radius * math.Abs(s.transform.Scale)
}

func (s *Shape) AreaProperties() geometry.AreaProperties {
	return s.area
}

// ProjectionRange projects the shape on a unit axis.
func (s *Shape) ProjectionRange(axis geometry.Vector2) geometry.Range {
	s.UpdateVerticesIfNeeded()
	if s.kind == KindCircle {
		return geometry.CircleProjectionRange(s.center, s.Radius(), axis)
	}
	return geometry.ProjectionRange(s.world, axis)
}

// HasAABBIntersection is the broad-phase test.
func (s *Shape) HasAABBIntersection(other *Shape) bool {
	s.UpdateVerticesIfNeeded()
	other.UpdateVerticesIfNeeded()
	return s.aabb.Intersects(other.aabb)
}
