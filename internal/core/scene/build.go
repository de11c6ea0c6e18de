package scene

import (
	"fmt"

	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
	"github.com/zeusync/physics2d/internal/core/systems/physics"
)

// World is a built scene: a running system plus the ids of named entries.
type World struct {
	System *physics.System
	Names  map[string]physics.ID
}

// Build creates a physics system from s. Bodies and sensors are registered in
// the order they are listed, which fixes the pair iteration order.
func Build(s *Scene, opts ...physics.Option) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	sys, err := physics.New(s.Physics, opts...)
	if err != nil {
		return nil, err
	}
	w := &World{System: sys, Names: make(map[string]physics.ID)}

	for i, spec := range s.Bodies {
		rb, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("scene: body %d %q: %w", i, spec.Name, err)
		}
		id, err := sys.Register(rb)
		if err != nil {
			return nil, err
		}
		if spec.Name != "" {
			w.Names[spec.Name] = id
		}
	}

	for i, spec := range s.Sensors {
		shape, err := spec.Shape.build()
		if err != nil {
			return nil, fmt.Errorf("scene: sensor %d %q: %w", i, spec.Name, err)
		}
		shape.SetTransform(spec.transform())
		id, err := sys.RegisterSensor(shape)
		if err != nil {
			return nil, err
		}
		if spec.Name != "" {
			w.Names[spec.Name] = id
		}
	}
	return w, nil
}

func (b BodySpec) build() (*body.RigidBody, error) {
	shape, err := b.Shape.build()
	if err != nil {
		return nil, err
	}

	t := b.transform()
	opts := []body.BodyOption{
		body.WithPosition(t.Position),
		body.WithRotation(t.Rotation),
		body.WithScale(t.Scale),
		body.WithVelocity(b.Velocity),
		body.WithAngularVelocity(b.AngularVelocity),
		body.WithDrag(b.Drag),
		body.WithAngularDrag(b.AngularDrag),
	}
	if b.Static {
		opts = append(opts, body.WithStatic())
	}
	if b.Kinematic {
		opts = append(opts, body.WithKinematic())
	}
	if b.Restitution != nil {
		opts = append(opts, body.WithRestitution(*b.Restitution))
	}
	if b.Friction != nil {
		opts = append(opts, body.WithFriction(*b.Friction))
	}
	return body.New(shape, opts...)
}

func (s ShapeSpec) build() (*collision.Shape, error) {
	var opts []collision.ShapeOption
	if s.Layer != 0 {
		opts = append(opts, collision.WithLayer(s.Layer))
	}
	if s.Density != nil {
		opts = append(opts, collision.WithDensity(*s.Density))
	}

	switch s.Type {
	case ShapeCircle:
		return collision.NewCircle(s.Radius, append(opts, collision.WithOffset(s.Offset))...)
	case ShapeRectangle:
		return collision.NewRectangle(s.Width, s.Height, opts...)
	case ShapeRegular:
		return collision.NewRegularPolygon(s.Radius, s.Sides, opts...)
	case ShapePolygon:
		return collision.NewPolygon(s.Vertices, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, s.Type)
	}
}
