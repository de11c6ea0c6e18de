package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/geometry"
	"github.com/zeusync/physics2d/internal/core/systems/physics"
)

// Shape types accepted in ShapeSpec.Type.
const (
	ShapeCircle    = "circle"
	ShapeRectangle = "rectangle"
	ShapeRegular   = "regular"
	ShapePolygon   = "polygon"
)

// Scene describes a world: its physics parameters, bodies and sensors.
type Scene struct {
	Name    string         `yaml:"name" json:"name"`
	Physics physics.Config `yaml:"physics" json:"physics"`
	Bodies  []BodySpec     `yaml:"bodies" json:"bodies"`
	Sensors []SensorSpec   `yaml:"sensors" json:"sensors"`
}

type ShapeSpec struct {
	Type     string             `yaml:"type" json:"type"`
	Radius   float64            `yaml:"radius,omitempty" json:"radius,omitempty"`
	Width    float64            `yaml:"width,omitempty" json:"width,omitempty"`
	Height   float64            `yaml:"height,omitempty" json:"height,omitempty"`
	Sides    int                `yaml:"sides,omitempty" json:"sides,omitempty"`
	Vertices []geometry.Vector2 `yaml:"vertices,omitempty" json:"vertices,omitempty"`
	Offset   geometry.Vector2   `yaml:"offset,omitempty" json:"offset,omitempty"`
	Density  *float64           `yaml:"density,omitempty" json:"density,omitempty"`
	Layer    uint32             `yaml:"layer,omitempty" json:"layer,omitempty"`
}

// TransformSpec places a body or sensor. A zero scale means 1.
type TransformSpec struct {
	Position geometry.Vector2 `yaml:"position" json:"position"`
	Rotation float64          `yaml:"rotation" json:"rotation"`
	Scale    float64          `yaml:"scale,omitempty" json:"scale,omitempty"`
}

func (t TransformSpec) transform() geometry.Transform {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	return geometry.Transform{Position: t.Position, Rotation: t.Rotation, Scale: scale}
}

// BodySpec describes one rigid body. Nil material fields keep the body
// defaults.
type BodySpec struct {
	TransformSpec `yaml:",inline"`

	Name            string           `yaml:"name" json:"name"`
	Shape           ShapeSpec        `yaml:"shape" json:"shape"`
	Static          bool             `yaml:"static,omitempty" json:"static,omitempty"`
	Kinematic       bool             `yaml:"kinematic,omitempty" json:"kinematic,omitempty"`
	Velocity        geometry.Vector2 `yaml:"velocity,omitempty" json:"velocity,omitempty"`
	AngularVelocity float64          `yaml:"angular_velocity,omitempty" json:"angular_velocity,omitempty"`
	Restitution     *float64         `yaml:"restitution,omitempty" json:"restitution,omitempty"`
	Friction        *body.Friction   `yaml:"friction,omitempty" json:"friction,omitempty"`
	Drag            geometry.Vector2 `yaml:"drag,omitempty" json:"drag,omitempty"`
	AngularDrag     float64          `yaml:"angular_drag,omitempty" json:"angular_drag,omitempty"`
}

type SensorSpec struct {
	TransformSpec `yaml:",inline"`

	Name  string    `yaml:"name" json:"name"`
	Shape ShapeSpec `yaml:"shape" json:"shape"`
}

func newScene() *Scene {
	return &Scene{Physics: physics.DefaultConfig()}
}

// LoadYAML decodes a scene. Physics settings not present keep their defaults.
func LoadYAML(r io.Reader) (*Scene, error) {
	s := newScene()
	if err := yaml.NewDecoder(r).Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("scene: decode yaml: %w", err)
	}
	return s, s.Validate()
}

// LoadJSON decodes a scene. Physics settings not present keep their defaults.
func LoadJSON(r io.Reader) (*Scene, error) {
	s := newScene()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("scene: decode json: %w", err)
	}
	return s, s.Validate()
}

// LoadFile picks the decoder from the file extension.
func LoadFile(path string) (*Scene, error) {
	var load func(io.Reader) (*Scene, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		load = LoadYAML
	case ".json":
		load = LoadJSON
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer f.Close()

	s, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", path, err)
	}
	return s, nil
}

// Validate checks names and shape types without building anything.
func (s *Scene) Validate() error {
	if err := s.Physics.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	seen := make(map[string]struct{}, len(s.Bodies)+len(s.Sensors))
	check := func(kind string, i int, name string, shape ShapeSpec) error {
		if name != "" {
			if _, dup := seen[name]; dup {
				return fmt.Errorf("%w: duplicate name %q", ErrInvalidScene, name)
			}
			seen[name] = struct{}{}
		}
		switch shape.Type {
		case ShapeCircle, ShapeRectangle, ShapeRegular, ShapePolygon:
			return nil
		default:
			return fmt.Errorf("%w: %s %d: %q", ErrUnknownShape, kind, i, shape.Type)
		}
	}
	for i, b := range s.Bodies {
		if err := check("body", i, b.Name, b.Shape); err != nil {
			return err
		}
	}
	for i, sn := range s.Sensors {
		if err := check("sensor", i, sn.Name, sn.Shape); err != nil {
			return err
		}
	}
	return nil
}
