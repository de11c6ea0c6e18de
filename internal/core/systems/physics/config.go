package physics

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/physics2d/internal/core/physics/collision"
	"github.com/zeusync/physics2d/internal/core/physics/engine"
)

// Config holds the world parameters of a physics system.
type Config struct {
	Gravity           engine.Gravity     `yaml:"gravity" json:"gravity"`
	PPM               float64            `yaml:"ppm" json:"ppm"`
	Iterations        int                `yaml:"iterations" json:"iterations"`
	LayerMap          collision.LayerMap `yaml:"layer_map,omitempty" json:"layer_map,omitempty"`
	FindContactPoints bool               `yaml:"find_contact_points" json:"find_contact_points"`
	SensorsAABBOnly   bool               `yaml:"sensors_aabb_only" json:"sensors_aabb_only"`
}

// DefaultConfig returns gravity (0, 1) x 9.81, 10 pixels per meter and four
// substeps per fixed step with contact points enabled.
func DefaultConfig() Config {
	return Config{
		Gravity:           engine.DefaultGravity(),
		PPM:               10,
		Iterations:        4,
		FindContactPoints: true,
	}
}

func (c Config) Validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidIterations, c.Iterations)
	}
	if !(c.PPM > 0) || math.IsInf(c.PPM, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidPPM, c.PPM)
	}
	return nil
}

// LoadConfig decodes YAML over DefaultConfig and validates the result. An
// empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode physics config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
