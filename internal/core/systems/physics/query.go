package physics

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/physics2d/internal/core/physics/collision"
	"github.com/zeusync/physics2d/internal/core/physics/geometry"
)

// Contacts returns what the body touched during the last substep.
func (s *System) Contacts(id ID) ([]Touch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.body(id)
	if e == nil {
		return nil, false
	}
	return slices.Clone(e.contacts), true
}

// Triggered returns the ids overlapping a sensor, or the sensors overlapping
// a body, as of the last step.
func (s *System) Triggered(id ID) ([]ID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e := s.sensor(id); e != nil {
		return slices.Clone(e.triggered), true
	}
	if e := s.body(id); e != nil {
		return slices.Clone(e.triggered), true
	}
	return nil, false
}

// Raycast returns the first body, in registration order, whose shape the
// ray crosses.
func (s *System) Raycast(r collision.Ray) (ID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.bodies {
		if e.body.Shape().IntersectsRay(r) {
			return e.id, true
		}
	}
	return 0, false
}

// BodyState is the public state of one body.
type BodyState struct {
	ID              ID                 `json:"id"`
	Kind            string             `json:"kind"`
	Static          bool               `json:"static,omitempty"`
	Position        geometry.Vector2   `json:"position"`
	Rotation        float64            `json:"rotation"`
	Velocity        geometry.Vector2   `json:"velocity"`
	AngularVelocity float64            `json:"angular_velocity"`
	Radius          float64            `json:"radius,omitempty"`
	Vertices        []geometry.Vector2 `json:"vertices,omitempty"`
}

// Snapshot is the world state after a step.
type Snapshot struct {
	World  string      `json:"world"`
	Step   uint64      `json:"step"`
	Bodies []BodyState `json:"bodies"`
}

// Snapshot copies the state of every body in registration order.
func (s *System) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{World: s.id, Step: s.step, Bodies: make([]BodyState, len(s.bodies))}
	for i, e := range s.bodies {
		b, shape := e.body, e.body.Shape()
		snap.Bodies[i] = BodyState{
			ID:              e.id,
			Kind:            shape.Kind().String(),
			Static:          b.IsStatic(),
			Position:        b.Position(),
			Rotation:        b.Rotation(),
			Velocity:        b.Velocity(),
			AngularVelocity: b.AngularVelocity(),
			Radius:          shape.Radius(),
			Vertices:        slices.Clone(shape.Vertices()),
		}
	}
	return snap
}

// Digest hashes the exact bits of every body's position, rotation and
// velocities in registration order. Identical runs give identical digests.
func (s *System) Digest() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d := xxhash.New()
	buf := make([]byte, 0, 60)
	for _, e := range s.bodies {
		b := e.body
		buf = binary.LittleEndian.AppendUint32(buf[:0], uint32(e.id))
		for _, f := range [...]float64{
			b.Position().X, b.Position().Y, b.Rotation(),
			b.Velocity().X, b.Velocity().Y, b.AngularVelocity(),
		} {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
		}
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}
