package physics

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/zeusync/physics2d/internal/core/events/bus"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
	"github.com/zeusync/physics2d/internal/core/physics/engine"
	"github.com/zeusync/physics2d/internal/core/physics/geometry"
)

// ID identifies a registered body or sensor. IDs grow with registration
// order and are never reused by the same system.
type ID uint32

// Touch is one contact seen by a body during the last substep. Normal points
// from the body toward Other.
type Touch struct {
	Other  ID               `json:"other"`
	Normal geometry.Vector2 `json:"normal"`
}

// Option is a function that configures a System.
type Option func(*System)

func WithLogger(logger log.Log) Option {
	return func(s *System) { s.logger = logger }
}

// WithEventBus publishes step and contact events to b.
func WithEventBus(b bus.EventBus) Option {
	return func(s *System) { s.events = b }
}

type bodyEntry struct {
	id        ID
	body      *body.RigidBody
	contacts  []Touch
	triggered []ID
}

type sensorEntry struct {
	id        ID
	shape     *collision.Shape
	triggered []ID
}

type pairKey struct {
	a, b ID
}

type pendingContact struct {
	a, b    *bodyEntry
	contact collision.Contact
}

// System runs the fixed-step pipeline over registered bodies and sensors.
// Every exported method is safe for concurrent use; steps never overlap.
type System struct {
	mu sync.RWMutex

	id     string
	cfg    Config
	logger log.Log
	events bus.EventBus
	solver *engine.Solver

	nextID  ID
	bodies  []*bodyEntry
	sensors []*sensorEntry
	owners  map[*body.RigidBody]ID

	step     uint64
	touching map[pairKey]struct{}
	pending  []pendingContact
}

// New validates cfg and creates an empty world.
func New(cfg Config, opts ...Option) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &System{
		id:       uuid.NewString(),
		cfg:      cfg,
		logger:   log.Provide(),
		solver:   engine.NewSolver(),
		owners:   make(map[*body.RigidBody]ID),
		touching: make(map[pairKey]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(log.String("component", "physics"), log.String("world", s.id))
	s.logger.Info("physics system created",
		log.Int("iterations", cfg.Iterations),
		log.Float64("ppm", cfg.PPM),
		log.Float64("gravity", cfg.Gravity.Value),
	)
	return s, nil
}

// ID is the unique instance id stamped on events and snapshots.
func (s *System) ID() string {
	return s.id
}

func (s *System) Config() Config {
	return s.cfg
}

// Register adds b to the world and returns its id.
func (s *System) Register(b *body.RigidBody) (ID, error) {
	if b == nil {
		return 0, ErrNilBody
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.owners[b]; ok {
		return 0, fmt.Errorf("%w: id %d", ErrBodyAlreadyRegistered, id)
	}
	s.nextID++
	id := s.nextID
	s.bodies = append(s.bodies, &bodyEntry{id: id, body: b})
	s.owners[b] = id

	s.logger.Debug("body registered",
		log.Uint32("id", uint32(id)),
		log.String("shape", b.Shape().Kind().String()),
		log.Bool("static", b.IsStatic()),
	)
	return id, nil
}

// Unregister removes a body. Pairs it was part of end silently.
func (s *System) Unregister(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.bodies, func(e *bodyEntry) bool { return e.id == id })
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrBodyNotFound, id)
	}
	delete(s.owners, s.bodies[i].body)
	s.bodies = slices.Delete(s.bodies, i, i+1)
	for k := range s.touching {
		if k.a == id || k.b == id {
			delete(s.touching, k)
		}
	}
	s.logger.Debug("body unregistered", log.Uint32("id", uint32(id)))
	return nil
}

// RegisterSensor adds a trigger shape. Sensors never move bodies; the caller
// places them with MoveSensor.
func (s *System) RegisterSensor(shape *collision.Shape) (ID, error) {
	if shape == nil {
		return 0, collision.ErrNilShape
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.sensors = append(s.sensors, &sensorEntry{id: id, shape: shape})
	s.logger.Debug("sensor registered", log.Uint32("id", uint32(id)))
	return id, nil
}

func (s *System) UnregisterSensor(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.sensors, func(e *sensorEntry) bool { return e.id == id })
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrSensorNotFound, id)
	}
	s.sensors = slices.Delete(s.sensors, i, i+1)
	return nil
}

// MoveSensor places a sensor in the world.
func (s *System) MoveSensor(id ID, t geometry.Transform) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.sensor(id)
	if e == nil {
		return fmt.Errorf("%w: id %d", ErrSensorNotFound, id)
	}
	e.shape.SetTransform(t)
	return nil
}

// Body returns the registered body with id.
func (s *System) Body(id ID) (*body.RigidBody, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e := s.body(id); e != nil {
		return e.body, true
	}
	return nil, false
}

// Update runs fn with exclusive access to the body with id, so that callers
// can apply forces or teleport it between steps.
func (s *System) Update(id ID, fn func(*body.RigidBody)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.body(id)
	if e == nil {
		return fmt.Errorf("%w: id %d", ErrBodyNotFound, id)
	}
	fn(e.body)
	return nil
}

// Bodies returns the ids of registered bodies in registration order.
func (s *System) Bodies() []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]ID, len(s.bodies))
	for i, e := range s.bodies {
		ids[i] = e.id
	}
	return ids
}

// Steps returns how many fixed steps have completed.
func (s *System) Steps() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.step
}

func (s *System) body(id ID) *bodyEntry {
	for _, e := range s.bodies {
		if e.id == id {
			return e
		}
	}
	return nil
}

func (s *System) sensor(id ID) *sensorEntry {
	for _, e := range s.sensors {
		if e.id == id {
			return e
		}
	}
	return nil
}
