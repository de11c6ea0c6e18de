package physics

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/zeusync/physics2d/internal/core/events/bus"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
	"github.com/zeusync/physics2d/internal/core/physics/engine"
)

// Step advances the world by one fixed step of dT seconds, split into
// Config.Iterations substeps. Each substep integrates every body, detects
// contacts over pairs in registration order, then separates and resolves them
// in the order found. Sensors are evaluated once after the last substep.
func (s *System) Step(dT float64) (StepStats, error) {
	if !(dT > 0) || math.IsInf(dT, 1) {
		return StepStats{}, fmt.Errorf("%w: got %v", ErrInvalidTimeStep, dT)
	}

	s.mu.Lock()
	stats := StepStats{Step: s.step + 1, Iterations: s.cfg.Iterations}
	touching := make(map[pairKey]struct{}, len(s.touching))

	sub := dT / float64(s.cfg.Iterations)
	for range s.cfg.Iterations {
		s.substep(sub, &stats, touching)
	}
	s.updateSensors()

	s.step++
	events := s.contactEvents(touching)
	s.touching = touching
	s.mu.Unlock()

	s.logger.Debug("physics step",
		log.Uint64("step", stats.Step),
		log.Int("contacts", stats.Contacts),
		log.Int("resolved", stats.Resolved),
		log.Int("separating", stats.Separating),
	)
	s.publish(append(events, bus.NewEvent(EventStep, s.id, stats))...)
	return stats, nil
}

func (s *System) substep(dT float64, stats *StepStats, touching map[pairKey]struct{}) {
	for _, e := range s.bodies {
		engine.StepBody(e.body, s.cfg.Gravity, s.cfg.PPM, dT)
		e.contacts = e.contacts[:0]
	}

	s.pending = s.pending[:0]
	for i := 0; i < len(s.bodies)-1; i++ {
		a := s.bodies[i]
		for _, b := range s.bodies[i+1:] {
			if a.body.IsStatic() && b.body.IsStatic() {
				continue
			}
			sa, sb := a.body.Shape(), b.body.Shape()
			if !sa.CanCollide(sb, s.cfg.LayerMap) {
				continue
			}
			c, ok := sa.FindContact(sb, s.cfg.FindContactPoints)
			if !ok {
				continue
			}
			a.contacts = append(a.contacts, Touch{Other: b.id, Normal: c.Normal})
			b.contacts = append(b.contacts, Touch{Other: a.id, Normal: c.Normal.Negate()})
			touching[pairKey{a: a.id, b: b.id}] = struct{}{}
			s.pending = append(s.pending, pendingContact{a: a, b: b, contact: c})
		}
	}

	stats.Contacts += len(s.pending)
	for i := range s.pending {
		p := &s.pending[i]
		engine.SeparateBodies(p.a.body, p.b.body, &p.contact)
		switch {
		case s.solver.ResolveCollision(p.a.body, p.b.body, &p.contact):
			stats.Resolved++
		case p.contact.HasManifold():
			stats.Separating++
		}
	}
}

func (s *System) updateSensors() {
	for _, e := range s.bodies {
		e.triggered = e.triggered[:0]
	}
	for _, e := range s.sensors {
		e.triggered = e.triggered[:0]
	}

	for i, a := range s.sensors {
		for _, b := range s.sensors[i+1:] {
			if s.isTrigger(a.shape, b.shape) {
				a.triggered = append(a.triggered, b.id)
				b.triggered = append(b.triggered, a.id)
			}
		}
		for _, c := range s.bodies {
			if s.isTrigger(a.shape, c.body.Shape()) {
				a.triggered = append(a.triggered, c.id)
				c.triggered = append(c.triggered, a.id)
			}
		}
	}
}

func (s *System) isTrigger(a, b *collision.Shape) bool {
	if !a.CanCollide(b, s.cfg.LayerMap) {
		return false
	}
	if s.cfg.SensorsAABBOnly {
		return a.HasAABBIntersection(b)
	}
	_, ok := a.FindContact(b, false)
	return ok
}

// contactEvents diffs the pairs touching in this step against the previous
// one. Pairs are reported in id order.
func (s *System) contactEvents(touching map[pairKey]struct{}) []bus.Event {
	if s.events == nil {
		return nil
	}
	var begun, ended []pairKey
	for k := range touching {
		if _, ok := s.touching[k]; !ok {
			begun = append(begun, k)
		}
	}
	for k := range s.touching {
		if _, ok := touching[k]; !ok {
			ended = append(ended, k)
		}
	}
	slices.SortFunc(begun, comparePairs)
	slices.SortFunc(ended, comparePairs)

	events := make([]bus.Event, 0, len(begun)+len(ended)+1)
	for _, k := range begun {
		events = append(events, bus.NewEvent(EventContactBegin, s.id, ContactEvent{Step: s.step, A: k.a, B: k.b}))
	}
	for _, k := range ended {
		events = append(events, bus.NewEvent(EventContactEnd, s.id, ContactEvent{Step: s.step, A: k.a, B: k.b}))
	}
	return events
}

func comparePairs(x, y pairKey) int {
	if c := cmp.Compare(x.a, y.a); c != 0 {
		return c
	}
	return cmp.Compare(x.b, y.b)
}

func (s *System) publish(events ...bus.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishBatch(events...); err != nil {
		s.logger.Warn("event handler failed", log.Error(err))
	}
}
