// Package world advances the runner and the car and resolves their collisions.
package world

import (
	"github.com/Faultbox/sandrunner/internal/engine/input"
	"github.com/Faultbox/sandrunner/internal/game/entity"
	"github.com/Faultbox/sandrunner/internal/sprite"
	"github.com/Faultbox/sandrunner/pkg/geom"
)

// World owns the two entities of a run. It is not safe for concurrent use.
type World struct {
	screen geom.Size
	runner *entity.Entity
	car    *entity.Entity

	tick     uint64
	landings uint64
	lethal   uint64
	// contact is the previous tick's outcome. It only feeds the tallies and
	// NewContact; Resolve never sees it.
	contact Outcome
}

// StepResult describes what happened during one Step.
type StepResult struct {
	Tick      uint64
	Collision Collision
	// NewContact is set on the first tick of a collision, or when the
	// outcome changes while the entities stay in contact. A runner resting
	// on the car lands on every tick but starts only one contact.
	NewContact bool
}

// New creates a world with the runner (player) and the car (hazard).
func New(screen geom.Size, runner, car *entity.Entity) *World {
	return &World{
		screen: screen,
		runner: runner,
		car:    car,
	}
}

// Step runs one simulation tick: steer, integrate, settle, collide.
func (w *World) Step(in input.Buttons) StepResult {
	w.runner.Steer(in, w.screen)
	w.car.Steer(in, w.screen)

	w.runner.Tick()
	w.runner.Settle(w.screen)
	w.car.Tick()
	w.car.Settle(w.screen)

	c := Resolve(w.runner, w.car)
	if c.Grounded {
		w.runner.Motion.(entity.Lander).Land(w.runner)
	}

	fresh := c.Outcome != OutcomeNone && c.Outcome != w.contact
	w.contact = c.Outcome
	if fresh {
		switch c.Outcome {
		case OutcomeLanding:
			w.landings++
		case OutcomeLethal:
			w.lethal++
		}
	}

	w.tick++
	return StepResult{Tick: w.tick, Collision: c, NewContact: fresh}
}

// Render draws the entities in z-order: runner, then car.
func (w *World) Render(c sprite.Canvas) {
	w.runner.Render(c)
	w.car.Render(c)
}

// Runner returns the player entity.
func (w *World) Runner() *entity.Entity {
	return w.runner
}

// Car returns the hazard entity.
func (w *World) Car() *entity.Entity {
	return w.car
}

// Screen returns the visible area used for floor and wrap rules.
func (w *World) Screen() geom.Size {
	return w.screen
}

// Stats returns the tick count and the number of contacts started so far.
func (w *World) Stats() Stats {
	return Stats{Ticks: w.tick, Landings: w.landings, Lethal: w.lethal}
}

// Stats summarises a run. Landings and Lethal count contacts, not ticks of
// overlap.
type Stats struct {
	Ticks    uint64
	Landings uint64
	Lethal   uint64
}

// EntityState is the observable state of one entity.
type EntityState struct {
	Box      geom.Rect
	Velocity geom.Vec
	Frame    uint32
}

// Snapshot is the observable state of the world after a tick.
type Snapshot struct {
	Tick   uint64
	Runner EntityState
	Car    EntityState
	Phase  entity.Phase // only meaningful for jumping runners
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:   w.tick,
		Runner: stateOf(w.runner),
		Car:    stateOf(w.car),
	}
	if j, ok := w.runner.Motion.(*entity.Jump); ok {
		s.Phase = j.Phase()
	}
	return s
}

func stateOf(e *entity.Entity) EntityState {
	return EntityState{Box: e.Box, Velocity: e.Velocity, Frame: e.Clock.Frame()}
}
