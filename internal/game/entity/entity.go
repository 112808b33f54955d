// Package entity implements the sprite-backed entities of the simulation and
// the motion policies that steer them.
package entity

import (
	"fmt"

	"github.com/Faultbox/sandrunner/internal/engine/input"
	"github.com/Faultbox/sandrunner/internal/sprite"
	"github.com/Faultbox/sandrunner/pkg/geom"
)

// Entity is a moving, animated sprite.
//
// Box is both the collision box and the render destination. Its size
// belongs to the entity and may differ from the atlas cell size, in which
// case the sprite is stretched.
type Entity struct {
	Name     string
	Atlas    *sprite.Atlas
	Box      geom.Rect
	Velocity geom.Vec
	Clock    sprite.Clock
	Motion   Motion
}

// Spec describes how to build an entity.
type Spec struct {
	Name     string
	Box      geom.Rect
	Velocity geom.Vec
	SimRate  uint32 // simulation ticks per second
	AnimRate uint32 // animation frames per second
	Motion   Motion
}

// New creates an entity that owns atlas.
func New(atlas *sprite.Atlas, spec Spec) (*Entity, error) {
	if atlas == nil {
		return nil, fmt.Errorf("entity %s: nil atlas", spec.Name)
	}
	if spec.Box.W < 0 || spec.Box.H < 0 {
		return nil, fmt.Errorf("entity %s: negative size %dx%d", spec.Name, spec.Box.W, spec.Box.H)
	}
	if spec.Motion == nil {
		return nil, fmt.Errorf("entity %s: no motion policy", spec.Name)
	}
	clock, err := sprite.NewClock(atlas.Frames(), spec.SimRate, spec.AnimRate)
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", spec.Name, err)
	}
	return &Entity{
		Name:     spec.Name,
		Atlas:    atlas,
		Box:      spec.Box,
		Velocity: spec.Velocity,
		Clock:    clock,
		Motion:   spec.Motion,
	}, nil
}

// Tick integrates position by one step of velocity.
func (e *Entity) Tick() {
	e.Box = e.Box.Translate(e.Velocity)
}

// Render paints the current animation cell into Box and then advances the
// animation clock. Every call moves the animation forward by one render.
func (e *Entity) Render(c sprite.Canvas) {
	e.Atlas.Render(c, e.Clock.Frame(), e.Box)
	e.Clock.Advance()
}

// Steer lets the motion policy set velocity for the coming tick.
func (e *Entity) Steer(in input.Buttons, screen geom.Size) {
	e.Motion.Steer(e, in, screen)
}

// Settle lets the motion policy apply boundary rules after integration.
func (e *Entity) Settle(screen geom.Size) {
	e.Motion.Settle(e, screen)
}

// Position returns the top-left corner of the entity.
func (e *Entity) Position() (x, y int) {
	return e.Box.X, e.Box.Y
}

// SetPosition moves the entity without touching velocity.
func (e *Entity) SetPosition(x, y int) {
	e.Box.X = x
	e.Box.Y = y
}
