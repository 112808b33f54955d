package entity

import (
	"github.com/Faultbox/sandrunner/internal/engine/input"
	"github.com/Faultbox/sandrunner/pkg/geom"
)

// Motion tuning, in pixels per tick.
const (
	WalkSpeed   = 10
	JumpImpulse = -20
	Gravity     = 1
)

// Motion derives an entity's velocity each tick.
type Motion interface {
	// Steer runs before integration and sets velocity from input.
	Steer(e *Entity, in input.Buttons, screen geom.Size)
	// Settle runs after integration and applies boundary rules.
	Settle(e *Entity, screen geom.Size)
	// Kind names the policy for logs and recordings.
	Kind() string
}

// Lander is implemented by motion policies that track ground contact.
// The world calls Land after placing the entity on top of another one.
type Lander interface {
	Land(e *Entity)
}

// Motion kinds.
const (
	KindDirectional = "directional"
	KindJump        = "jump"
	KindPatrol      = "patrol"
)

// clampToFloor keeps the entity's bottom edge at or above the screen bottom.
// It reports whether the entity was moved.
func clampToFloor(e *Entity, screen geom.Size) bool {
	if e.Box.Bottom() > screen.H {
		e.Box.Y = screen.H - e.Box.H
		return true
	}
	return false
}

// Directional moves at a fixed speed along each axis toward the held key of
// the opposing pair. Velocity is rebuilt from scratch every tick.
type Directional struct{}

// NewDirectional creates a free-directional policy.
func NewDirectional() *Directional {
	return &Directional{}
}

func (*Directional) Kind() string { return KindDirectional }

func (*Directional) Steer(e *Entity, in input.Buttons, _ geom.Size) {
	e.Velocity = geom.Vec{
		DX: axis(in.Left, in.Right),
		DY: axis(in.Up, in.Down),
	}
}

func (*Directional) Settle(e *Entity, screen geom.Size) {
	clampToFloor(e, screen)
}

// axis returns -WalkSpeed, 0 or +WalkSpeed. Both or neither held cancel out.
func axis(negative, positive bool) int {
	v := 0
	if negative {
		v -= WalkSpeed
	}
	if positive {
		v += WalkSpeed
	}
	return v
}

// Phase is the ground contact state of a jumping entity.
type Phase uint8

const (
	Airborne Phase = iota
	Grounded
)

func (p Phase) String() string {
	if p == Grounded {
		return "grounded"
	}
	return "airborne"
}

// Jump is a jump-with-gravity policy. Horizontal velocity is whatever the
// entity was built with and is never changed here.
//
// A jump starts only on the tick the jump button goes from released to
// held while grounded. Gravity applies on every other tick, so an entity
// resting on something keeps sinking into it until the floor clamp or a
// landing puts it back and restores Grounded.
type Jump struct {
	phase    Phase
	jumpHeld bool
}

// NewJump creates a jump policy. Entities start airborne until they first
// touch the floor or land on something.
func NewJump() *Jump {
	return &Jump{phase: Airborne}
}

func (*Jump) Kind() string { return KindJump }

// Phase returns the current ground contact state.
func (j *Jump) Phase() Phase {
	return j.phase
}

func (j *Jump) Steer(e *Entity, in input.Buttons, _ geom.Size) {
	pressed := in.Jump && !j.jumpHeld
	j.jumpHeld = in.Jump

	if pressed && j.phase == Grounded {
		e.Velocity.DY = JumpImpulse
		j.phase = Airborne
		return
	}
	e.Velocity.DY += Gravity
	j.phase = Airborne
}

func (j *Jump) Settle(e *Entity, screen geom.Size) {
	if clampToFloor(e, screen) {
		j.Land(e)
	}
}

// Land stops vertical motion and re-enables jumping.
func (j *Jump) Land(e *Entity) {
	e.Velocity.DY = 0
	j.phase = Grounded
}

// Patrol keeps a constant velocity and wraps around horizontally: once the
// entity has fully left the screen on the left it reappears at the right edge.
type Patrol struct{}

// NewPatrol creates a fixed-velocity patrol policy.
func NewPatrol() *Patrol {
	return &Patrol{}
}

func (*Patrol) Kind() string { return KindPatrol }

func (*Patrol) Steer(e *Entity, _ input.Buttons, screen geom.Size) {
	if e.Box.Right() < 0 {
		e.Box.X = screen.W
	}
}

func (*Patrol) Settle(*Entity, geom.Size) {}

// NewMotion returns the policy registered under kind, or nil.
func NewMotion(kind string) Motion {
	switch kind {
	case KindDirectional:
		return NewDirectional()
	case KindJump:
		return NewJump()
	case KindPatrol:
		return NewPatrol()
	}
	return nil
}
