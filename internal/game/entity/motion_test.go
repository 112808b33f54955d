package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/sandrunner/internal/engine/input"
	"github.com/Faultbox/sandrunner/pkg/geom"
)

func TestDirectionalVelocity(t *testing.T) {
	tests := []struct {
		name string
		in   input.Buttons
		want geom.Vec
	}{
		{"nothing held", input.Buttons{}, geom.Vec{}},
		{"right", input.Buttons{Right: true}, geom.Vec{DX: 10}},
		{"left", input.Buttons{Left: true}, geom.Vec{DX: -10}},
		{"left and right cancel", input.Buttons{Left: true, Right: true}, geom.Vec{}},
		{"up", input.Buttons{Up: true}, geom.Vec{DY: -10}},
		{"down right", input.Buttons{Down: true, Right: true}, geom.Vec{DX: 10, DY: 10}},
		{"up and down cancel", input.Buttons{Up: true, Down: true, Left: true}, geom.Vec{DX: -10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEntity(t, geom.NewRect(100, 100, 50, 50), geom.Vec{DX: 3, DY: 7}, NewDirectional())
			e.Steer(tt.in, screen)
			assert.Equal(t, tt.want, e.Velocity)
		})
	}
}

func TestDirectionalDoesNotAccumulate(t *testing.T) {
	e := newEntity(t, geom.NewRect(100, 100, 50, 50), geom.Vec{}, NewDirectional())
	for i := 0; i < 5; i++ {
		e.Steer(input.Buttons{Right: true}, screen)
	}
	assert.Equal(t, geom.Vec{DX: 10}, e.Velocity)
}

func TestDirectionalFloorClamp(t *testing.T) {
	e := newEntity(t, geom.NewRect(0, 425, 50, 50), geom.Vec{}, NewDirectional())
	e.Steer(input.Buttons{Down: true}, screen)
	e.Tick()
	e.Settle(screen)
	assert.Equal(t, 430, e.Box.Y)
}

func TestJumpFromGround(t *testing.T) {
	j := NewJump()
	e := newEntity(t, geom.NewRect(20, 430, 50, 50), geom.Vec{}, j)
	j.Land(e)
	assert.Equal(t, Grounded, j.Phase())

	e.Steer(input.Buttons{Jump: true}, screen)
	assert.Equal(t, JumpImpulse, e.Velocity.DY)
	assert.Equal(t, Airborne, j.Phase())
	e.Tick()
	e.Settle(screen)
	assert.Equal(t, 410, e.Box.Y)

	// Gravity adds one per tick while airborne, held button or not.
	for i := 1; i <= 10; i++ {
		e.Steer(input.Buttons{Jump: true}, screen)
		assert.Equal(t, JumpImpulse+i, e.Velocity.DY)
		e.Tick()
		e.Settle(screen)
	}
}

func TestJumpLandsOnFloor(t *testing.T) {
	j := NewJump()
	e := newEntity(t, geom.NewRect(20, 0, 50, 50), geom.Vec{}, j)

	ticks := 0
	for j.Phase() != Grounded {
		e.Steer(input.Buttons{}, screen)
		e.Tick()
		e.Settle(screen)
		ticks++
		if ticks > 100 {
			t.Fatal("never landed")
		}
	}
	// y after n ticks is n(n+1)/2; 29 ticks is the first to pass 430.
	assert.Equal(t, 29, ticks)
	assert.Equal(t, 430, e.Box.Y)
	assert.Equal(t, 0, e.Velocity.DY)
	assert.Equal(t, 20, e.Box.X)
}

func TestJumpIsEdgeTriggered(t *testing.T) {
	j := NewJump()
	e := newEntity(t, geom.NewRect(20, 430, 50, 50), geom.Vec{}, j)
	step := func(in input.Buttons) {
		e.Steer(in, screen)
		e.Tick()
		e.Settle(screen)
	}

	// Holding jump while airborne does not queue a jump for landing.
	step(input.Buttons{Jump: true})
	assert.Equal(t, Grounded, j.Phase(), "first tick on the floor only settles")
	step(input.Buttons{Jump: true})
	assert.Equal(t, Grounded, j.Phase(), "still held, no new press")

	step(input.Buttons{})
	step(input.Buttons{Jump: true})
	assert.Equal(t, Airborne, j.Phase())
	assert.Equal(t, JumpImpulse, e.Velocity.DY)
}

func TestJumpKeepsHorizontalDrift(t *testing.T) {
	j := NewJump()
	e := newEntity(t, geom.NewRect(0, 430, 50, 50), geom.Vec{DX: 2}, j)
	for i := 0; i < 10; i++ {
		e.Steer(input.Buttons{Left: true, Right: true, Jump: i == 3}, screen)
		e.Tick()
		e.Settle(screen)
	}
	assert.Equal(t, 2, e.Velocity.DX)
	assert.Equal(t, 20, e.Box.X)
}

func TestPatrolWraps(t *testing.T) {
	e := newEntity(t, geom.NewRect(-79, 400, 80, 80), geom.Vec{DX: -10}, NewPatrol())

	// Right edge at 1: still visible, no wrap.
	e.Steer(input.Buttons{}, screen)
	e.Tick()
	assert.Equal(t, -89, e.Box.X)

	// Right edge at -9: wraps to the screen width before moving.
	e.Steer(input.Buttons{}, screen)
	assert.Equal(t, 640, e.Box.X)
	e.Tick()
	assert.Equal(t, 630, e.Box.X)
	assert.Equal(t, geom.Vec{DX: -10}, e.Velocity)
}

func TestPatrolRightEdgeAtZeroDoesNotWrap(t *testing.T) {
	e := newEntity(t, geom.NewRect(-80, 400, 80, 80), geom.Vec{DX: -10}, NewPatrol())
	e.Steer(input.Buttons{}, screen)
	assert.Equal(t, -80, e.Box.X)
}

func TestNewMotion(t *testing.T) {
	assert.Equal(t, KindDirectional, NewMotion("directional").Kind())
	assert.Equal(t, KindJump, NewMotion("jump").Kind())
	assert.Equal(t, KindPatrol, NewMotion("patrol").Kind())
	assert.Nil(t, NewMotion("fly"))

	_, ok := NewMotion(KindJump).(Lander)
	assert.True(t, ok)
	_, ok = NewMotion(KindDirectional).(Lander)
	assert.False(t, ok)
}
