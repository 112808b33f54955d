package sprite

import (
	"errors"
	"fmt"
)

// ErrZeroRate is returned when an animation clock would divide by zero.
var ErrZeroRate = errors.New("animation rate yields zero ticks per frame")

// Clock maps a render counter to an animation frame index.
//
// The counter advances once per render call, not per unit of wall time, so
// skipping a render also skips an animation step.
type Clock struct {
	current       uint32
	count         uint32
	ticksPerFrame uint32
}

// NewClock creates a clock cycling through count frames at animRate frames
// per second, for a simulation running at simRate ticks per second.
func NewClock(count, simRate, animRate uint32) (Clock, error) {
	if count == 0 {
		return Clock{}, fmt.Errorf("%w: no frames", ErrZeroRate)
	}
	if animRate == 0 || simRate/animRate == 0 {
		return Clock{}, fmt.Errorf("%w: sim=%d anim=%d", ErrZeroRate, simRate, animRate)
	}
	return Clock{
		count:         count,
		ticksPerFrame: simRate / animRate,
	}, nil
}

// Frame returns the frame index currently displayed.
func (c *Clock) Frame() uint32 {
	return (c.current / c.ticksPerFrame) % c.count
}

// Advance moves the counter one render forward. Overflow wraps.
func (c *Clock) Advance() {
	c.current++
}

// Counter returns the raw render counter.
func (c *Clock) Counter() uint32 {
	return c.current
}

// TicksPerFrame returns how many renders each frame stays on screen.
func (c *Clock) TicksPerFrame() uint32 {
	return c.ticksPerFrame
}
