// Package input defines the per-tick button snapshot and the sources that produce it.
package input

// Button identifies one directional or action key.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonJump
	buttonCount
)

// NumButtons is the number of distinct buttons.
const NumButtons = int(buttonCount)

// String returns a human-readable name for the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	case ButtonJump:
		return "jump"
	default:
		return "unknown"
	}
}

// Buttons is a snapshot of which keys are held during one tick.
// It is a value type; every Poll returns a fresh copy.
type Buttons struct {
	Left  bool `yaml:"left,omitempty"`
	Right bool `yaml:"right,omitempty"`
	Up    bool `yaml:"up,omitempty"`
	Down  bool `yaml:"down,omitempty"`
	Jump  bool `yaml:"jump,omitempty"`
	Quit  bool `yaml:"quit,omitempty"`
}

// Held reports whether b is held in this snapshot.
func (s Buttons) Held(b Button) bool {
	switch b {
	case ButtonLeft:
		return s.Left
	case ButtonRight:
		return s.Right
	case ButtonUp:
		return s.Up
	case ButtonDown:
		return s.Down
	case ButtonJump:
		return s.Jump
	}
	return false
}

// With returns a copy of s with b set to held.
func (s Buttons) With(b Button, held bool) Buttons {
	switch b {
	case ButtonLeft:
		s.Left = held
	case ButtonRight:
		s.Right = held
	case ButtonUp:
		s.Up = held
	case ButtonDown:
		s.Down = held
	case ButtonJump:
		s.Jump = held
	}
	return s
}

// Source produces button snapshots. Poll must not block: it drains every
// pending event and returns the latest held state, including quit.
type Source interface {
	Poll() Buttons
}

// Script is a Source that replays a fixed sequence of snapshots and then
// reports quit. It is used for headless runs and tests.
type Script struct {
	frames []Buttons
	pos    int
}

// NewScript creates a scripted source from frames.
func NewScript(frames ...Buttons) *Script {
	return &Script{frames: frames}
}

// Idle returns n empty snapshots.
func Idle(n int) []Buttons {
	return make([]Buttons, n)
}

// Hold returns n snapshots with b held.
func Hold(b Button, n int) []Buttons {
	frames := make([]Buttons, n)
	for i := range frames {
		frames[i] = frames[i].With(b, true)
	}
	return frames
}

// Poll returns the next scripted snapshot, or quit once exhausted.
func (s *Script) Poll() Buttons {
	if s.pos >= len(s.frames) {
		return Buttons{Quit: true}
	}
	b := s.frames[s.pos]
	s.pos++
	return b
}

// Remaining returns the number of snapshots not yet polled.
func (s *Script) Remaining() int {
	return len(s.frames) - s.pos
}

// Latch accumulates press and release events into a held-state snapshot.
// Backends with real key-up events use it directly.
type Latch struct {
	state Buttons
}

// Set records a press (held) or release of b.
func (l *Latch) Set(b Button, held bool) {
	l.state = l.state.With(b, held)
}

// Quit marks the snapshot as a quit request. It stays set.
func (l *Latch) Quit() {
	l.state.Quit = true
}

// Buttons returns the current snapshot.
func (l *Latch) Buttons() Buttons {
	return l.state
}
