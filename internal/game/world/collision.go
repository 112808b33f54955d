package world

import (
	"math"

	"github.com/Faultbox/sandrunner/internal/game/entity"
)

// Outcome classifies an overlap between the runner and the hazard.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeLethal
	OutcomeLanding
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLethal:
		return "lethal"
	case OutcomeLanding:
		return "landing"
	default:
		return "none"
	}
}

// lethalAngle is the tie-break threshold between a side hit and a landing.
// Angles strictly below it are lethal; exactly 45 degrees lands.
var lethalAngle = math.Atan2(1, 1)

// Collision is the result of resolving two entities against each other.
type Collision struct {
	Outcome Outcome
	// Angle from a's top-left corner to b's, in radians. Zero when no overlap.
	Angle float64
	// Grounded is set when a landed and its motion tracks ground contact.
	// The caller is expected to call Land on a's motion.
	Grounded bool
}

// Resolve tests a against b and applies the landing snap to a.
//
// On overlap the angle from a to b decides the outcome: b predominantly to
// the right or above a is lethal, otherwise a is placed on top of b.
// Nothing is carried between calls.
func Resolve(a, b *entity.Entity) Collision {
	if !a.Box.Intersects(b.Box) {
		return Collision{}
	}

	angle := math.Atan2(float64(b.Box.Y-a.Box.Y), float64(b.Box.X-a.Box.X))
	if angle < lethalAngle {
		return Collision{Outcome: OutcomeLethal, Angle: angle}
	}

	a.Box.Y = b.Box.Y - a.Box.H
	_, canLand := a.Motion.(entity.Lander)
	return Collision{Outcome: OutcomeLanding, Angle: angle, Grounded: canLand}
}
