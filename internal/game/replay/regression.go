package replay

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/Faultbox/sandrunner/internal/engine/renderer"
	"github.com/Faultbox/sandrunner/internal/game"
	"github.com/Faultbox/sandrunner/internal/game/world"
)

// Visitor observes each replayed tick.
type Visitor func(step world.StepResult, snap world.Snapshot)

// Simulate replays p headlessly. Every tick is rendered to a recorder so
// render-driven animation advances exactly as it does on screen.
func Simulate(p *Playthrough, visit Visitor) (world.Stats, error) {
	canvas := renderer.NewRecorder()
	w, err := game.NewWorld(p.Settings.Config(), canvas)
	if err != nil {
		return world.Stats{}, fmt.Errorf("build world: %w", err)
	}

	player := NewPlayer(p)
	for in := player.Poll(); !in.Quit; in = player.Poll() {
		step := w.Step(in)
		w.Render(canvas)
		if visit != nil {
			visit(step, w.Snapshot())
		}
	}
	return w.Stats(), nil
}

// RegressionID replays p and hashes the world state after every tick.
// Two builds that produce the same id for a playthrough simulate it
// identically.
func RegressionID(p *Playthrough) (string, error) {
	hash := sha256.New()
	buf := make([]byte, 0, 128)

	_, err := Simulate(p, func(step world.StepResult, snap world.Snapshot) {
		buf = appendSnapshot(buf[:0], snap)
		buf = append(buf, byte(step.Collision.Outcome))
		hash.Write(buf)
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

func appendSnapshot(b []byte, s world.Snapshot) []byte {
	b = binary.BigEndian.AppendUint64(b, s.Tick)
	for _, e := range []world.EntityState{s.Runner, s.Car} {
		for _, v := range []int{e.Box.X, e.Box.Y, e.Box.W, e.Box.H, e.Velocity.DX, e.Velocity.DY} {
			b = binary.BigEndian.AppendUint64(b, uint64(int64(v)))
		}
		b = binary.BigEndian.AppendUint32(b, e.Frame)
	}
	return append(b, byte(s.Phase))
}
