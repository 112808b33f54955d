package replay

import (
	"path/filepath"

	"github.com/Faultbox/sandrunner/internal/engine/input"
)

// Recorder is an input.Source that forwards another source and keeps every
// snapshot that drives a tick.
type Recorder struct {
	src input.Source
	p   *Playthrough
}

// NewRecorder starts recording src into a new playthrough.
func NewRecorder(src input.Source, settings Settings) *Recorder {
	return &Recorder{src: src, p: New(settings)}
}

// Poll forwards to the wrapped source. The quit snapshot ends the run and is
// not recorded.
func (r *Recorder) Poll() input.Buttons {
	b := r.src.Poll()
	if !b.Quit {
		r.p.History = append(r.p.History, b)
	}
	return b
}

// Playthrough returns the recording so far.
func (r *Recorder) Playthrough() *Playthrough {
	return r.p
}

// SaveTo writes the recording into dir and returns the file path.
func (r *Recorder) SaveTo(dir string) (string, error) {
	path := filepath.Join(dir, r.p.FileName())
	return path, r.p.Save(path)
}

// Player is an input.Source that replays a playthrough and then quits.
type Player struct {
	history []input.Buttons
	pos     int
}

// NewPlayer creates a player positioned at the first tick.
func NewPlayer(p *Playthrough) *Player {
	return &Player{history: p.History}
}

func (pl *Player) Poll() input.Buttons {
	if pl.pos >= len(pl.history) {
		return input.Buttons{Quit: true}
	}
	b := pl.history[pl.pos]
	pl.pos++
	return b
}

// Done reports whether the whole history has been played.
func (pl *Player) Done() bool {
	return pl.pos >= len(pl.history)
}
