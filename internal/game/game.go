// Package game implements the main game loop.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sandrunner/internal/config"
	"github.com/Faultbox/sandrunner/internal/engine/audio"
	"github.com/Faultbox/sandrunner/internal/engine/debug"
	"github.com/Faultbox/sandrunner/internal/engine/input"
	"github.com/Faultbox/sandrunner/internal/engine/renderer"
	"github.com/Faultbox/sandrunner/internal/game/world"
	"github.com/Faultbox/sandrunner/internal/logger"
	"github.com/Faultbox/sandrunner/internal/sprite"
	"github.com/Faultbox/sandrunner/pkg/geom"
)

// CuePlayer plays collision sounds without blocking.
type CuePlayer interface {
	PlayCue(audio.Cue) error
}

// Options carries the platform pieces the loop runs on.
type Options struct {
	Backend renderer.Backend
	Loader  renderer.Loader // defaults to Backend
	Input   input.Source
	Cues    CuePlayer           // optional
	Sleep   func(time.Duration) // defaults to time.Sleep
}

// Result describes how a run ended.
type Result struct {
	Stats  world.Stats
	Halted bool // stopped by a lethal collision rather than by quit
}

// Game is the main game instance.
type Game struct {
	config     *config.Config
	backend    renderer.Backend
	input      input.Source
	cues       CuePlayer
	sleep      func(time.Duration)
	world      *world.World
	background *sprite.Atlas
	overlay    debug.Overlay
	frameDelay time.Duration
	log        *zap.Logger
}

// New loads the assets and builds the world. Asset errors are returned as is
// so the caller can abort.
func New(cfg *config.Config, opts Options) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing game",
		zap.String("backend", cfg.Graphics.Backend),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Uint32("tick_rate", cfg.Simulation.TickRate),
		zap.String("motion", cfg.Runner.Motion),
	)

	if opts.Backend == nil || opts.Input == nil {
		return nil, fmt.Errorf("game needs a backend and an input source")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	g := &Game{
		config:     cfg,
		backend:    opts.Backend,
		input:      opts.Input,
		cues:       opts.Cues,
		sleep:      opts.Sleep,
		frameDelay: time.Duration(1000/cfg.Simulation.TickRate) * time.Millisecond,
		log:        log,
	}
	if g.sleep == nil {
		g.sleep = time.Sleep
	}

	loader := opts.Loader
	if loader == nil {
		loader = opts.Backend
	}

	var err error
	if g.world, err = NewWorld(cfg, loader); err != nil {
		return nil, err
	}
	if g.background, err = NewBackground(cfg, loader); err != nil {
		return nil, err
	}

	log.Info("game initialized successfully")
	return g, nil
}

// World exposes the simulation, mainly for inspection after a run.
func (g *Game) World() *world.World {
	return g.world
}

// Run drives the fixed-step loop until quit is requested, or until the first
// lethal collision when game.halt_on_lethal is set. The loop sleeps a fixed
// delay per iteration and never catches up on lost time.
func (g *Game) Run() (Result, error) {
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop", zap.Duration("frame_delay", g.frameDelay))

	for {
		in := g.input.Poll()
		if in.Quit {
			g.log.Info("quit requested", logger.Tick(g.world.Stats().Ticks))
			return Result{Stats: g.world.Stats()}, nil
		}

		step := g.world.Step(in)
		g.report(step)

		g.render()

		if step.Collision.Outcome == world.OutcomeLethal && g.config.Game.HaltOnLethal {
			g.log.Info("halting on lethal collision", logger.Tick(step.Tick))
			return Result{Stats: g.world.Stats(), Halted: true}, nil
		}

		frameCount++
		if g.config.Game.ShowFPS && time.Since(fpsTimer) >= time.Second {
			s := g.world.Stats()
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				logger.Tick(s.Ticks),
				zap.Uint64("landings", s.Landings),
				zap.Uint64("lethal", s.Lethal),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		g.sleep(g.frameDelay)
	}
}

// report logs and sounds a collision once per contact. Ticks that continue
// a contact are only logged at debug.
func (g *Game) report(step world.StepResult) {
	c := step.Collision
	if c.Outcome == world.OutcomeNone {
		return
	}

	runner := g.world.Runner().Box
	if !step.NewContact {
		g.log.Debug("contact",
			logger.Tick(step.Tick),
			zap.Stringer("outcome", c.Outcome),
			logger.Rect("runner", runner),
		)
		return
	}

	g.log.Info("collision",
		logger.Tick(step.Tick),
		zap.Stringer("outcome", c.Outcome),
		zap.Float64("angle", c.Angle),
		logger.Rect("runner", runner),
		logger.Rect("car", g.world.Car().Box),
	)

	cue := audio.CueLanding
	if c.Outcome == world.OutcomeLethal {
		g.log.Warn("DEAD", logger.Tick(step.Tick), logger.Rect("runner", runner))
		cue = audio.CueLethal
	}
	if g.cues != nil {
		if err := g.cues.PlayCue(cue); err != nil {
			g.log.Debug("cue not played", zap.Stringer("cue", cue), zap.Error(err))
		}
	}
}

// render draws one frame: background, runner, car, then debug overlays.
func (g *Game) render() {
	screen := g.world.Screen()

	g.backend.Clear()
	g.background.Render(g.backend, 0, geom.NewRect(0, 0, screen.W, screen.H))
	g.world.Render(g.backend)
	if g.config.Game.ShowDebug {
		g.overlay.Draw(g.backend, []geom.Rect{g.world.Runner().Box, g.world.Car().Box})
	}
	g.backend.Present()
}

// Close releases the backend.
func (g *Game) Close() {
	g.log.Info("closing game")
	g.backend.Close()
}
