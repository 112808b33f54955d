package game

import (
	"fmt"

	"github.com/Faultbox/sandrunner/internal/config"
	"github.com/Faultbox/sandrunner/internal/engine/renderer"
	"github.com/Faultbox/sandrunner/internal/engine/texture"
	"github.com/Faultbox/sandrunner/internal/game/entity"
	"github.com/Faultbox/sandrunner/internal/game/world"
	"github.com/Faultbox/sandrunner/internal/sprite"
	"github.com/Faultbox/sandrunner/pkg/geom"
)

// NewWorld loads both sprite sheets and places the runner and the car.
// Any asset failure is returned; callers treat it as fatal.
func NewWorld(cfg *config.Config, loader renderer.Loader) (*world.World, error) {
	screen := geom.Size{W: cfg.Graphics.Width, H: cfg.Graphics.Height}
	rate := cfg.Simulation.TickRate

	motion := entity.NewMotion(cfg.Runner.Motion)
	if motion == nil {
		return nil, fmt.Errorf("runner: unknown motion %q", cfg.Runner.Motion)
	}
	runner, err := newEntity("runner", cfg.Runner.EntityConfig, motion, rate, loader)
	if err != nil {
		return nil, err
	}
	car, err := newEntity("car", cfg.Car, entity.NewPatrol(), rate, loader)
	if err != nil {
		return nil, err
	}
	return world.New(screen, runner, car), nil
}

func newEntity(name string, ec config.EntityConfig, motion entity.Motion, rate uint32, loader renderer.Loader) (*entity.Entity, error) {
	tex, err := loader.LoadTexture(ec.Path)
	if err != nil {
		return nil, fmt.Errorf("load %s sprite sheet %s: %w", name, ec.Path, err)
	}
	atlas, err := sprite.NewAtlas(tex, ec.Frames, ec.Rows, ec.Columns)
	if err != nil {
		return nil, fmt.Errorf("%s atlas: %w", name, err)
	}
	return entity.New(atlas, entity.Spec{
		Name:     name,
		Box:      geom.NewRect(ec.X, ec.Y, ec.Width, ec.Height),
		Velocity: geom.Vec{DX: ec.VelocityX},
		SimRate:  rate,
		AnimRate: ec.FPS,
		Motion:   motion,
	})
}

// NewBackground loads the configured background as a single-cell atlas, or
// generates the dark blue to sand gradient when no path is set.
func NewBackground(cfg *config.Config, loader renderer.Loader) (*sprite.Atlas, error) {
	var (
		tex sprite.Texture
		err error
	)
	if cfg.Background.Path == "" {
		tex, err = loader.TextureFromImage(texture.Gradient(cfg.Graphics.Width, cfg.Graphics.Height, texture.DarkBlue, texture.Sand))
	} else {
		tex, err = loader.LoadTexture(cfg.Background.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	return sprite.NewAtlas(tex, 1, 1, 1)
}
