// Package config handles game configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backend names accepted by graphics.backend.
const (
	BackendSDL      = "sdl"
	BackendTerminal = "terminal"
)

// Motion names accepted by runner.motion.
const (
	MotionJump        = "jump"
	MotionDirectional = "directional"
)

// Config holds all game settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Simulation SimulationConfig `yaml:"simulation"`
	Runner     RunnerConfig     `yaml:"runner"`
	Car        EntityConfig     `yaml:"car"`
	Background BackgroundConfig `yaml:"background"`
	Audio      AudioConfig      `yaml:"audio"`
	Game       GameConfig       `yaml:"game"`
	Storage    StorageConfig    `yaml:"storage"`
	Replay     ReplayConfig     `yaml:"replay"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	Backend    string `yaml:"backend"`
}

// SimulationConfig holds the fixed-step clock.
type SimulationConfig struct {
	TickRate uint32 `yaml:"tick_rate"` // ticks per second
}

// EntityConfig describes one sprite entity: its sheet, animation and spawn box.
type EntityConfig struct {
	Path      string `yaml:"path"`
	Frames    uint32 `yaml:"frames"`
	Rows      uint32 `yaml:"rows"`
	Columns   uint32 `yaml:"columns"`
	FPS       uint32 `yaml:"fps"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	VelocityX int    `yaml:"velocity_x"`
}

// RunnerConfig is the player entity plus its motion policy.
type RunnerConfig struct {
	EntityConfig `yaml:",inline"`
	Motion       string `yaml:"motion"`
}

// BackgroundConfig selects the background image. An empty path generates the
// sand gradient.
type BackgroundConfig struct {
	Path string `yaml:"path"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	MusicPath    string  `yaml:"music_path"`
	Muted        bool    `yaml:"muted"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	HaltOnLethal bool `yaml:"halt_on_lethal"`
	ShowDebug    bool `yaml:"show_debug"`
	ShowFPS      bool `yaml:"show_fps"`
}

// StorageConfig holds the run ledger location.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// ReplayConfig holds playthrough recording settings.
type ReplayConfig struct {
	RecordDir string `yaml:"record_dir"` // empty disables recording
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:   "Sand Runner",
			Width:   640,
			Height:  480,
			Backend: BackendSDL,
		},
		Simulation: SimulationConfig{
			TickRate: 60,
		},
		Runner: RunnerConfig{
			EntityConfig: EntityConfig{
				Path:    "assets/runner.png",
				Frames:  7,
				Rows:    3,
				Columns: 3,
				FPS:     15,
				X:       20,
				Y:       0,
				Width:   50,
				Height:  50,
			},
			Motion: MotionJump,
		},
		Car: EntityConfig{
			Path:      "assets/car.png",
			Frames:    1,
			Rows:      1,
			Columns:   1,
			FPS:       1,
			X:         540,
			Y:         380,
			Width:     200,
			Height:    80,
			VelocityX: -5,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.8,
			SFXVolume:    0.8,
		},
		Storage: StorageConfig{
			Enabled: true,
			DBPath:  "~/.sandrunner/runs.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: screen size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	switch c.Graphics.Backend {
	case BackendSDL, BackendTerminal:
	default:
		errs = append(errs, fmt.Errorf("graphics: unknown backend %q", c.Graphics.Backend))
	}
	if c.Simulation.TickRate == 0 {
		errs = append(errs, errors.New("simulation: tick_rate must be positive"))
	}
	switch c.Runner.Motion {
	case MotionJump, MotionDirectional:
	default:
		errs = append(errs, fmt.Errorf("runner: unknown motion %q", c.Runner.Motion))
	}
	errs = append(errs, c.Runner.validate("runner"), c.Car.validate("car"))
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 || c.Audio.SFXVolume < 0 || c.Audio.SFXVolume > 1 {
		errs = append(errs, errors.New("audio: volumes must be within [0, 1]"))
	}
	return errors.Join(errs...)
}

func (e EntityConfig) validate(name string) error {
	switch {
	case e.Frames == 0 || e.Rows == 0 || e.Columns == 0:
		return fmt.Errorf("%s: frames, rows and columns must be positive", name)
	case e.Frames > e.Rows*e.Columns:
		return fmt.Errorf("%s: %d frames do not fit a %dx%d grid", name, e.Frames, e.Rows, e.Columns)
	case e.FPS == 0:
		return fmt.Errorf("%s: fps must be positive", name)
	case e.Width <= 0 || e.Height <= 0:
		return fmt.Errorf("%s: size %dx%d must be positive", name, e.Width, e.Height)
	}
	return nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
