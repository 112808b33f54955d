// Package replay records the input of a run and plays it back.
//
// A Playthrough holds everything needed to reproduce a run: the settings
// that shape the simulation and the button snapshot of every tick. Given the
// same simulation code, replaying it yields the same world states.
package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/sandrunner/internal/config"
	"github.com/Faultbox/sandrunner/internal/engine/input"
)

// FormatVersion must change whenever a saved playthrough would decode into
// different inputs.
const FormatVersion = 1

// Settings are the configuration values that affect the simulation.
type Settings struct {
	Width    int                 `yaml:"width"`
	Height   int                 `yaml:"height"`
	TickRate uint32              `yaml:"tick_rate"`
	Runner   config.RunnerConfig `yaml:"runner"`
	Car      config.EntityConfig `yaml:"car"`
}

// SettingsFrom extracts the simulation settings of cfg.
func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		Width:    cfg.Graphics.Width,
		Height:   cfg.Graphics.Height,
		TickRate: cfg.Simulation.TickRate,
		Runner:   cfg.Runner,
		Car:      cfg.Car,
	}
}

// Config returns a default configuration with s applied.
func (s Settings) Config() *config.Config {
	cfg := config.Default()
	cfg.Graphics.Width = s.Width
	cfg.Graphics.Height = s.Height
	cfg.Simulation.TickRate = s.TickRate
	cfg.Runner = s.Runner
	cfg.Car = s.Car
	return cfg
}

// Playthrough is the full input of one run.
type Playthrough struct {
	Version  int             `yaml:"version"`
	ID       uuid.UUID       `yaml:"id"`
	Recorded time.Time       `yaml:"recorded"`
	Settings Settings        `yaml:"settings"`
	History  []input.Buttons `yaml:"history"`
}

// New creates an empty playthrough with a fresh id.
func New(settings Settings) *Playthrough {
	return &Playthrough{
		Version:  FormatVersion,
		ID:       uuid.New(),
		Recorded: time.Now().UTC().Truncate(time.Second),
		Settings: settings,
	}
}

// Clone returns a deep copy.
func (p *Playthrough) Clone() *Playthrough {
	clone := *p
	clone.History = slices.Clone(p.History)
	return &clone
}

// FileName is the default file name for p inside a recording directory.
func (p *Playthrough) FileName() string {
	return p.ID.String() + ".yaml"
}

// Save writes p as YAML, creating parent directories.
func (p *Playthrough) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode playthrough: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a playthrough saved by Save.
func Load(path string) (*Playthrough, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Playthrough
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode playthrough %s: %w", path, err)
	}
	if p.Version != FormatVersion {
		return nil, fmt.Errorf("playthrough %s has format version %d, this build reads %d", path, p.Version, FormatVersion)
	}
	if err := p.Settings.Config().Validate(); err != nil {
		return nil, fmt.Errorf("playthrough %s: %w", path, err)
	}
	return &p, nil
}
