// Package main is the entry point for Sand Runner.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/sandrunner/internal/assets"
	"github.com/Faultbox/sandrunner/internal/config"
	"github.com/Faultbox/sandrunner/internal/engine/audio"
	"github.com/Faultbox/sandrunner/internal/engine/input"
	"github.com/Faultbox/sandrunner/internal/engine/renderer"
	"github.com/Faultbox/sandrunner/internal/engine/terminal"
	"github.com/Faultbox/sandrunner/internal/engine/window"
	"github.com/Faultbox/sandrunner/internal/game"
	"github.com/Faultbox/sandrunner/internal/game/replay"
	"github.com/Faultbox/sandrunner/internal/logger"
	"github.com/Faultbox/sandrunner/internal/storage"
	"github.com/Faultbox/sandrunner/pkg/geom"
)

// platform is a backend that also reads the keyboard.
type platform interface {
	renderer.Backend
	input.Source
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := initLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Sand Runner ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("game closed normally")
}

// initLogger keeps the console quiet for the terminal backend, which owns
// the screen.
func initLogger(cfg *config.Config) error {
	if cfg.Graphics.Backend != config.BackendTerminal {
		return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	}
	var fileCfg logger.FileConfig
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	return logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, false)
}

func run(cfg *config.Config) error {
	p, err := openPlatform(cfg)
	if err != nil {
		return err
	}

	sound := openAudio(cfg)
	if sound != nil {
		defer sound.Close()
	}

	loader := assets.NewManager(p, config.ConfigDir(), ".")
	rec := replay.NewRecorder(p, replay.SettingsFrom(cfg))
	opts := game.Options{Backend: p, Loader: loader, Input: rec}
	if sound != nil {
		opts.Cues = sound
	}

	g, err := game.New(cfg, opts)
	if err != nil {
		p.Close()
		return fmt.Errorf("failed to create game: %w", err)
	}
	defer g.Close()

	hits, misses := loader.Stats()
	logger.Debug("textures loaded", zap.Int("cache_hits", hits), zap.Int("cache_misses", misses))

	res, err := g.Run()
	if err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	logger.Info("run finished",
		logger.Tick(res.Stats.Ticks),
		zap.Uint64("landings", res.Stats.Landings),
		zap.Uint64("lethal", res.Stats.Lethal),
		zap.Bool("halted", res.Halted),
	)

	finish(cfg, rec, res)
	return nil
}

func openPlatform(cfg *config.Config) (platform, error) {
	switch cfg.Graphics.Backend {
	case config.BackendTerminal:
		t, err := terminal.Open(geom.Size{W: cfg.Graphics.Width, H: cfg.Graphics.Height})
		if err != nil {
			return nil, fmt.Errorf("failed to open terminal: %w", err)
		}
		return t, nil
	default:
		w, err := window.New(window.Config{
			Title:      cfg.Graphics.Title,
			Width:      cfg.Graphics.Width,
			Height:     cfg.Graphics.Height,
			Fullscreen: cfg.Graphics.Fullscreen,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create window: %w", err)
		}
		return w, nil
	}
}

// openAudio returns nil when audio is disabled or unavailable. Sound is never
// required to play.
func openAudio(cfg *config.Config) *audio.Manager {
	if !cfg.Audio.Enabled {
		return nil
	}
	m := audio.New()
	if err := m.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
		return nil
	}
	m.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	m.SetSFXVolume(float64(cfg.Audio.SFXVolume))
	m.SetMuted(cfg.Audio.Muted)
	if cfg.Audio.MusicPath != "" {
		if err := m.PlayMusic(cfg.Audio.MusicPath); err != nil {
			logger.Warn("music not started", zap.String("path", cfg.Audio.MusicPath), zap.Error(err))
		}
	}
	return m
}

// finish saves the recording and the ledger entry. Failures are logged only.
func finish(cfg *config.Config, rec *replay.Recorder, res game.Result) {
	p := rec.Playthrough()
	if cfg.Replay.RecordDir != "" {
		path, err := rec.SaveTo(config.ExpandPath(cfg.Replay.RecordDir))
		if err != nil {
			logger.Warn("playthrough not saved", zap.Error(err))
		} else {
			logger.Info("playthrough saved", zap.String("path", path))
		}
	}

	if !cfg.Storage.Enabled {
		return
	}
	regression, err := replay.RegressionID(p)
	if err != nil {
		logger.Warn("regression id not computed", zap.Error(err))
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("run ledger unavailable", zap.Error(err))
		return
	}
	defer store.Close()

	err = store.SaveRun(storage.Run{
		ID:         p.ID.String(),
		Motion:     cfg.Runner.Motion,
		Ticks:      res.Stats.Ticks,
		Landings:   res.Stats.Landings,
		Lethal:     res.Stats.Lethal,
		Halted:     res.Halted,
		Regression: regression,
	})
	if err != nil {
		logger.Warn("run not recorded", zap.Error(err))
		return
	}
	logger.Info("run recorded", zap.String("id", p.ID.String()), zap.String("regression", regression))
}
