package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging and overlays")
	flagBackend      = flag.String("backend", "", "Rendering backend: sdl or terminal")
	flagWidth        = flag.Int("width", 0, "Screen width")
	flagHeight       = flag.Int("height", 0, "Screen height")
	flagTickRate     = flag.Uint("tick-rate", 0, "Simulation ticks per second")
	flagMotion       = flag.String("motion", "", "Runner motion: jump or directional")
	flagHaltOnLethal = flag.Bool("halt-on-lethal", false, "Stop the run on the first lethal collision")
	flagRecord       = flag.String("record", "", "Directory to write playthrough files to")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Game.ShowDebug = true
		cfg.Game.ShowFPS = true
	}
	if *flagBackend != "" {
		cfg.Graphics.Backend = *flagBackend
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagTickRate > 0 {
		cfg.Simulation.TickRate = uint32(*flagTickRate)
	}
	if *flagMotion != "" {
		cfg.Runner.Motion = *flagMotion
	}
	if *flagHaltOnLethal {
		cfg.Game.HaltOnLethal = true
	}
	if *flagRecord != "" {
		cfg.Replay.RecordDir = *flagRecord
	}
}
