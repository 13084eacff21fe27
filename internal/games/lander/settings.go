package lander

import (
	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/games/lander/sim"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// startLevel overrides session.start_level when > 0
var startLevel int

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetStartLevel sets the level new sessions begin at (1-based, 0 = config).
func SetStartLevel(level int) {
	startLevel = level
}

// loadConfig resolves the YAML config with CLI overrides applied. A broken
// config file falls back to defaults; the error is returned for reporting.
func loadConfig(o Options) (config.LanderConfig, error) {
	cfg, err := config.LoadLander(configPath)

	preset := difficultyPreset
	if o.Difficulty != "" {
		preset = o.Difficulty
	}
	config.ApplyLanderPreset(&cfg, preset)

	level := startLevel
	if o.StartLevel > 0 {
		level = o.StartLevel
	}
	if level > 0 {
		cfg.Session.StartLevel = min(level, len(cfg.Levels))
	}
	return cfg, err
}

// Options are per-instance overrides of the CLI settings. Zero values
// fall back to the package-level settings.
type Options struct {
	StartLevel int
	Difficulty config.DifficultyPreset
}

// SimConfig converts YAML configuration into simulation parameters.
// Difficulty scaling is folded into per-level overrides.
func SimConfig(cfg config.LanderConfig) sim.Config {
	drain := sim.DrainPerSecond
	if cfg.Physics.FuelDrain == "tick" {
		drain = sim.DrainPerTick
	}

	dm := config.NewDifficultyManager(cfg.Difficulty)
	levels := make([]sim.LevelPolicy, len(cfg.Levels))
	for i, lc := range cfg.Levels {
		n := i + 1
		levels[i] = sim.LevelPolicy{
			LandingZones: lc.LandingZones,
			ZoneWidth:    max(int(lc.ZoneWidth*float64(cfg.World.Width)), 2),
		}
		if dm.IsEnabled() {
			levels[i].GravityScale = dm.GravityScale(n)
			levels[i].MaxVerticalSpeed = dm.MaxVerticalSpeed(cfg.Landing.MaxVerticalSpeed, n)
		}
	}

	return sim.Config{
		Width:  cfg.World.Width,
		Height: cfg.World.Height,
		Physics: sim.PhysicsParams{
			Gravity:       cfg.Physics.Gravity,
			Thrust:        cfg.Physics.Thrust,
			RotationSpeed: cfg.Physics.RotationSpeed,
			MaxFuel:       cfg.Physics.MaxFuel,
			FuelDrain:     drain,
			FuelPerSecond: cfg.Physics.FuelPerSecond,
		},
		Terrain: sim.TerrainParams{
			MaxHeightFraction: cfg.Terrain.MaxHeightFraction,
			TopFraction:       cfg.Terrain.TopFraction,
			Roughness:         cfg.Terrain.Roughness,
			SideMargin:        cfg.Terrain.SideMargin,
			BlendWindow:       cfg.Terrain.BlendWindow,
		},
		Landing: sim.LandingParams{
			Radius:           cfg.Landing.Radius,
			MaxVerticalSpeed: cfg.Landing.MaxVerticalSpeed,
			MaxAngleDeg:      cfg.Landing.MaxAngleDeg,
		},
		Levels:           levels,
		CountdownSeconds: cfg.Session.CountdownSeconds,
		StartLevel:       cfg.Session.StartLevel,
	}
}
