package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const landerConfigFile = "lander.yaml"

// LoadLander loads lander configuration.
// Search order: customPath -> ~/.lander/configs/lander.yaml -> ./configs/lander.yaml -> embedded default
// Fields missing from the chosen file keep their default values.
func LoadLander(customPath string) (LanderConfig, error) {
	cfg := DefaultLanderConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultLanderConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Normalize()
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(landerConfigFile); userCfgPath != "" {
		if parsed, ok := parseFile(userCfgPath); ok {
			return parsed, nil
		}
	}

	// Try local configs directory
	if parsed, ok := parseFile(filepath.Join("configs", landerConfigFile)); ok {
		return parsed, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultLanderYAML, &cfg); err != nil {
		return DefaultLanderConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Normalize()
	return cfg, nil
}

// parseFile reads and parses path on top of the defaults. A missing or
// malformed file reports false so the caller can fall through.
func parseFile(path string) (LanderConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LanderConfig{}, false
	}
	cfg := DefaultLanderConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LanderConfig{}, false
	}
	cfg.Normalize()
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lander", "configs", filename)
}

// ApplyLanderPreset modifies the config based on a difficulty preset.
// The empty preset leaves the config untouched.
func ApplyLanderPreset(cfg *LanderConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust landing tolerances based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Landing.MaxVerticalSpeed = 25
		cfg.Landing.MaxAngleDeg = 8
		cfg.Physics.MaxFuel = 400
	case DifficultyHard:
		cfg.Landing.MaxVerticalSpeed = 15
		cfg.Landing.MaxAngleDeg = 4
		cfg.Physics.MaxFuel = 250
	}
}

// Normalize replaces zero or out-of-range values with defaults so a
// partial or hand-edited file still yields a playable game.
func (c *LanderConfig) Normalize() {
	def := DefaultLanderConfig()

	if c.World.Width < 2 {
		c.World.Width = def.World.Width
	}
	if c.World.Height < 1 {
		c.World.Height = def.World.Height
	}

	if c.Physics.Gravity == 0 {
		c.Physics.Gravity = def.Physics.Gravity
	}
	if c.Physics.Thrust == 0 {
		c.Physics.Thrust = def.Physics.Thrust
	}
	if c.Physics.RotationSpeed == 0 {
		c.Physics.RotationSpeed = def.Physics.RotationSpeed
	}
	if c.Physics.MaxFuel <= 0 {
		c.Physics.MaxFuel = def.Physics.MaxFuel
	}
	if c.Physics.FuelDrain != "tick" {
		c.Physics.FuelDrain = "second"
	}
	if c.Physics.FuelPerSecond <= 0 {
		c.Physics.FuelPerSecond = def.Physics.FuelPerSecond
	}

	if c.Terrain.MaxHeightFraction <= 0 || c.Terrain.MaxHeightFraction > 1 {
		c.Terrain.MaxHeightFraction = def.Terrain.MaxHeightFraction
	}
	if c.Terrain.TopFraction < 0 || c.Terrain.TopFraction >= 1 {
		c.Terrain.TopFraction = def.Terrain.TopFraction
	}
	if c.Terrain.Roughness < 0 {
		c.Terrain.Roughness = def.Terrain.Roughness
	}
	if c.Terrain.SideMargin < 0 || c.Terrain.SideMargin >= 0.5 {
		c.Terrain.SideMargin = def.Terrain.SideMargin
	}
	if c.Terrain.BlendWindow < 0 {
		c.Terrain.BlendWindow = def.Terrain.BlendWindow
	}

	if c.Landing.Radius <= 0 {
		c.Landing.Radius = def.Landing.Radius
	}
	if c.Landing.MaxVerticalSpeed <= 0 {
		c.Landing.MaxVerticalSpeed = def.Landing.MaxVerticalSpeed
	}
	if c.Landing.MaxAngleDeg <= 0 || c.Landing.MaxAngleDeg >= 180 {
		c.Landing.MaxAngleDeg = def.Landing.MaxAngleDeg
	}

	if len(c.Levels) == 0 {
		c.Levels = def.Levels
	}
	for i := range c.Levels {
		if c.Levels[i].LandingZones < 0 {
			c.Levels[i].LandingZones = 0
		}
		if c.Levels[i].ZoneWidth <= 0 || c.Levels[i].ZoneWidth > 1 {
			c.Levels[i].ZoneWidth = 0.05
		}
	}

	if c.Session.StartLevel < 1 {
		c.Session.StartLevel = 1
	}
	if c.Session.StartLevel > len(c.Levels) {
		c.Session.StartLevel = len(c.Levels)
	}

	c.Controls.normalize(def.Controls)

	if c.Difficulty.Progression.Type == "" {
		c.Difficulty.Progression.Type = def.Difficulty.Progression.Type
	}
	c.Difficulty.InitialLevel = clampF(c.Difficulty.InitialLevel, 0, 1)
}

func (c *ControlsConfig) normalize(def ControlsConfig) {
	fill := func(keys *[]string, fallback []string) {
		if len(*keys) == 0 {
			*keys = fallback
		}
	}
	fill(&c.RotateLeft, def.RotateLeft)
	fill(&c.RotateRight, def.RotateRight)
	fill(&c.Thrust, def.Thrust)
	fill(&c.Restart, def.Restart)
	fill(&c.Pause, def.Pause)
	fill(&c.Back, def.Back)
	fill(&c.Quit, def.Quit)
	if c.HoldMS <= 0 {
		c.HoldMS = def.HoldMS
	}
}
