package config

import (
	_ "embed"
)

//go:embed defaults/lander.yaml
var defaultLanderYAML []byte

// DefaultLanderConfig returns the built-in lander configuration. It matches
// defaults/lander.yaml and is the last fallback when nothing else parses.
func DefaultLanderConfig() LanderConfig {
	return LanderConfig{
		World: WorldConfig{
			Width:  960,
			Height: 540,
		},
		Physics: PhysicsConfig{
			Gravity:       10,
			Thrust:        100,
			RotationSpeed: 1.0,
			MaxFuel:       300,
			FuelDrain:     "second",
			FuelPerSecond: 60,
		},
		Terrain: TerrainConfig{
			MaxHeightFraction: 1.0 / 3.0,
			TopFraction:       1.0 / 3.0,
			Roughness:         0.5,
			SideMargin:        0.15,
			BlendWindow:       20,
		},
		Landing: LandingConfig{
			Radius:           30,
			MaxVerticalSpeed: 20,
			MaxAngleDeg:      5,
		},
		Levels: []LevelConfig{
			{LandingZones: 2, ZoneWidth: 0.08},
			{LandingZones: 1, ZoneWidth: 0.05},
		},
		Session: SessionConfig{
			CountdownSeconds: 3,
			StartLevel:       1,
		},
		Controls: DefaultControls(),
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 5,
			},
			Scaling: ScalingConfig{
				GravityMultiplier: 0.6,
				SpeedReduction:    8,
			},
		},
	}
}

// DefaultControls returns the default key bindings.
func DefaultControls() ControlsConfig {
	return ControlsConfig{
		RotateLeft:  []string{"left", "a"},
		RotateRight: []string{"right", "d"},
		Thrust:      []string{"up", "w", " "},
		Restart:     []string{"enter", "r"},
		Pause:       []string{"p"},
		Back:        []string{"esc"},
		Quit:        []string{"q", "ctrl+c"},
		HoldMS:      120,
	}
}
