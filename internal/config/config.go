// Package config provides YAML-based lander configuration loading and
// per-level difficulty management.
package config

// LanderConfig contains all configuration for the lander game.
type LanderConfig struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Landing    LandingConfig    `yaml:"landing"`
	Levels     []LevelConfig    `yaml:"levels"`
	Session    SessionConfig    `yaml:"session"`
	Controls   ControlsConfig   `yaml:"controls"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the logical simulation area. The renderer scales it
// to whatever terminal it gets.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig defines lander physics.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`
	Thrust        float64 `yaml:"thrust"`
	RotationSpeed float64 `yaml:"rotation_speed"` // Radians per second
	MaxFuel       int     `yaml:"max_fuel"`
	FuelDrain     string  `yaml:"fuel_drain"` // "second" or "tick"
	FuelPerSecond float64 `yaml:"fuel_per_second"`
}

// TerrainConfig defines terrain generation.
type TerrainConfig struct {
	MaxHeightFraction float64 `yaml:"max_height_fraction"`
	TopFraction       float64 `yaml:"top_fraction"`
	Roughness         float64 `yaml:"roughness"`
	SideMargin        float64 `yaml:"side_margin"`
	BlendWindow       int     `yaml:"blend_window"`
}

// LandingConfig defines touch-down thresholds.
type LandingConfig struct {
	Radius           float64 `yaml:"radius"`
	MaxVerticalSpeed float64 `yaml:"max_vertical_speed"`
	MaxAngleDeg      float64 `yaml:"max_angle_deg"`
}

// LevelConfig defines one level. ZoneWidth is a fraction of world width.
type LevelConfig struct {
	LandingZones int     `yaml:"landing_zones"`
	ZoneWidth    float64 `yaml:"zone_width"`
}

// SessionConfig defines level progression.
type SessionConfig struct {
	CountdownSeconds float64 `yaml:"countdown_seconds"` // <= 0 waits for Enter between levels
	StartLevel       int     `yaml:"start_level"`
}

// ControlsConfig maps logical commands to terminal key names as reported
// by Bubble Tea ("left", "up", "ctrl+c", ...). The space bar is " ".
type ControlsConfig struct {
	RotateLeft  []string `yaml:"rotate_left"`
	RotateRight []string `yaml:"rotate_right"`
	Thrust      []string `yaml:"thrust"`
	Restart     []string `yaml:"restart"`
	Pause       []string `yaml:"pause"`
	Back        []string `yaml:"back"`
	Quit        []string `yaml:"quit"`
	HoldMS      int      `yaml:"hold_ms"` // How long a flight key stays held after its last repeat
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases across levels.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Level at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	GravityMultiplier float64 `yaml:"gravity_multiplier"` // Added to gravity scale at max difficulty
	SpeedReduction    float64 `yaml:"speed_reduction"`    // Vertical speed limit reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name. The empty string is accepted and
// means "no preset".
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}
