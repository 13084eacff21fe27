package sim

import "math"

// FuelDrain selects how thrust consumes fuel.
type FuelDrain int

const (
	// DrainPerSecond consumes FuelPerSecond units per simulated second of
	// thrust, independent of tick rate.
	DrainPerSecond FuelDrain = iota
	// DrainPerTick consumes exactly one unit per tick of thrust.
	DrainPerTick
)

// String returns the config name of the drain policy.
func (d FuelDrain) String() string {
	if d == DrainPerTick {
		return "tick"
	}
	return "second"
}

// PhysicsParams tunes lander integration.
type PhysicsParams struct {
	Gravity       float64 // Downward acceleration, units/s²
	Thrust        float64 // Engine acceleration along the nose, units/s²
	RotationSpeed float64 // Radians per second
	MaxFuel       int
	FuelDrain     FuelDrain
	FuelPerSecond float64 // Used with DrainPerSecond
}

// TerrainParams tunes terrain generation.
type TerrainParams struct {
	MaxHeightFraction float64 // Endpoint height band as a fraction of screen height
	TopFraction       float64 // Highest allowed terrain point (y) as a fraction of screen height
	Roughness         float64 // Depth-0 displacement stddev relative to max terrain height
	SideMargin        float64 // Fraction of width kept free of landing zones on each side
	BlendWindow       int     // Points blended on each side of a landing zone
}

// LandingParams are the touch-down safety thresholds.
type LandingParams struct {
	Radius           float64 // Collision circle radius
	MaxVerticalSpeed float64 // |vy| must be strictly below this
	MaxAngleDeg      float64 // Allowed deviation from upright
}

// LevelPolicy describes one level. Zero-valued overrides inherit the
// session defaults.
type LevelPolicy struct {
	LandingZones     int     // Number of safe zones
	ZoneWidth        int     // Safe zone width in terrain points
	GravityScale     float64 // Multiplier on PhysicsParams.Gravity (0 = 1)
	MaxVerticalSpeed float64 // Override for LandingParams.MaxVerticalSpeed (0 = inherit)
}

// Config is the complete simulation configuration.
type Config struct {
	Width            int // World width; one terrain point per unit column
	Height           int // World height
	Physics          PhysicsParams
	Terrain          TerrainParams
	Landing          LandingParams
	Levels           []LevelPolicy
	CountdownSeconds float64 // Pause between levels; <= 0 waits for a restart command
	StartLevel       int     // 1-based; 0 means 1
}

// DefaultConfig returns the reference tuning: two levels, 300 fuel,
// gravity 10, thrust 100, 30-unit collision radius.
func DefaultConfig() Config {
	return Config{
		Width:  960,
		Height: 540,
		Physics: PhysicsParams{
			Gravity:       10,
			Thrust:        100,
			RotationSpeed: 1.0,
			MaxFuel:       300,
			FuelDrain:     DrainPerSecond,
			FuelPerSecond: 60,
		},
		Terrain: TerrainParams{
			MaxHeightFraction: 1.0 / 3.0,
			TopFraction:       1.0 / 3.0,
			Roughness:         0.5,
			SideMargin:        0.15,
			BlendWindow:       20,
		},
		Landing: LandingParams{
			Radius:           30,
			MaxVerticalSpeed: 20,
			MaxAngleDeg:      5,
		},
		Levels: []LevelPolicy{
			{LandingZones: 2, ZoneWidth: 76},
			{LandingZones: 1, ZoneWidth: 48},
		},
		CountdownSeconds: 3,
		StartLevel:       1,
	}
}

// MaxLevel returns the terminal level number.
func (c Config) MaxLevel() int {
	if len(c.Levels) == 0 {
		return 1
	}
	return len(c.Levels)
}

// Level returns the policy for a 1-based level, clamped to the table.
func (c Config) Level(level int) LevelPolicy {
	if len(c.Levels) == 0 {
		return LevelPolicy{LandingZones: 1, ZoneWidth: max(c.Width/10, 2)}
	}
	idx := min(max(level, 1), len(c.Levels)) - 1
	return c.Levels[idx]
}

// PhysicsFor returns physics parameters with the level's overrides applied.
func (c Config) PhysicsFor(level int) PhysicsParams {
	p := c.Physics
	if scale := c.Level(level).GravityScale; scale > 0 {
		p.Gravity *= scale
	}
	return p
}

// LandingFor returns landing thresholds with the level's overrides applied.
func (c Config) LandingFor(level int) LandingParams {
	l := c.Landing
	if v := c.Level(level).MaxVerticalSpeed; v > 0 {
		l.MaxVerticalSpeed = v
	}
	return l
}

// NormalizeAngle wraps an angle in radians into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
