package config

import "math"

// minLandingSpeed is the floor for the scaled vertical speed limit.
const minLandingSpeed = 5

// DifficultyManager turns a DifficultyConfig into per-level tuning. The
// difficulty of a level is a number in [0, 1]: it starts at InitialLevel
// and, with "level" progression, climbs linearly to 1 at Progression.MaxAt.
type DifficultyManager struct {
	cfg     DifficultyConfig
	initial float64
}

func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, initial: clampF(cfg.InitialLevel, 0, 1)}
}

func (d *DifficultyManager) IsEnabled() bool { return d.cfg.Enabled }

// Level is the difficulty of 1-based level n. It is 0 while scaling is off.
func (d *DifficultyManager) Level(n int) float64 {
	switch {
	case !d.cfg.Enabled:
		return 0
	case d.cfg.Progression.Type != "level":
		return d.initial
	}
	span := max(float64(d.cfg.Progression.MaxAt-1), 1)
	t := clampF(float64(n-1)/span, 0, 1)
	return d.initial + t*(1-d.initial)
}

// GravityScale multiplies gravity on level n: 1 at difficulty 0, up to
// 1+GravityMultiplier at difficulty 1.
func (d *DifficultyManager) GravityScale(n int) float64 {
	return 1 + d.Level(n)*d.cfg.Scaling.GravityMultiplier
}

// MaxVerticalSpeed lowers the base landing speed limit on level n, never
// below minLandingSpeed.
func (d *DifficultyManager) MaxVerticalSpeed(base float64, n int) float64 {
	return math.Max(base-d.Level(n)*d.cfg.Scaling.SpeedReduction, minLandingSpeed)
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
