// Package sim implements the lander flight simulation: seeded randomness,
// terrain generation, lander physics, terrain collision, landing evaluation
// and the level/session state machine.
//
// The package is pure: no I/O, no global state, no wall clock. Every random
// draw goes through an explicit *RNG so a seed fully determines a session.
package sim

import (
	"math"
	"math/rand/v2"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// RNG is a seedable pseudo-random generator.
// Not safe for concurrent use; each session owns its own instance.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a generator seeded with seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Uniform returns a float in [0, 1).
func (g *RNG) Uniform() float64 {
	return g.r.Float64()
}

// Range returns a float in [min, max). Reversed bounds are swapped;
// equal bounds return min.
func (g *RNG) Range(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	return min + (max-min)*g.r.Float64()
}

// Intn returns an int in [0, n). Returns 0 when n <= 0.
func (g *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.r.IntN(n)
}

// Bool returns true or false with equal probability.
func (g *RNG) Bool() bool {
	return g.r.IntN(2) == 0
}

// Gaussian returns a normally distributed sample.
// A zero stddev yields exactly mean without consuming randomness.
func (g *RNG) Gaussian(mean, stddev float64) float64 {
	if stddev == 0 {
		return mean
	}
	return mean + stddev*g.r.NormFloat64()
}

// UnitCircle returns a unit vector with a uniformly random angle.
func (g *RNG) UnitCircle() core.Vec2 {
	angle := g.r.Float64() * 2 * math.Pi
	return core.V(math.Cos(angle), math.Sin(angle))
}
