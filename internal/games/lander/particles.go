package lander

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander/sim"
)

// ParticleKind selects glyph and palette.
type ParticleKind uint8

const (
	ParticleExhaust ParticleKind = iota
	ParticleDebris
)

// Particle is one cosmetic spark in world units.
type Particle struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Life    float64 // Seconds remaining
	MaxLife float64
	Color   core.Color
	Kind    ParticleKind
}

const (
	maxParticles   = 600
	exhaustPerStep = 4
	crashParticles = 200

	exhaustSpeed    = 120.0 // units/s
	exhaustSpeedDev = 30.0
	exhaustLife     = 0.35 // seconds
	exhaustLifeDev  = 0.1
	exhaustSpread   = 10 * math.Pi / 180

	debrisSpeed    = 90.0
	debrisSpeedDev = 40.0
	debrisLife     = 1.2
	debrisLifeDev  = 0.4
)

var fireColors = []core.Color{core.ColorRed, core.ColorOrange, core.ColorYellow}

// ParticleSystem holds render-only effects. It draws from its own RNG so
// effects never disturb the simulation's random sequence.
type ParticleSystem struct {
	Max    int
	P      []Particle
	rng    *sim.RNG
	ovrIdx int // circular overwrite index when full
}

// NewParticleSystem creates an empty system.
func NewParticleSystem(maxCount int, seed uint64) *ParticleSystem {
	if maxCount <= 0 {
		maxCount = maxParticles
	}
	return &ParticleSystem{
		Max: maxCount,
		P:   make([]Particle, 0, maxCount),
		rng: sim.NewRNG(seed),
	}
}

// Clear removes every particle.
func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

// Add appends p, overwriting the oldest slots once full.
func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// Thrust emits exhaust from the lander's tail, opposite the heading.
func (ps *ParticleSystem) Thrust(l sim.Lander, radius float64) {
	back := sim.Heading(l.Rotation).Scale(-1)
	nozzle := l.Position.Add(back.Scale(radius / 2))
	for range exhaustPerStep {
		dir := rotate(back, ps.rng.Range(-exhaustSpread/2, exhaustSpread/2))
		speed := math.Max(ps.rng.Gaussian(exhaustSpeed, exhaustSpeedDev), 10)
		life := math.Max(ps.rng.Gaussian(exhaustLife, exhaustLifeDev), 0.05)
		ps.Add(Particle{
			Pos:     nozzle,
			Vel:     l.Velocity.Add(dir.Scale(speed)),
			Life:    life,
			MaxLife: life,
			Color:   fireColors[ps.rng.Intn(len(fireColors))],
			Kind:    ParticleExhaust,
		})
	}
}

// Crash emits an explosion burst at pos.
func (ps *ParticleSystem) Crash(pos core.Vec2) {
	for range crashParticles {
		speed := math.Max(ps.rng.Gaussian(debrisSpeed, debrisSpeedDev), 5)
		life := math.Max(ps.rng.Gaussian(debrisLife, debrisLifeDev), 0.1)
		ps.Add(Particle{
			Pos:     pos,
			Vel:     ps.rng.UnitCircle().Scale(speed),
			Life:    life,
			MaxLife: life,
			Color:   fireColors[ps.rng.Intn(len(fireColors))],
			Kind:    ParticleDebris,
		})
	}
}

// Update ages and moves particles, dropping the expired ones.
func (ps *ParticleSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	alive := ps.P[:0]
	for _, p := range ps.P {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		alive = append(alive, p)
	}
	ps.P = alive
	if ps.ovrIdx > len(ps.P) {
		ps.ovrIdx = 0
	}
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int { return len(ps.P) }

func rotate(v core.Vec2, a float64) core.Vec2 {
	s, c := math.Sincos(a)
	return core.V(v.X*c-v.Y*s, v.X*s+v.Y*c)
}

// glyph picks a character that fades with age.
func (p Particle) glyph() rune {
	frac := p.Life / p.MaxLife
	switch {
	case p.Kind == ParticleDebris && frac > 0.6:
		return '*'
	case frac > 0.5:
		return '+'
	case frac > 0.2:
		return '.'
	default:
		return '·'
	}
}
