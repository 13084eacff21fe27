package sim

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Controls is the held state of the flight controls for one step.
type Controls struct {
	RotateLeft  bool
	RotateRight bool
	Thrust      bool
}

// Lander is the player craft.
type Lander struct {
	Position core.Vec2
	Velocity core.Vec2
	Rotation float64 // Radians in [0, 2π); 0 is upright
	Fuel     int

	burn float64 // Fractional fuel owed under DrainPerSecond
}

// AngleDeg returns the rotation in degrees, [0, 360).
func (l Lander) AngleDeg() float64 {
	return Degrees(l.Rotation)
}

// Heading returns the unit vector the nose points along. Upright (rotation 0)
// points towards -y, which is up on screen.
func Heading(rotation float64) core.Vec2 {
	return core.V(math.Sin(rotation), -math.Cos(rotation))
}

// SpawnLander places a fresh lander in the upper band of the world: x in
// [w/6, 5w/6), y in [0, h/5), turned sideways with zero velocity.
func SpawnLander(width, height, fuel int, rng *RNG) Lander {
	w, h := float64(width), float64(height)
	rot := math.Pi / 2
	if rng.Bool() {
		rot = 3 * math.Pi / 2
	}
	return Lander{
		Position: core.V(rng.Range(w/6, 5*w/6), rng.Range(0, h/5)),
		Rotation: rot,
		Fuel:     fuel,
	}
}

// Physics integrates lander motion with semi-implicit Euler.
type Physics struct {
	PhysicsParams
}

// NewPhysics creates an integrator for the given parameters.
func NewPhysics(p PhysicsParams) Physics {
	return Physics{PhysicsParams: p}
}

// Step advances l by dt seconds under c and reports whether the engine
// fired. Controls apply first, then gravity, then position. A non-positive
// dt leaves the lander untouched.
func (p Physics) Step(l *Lander, c Controls, dt float64) bool {
	if dt <= 0 {
		return false
	}

	if c.RotateLeft {
		l.Rotation -= p.RotationSpeed * dt
	}
	if c.RotateRight {
		l.Rotation += p.RotationSpeed * dt
	}
	l.Rotation = NormalizeAngle(l.Rotation)

	fired := false
	if c.Thrust && l.Fuel > 0 {
		fired = true
		l.Velocity = l.Velocity.Add(Heading(l.Rotation).Scale(p.Thrust * dt))
		p.burnFuel(l, dt)
	}

	l.Velocity.Y += p.Gravity * dt
	l.Position = l.Position.Add(l.Velocity.Scale(dt))
	return fired
}

func (p Physics) burnFuel(l *Lander, dt float64) {
	if p.FuelDrain == DrainPerTick {
		l.Fuel--
		return
	}
	l.burn += p.FuelPerSecond * dt
	for l.burn >= 1 && l.Fuel > 0 {
		l.Fuel--
		l.burn--
	}
	if l.Fuel == 0 {
		l.burn = 0
	}
}
