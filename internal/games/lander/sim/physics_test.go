package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/core"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestPhysicsGravity(t *testing.T) {
	p := NewPhysics(DefaultConfig().Physics)
	l := Lander{Position: core.V(100, 100), Fuel: 10}

	p.Step(&l, Controls{}, 0.5)

	if !near(l.Velocity.Y, 5) {
		t.Errorf("vy = %v, want 5", l.Velocity.Y)
	}
	// Semi-implicit: position uses the updated velocity.
	if !near(l.Position.Y, 102.5) {
		t.Errorf("y = %v, want 102.5", l.Position.Y)
	}
	if l.Position.X != 100 || l.Velocity.X != 0 {
		t.Errorf("horizontal motion without input: %+v", l)
	}
	if l.Fuel != 10 {
		t.Errorf("fuel changed without thrust: %d", l.Fuel)
	}
}

func TestPhysicsThrustUpright(t *testing.T) {
	p := NewPhysics(DefaultConfig().Physics)
	l := Lander{Fuel: 300}

	fired := p.Step(&l, Controls{Thrust: true}, 0.1)

	if !fired {
		t.Fatal("engine did not fire")
	}
	// -100*0.1 from thrust, +10*0.1 from gravity.
	if !near(l.Velocity.Y, -9) {
		t.Errorf("vy = %v, want -9", l.Velocity.Y)
	}
	if !near(l.Velocity.X, 0) {
		t.Errorf("vx = %v, want 0", l.Velocity.X)
	}
}

func TestPhysicsThrustSideways(t *testing.T) {
	p := NewPhysics(DefaultConfig().Physics)
	l := Lander{Rotation: math.Pi / 2, Fuel: 300}

	p.Step(&l, Controls{Thrust: true}, 0.1)

	if !near(l.Velocity.X, 10) {
		t.Errorf("vx = %v, want 10", l.Velocity.X)
	}
}

func TestPhysicsRotation(t *testing.T) {
	p := NewPhysics(DefaultConfig().Physics)

	tests := []struct {
		name  string
		start float64
		c     Controls
		dt    float64
		want  float64
	}{
		{"right", 0, Controls{RotateRight: true}, 0.5, 0.5},
		{"left wraps", 0, Controls{RotateLeft: true}, 0.5, 2*math.Pi - 0.5},
		{"both cancel", 1, Controls{RotateLeft: true, RotateRight: true}, 0.5, 1},
		{"right wraps", 2*math.Pi - 0.25, Controls{RotateRight: true}, 0.5, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Lander{Rotation: tt.start}
			p.Step(&l, tt.c, tt.dt)
			if !near(l.Rotation, tt.want) {
				t.Errorf("rotation = %v, want %v", l.Rotation, tt.want)
			}
			if l.Rotation < 0 || l.Rotation >= 2*math.Pi {
				t.Errorf("rotation %v outside [0, 2π)", l.Rotation)
			}
		})
	}
}

func TestPhysicsFuelPerTick(t *testing.T) {
	params := DefaultConfig().Physics
	params.FuelDrain = DrainPerTick
	p := NewPhysics(params)
	l := Lander{Fuel: 2}

	for i := 0; i < 5; i++ {
		p.Step(&l, Controls{Thrust: true}, 1.0/60)
	}
	if l.Fuel != 0 {
		t.Errorf("fuel = %d, want 0", l.Fuel)
	}
	if p.Step(&l, Controls{Thrust: true}, 1.0/60) {
		t.Error("engine fired with empty tank")
	}
}

func TestPhysicsFuelPerSecond(t *testing.T) {
	p := NewPhysics(DefaultConfig().Physics)

	// Same simulated second at two tick rates drains the same fuel.
	for _, hz := range []int{30, 60, 120} {
		l := Lander{Fuel: 300}
		for i := 0; i < hz; i++ {
			p.Step(&l, Controls{Thrust: true}, 1/float64(hz))
		}
		if l.Fuel < 239 || l.Fuel > 241 {
			t.Errorf("%d Hz: fuel = %d, want about 240", hz, l.Fuel)
		}
	}
}

func TestPhysicsEmptyTankNoThrust(t *testing.T) {
	p := NewPhysics(DefaultConfig().Physics)
	l := Lander{Fuel: 0}

	p.Step(&l, Controls{Thrust: true}, 0.1)

	if !near(l.Velocity.Y, 1) {
		t.Errorf("vy = %v, want gravity only (1)", l.Velocity.Y)
	}
	if l.Fuel != 0 {
		t.Errorf("fuel went negative: %d", l.Fuel)
	}
}

func TestPhysicsZeroDt(t *testing.T) {
	p := NewPhysics(DefaultConfig().Physics)
	l := Lander{Position: core.V(5, 5), Velocity: core.V(1, 1), Fuel: 3}
	before := l

	p.Step(&l, Controls{Thrust: true, RotateLeft: true}, 0)

	if l != before {
		t.Errorf("zero dt changed lander: %+v -> %+v", before, l)
	}
}

func TestSpawnLander(t *testing.T) {
	rng := NewRNG(9)
	for i := 0; i < 200; i++ {
		l := SpawnLander(960, 540, 300, rng)
		if l.Position.X < 160 || l.Position.X >= 800 {
			t.Fatalf("x = %v outside [160, 800)", l.Position.X)
		}
		if l.Position.Y < 0 || l.Position.Y >= 108 {
			t.Fatalf("y = %v outside [0, 108)", l.Position.Y)
		}
		if l.Rotation != math.Pi/2 && l.Rotation != 3*math.Pi/2 {
			t.Fatalf("rotation = %v", l.Rotation)
		}
		if l.Velocity != (core.Vec2{}) || l.Fuel != 300 {
			t.Fatalf("bad spawn: %+v", l)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{2 * math.Pi, 0},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); !near(got, tt.want) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
