package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/core"
)

func TestIntersects(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 core.Vec2
		c      core.Vec2
		r      float64
		want   bool
	}{
		{"crosses midpoint", pt(0, 0), pt(10, 0), pt(5, 3), 5, true},
		{"far above", pt(0, 0), pt(10, 0), pt(5, 10), 5, false},
		{"tangent", pt(0, 0), pt(10, 0), pt(5, 5), 5, true},
		{"beyond segment end", pt(0, 0), pt(10, 0), pt(20, 0), 5, false},
		{"touches endpoint", pt(0, 0), pt(10, 0), pt(13, 4), 5, true},
		{"segment inside circle", pt(4, 0), pt(6, 0), pt(5, 0), 5, true},
		{"degenerate inside", pt(1, 1), pt(1, 1), pt(0, 0), 5, true},
		{"degenerate outside", pt(10, 10), pt(10, 10), pt(0, 0), 5, false},
		{"line hits, segment does not", pt(0, 0), pt(1, 0), pt(5, 0), 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(tt.p1, tt.p2, tt.c, tt.r); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClosestPoint(t *testing.T) {
	tests := []struct {
		p1, p2, c, want core.Vec2
	}{
		{pt(0, 0), pt(10, 0), pt(5, 3), pt(5, 0)},
		{pt(0, 0), pt(10, 0), pt(-4, 3), pt(0, 0)},
		{pt(0, 0), pt(10, 0), pt(14, -2), pt(10, 0)},
		{pt(2, 2), pt(2, 2), pt(9, 9), pt(2, 2)},
	}
	for _, tt := range tests {
		if got := ClosestPoint(tt.p1, tt.p2, tt.c); got != tt.want {
			t.Errorf("ClosestPoint(%v, %v, %v) = %v, want %v", tt.p1, tt.p2, tt.c, got, tt.want)
		}
	}
}

// flatTerrain is 100 points wide at y=80 with one zone [40, 60).
func flatTerrain() *Terrain {
	tr := &Terrain{Width: 100, Height: 100}
	for i := 0; i < 100; i++ {
		tr.Points = append(tr.Points, pt(float64(i), 80))
	}
	tr.Zones = []SafeZone{{Start: 40, End: 60, Height: 80}}
	return tr
}

func TestCollideNearest(t *testing.T) {
	tr := flatTerrain()
	// A spike at 20 is closer to a circle centred above it.
	tr.Points[20].Y = 60

	c, ok := tr.Collide(pt(20, 50), 15)
	if !ok {
		t.Fatal("no contact")
	}
	if c.Point.X != 20 || c.Point.Y != 60 {
		t.Errorf("contact point = %v, want (20, 60)", c.Point)
	}
	if !near(c.Distance, 10) {
		t.Errorf("distance = %v, want 10", c.Distance)
	}

	if _, ok := tr.Collide(pt(50, 40), 15); ok {
		t.Error("unexpected contact high above terrain")
	}
}

func TestDetectSweep(t *testing.T) {
	tr := flatTerrain()

	// One tick jumps clean through the ground; the sweep still catches it.
	c, ok := Detect(tr, pt(50, 10), pt(50, 200), 5)
	if !ok {
		t.Fatal("tunnelled through terrain")
	}
	if c.Position.Y > 80 {
		t.Errorf("contact centre y = %v, want above the ground line", c.Position.Y)
	}
	if math.Abs(c.Point.Y-80) > eps {
		t.Errorf("contact point y = %v, want 80", c.Point.Y)
	}

	if _, ok := Detect(tr, pt(50, 10), pt(50, 20), 5); ok {
		t.Error("contact reported in open air")
	}
}

func TestDetectHugeStep(t *testing.T) {
	tr := flatTerrain()

	c, ok := Detect(tr, pt(50, 10), pt(50, 1e12), 5)
	if !ok {
		t.Fatal("tunnelled through terrain")
	}
	if c.Position.Y > 80 || c.Position.Y < 70 {
		t.Errorf("contact centre y = %v, want just above the ground line", c.Position.Y)
	}

	if _, ok := Detect(tr, pt(-1e12, 0), pt(1e12, 0), 5); ok {
		t.Error("contact reported for a pass high above the terrain")
	}
	if _, ok := Detect(tr, pt(500, 10), pt(500, 1e12), 5); ok {
		t.Error("contact reported beside the terrain")
	}
}

func TestEvaluateLanding(t *testing.T) {
	tr := flatTerrain()
	p := DefaultConfig().Landing

	tests := []struct {
		name   string
		lander Lander
		want   bool
		reason string
	}{
		{"gentle upright in zone", Lander{Position: pt(50, 50), Velocity: pt(0, -5)}, true, ""},
		{"too fast", Lander{Position: pt(50, 50), Velocity: pt(0, -25)}, false, "descent too fast"},
		{"fast downward", Lander{Position: pt(50, 50), Velocity: pt(0, 20)}, false, "descent too fast"},
		{"horizontal speed ignored", Lander{Position: pt(50, 50), Velocity: pt(40, 5)}, true, ""},
		{"outside zone", Lander{Position: pt(20, 50), Velocity: pt(0, 5)}, false, "missed the landing zone"},
		{"zone start edge", Lander{Position: pt(40, 50), Velocity: pt(0, 5)}, true, ""},
		{"zone end edge", Lander{Position: pt(60, 50), Velocity: pt(0, 5)}, true, ""},
		{"just past zone end", Lander{Position: pt(60.5, 50), Velocity: pt(0, 5)}, false, "missed the landing zone"},
		{"tilted", Lander{Position: pt(50, 50), Velocity: pt(0, 5), Rotation: 0.2}, false, "not upright"},
		{"slight left tilt", Lander{Position: pt(50, 50), Velocity: pt(0, 5), Rotation: 2*math.Pi - 0.05}, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(tt.lander, tr, p)
			if v.Safe() != tt.want {
				t.Errorf("Safe() = %v, want %v (%+v)", v.Safe(), tt.want, v)
			}
			if v.Reason() != tt.reason {
				t.Errorf("Reason() = %q, want %q", v.Reason(), tt.reason)
			}
		})
	}
}

// A ramp beside the pad can stand higher than the pad itself, so an
// upright lander centred just inside the edge may touch the ramp first.
func TestEvaluateZoneEdgeOnGeneratedTerrain(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.Landing

	for level := 1; level <= cfg.MaxLevel(); level++ {
		for seed := uint64(1); seed <= 300; seed++ {
			tr := GenerateTerrain(cfg.Width, cfg.Height, cfg.Terrain, cfg.Level(level), NewRNG(seed))
			for _, z := range tr.Zones {
				x := float64(z.Start + 4)
				c, ok := Detect(tr, pt(x, 0), pt(x, float64(cfg.Height)+p.Radius), p.Radius)
				if !ok {
					t.Fatalf("level %d seed %d: no contact descending at x=%v", level, seed, x)
				}
				l := Lander{Position: c.Position, Velocity: pt(0, 5)}
				if v := Evaluate(l, tr, p); !v.Safe() {
					t.Errorf("level %d seed %d zone %+v: %s (contact %+v)", level, seed, z, v.Reason(), c.Point)
				}
			}
		}
	}
}

func TestUpright(t *testing.T) {
	tests := []struct {
		deg  float64
		want bool
	}{
		{0, true},
		{4.99, true},
		{5.5, false},
		{180, false},
		{354.5, false},
		{355.01, true},
		{359.9, true},
	}
	for _, tt := range tests {
		rad := tt.deg * math.Pi / 180
		if got := Upright(rad, 5); got != tt.want {
			t.Errorf("Upright(%v°) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}
