package sim

import (
	"testing"

	"github.com/vovakirdan/tui-lander/internal/core"
)

func pt(x, y float64) core.Vec2 { return core.Vec2{X: x, Y: y} }

func genDefault(t *testing.T, seed uint64, level int) *Terrain {
	t.Helper()
	cfg := DefaultConfig()
	return GenerateTerrain(cfg.Width, cfg.Height, cfg.Terrain, cfg.Level(level), NewRNG(seed))
}

func TestGenerateTerrainShape(t *testing.T) {
	cfg := DefaultConfig()
	for seed := uint64(1); seed <= 20; seed++ {
		tr := genDefault(t, seed, 1)
		if len(tr.Points) != cfg.Width {
			t.Fatalf("seed %d: got %d points, want %d", seed, len(tr.Points), cfg.Width)
		}
		for i, p := range tr.Points {
			if p.X != float64(i) {
				t.Fatalf("seed %d: point %d has x=%v", seed, i, p.X)
			}
			if p.Y < tr.Top || p.Y > float64(cfg.Height) {
				t.Fatalf("seed %d: point %d y=%v outside [%v, %d]", seed, i, p.Y, tr.Top, cfg.Height)
			}
		}
	}
}

func TestGenerateTerrainZones(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		level     int
		wantZones int
		wantWidth int
	}{
		{1, 2, 76},
		{2, 1, 48},
	}

	for _, tt := range tests {
		for seed := uint64(1); seed <= 50; seed++ {
			tr := genDefault(t, seed, tt.level)
			if len(tr.Zones) != tt.wantZones {
				t.Fatalf("level %d seed %d: got %d zones, want %d", tt.level, seed, len(tr.Zones), tt.wantZones)
			}
			for zi, z := range tr.Zones {
				if z.Width() != tt.wantWidth {
					t.Errorf("level %d seed %d zone %d: width %d, want %d", tt.level, seed, zi, z.Width(), tt.wantWidth)
				}
				if z.Start < tr.Margin || z.End > cfg.Width-tr.Margin {
					t.Errorf("zone %v outside margins %d", z, tr.Margin)
				}
				for i := z.Start; i < z.End; i++ {
					if tr.Points[i].Y != z.Height {
						t.Fatalf("zone %v not flat at %d: %v", z, i, tr.Points[i].Y)
					}
				}
				if zi > 0 && tr.Zones[zi-1].End >= z.Start {
					t.Errorf("zones overlap or touch: %v %v", tr.Zones[zi-1], z)
				}
			}
		}
	}
}

func TestGenerateTerrainDeterministic(t *testing.T) {
	a := genDefault(t, 42, 1)
	b := genDefault(t, 42, 1)
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a.Points[i], b.Points[i])
		}
	}
	if len(a.Zones) != len(b.Zones) {
		t.Fatalf("zone count differs")
	}
	for i := range a.Zones {
		if a.Zones[i] != b.Zones[i] {
			t.Fatalf("zone %d differs: %v vs %v", i, a.Zones[i], b.Zones[i])
		}
	}

	c := genDefault(t, 43, 1)
	same := true
	for i := range a.Points {
		if a.Points[i] != c.Points[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical terrain")
	}
}

func TestGenerateTerrainBlend(t *testing.T) {
	cfg := DefaultConfig()
	tr := genDefault(t, 7, 2)
	z := tr.Zones[0]
	w := cfg.Terrain.BlendWindow

	// The ramp is linear, so consecutive steps inside the window are equal.
	a := z.Start - w
	step := tr.Points[a+1].Y - tr.Points[a].Y
	for i := a + 1; i < z.Start; i++ {
		d := tr.Points[i+1].Y - tr.Points[i].Y
		if diff := d - step; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("blend step at %d = %v, want %v", i, d, step)
		}
	}
}

func TestGenerateTerrainDegenerate(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name          string
		width, height int
		policy        LevelPolicy
	}{
		{"zero size", 0, 0, LevelPolicy{LandingZones: 2, ZoneWidth: 80}},
		{"narrow", 10, 20, LevelPolicy{LandingZones: 3, ZoneWidth: 80}},
		{"zones wider than world", 100, 100, LevelPolicy{LandingZones: 1, ZoneWidth: 500}},
		{"too many zones", 200, 100, LevelPolicy{LandingZones: 50, ZoneWidth: 20}},
		{"no zones", 200, 100, LevelPolicy{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := GenerateTerrain(tt.width, tt.height, cfg.Terrain, tt.policy, NewRNG(3))
			if len(tr.Points) < 2 {
				t.Fatalf("got %d points, want at least 2", len(tr.Points))
			}
			if len(tr.Zones) > max(tt.policy.LandingZones, 0) {
				t.Errorf("got %d zones, policy asked for %d", len(tr.Zones), tt.policy.LandingZones)
			}
			for zi, z := range tr.Zones {
				if z.Width() < 2 {
					t.Errorf("zone %d width %d", zi, z.Width())
				}
				if z.Start < 0 || z.End > tr.Width {
					t.Errorf("zone %v outside terrain", z)
				}
				if zi > 0 && tr.Zones[zi-1].End >= z.Start {
					t.Errorf("zones overlap: %v %v", tr.Zones[zi-1], z)
				}
			}
		})
	}
}

func TestTerrainHeightAt(t *testing.T) {
	tr := &Terrain{Height: 100}
	tr.Points = append(tr.Points, pt(0, 50), pt(1, 60), pt(2, 80))

	tests := []struct {
		x    float64
		want float64
	}{
		{-5, 50},
		{0, 50},
		{0.5, 55},
		{1.5, 70},
		{2, 80},
		{10, 80},
	}
	for _, tt := range tests {
		if got := tr.HeightAt(tt.x); got != tt.want {
			t.Errorf("HeightAt(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestSafeZoneContains(t *testing.T) {
	z := SafeZone{Start: 10, End: 20}
	tests := []struct {
		x     float64
		want  bool
		spans bool
	}{
		{9.99, false, false},
		{10, true, true},
		{19.5, true, true},
		{20, false, true},
		{20.01, false, false},
	}
	for _, tt := range tests {
		if got := z.Contains(tt.x); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.x, got, tt.want)
		}
		if got := z.Spans(tt.x); got != tt.spans {
			t.Errorf("Spans(%v) = %v, want %v", tt.x, got, tt.spans)
		}
	}
}
