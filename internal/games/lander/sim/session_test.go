package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/core"
)

const dt = 1.0 / 60

// flatLevel swaps in level ground at height y with one wide zone centred
// on the world.
func flatLevel(s *Session, y float64) SafeZone {
	w := s.cfg.Width
	tr := &Terrain{Width: w, Height: s.cfg.Height, Points: make([]core.Vec2, w)}
	for i := range tr.Points {
		tr.Points[i] = core.V(float64(i), y)
	}
	z := SafeZone{Start: w/2 - 50, End: w/2 + 50, Height: y}
	tr.Zones = []SafeZone{z}
	s.terrain = tr
	return z
}

// hover puts the lander just above the zone centre, upright, falling at vy.
func hover(s *Session, z SafeZone, vy float64, fuel int) {
	s.lander = Lander{
		Position: core.V(float64(z.Start+z.End)/2, z.Height-s.landing.Radius-0.05),
		Velocity: core.V(0, vy),
		Fuel:     fuel,
	}
}

func TestNewSession(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(cfg, 1)

	if s.Level() != 1 || s.State() != StatePlaying {
		t.Fatalf("level %d state %s, want 1 playing", s.Level(), s.State())
	}
	if s.Lander().Fuel != cfg.Physics.MaxFuel {
		t.Errorf("fuel = %d, want %d", s.Lander().Fuel, cfg.Physics.MaxFuel)
	}
	if len(s.Terrain().Zones) != 2 {
		t.Errorf("zones = %d, want 2", len(s.Terrain().Zones))
	}
	if score, final := s.Score(); score != 0 || final {
		t.Errorf("Score() = %d, %v", score, final)
	}
}

func TestSessionFreeFallCrashes(t *testing.T) {
	s := NewSession(DefaultConfig(), 5)

	var res StepResult
	for i := 0; i < 60*60; i++ {
		res = s.Step(dt, Input{})
		if res.Event != core.EventNone {
			break
		}
	}
	if res.Event != core.EventCrash {
		t.Fatalf("event = %v, want crash", res.Event)
	}
	if res.State != StateGameOver || res.Success {
		t.Errorf("state %s success %v, want game_over false", res.State, res.Success)
	}
	if !s.Crashed() {
		t.Error("Crashed() = false")
	}

	// Nothing moves once the level is over.
	before := s.Lander()
	s.Step(dt, Input{Controls: Controls{Thrust: true}})
	if s.Lander() != before {
		t.Error("lander moved after game over")
	}
}

func TestSessionOffScreenCrashes(t *testing.T) {
	s := NewSession(DefaultConfig(), 2)
	flatLevel(s, 1e6)
	s.lander = Lander{Position: core.V(100, float64(s.cfg.Height)-1), Velocity: core.V(0, 100)}

	res := s.Step(dt, Input{})
	if res.Event != core.EventCrash || res.State != StateGameOver {
		t.Fatalf("event %v state %s, want crash game_over", res.Event, res.State)
	}
}

func TestSessionHugeStep(t *testing.T) {
	s := NewSession(DefaultConfig(), 9)

	res := s.Step(1e6, Input{})
	if res.Event != core.EventCrash {
		t.Fatalf("event = %v, want crash", res.Event)
	}
	if y := s.Lander().Position.Y; y > float64(s.Config().Height) {
		t.Errorf("lander y = %v, want stopped at the terrain", y)
	}
}

// pilot steers towards the nearest zone while cruising above the highest
// terrain, then descends upright once it hangs over the zone centre.
type pilot struct {
	descending bool
}

func (p *pilot) controls(l Lander, tr *Terrain, radius float64) Controls {
	mid := func(z SafeZone) float64 { return float64(z.Start+z.End) / 2 }
	z := tr.Zones[0]
	for _, c := range tr.Zones[1:] {
		if math.Abs(mid(c)-l.Position.X) < math.Abs(mid(z)-l.Position.X) {
			z = c
		}
	}
	dx := mid(z) - l.Position.X
	cruise := tr.Top - radius - 40
	touch := z.Height - radius
	if math.Abs(dx) < 6 && math.Abs(l.Velocity.X) < 2 {
		p.descending = true
	}

	limit := 0.6
	vy := core.ClampF(0.5*(cruise-l.Position.Y), -10, 10)
	if p.descending {
		limit = 0.15
		if touch-l.Position.Y < 80 {
			limit = 0.04
		}
		vy = core.ClampF(0.5*(touch-l.Position.Y), 12, 50)
	}
	tilt := core.ClampF(0.08*(core.ClampF(0.4*dx, -40, 40)-l.Velocity.X), -limit, limit)

	rot := l.Rotation
	if rot > math.Pi {
		rot -= 2 * math.Pi
	}
	return Controls{
		RotateLeft:  rot > tilt+0.01,
		RotateRight: rot < tilt-0.01,
		Thrust:      l.Velocity.Y > vy && math.Cos(rot) > 0.5,
	}
}

func TestSessionFlownLanding(t *testing.T) {
	cfg := DefaultConfig()
	for _, seed := range []uint64{1, 7, 42, 1234, 99991} {
		s := NewSession(cfg, seed)
		var p pilot
		var res StepResult
		for i := 0; i < 120*60 && res.Event == core.EventNone; i++ {
			c := p.controls(s.Lander(), s.Terrain(), s.Landing().Radius)
			res = s.Step(dt, Input{Controls: c})
		}
		if res.Event != core.EventSafeLanding {
			t.Fatalf("seed %d: event = %v (%s), lander %+v", seed, res.Event, s.Verdict().Reason(), s.Lander())
		}
		if score, _ := s.Score(); score != s.Lander().Fuel || score <= 0 {
			t.Errorf("seed %d: score %d fuel %d", seed, score, s.Lander().Fuel)
		}

		for s.State() == StateCountdown {
			res = s.Step(dt, Input{})
		}
		if res.Event != core.EventLevelAdvance || s.Level() != 2 {
			t.Fatalf("seed %d: event %v level %d, want level advance to 2", seed, res.Event, s.Level())
		}
	}
}

func TestSessionUnsafeLanding(t *testing.T) {
	tests := []struct {
		name     string
		vy       float64
		rotation float64
		reason   string
	}{
		{"too fast", 25, 0, "descent too fast"},
		{"tilted", 5, 0.5, "not upright"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(DefaultConfig(), 3)
			z := flatLevel(s, 400)
			hover(s, z, tt.vy, 200)
			s.lander.Rotation = tt.rotation

			res := s.Step(dt, Input{})
			if res.Event != core.EventCrash {
				t.Fatalf("event = %v, want crash", res.Event)
			}
			if got := s.Verdict().Reason(); got != tt.reason {
				t.Errorf("reason = %q, want %q", got, tt.reason)
			}
		})
	}
}

func TestSessionLandingAdvancesLevel(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(cfg, 11)
	z := flatLevel(s, 400)
	hover(s, z, 5, 250)

	res := s.Step(dt, Input{})
	if res.Event != core.EventSafeLanding {
		t.Fatalf("event = %v, want safe landing", res.Event)
	}
	if res.State != StateCountdown {
		t.Fatalf("state = %s, want countdown", res.State)
	}
	if score, final := s.Score(); score != 250 || final {
		t.Errorf("Score() = %d, %v, want 250, false", score, final)
	}

	// Frozen during the countdown.
	landed := s.Lander()
	res = s.Step(1, Input{Controls: Controls{Thrust: true}})
	if res.Event != core.EventNone || s.Lander() != landed {
		t.Fatalf("countdown step: event %v lander %+v", res.Event, s.Lander())
	}
	s.Step(1, Input{})
	res = s.Step(1, Input{})

	if res.Event != core.EventLevelAdvance {
		t.Fatalf("event = %v, want level advance", res.Event)
	}
	if s.Level() != 2 || res.State != StatePlaying {
		t.Errorf("level %d state %s, want 2 playing", s.Level(), res.State)
	}
	if res.Lander.Fuel != cfg.Physics.MaxFuel {
		t.Errorf("fuel = %d, want %d", res.Lander.Fuel, cfg.Physics.MaxFuel)
	}
	if len(s.Terrain().Zones) != 1 {
		t.Errorf("level 2 zones = %d, want 1", len(s.Terrain().Zones))
	}
}

func TestSessionVictory(t *testing.T) {
	s := NewSession(DefaultConfig(), 4)
	z := flatLevel(s, 400)
	hover(s, z, 5, 250)
	s.Step(dt, Input{})
	for s.State() == StateCountdown {
		s.Step(0.5, Input{})
	}

	z = flatLevel(s, 300)
	hover(s, z, 5, 100)
	res := s.Step(dt, Input{})

	if res.Event != core.EventVictory || res.State != StateVictory {
		t.Fatalf("event %v state %s, want victory", res.Event, res.State)
	}
	score, final := s.Score()
	if score != 350 || !final {
		t.Errorf("Score() = %d, %v, want 350, true", score, final)
	}
	if got := s.Landings(); len(got) != 2 || got[0] != 250 || got[1] != 100 {
		t.Errorf("Landings() = %v", got)
	}
}

func TestSessionRestart(t *testing.T) {
	s := NewSession(DefaultConfig(), 8)
	z := flatLevel(s, 400)
	hover(s, z, 5, 250)
	s.Step(dt, Input{})
	for s.State() == StateCountdown {
		s.Step(0.5, Input{})
	}
	z = flatLevel(s, 400)
	hover(s, z, 50, 100)
	s.Step(dt, Input{})
	if s.State() != StateGameOver {
		t.Fatalf("state = %s, want game_over", s.State())
	}

	res := s.Step(dt, Input{Restart: true})
	if res.State != StatePlaying || s.Level() != 1 {
		t.Fatalf("after restart: state %s level %d", res.State, s.Level())
	}
	if score, _ := s.Score(); score != 0 {
		t.Errorf("score = %d after restart", score)
	}
}

func TestSessionNoCountdownContinue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CountdownSeconds = 0
	s := NewSession(cfg, 6)
	z := flatLevel(s, 400)
	hover(s, z, 5, 250)

	res := s.Step(dt, Input{})
	if res.Event != core.EventSafeLanding || res.State != StateGameOver || !res.Success {
		t.Fatalf("event %v state %s success %v", res.Event, res.State, res.Success)
	}
	if _, final := s.Score(); final {
		t.Error("score final before victory")
	}

	// Waits for an explicit continue.
	s.Step(5, Input{})
	if s.State() != StateGameOver {
		t.Fatalf("state = %s, want game_over", s.State())
	}

	res = s.Step(dt, Input{Restart: true})
	if res.Event != core.EventLevelAdvance || s.Level() != 2 {
		t.Fatalf("event %v level %d, want level advance to 2", res.Event, s.Level())
	}
	if score, _ := s.Score(); score != 250 {
		t.Errorf("score = %d, want 250 kept", score)
	}
}

func TestSessionQuit(t *testing.T) {
	s := NewSession(DefaultConfig(), 1)

	res := s.Step(dt, Input{Quit: true})
	if res.State != StateExited {
		t.Fatalf("state = %s, want exited", res.State)
	}
	res = s.Step(dt, Input{Restart: true})
	if res.State != StateExited {
		t.Errorf("restart left exited state: %s", res.State)
	}
}

func TestSessionStartLevel(t *testing.T) {
	s := NewSession(DefaultConfig(), 1)
	ls := s.StartLevel(2, 400, 300)

	if ls.Level != 2 || len(ls.Terrain.Points) != 400 {
		t.Fatalf("level %d points %d", ls.Level, len(ls.Terrain.Points))
	}
	if len(ls.Zones) != 1 {
		t.Errorf("zones = %d, want 1", len(ls.Zones))
	}
	if ls.Lander.Position.X < 400.0/6 || ls.Lander.Position.X >= 5*400.0/6 {
		t.Errorf("spawn x = %v", ls.Lander.Position.X)
	}

	if got := s.StartLevel(99, 400, 300).Level; got != 2 {
		t.Errorf("StartLevel(99) level = %d, want clamped to 2", got)
	}
}

func TestSessionStartLevelConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartLevel = 2
	s := NewSession(cfg, 1)
	if s.Level() != 2 {
		t.Fatalf("level = %d, want 2", s.Level())
	}
}

func TestSessionDeterminism(t *testing.T) {
	script := func(i int) Input {
		return Input{Controls: Controls{
			Thrust:      i%3 == 0,
			RotateLeft:  i%50 < 10,
			RotateRight: i%70 > 60,
		}}
	}
	run := func(seed uint64) uint64 {
		s := NewSession(DefaultConfig(), seed)
		for i := 0; i < 600; i++ {
			s.Step(dt, script(i))
		}
		snap := s.Snapshot()
		return snap.Hash()
	}

	if a, b := run(77), run(77); a != b {
		t.Errorf("same seed diverged: %x vs %x", a, b)
	}
	if a, b := run(77), run(78); a == b {
		t.Error("different seeds produced identical runs")
	}
}

func TestLevelOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Levels[1].GravityScale = 1.5
	cfg.Levels[1].MaxVerticalSpeed = 15

	if g := cfg.PhysicsFor(1).Gravity; g != 10 {
		t.Errorf("level 1 gravity = %v", g)
	}
	if g := cfg.PhysicsFor(2).Gravity; g != 15 {
		t.Errorf("level 2 gravity = %v, want 15", g)
	}
	if v := cfg.LandingFor(2).MaxVerticalSpeed; v != 15 {
		t.Errorf("level 2 max speed = %v, want 15", v)
	}
}
