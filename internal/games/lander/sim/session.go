package sim

import (
	"github.com/vovakirdan/tui-lander/internal/core"
)

// State is the session phase.
type State string

const (
	StatePlaying   State = "playing"
	StateCountdown State = "countdown"
	StateGameOver  State = "game_over"
	StateVictory   State = "victory"
	StateExited    State = "exited"
)

// Input is one step's worth of player intent.
type Input struct {
	Controls
	Restart bool
	Quit    bool
}

// StepResult is what a caller needs after each step.
type StepResult struct {
	Lander  Lander
	State   State
	Success bool // Meaningful in StateGameOver
	Event   core.Event
}

// LevelStart describes a freshly generated level.
type LevelStart struct {
	Level   int
	Terrain *Terrain
	Zones   []SafeZone
	Lander  Lander
}

// Session owns one play-through: level progression, the current terrain
// and lander, the countdown timer and the running score.
type Session struct {
	cfg Config
	rng *RNG

	level     int
	state     State
	success   bool
	countdown float64
	score     int
	landings  []int // Fuel banked per landed level

	terrain   *Terrain
	lander    Lander
	physics   Physics
	landing   LandingParams
	verdict   Verdict
	contact   Contact
	crashed   bool
	thrusting bool
	tick      uint64
}

// NewSession creates a session at the configured start level.
func NewSession(cfg Config, seed uint64) *Session {
	s := &Session{
		cfg: cfg,
		rng: NewRNG(seed),
	}
	s.StartLevel(s.firstLevel(), cfg.Width, cfg.Height)
	return s
}

func (s *Session) firstLevel() int {
	return min(max(s.cfg.StartLevel, 1), s.cfg.MaxLevel())
}

// StartLevel generates terrain for level at the given world size, spawns a
// fresh lander with full fuel and enters StatePlaying. The score is kept.
func (s *Session) StartLevel(level, width, height int) LevelStart {
	s.level = min(max(level, 1), s.cfg.MaxLevel())
	s.cfg.Width = max(width, 2)
	s.cfg.Height = max(height, 1)

	policy := s.cfg.Level(s.level)
	s.terrain = GenerateTerrain(s.cfg.Width, s.cfg.Height, s.cfg.Terrain, policy, s.rng)
	s.lander = SpawnLander(s.cfg.Width, s.cfg.Height, s.cfg.Physics.MaxFuel, s.rng)
	s.physics = NewPhysics(s.cfg.PhysicsFor(s.level))
	s.landing = s.cfg.LandingFor(s.level)

	s.state = StatePlaying
	s.success = false
	s.countdown = 0
	s.verdict = Verdict{Zone: -1}
	s.contact = Contact{Segment: -1}
	s.crashed = false
	s.thrusting = false

	return LevelStart{
		Level:   s.level,
		Terrain: s.terrain,
		Zones:   s.terrain.Zones,
		Lander:  s.lander,
	}
}

// Restart discards progress and starts over at the first level. From a
// successful GameOver (countdown disabled) it continues at the next level.
func (s *Session) Restart() core.Event {
	if s.state == StateGameOver && s.success {
		s.StartLevel(s.level+1, s.cfg.Width, s.cfg.Height)
		return core.EventLevelAdvance
	}
	s.score = 0
	s.landings = nil
	s.StartLevel(s.firstLevel(), s.cfg.Width, s.cfg.Height)
	return core.EventNone
}

// Step advances the session by dt seconds. The order within a step is
// input, physics, collision, state transition, regeneration.
func (s *Session) Step(dt float64, in Input) StepResult {
	s.tick++
	ev := core.EventNone
	s.thrusting = false

	if in.Quit && s.state != StateExited {
		s.state = StateExited
		return s.result(ev)
	}

	switch s.state {
	case StateExited:
	case StateGameOver, StateVictory:
		if in.Restart {
			ev = s.Restart()
		}
	case StateCountdown:
		if in.Restart {
			ev = s.Restart()
			break
		}
		s.countdown -= max(dt, 0)
		if s.countdown <= 0 {
			s.StartLevel(s.level+1, s.cfg.Width, s.cfg.Height)
			ev = core.EventLevelAdvance
		}
	case StatePlaying:
		if in.Restart {
			ev = s.Restart()
			break
		}
		ev = s.fly(dt, in.Controls)
	}
	return s.result(ev)
}

func (s *Session) fly(dt float64, c Controls) core.Event {
	from := s.lander.Position
	s.thrusting = s.physics.Step(&s.lander, c, dt)

	contact, hit := Detect(s.terrain, from, s.lander.Position, s.landing.Radius)
	if !hit {
		if s.lander.Position.Y > float64(s.cfg.Height) {
			return s.crash()
		}
		return core.EventNone
	}

	s.lander.Position = contact.Position
	s.contact = contact
	s.verdict = Evaluate(s.lander, s.terrain, s.landing)
	if !s.verdict.Safe() {
		return s.crash()
	}
	return s.land()
}

func (s *Session) crash() core.Event {
	s.state = StateGameOver
	s.success = false
	s.crashed = true
	return core.EventCrash
}

func (s *Session) land() core.Event {
	s.score += s.lander.Fuel
	s.landings = append(s.landings, s.lander.Fuel)

	switch {
	case s.level >= s.cfg.MaxLevel():
		s.state = StateVictory
		return core.EventVictory
	case s.cfg.CountdownSeconds > 0:
		s.state = StateCountdown
		s.countdown = s.cfg.CountdownSeconds
	default:
		s.state = StateGameOver
		s.success = true
	}
	return core.EventSafeLanding
}

func (s *Session) result(ev core.Event) StepResult {
	return StepResult{
		Lander:  s.lander,
		State:   s.state,
		Success: s.success,
		Event:   ev,
	}
}

// Score returns the accumulated score and whether it is final.
// Only a Victory produces a final score.
func (s *Session) Score() (int, bool) {
	return s.score, s.state == StateVictory
}

// Level returns the current 1-based level.
func (s *Session) Level() int { return s.level }

// MaxLevel returns the final level number.
func (s *Session) MaxLevel() int { return s.cfg.MaxLevel() }

func (s *Session) State() State { return s.state }

func (s *Session) Success() bool { return s.success }

// Countdown returns seconds left before the next level starts.
func (s *Session) Countdown() float64 { return max(s.countdown, 0) }

func (s *Session) Terrain() *Terrain { return s.terrain }

func (s *Session) Lander() Lander { return s.lander }

// Verdict returns the evaluation of the last touch-down.
func (s *Session) Verdict() Verdict { return s.verdict }

func (s *Session) Contact() Contact { return s.contact }

// Crashed reports whether the current level ended in a crash.
func (s *Session) Crashed() bool { return s.crashed }

// Thrusting reports whether the engine fired on the last step.
func (s *Session) Thrusting() bool { return s.thrusting }

func (s *Session) Config() Config { return s.cfg }

// Landing returns the thresholds in force for the current level.
func (s *Session) Landing() LandingParams { return s.landing }

// Physics returns the physics parameters in force for the current level.
func (s *Session) Physics() PhysicsParams { return s.physics.PhysicsParams }

// Landings returns the fuel banked at each landing so far.
func (s *Session) Landings() []int {
	return append([]int(nil), s.landings...)
}
