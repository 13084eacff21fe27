// Package lander implements the Lunar Lander game on top of the sim
// package. It maps platform input to flight controls, owns cosmetic
// effects and renders the world into a terminal-sized screen.
package lander

import (
	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander/sim"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

// GameID is the registry and score-table identifier.
const GameID = "lander"

// particleSalt separates the effects RNG stream from the simulation's.
const particleSalt = 0x5eed_f00d

// Game adapts a sim.Session to the registry.Game contract.
type Game struct {
	opts      Options
	cfg       config.LanderConfig
	cfgErr    error
	runtime   core.RuntimeConfig
	session   *sim.Session
	particles *ParticleSystem
	paused    bool
	lastEvent core.Event
}

// New creates a new lander game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lunar Lander"
}

// Reset loads configuration and starts a fresh session.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.cfg, g.cfgErr = loadConfig(g.opts)

	seed := uint64(rc.Seed)
	g.session = sim.NewSession(SimConfig(g.cfg), seed)
	g.particles = NewParticleSystem(0, seed^particleSalt)
	g.paused = false
	g.lastEvent = core.EventNone
}

// Step advances the game by dt seconds.
func (g *Game) Step(dt float64, in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.Reset(core.DefaultConfig())
	}

	flying := g.flying()
	if in.Has(core.ActionPause) && flying {
		g.paused = !g.paused
	}
	if g.paused && !in.Has(core.ActionQuit) {
		return core.StepResult{State: g.State()}
	}
	g.paused = false

	input := sim.Input{
		Controls: sim.Controls{
			RotateLeft:  in.Has(core.ActionRotateLeft),
			RotateRight: in.Has(core.ActionRotateRight),
			Thrust:      in.Has(core.ActionThrust),
		},
		Quit: in.Has(core.ActionQuit),
	}
	// Mid-flight restarts go through the menu; Enter only acts on the end screens.
	if !flying {
		input.Restart = in.Has(core.ActionRestart) || in.Has(core.ActionConfirm)
	}

	res := g.session.Step(dt, input)

	if res.Event == core.EventLevelAdvance || (!flying && g.flying()) {
		g.particles.Clear()
	}
	if g.session.Thrusting() {
		g.particles.Thrust(res.Lander, g.session.Landing().Radius)
	}
	if res.Event == core.EventCrash {
		g.particles.Crash(res.Lander.Position)
	}
	g.particles.Update(dt)

	if res.Event != core.EventNone {
		g.lastEvent = res.Event
	}
	return core.StepResult{State: g.State(), Event: res.Event}
}

// flying reports whether the session is in a phase where pause applies.
func (g *Game) flying() bool {
	st := g.session.State()
	return st == sim.StatePlaying || st == sim.StateCountdown
}

// State returns the current game state. Won is set only for a Victory,
// the one outcome that produces a final score.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	score, final := g.session.Score()
	st := g.session.State()
	return core.GameState{
		Score:    score,
		GameOver: st == sim.StateGameOver || st == sim.StateVictory || st == sim.StateExited,
		Won:      final,
		Paused:   g.paused,
	}
}

// Session exposes the underlying simulation.
func (g *Game) Session() *sim.Session {
	return g.session
}

// Controls returns the key bindings from the loaded config.
func (g *Game) Controls() config.ControlsConfig {
	if g.session == nil {
		cfg, _ := loadConfig(g.opts)
		return cfg.Controls
	}
	return g.cfg.Controls
}

// Configure sets the start level and difficulty for this instance.
// Takes effect on the next Reset.
func (g *Game) Configure(level int, preset config.DifficultyPreset) {
	g.opts = Options{StartLevel: level, Difficulty: preset}
}

// MaxLevel returns the number of configured levels.
func (g *Game) MaxLevel() int {
	if g.session == nil {
		cfg, _ := loadConfig(g.opts)
		return len(cfg.Levels)
	}
	return g.session.MaxLevel()
}

// ConfigError returns the error from the last config load, if any.
// The game still runs on defaults when it is non-nil.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

// LastEvent returns the most recent non-empty event.
func (g *Game) LastEvent() core.Event {
	return g.lastEvent
}

// LevelsCleared returns the number of safe landings in the current run.
func (g *Game) LevelsCleared() int {
	if g.session == nil {
		return 0
	}
	return len(g.session.Landings())
}

// Particles returns the live effects.
func (g *Game) Particles() *ParticleSystem {
	return g.particles
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
