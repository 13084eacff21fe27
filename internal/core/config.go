package core

// RuntimeConfig is what a front end tells a game when it (re)starts it.
type RuntimeConfig struct {
	ScreenW, ScreenH int   // terminal size in cells
	TickRate         int   // frames per second
	Seed             int64 // 0 lets the front end pick one from the clock
}

// DefaultConfig is an 80x24 terminal at 60 fps.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// TickSeconds is the nominal frame length. A non-positive rate counts as 60.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TickRate)
}

// GameState is the part of a game's state the front end acts on.
type GameState struct {
	Score    int
	GameOver bool
	Won      bool // GameOver with every level landed; Score is final
	Paused   bool
}

// Event is a notable gameplay occurrence reported by a single step.
type Event int

const (
	EventNone Event = iota
	EventSafeLanding
	EventCrash
	EventLevelAdvance
	EventVictory
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "None"
	case EventSafeLanding:
		return "SafeLanding"
	case EventCrash:
		return "Crash"
	case EventLevelAdvance:
		return "LevelAdvance"
	case EventVictory:
		return "Victory"
	default:
		return "Unknown"
	}
}

// StepResult is the outcome of one Game.Step.
type StepResult struct {
	State GameState
	Event Event
}
