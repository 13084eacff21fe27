package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
)

// FlightKeyMap binds keys to lander actions. Bindings come from the
// controls section of the YAML config.
type FlightKeyMap struct {
	RotateLeft  key.Binding
	RotateRight key.Binding
	Thrust      key.Binding
	Restart     key.Binding
	Pause       key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// NewFlightKeyMap builds the key map from config. Empty key lists fall
// back to the default bindings.
func NewFlightKeyMap(c config.ControlsConfig) FlightKeyMap {
	d := config.DefaultControls()
	pick := func(keys, fallback []string) []string {
		if len(keys) == 0 {
			return fallback
		}
		return keys
	}
	bind := func(keys []string, label, desc string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
	}
	return FlightKeyMap{
		RotateLeft:  bind(pick(c.RotateLeft, d.RotateLeft), "←/a", "rotate left"),
		RotateRight: bind(pick(c.RotateRight, d.RotateRight), "→/d", "rotate right"),
		Thrust:      bind(pick(c.Thrust, d.Thrust), "↑/w/space", "thrust"),
		Restart:     bind(pick(c.Restart, d.Restart), "enter/r", "continue"),
		Pause:       bind(pick(c.Pause, d.Pause), "p", "pause"),
		Back:        bind(pick(c.Back, d.Back), "esc", "menu"),
		Quit:        bind(pick(c.Quit, d.Quit), "q", "quit"),
	}
}

// ShortHelp implements help.KeyMap.
func (k FlightKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Thrust, k.RotateLeft, k.RotateRight, k.Pause, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k FlightKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Thrust, k.RotateLeft, k.RotateRight},
		{k.Restart, k.Pause, k.Back, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
//
// Terminals deliver key presses and auto-repeats but never releases, so the
// flight controls (rotate, thrust) stay held for a short window after the
// last press. Everything else is a one-shot action delivered on the next
// frame only.
type KeyMapper struct {
	keys    FlightKeyMap
	hold    time.Duration
	held    map[core.Action]time.Time
	pending core.InputFrame
}

// NewKeyMapper creates a key mapper from the controls config.
func NewKeyMapper(c config.ControlsConfig) *KeyMapper {
	hold := time.Duration(c.HoldMS) * time.Millisecond
	if hold <= 0 {
		hold = time.Duration(config.DefaultControls().HoldMS) * time.Millisecond
	}
	return &KeyMapper{
		keys:    NewFlightKeyMap(c),
		hold:    hold,
		held:    make(map[core.Action]time.Time),
		pending: core.NewInputFrame(),
	}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() FlightKeyMap {
	return km.keys
}

// MapKey translates a key message to a single action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.RotateLeft):
		return core.ActionRotateLeft, false
	case key.Matches(msg, km.keys.RotateRight):
		return core.ActionRotateRight, false
	case key.Matches(msg, km.keys.Thrust):
		return core.ActionThrust, false
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.keys.Back):
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// Press records a key press at the given time.
// Returns true if the key was a quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time) bool {
	action, isQuit := km.MapKey(msg)
	switch action {
	case core.ActionNone:
	case core.ActionRotateLeft, core.ActionRotateRight, core.ActionThrust:
		km.held[action] = now
	default:
		km.pending.Set(action)
	}
	return isQuit
}

// Frame returns the input frame for a tick at the given time and consumes
// pending one-shot actions.
func (km *KeyMapper) Frame(now time.Time) core.InputFrame {
	frame := km.pending.Clone()
	km.pending.Clear()
	for a, at := range km.held {
		if now.Sub(at) <= km.hold {
			frame.Set(a)
		} else {
			delete(km.held, a)
		}
	}
	return frame
}

// Release drops all held controls, e.g. after a restart.
func (km *KeyMapper) Release() {
	clear(km.held)
	km.pending.Clear()
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
