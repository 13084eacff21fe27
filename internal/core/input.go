package core

import "strings"

// Action is a platform-level intent, decoupled from the key that produced it.
type Action uint8

const (
	ActionNone        Action = iota
	ActionRotateLeft         // Turn the lander counter-clockwise
	ActionRotateRight        // Turn the lander clockwise
	ActionThrust             // Fire the main engine
	ActionUp                 // Menu navigation
	ActionDown               // Menu navigation
	ActionConfirm            // Accept a menu entry or an end-of-level prompt
	ActionBack               // Leave the current screen
	ActionRestart            // Continue or restart after a landing or crash
	ActionQuit               // End the session
	ActionPause              // Toggle pause

	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:        "None",
	ActionRotateLeft:  "Rotate Left",
	ActionRotateRight: "Rotate Right",
	ActionThrust:      "Thrust",
	ActionUp:          "Up",
	ActionDown:        "Down",
	ActionConfirm:     "Confirm",
	ActionBack:        "Back",
	ActionRestart:     "Restart",
	ActionQuit:        "Quit",
	ActionPause:       "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame is the set of actions active during one simulation step.
// The zero value is an empty frame; frames are plain values and copy freely.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// FrameOf creates an input frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as active. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether the action is active.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

// Clear removes all actions.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Clone returns a copy of the frame.
func (f InputFrame) Clone() InputFrame {
	return f
}

// Empty reports whether no action is active.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Actions lists the active actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// String lists the active actions, e.g. "[Rotate Left, Thrust]".
func (f InputFrame) String() string {
	names := make([]string, 0, 4)
	for _, a := range f.Actions() {
		names = append(names, a.String())
	}
	return "[" + strings.Join(names, ", ") + "]"
}
