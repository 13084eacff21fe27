package core

import "testing"

func TestInputFrameSetHas(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionThrust)
	f.Set(ActionRotateLeft)

	if !f.Has(ActionThrust) || !f.Has(ActionRotateLeft) {
		t.Errorf("frame %v should have Thrust and Rotate Left", f)
	}
	if f.Has(ActionPause) {
		t.Error("frame should not have Pause")
	}

	f.Set(ActionNone)
	f.Set(Action(200))
	if got := f.Actions(); len(got) != 2 || got[0] != ActionRotateLeft || got[1] != ActionThrust {
		t.Errorf("Actions() = %v, want [Rotate Left Thrust]", got)
	}

	f.Clear()
	if !f.Empty() {
		t.Errorf("Clear left %v", f)
	}
}

func TestInputFrameCloneIsIndependent(t *testing.T) {
	f := FrameOf(ActionQuit)
	c := f.Clone()
	c.Set(ActionPause)

	if f.Has(ActionPause) {
		t.Error("setting on a clone changed the original")
	}
	if !c.Has(ActionQuit) {
		t.Error("clone lost Quit")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionNone, "None"},
		{ActionRotateRight, "Rotate Right"},
		{ActionRestart, "Restart"},
		{Action(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.a, got, tt.want)
		}
	}
	if got := FrameOf(ActionThrust, ActionPause).String(); got != "[Thrust, Pause]" {
		t.Errorf("String() = %q", got)
	}
}
