package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-lander/internal/core"
)

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(8, 3)
	s.DrawText(0, 0, "FUEL 80")
	s.DrawTextColored(2, 1, "/\\", core.ColorLander)
	s.DrawTextColored(0, 2, "===", core.ColorSafeZone)
	s.DrawTextColored(3, 2, "^^", core.ColorTerrain)

	got := ansi.Strip(RenderScreen(s))
	if got != s.String() {
		t.Errorf("rendered text = %q, want %q", got, s.String())
	}
}

func TestRenderScreenEmpty(t *testing.T) {
	if got := RenderScreen(core.NewScreen(0, 0)); got != "" {
		t.Errorf("RenderScreen(0x0) = %q, want empty", got)
	}
}

func TestStyleForCaches(t *testing.T) {
	a := styleFor(core.ColorWarning)
	b := styleFor(core.ColorWarning)
	if a.GetForeground() != b.GetForeground() {
		t.Error("styleFor should return the same style for the same color")
	}
	if styleFor(core.ColorDefault).GetForeground() != (lipgloss.NoColor{}) {
		t.Error("default color should not set a foreground")
	}
}
