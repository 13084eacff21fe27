package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
)

func sessionStep(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	cfg := core.DefaultConfig()
	m := NewSessionModel(nil, cfg, lander.GameID, "ace")

	if m.menu.opts.MaxLevel < 1 {
		t.Fatalf("menu max level = %d, want the lander level count", m.menu.opts.MaxLevel)
	}

	m = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatalf("Enter on Start Mission should open the game, screen = %v", m.screen)
	}
	if !m.gameModel.embedded {
		t.Error("session games must return to the menu instead of quitting")
	}

	now := time.Now()
	m = sessionStep(t, m, frameMsg(now))
	m = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = sessionStep(t, m, frameMsg(now.Add(16*time.Millisecond)))

	if m.screen != screenMenu || m.gameModel != nil {
		t.Fatalf("Esc should return to the menu, screen = %v", m.screen)
	}
	if m.quitting {
		t.Error("returning to the menu must not end the session")
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), lander.GameID, "ace")

	m = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("Tab should open the scoreboard, screen = %v", m.screen)
	}

	m = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.quitting {
		t.Errorf("Esc on the scoreboard should go back to the menu, screen = %v quitting = %v", m.screen, m.quitting)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), lander.GameID, "ace")

	next, cmd := m.Update(runeKey('q'))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q on the menu should end the session")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quitting should produce tea.QuitMsg")
	}
}

func TestFilterQuit(t *testing.T) {
	if filterQuit(nil) != nil {
		t.Error("filterQuit(nil) should be nil")
	}
	if msg := filterQuit(tea.Quit)(); msg != nil {
		t.Errorf("filterQuit(tea.Quit) produced %T", msg)
	}
	keep := func() tea.Msg { return frameMsg{} }
	if _, ok := filterQuit(keep)().(frameMsg); !ok {
		t.Error("filterQuit should pass other messages through")
	}
}
