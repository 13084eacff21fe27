// Package tui runs games in a terminal with Bubble Tea: the flight loop,
// the start menu, the scoreboard and the SSH front end.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// maxFrameTime caps the simulated time of a single tick so a stalled
// terminal does not teleport the lander through the terrain.
const maxFrameTime = 100 * time.Millisecond

// saveTimeout bounds a best-effort score write.
const saveTimeout = 2 * time.Second

// frameMsg drives one simulation step.
type frameMsg time.Time

// nextFrame schedules the next frameMsg at the configured tick rate.
func nextFrame(rate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// controlled is implemented by games that carry their own key bindings.
type controlled interface {
	Controls() config.ControlsConfig
}

// levelCounter is implemented by games that track completed levels.
type levelCounter interface {
	LevelsCleared() int
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	player    string
	keys      *KeyMapper
	help      help.Model
	gameState core.GameState
	lastTick  time.Time
	embedded  bool // Back returns to the caller instead of quitting
	quitting  bool
	back      bool
	saved     bool // Whether the score has been saved for the current result
	saveErr   error
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	controls := config.DefaultControls()
	if c, ok := game.(controlled); ok {
		controls = c.Controls()
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		store:  store,
		config: cfg,
		player: player,
		keys:   NewKeyMapper(controls),
		help:   help.New(),
	}
}

// playHeight leaves the last terminal row for the key help line.
func playHeight(h int) int {
	return max(h-1, 1)
}

// Init starts a fresh session and the frame clock.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return nextFrame(m.config.TickRate)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case frameMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records a key press for the next frame. ctrl+s dumps the
// current screen to a text file.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.Press(msg, time.Now()) {
		m.game.Step(0, core.FrameOf(core.ActionQuit))
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The world has a fixed size
// and is scaled to the screen, so a resize never resets the game.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks. Game time advances by the wall
// time since the previous tick, clamped to maxFrameTime.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.back {
		return m, nil
	}

	dt := m.config.TickSeconds()
	if !m.lastTick.IsZero() {
		dt = min(max(now.Sub(m.lastTick), 0), maxFrameTime).Seconds()
	}
	m.lastTick = now

	frame := m.keys.Frame(now)
	if frame.Has(core.ActionBack) {
		if m.embedded {
			m.back = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	result := m.game.Step(dt, frame)
	m.gameState = result.State
	if result.Event == core.EventLevelAdvance {
		m.keys.Release()
	}

	if !m.gameState.GameOver {
		m.saved = false
	} else if m.gameState.Won && !m.saved {
		m.saveErr = m.saveScore()
		m.saved = true
	}

	return m, nextFrame(m.config.TickRate)
}

// saveScore persists a final score. Only a won session produces one.
func (m Model) saveScore() error {
	if m.store == nil {
		return nil
	}
	rec := storage.Score{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.gameState.Score,
		Seed:   m.config.Seed,
	}
	if lc, ok := m.game.(levelCounter); ok {
		rec.Levels = lc.LevelsCleared()
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	_, err := m.store.SaveScore(ctx, rec)
	return err
}

// saveScreenshot writes the current frame as plain text under
// ~/.lander/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".lander", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View draws the game above a one-line key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys.Keys())
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// SaveError returns the error from the last score save, if any.
func (m Model) SaveError() error {
	return m.saveErr
}

// Run plays game full screen until the player quits. A failed score save
// is reported after the program exits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) error {
	model := NewModel(game, store, cfg, player)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.saveErr != nil {
		return fmt.Errorf("save score: %w", fm.saveErr)
	}
	return nil
}
