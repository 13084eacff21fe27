package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// MenuEntry identifies a row of the main menu.
type MenuEntry int

const (
	EntryPlay MenuEntry = iota
	EntryLevel
	EntryDifficulty
	EntryScores
	EntryQuit
)

var menuEntries = []MenuEntry{EntryPlay, EntryLevel, EntryDifficulty, EntryScores, EntryQuit}

// difficultyCycle is the order the difficulty row steps through.
var difficultyCycle = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	menuCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuHighlightLine = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// MenuOptions describes what the menu offers.
type MenuOptions struct {
	GameID     string
	Title      string
	MaxLevel   int
	StartLevel int
	Difficulty config.DifficultyPreset
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	opts           MenuOptions
	cursor         int
	level          int
	difficulty     int
	best           int
	width          int
	height         int
	config         core.RuntimeConfig
	quitting       bool
	play           bool
	openScoreboard bool
}

// NewMenuModel builds the menu and looks up the best score so far.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, opts MenuOptions) MenuModel {
	if opts.MaxLevel < 1 {
		opts.MaxLevel = 1
	}
	if opts.Title == "" {
		opts.Title = opts.GameID
	}

	diff := 1
	for i, p := range difficultyCycle {
		if p == opts.Difficulty {
			diff = i
		}
	}

	m := MenuModel{
		opts:       opts,
		level:      min(max(opts.StartLevel, 1), opts.MaxLevel),
		difficulty: diff,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
	}

	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if best, err := store.HighScore(ctx, opts.GameID); err == nil {
			m.best = best
		}
	}

	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.adjust(-1)

	case MenuActionRight:
		m.adjust(1)

	case MenuActionSelect:
		switch menuEntries[m.cursor] {
		case EntryPlay, EntryLevel, EntryDifficulty:
			m.play = true
			return m, tea.Quit
		case EntryScores:
			m.openScoreboard = true
			return m, tea.Quit
		case EntryQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	if msg.String() == "tab" {
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// adjust changes the value of the option row under the cursor.
func (m *MenuModel) adjust(delta int) {
	switch menuEntries[m.cursor] {
	case EntryLevel:
		m.level = min(max(m.level+delta, 1), m.opts.MaxLevel)
	case EntryDifficulty:
		n := len(difficultyCycle)
		m.difficulty = ((m.difficulty+delta)%n + n) % n
	}
}

// label returns the display text for a menu row.
func (m MenuModel) label(e MenuEntry) string {
	switch e {
	case EntryPlay:
		return "Start Mission"
	case EntryLevel:
		return fmt.Sprintf("Level: < %d/%d >", m.level, m.opts.MaxLevel)
	case EntryDifficulty:
		return fmt.Sprintf("Difficulty: < %s >", difficultyCycle[m.difficulty])
	case EntryScores:
		return "High Scores"
	case EntryQuit:
		return "Quit"
	}
	return ""
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := strings.Join(strings.Split(strings.ToUpper(m.opts.Title), ""), " ")
	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle.Render(title), len(title), m.width))
	b.WriteString("\n\n")

	if m.best > 0 {
		line := fmt.Sprintf("Best score: %d", m.best)
		b.WriteString(centerStyled(menuHighlightLine.Render(line), len(line), m.width))
		b.WriteString("\n\n")
	}

	for i, e := range menuEntries {
		line := "  " + m.label(e)
		style := lipgloss.NewStyle()
		if i == m.cursor {
			line = "> " + m.label(e)
			style = menuCursorStyle
		}
		b.WriteString(centerStyled(style.Render(line), len(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerStyled(menuDimStyle.Render(controls), len(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// IsQuitting reports whether the player chose Quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsPlay returns true if user started a mission.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// WantsScoreboard reports whether the player opened the high scores.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Level returns the chosen start level.
func (m MenuModel) Level() int {
	return m.level
}

// Difficulty returns the chosen difficulty preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return difficultyCycle[m.difficulty]
}

// Config is the runtime config with the latest terminal size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerStyled centers an already styled string whose visible length is n.
func centerStyled(text string, n, width int) string {
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult is what the player picked.
type MenuResult struct {
	GameID          string
	StartLevel      int
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// result converts the final menu state.
func (m MenuModel) result() MenuResult {
	r := MenuResult{
		Config:     m.Config(),
		StartLevel: m.Level(),
		Difficulty: m.Difficulty(),
	}
	switch {
	case m.WantsScoreboard():
		r.WantsScoreboard = true
	case m.WantsPlay():
		r.GameID = m.opts.GameID
	default:
		r.Quit = true
	}
	return r
}

// RunMenu shows the menu full screen until the player picks something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, opts MenuOptions) (MenuResult, error) {
	model := NewMenuModel(store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
