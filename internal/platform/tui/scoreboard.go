package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lander/internal/storage"
)

const (
	statsMinWidth = 90 // below this the stats panel moves under the table
	statsWidth    = 24
	maxScores     = 100
	loadTimeout   = 2 * time.Second
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	panelStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle = dimStyle.Italic(true).Padding(2, 4)
)

type scoreboardKeys struct {
	Up, Down, Reload, Back, Quit key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Reload, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the best scores of one game next to its aggregate
// stats.
type ScoreboardModel struct {
	store    *storage.Store
	gameID   string
	scores   []storage.ScoreEntry
	stats    *storage.GameStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     scoreboardKeys
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel loads the scoreboard for gameID. A nil store shows an
// empty board.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		gameID: gameID,
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= statsMinWidth
}

func (m ScoreboardModel) newTable() table.Model {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Lvls", Width: 4},
		{Title: "Seed", Width: 8},
		{Title: "Date", Width: 12},
	}

	avail := m.width - 6
	if m.wide() {
		avail -= statsWidth + 4
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	if spare := avail - used; spare > 0 {
		cols[1].Width += min(spare, 14)
	}

	height := m.height - 8
	if !m.wide() {
		height -= 7
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(height, 3)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)
	return t
}

// reload fetches scores and stats from the store.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		m.scores, m.loadErr = m.store.TopScores(ctx, m.gameID, maxScores)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(ctx, m.gameID)
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			player,
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Levels),
			shortSeed(s.Seed),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// shortSeed shows the low 32 bits of a seed in hex.
func shortSeed(seed int64) string {
	return fmt.Sprintf("%08x", uint32(seed))
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	title := boardTitleStyle.Render("HIGH SCORES")
	board := panelStyle.Render(m.tableView())
	stats := panelStyle.Width(statsWidth).Render(m.statsView())

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", stats)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, board, stats)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		centerStyled(title, lipgloss.Width(title), m.width),
		"",
		body,
		dimStyle.Render(m.help.View(m.keys)),
	)
}

func (m ScoreboardModel) tableView() string {
	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.scores) == 0:
		return emptyStyle.Render("No scores recorded yet.\nLand every level to set a high score!")
	}
	return m.table.View()
}

func (m ScoreboardModel) statsView() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return dimStyle.Render("No missions flown")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Missions  %d\n", m.stats.GamesCount)
	fmt.Fprintf(&b, "Best      %d\n", m.stats.HighScore)
	fmt.Fprintf(&b, "Average   %.0f\n", m.stats.AvgScore)
	fmt.Fprintf(&b, "Total     %d\n", m.stats.TotalScore)
	b.WriteString("Last      " + m.stats.LastPlayed.Local().Format("Jan 02 15:04"))
	return b.String()
}

// IsGoingBack reports whether the player asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard until the player leaves. It reports
// whether they went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, gameID string, width, height int) (bool, error) {
	final, err := tea.NewProgram(
		NewScoreboardModel(store, gameID, width, height),
		tea.WithAltScreen(),
	).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
