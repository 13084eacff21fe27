package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lander/internal/core"
)

var palette sync.Map // core.Color -> lipgloss.Style

// styleFor returns the foreground style for c, building it on first use.
func styleFor(c core.Color) lipgloss.Style {
	if st, ok := palette.Load(c); ok {
		return st.(lipgloss.Style)
	}
	st := lipgloss.NewStyle()
	if code := c.ANSI(); code != "" {
		st = st.Foreground(lipgloss.Color(code))
	}
	palette.Store(c, st)
	return st
}

// RenderScreen turns a Screen into terminal text. Each run of same-colored
// cells on a row is styled once.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run []rune
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run = run[:0]
			for ; x < s.Width(); x++ {
				c := s.GetCell(x, y)
				if c.Color != color {
					break
				}
				run = append(run, c.Rune)
			}
			if color == core.ColorDefault {
				sb.WriteString(string(run))
				continue
			}
			sb.WriteString(styleFor(color).Render(string(run)))
		}
	}
	return sb.String()
}
