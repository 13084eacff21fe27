package lander

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander/sim"
)

// Visual characters for rendering
const (
	TerrainFill = '░'
	ZoneSurface = '═'
	SlopeUp     = '/'
	SlopeDown   = '\\'
	FlatSurface = '_'

	hudRows    = 1
	minScreenW = 40
	minScreenH = 12
)

// Lander glyphs by heading, clockwise from upright.
var landerGlyphs = []rune{'▲', '◥', '▶', '◢', '▼', '◣', '◀', '◤'}

// viewport maps world units to screen cells below the HUD.
type viewport struct {
	sx, sy float64
	top    int
}

func newViewport(dst *core.Screen, worldW, worldH int) viewport {
	return viewport{
		sx:  float64(dst.Width()) / float64(max(worldW, 1)),
		sy:  float64(dst.Height()-hudRows) / float64(max(worldH, 1)),
		top: hudRows,
	}
}

func (v viewport) cell(p core.Vec2) (int, int) {
	return int(math.Floor(p.X * v.sx)), v.top + int(math.Floor(p.Y*v.sy))
}

// worldX returns the world x at the centre of screen column cx.
func (v viewport) worldX(cx int) float64 {
	return (float64(cx) + 0.5) / v.sx
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorWarning)
		return
	}

	t := g.session.Terrain()
	v := newViewport(dst, t.Width, t.Height)

	drawTerrain(dst, v, t)
	g.drawParticles(dst, v)
	if !g.session.Crashed() {
		g.drawLander(dst, v)
	}
	g.drawHUD(dst)
	g.drawOverlay(dst)
}

// RenderTerrain draws terrain and its landing zones scaled to fill dst,
// leaving the top row free like the in-game view.
func RenderTerrain(dst *core.Screen, t *sim.Terrain) {
	drawTerrain(dst, newViewport(dst, t.Width, t.Height), t)
}

func drawTerrain(dst *core.Screen, v viewport, t *sim.Terrain) {
	bottom := dst.Height()
	step := 1 / v.sx
	for cx := 0; cx < dst.Width(); cx++ {
		wx := v.worldX(cx)
		_, cy := v.cell(core.V(wx, t.HeightAt(wx)))

		r, c := FlatSurface, core.ColorTerrain
		if t.ZoneAt(wx) >= 0 {
			r, c = ZoneSurface, core.ColorSafeZone
		} else {
			// Positive slope means the ground drops to the right (y grows down).
			slope := (t.HeightAt(wx+step) - t.HeightAt(wx-step)) * v.sy / 2
			switch {
			case slope < -0.5:
				r = SlopeUp
			case slope > 0.5:
				r = SlopeDown
			}
		}
		dst.SetColored(cx, cy, r, c)
		for y := cy + 1; y < bottom; y++ {
			dst.SetColored(cx, y, TerrainFill, core.ColorTerrainFill)
		}
	}
}

func (g *Game) drawParticles(dst *core.Screen, v viewport) {
	for _, p := range g.particles.P {
		x, y := v.cell(p.Pos)
		if y < hudRows {
			continue
		}
		dst.SetColored(x, y, p.glyph(), p.Color)
	}
}

func (g *Game) drawLander(dst *core.Screen, v viewport) {
	l := g.session.Lander()
	x, y := v.cell(l.Position)
	if y < hudRows {
		// Above the visible area: show a marker on the first world row.
		dst.SetColored(x, hudRows, '^', core.ColorLander)
		return
	}

	idx := int(math.Round(l.Rotation/(math.Pi/4))) % len(landerGlyphs)
	color := core.ColorLander
	if g.session.State() != sim.StatePlaying {
		color = core.ColorOK
	}
	dst.SetColored(x, y, landerGlyphs[idx], color)
}

// hudSegment is one colored HUD field.
type hudSegment struct {
	text  string
	color core.Color
}

func (g *Game) hud() []hudSegment {
	s := g.session
	l := s.Lander()
	landing := s.Landing()

	ok := func(b bool) core.Color {
		if b {
			return core.ColorOK
		}
		return core.ColorWarning
	}

	angle := l.AngleDeg()
	if angle > 180 {
		angle -= 360
	}
	score, _ := s.Score()

	segs := []hudSegment{
		{fmt.Sprintf("LVL %d/%d", s.Level(), s.MaxLevel()), core.ColorWhite},
		{fmt.Sprintf("FUEL %d", l.Fuel), ok(l.Fuel > 0)},
		{fmt.Sprintf("VSPD %5.1f", math.Abs(l.Velocity.Y)), ok(math.Abs(l.Velocity.Y) < landing.MaxVerticalSpeed)},
		{fmt.Sprintf("ANG %+4.0f°", angle), ok(sim.Upright(l.Rotation, landing.MaxAngleDeg))},
		{fmt.Sprintf("SCORE %d", score), core.ColorCyan},
	}
	if g.paused {
		segs = append(segs, hudSegment{"PAUSED", core.ColorYellow})
	}
	return segs
}

func (g *Game) drawHUD(dst *core.Screen) {
	x := 1
	for _, seg := range g.hud() {
		dst.DrawTextColored(x, 0, seg.text, seg.color)
		x += len([]rune(seg.text)) + 3
	}
}

func (g *Game) drawOverlay(dst *core.Screen) {
	s := g.session
	switch {
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorYellow)
	case s.State() == sim.StateCountdown:
		g.drawCenteredMessage(dst, "Mission Success",
			fmt.Sprintf("Next level in %d", int(math.Ceil(s.Countdown()))), core.ColorOK)
	case s.State() == sim.StateVictory:
		score, _ := s.Score()
		g.drawCenteredMessage(dst, "Victory!",
			fmt.Sprintf("Score %d  |  Press Enter to play again", score), core.ColorOK)
	case s.State() == sim.StateGameOver && s.Success():
		g.drawCenteredMessage(dst, "Mission Success", "Press Enter to Continue", core.ColorOK)
	case s.State() == sim.StateGameOver:
		reason := s.Verdict().Reason()
		if reason == "" {
			reason = "lost in space"
		}
		g.drawCenteredMessage(dst, "Mission Failed",
			fmt.Sprintf("%s - Press Enter to Restart", reason), core.ColorWarning)
	}
}

// drawCenteredMessage draws a boxed two-line message in the middle of dst.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	bw := max(len([]rune(title)), len([]rune(subtitle))) + 4
	box := core.NewRect((dst.Width()-bw)/2, (dst.Height()-5)/2, bw, 5)
	dst.ClearRect(box)
	dst.DrawBox(box, c)

	dst.DrawTextCentered(box.Y+1, title, c)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorWhite)
}
