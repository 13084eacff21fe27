package core

import "strings"

// Cell is a single screen position: a rune and its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' '}

// Screen is a character-cell framebuffer. Games draw into it and the
// terminal front end turns it into styled text.
type Screen struct {
	w, h  int
	cells []Cell // row-major, len w*h
}

// NewScreen creates a blank screen. Negative sizes are treated as zero.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

func (s *Screen) Width() int  { return s.w }
func (s *Screen) Height() int { return s.h }

// Bounds returns the whole screen as a rectangle.
func (s *Screen) Bounds() Rect {
	return Rect{W: s.w, H: s.h}
}

// Resize changes the dimensions. Content in the overlapping top-left area
// is kept; everything else is blank.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if s.cells != nil && width == s.w && height == s.h {
		return
	}

	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = blankCell
	}
	for y := range min(s.h, height) {
		n := min(s.w, width)
		copy(cells[y*width:y*width+n], s.cells[y*s.w:y*s.w+n])
	}
	s.w, s.h, s.cells = width, height, cells
}

// Clear blanks the whole screen.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

// Set writes an uncolored rune. Writes outside the screen are dropped.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored writes a rune with a color. Writes outside the screen are dropped.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	s.cells[y*s.w+x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at (x, y), or a space outside the screen.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell outside the screen.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return blankCell
	}
	return s.cells[y*s.w+x]
}

// DrawText writes text left to right from (x, y), one rune per cell.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered writes text centered on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	n := len([]rune(text))
	s.DrawTextColored((s.w-n)/2, y, text, c)
}

// ClearRect blanks the part of r that lies on screen.
func (s *Screen) ClearRect(r Rect) {
	r = r.Intersect(s.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		row := s.cells[y*s.w : (y+1)*s.w]
		for x := r.X; x < r.Right(); x++ {
			row[x] = blankCell
		}
	}
}

// DrawBox outlines r with single-line box-drawing runes.
func (s *Screen) DrawBox(r Rect, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	x1, y1 := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < x1; x++ {
		s.SetColored(x, r.Y, '─', c)
		s.SetColored(x, y1, '─', c)
	}
	for y := r.Y + 1; y < y1; y++ {
		s.SetColored(r.X, y, '│', c)
		s.SetColored(x1, y, '│', c)
	}
	s.SetColored(r.X, r.Y, '┌', c)
	s.SetColored(x1, r.Y, '┐', c)
	s.SetColored(r.X, y1, '└', c)
	s.SetColored(x1, y1, '┘', c)
}

// Row returns row y as plain text. Rows outside the screen are all spaces.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.h {
		return strings.Repeat(" ", s.w)
	}
	var sb strings.Builder
	sb.Grow(s.w)
	for _, c := range s.cells[y*s.w : (y+1)*s.w] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the screen as plain text, rows separated by newlines.
func (s *Screen) String() string {
	rows := make([]string, s.h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
