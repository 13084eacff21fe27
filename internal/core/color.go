package core

import "strconv"

// Color is a foreground color for a screen cell. Non-default values are
// ANSI 256-color palette indexes, so any terminal renderer can use them
// directly.
type Color uint8

// ColorDefault leaves the terminal's foreground untouched.
const ColorDefault Color = 0

// Palette entries used by the game. Index 0 is reserved for ColorDefault.
const (
	ColorRed         Color = 1
	ColorGreen       Color = 2
	ColorYellow      Color = 3
	ColorCyan        Color = 6
	ColorWhite       Color = 7
	ColorBrightRed   Color = 9
	ColorBrightGreen Color = 10
	ColorBrightWhite Color = 15
	ColorOrange      Color = 208
	ColorDarkGray    Color = 238
	ColorGray        Color = 245
)

// Semantic aliases used by the lander renderer.
const (
	ColorTerrain     = ColorGray
	ColorTerrainFill = ColorDarkGray
	ColorSafeZone    = ColorBrightGreen
	ColorLander      = ColorBrightWhite
	ColorWarning     = ColorBrightRed
	ColorOK          = ColorGreen
)

// ANSI returns the palette index as a string, or "" for ColorDefault.
func (c Color) ANSI() string {
	if c == ColorDefault {
		return ""
	}
	return strconv.Itoa(int(c))
}
