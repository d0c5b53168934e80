package core

// Color is the foreground color of a screen cell.
type Color uint8

// Palette used by the game. Each maps to an ANSI 256-color code.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	colorCount
)

var ansiCodes = [colorCount]string{
	ColorDefault:      "",
	ColorRed:          "1",
	ColorYellow:       "3",
	ColorMagenta:      "5",
	ColorCyan:         "6",
	ColorWhite:        "7",
	ColorBrightRed:    "9",
	ColorBrightGreen:  "10",
	ColorBrightYellow: "11",
	ColorBrightCyan:   "14",
	ColorBrightWhite:  "15",
	ColorOrange:       "208",
	ColorGray:         "245",
}

// ANSI returns the 256-color code of c, or "" for the terminal default.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return ansiCodes[c]
}

// Fade approximates opacity alpha in [0, 1] with terminal colors: gray,
// then white, then c itself.
func (c Color) Fade(alpha float64) Color {
	switch {
	case alpha < 0.34:
		return ColorGray
	case alpha < 0.67:
		return ColorWhite
	default:
		return c
	}
}
