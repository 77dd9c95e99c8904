package core

// Color represents a foreground color for a screen cell.
// Values map onto ANSI 256-color codes in the terminal host.
type Color uint8

// Palette used by the maze renderer and HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightGreen
	ColorBrightMagenta
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// ANSI returns the terminal color code for c, or "" for the default color.
func (c Color) ANSI() string {
	switch c {
	case ColorRed:
		return "1"
	case ColorGreen:
		return "2"
	case ColorYellow:
		return "3"
	case ColorBlue:
		return "4"
	case ColorMagenta:
		return "5"
	case ColorCyan:
		return "6"
	case ColorWhite:
		return "7"
	case ColorBrightGreen:
		return "10"
	case ColorBrightMagenta:
		return "13"
	case ColorBrightCyan:
		return "14"
	case ColorOrange:
		return "208"
	case ColorGray:
		return "245"
	default:
		return ""
	}
}
