package core

// Color is the foreground color of a screen cell.
// The platform layer maps each value to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite

	// Tile colors, dim and lit.
	ColorGreen
	ColorRed
	ColorYellow
	ColorBlue
	ColorBrightGreen
	ColorBrightRed
	ColorBrightYellow
	ColorBrightBlue

	// HUD accents.
	ColorCyan
	ColorMagenta
	ColorOrange
)

// Bright returns the lit variant of a tile color. Other colors are
// returned unchanged.
func (c Color) Bright() Color {
	switch c {
	case ColorGreen:
		return ColorBrightGreen
	case ColorRed:
		return ColorBrightRed
	case ColorYellow:
		return ColorBrightYellow
	case ColorBlue:
		return ColorBrightBlue
	default:
		return c
	}
}
