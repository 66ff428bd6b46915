package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tapsy/internal/core"
	"github.com/vovakirdan/tapsy/internal/memory"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("52")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("58")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("17")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	core.ColorBrightBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// tileColors are the dim colors of the four tiles, in tile order.
var tileColors = [memory.TileCount]core.Color{
	core.ColorGreen,
	core.ColorRed,
	core.ColorYellow,
	core.ColorBlue,
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Board layout constants.
const (
	hudRows     = 3 // Title, stats, rule
	footerRows  = 4 // Spacer, message, spacer, controls
	maxTileW    = 24
	maxTileH    = 8
	minTileW    = 5
	minTileH    = 3
	tileGapCols = 2
	tileGapRows = 1
)

// Layout places the HUD, the 2x2 tile grid and the footer on screen.
type Layout struct {
	Width, Height int
	Tiles         [memory.TileCount]core.Rect
	MessageRow    int
	FooterRow     int
	fits          bool
}

// NewLayout computes the layout for a width x height terminal.
// Tiles are ordered top-left, top-right, bottom-left, bottom-right.
func NewLayout(width, height int) Layout {
	l := Layout{
		Width:      width,
		Height:     height,
		MessageRow: height - 3,
		FooterRow:  height - 1,
	}

	gridW := width - 4
	gridH := height - hudRows - footerRows
	tileW := min((gridW-tileGapCols)/2, maxTileW)
	tileH := min((gridH-tileGapRows)/2, maxTileH)
	if tileW < minTileW || tileH < minTileH {
		return l
	}
	l.fits = true

	totalW := 2*tileW + tileGapCols
	totalH := 2*tileH + tileGapRows
	left := (width - totalW) / 2
	top := hudRows + (gridH-totalH)/2

	for i := range l.Tiles {
		col, row := i%2, i/2
		l.Tiles[i] = core.NewRect(
			left+col*(tileW+tileGapCols),
			top+row*(tileH+tileGapRows),
			tileW,
			tileH,
		)
	}
	return l
}

// Fits reports whether the terminal is large enough to draw the tiles.
func (l Layout) Fits() bool {
	return l.fits
}

// TileAt returns the tile under the cell (x, y), or -1.
func (l Layout) TileAt(x, y int) int {
	if !l.fits {
		return -1
	}
	for i, r := range l.Tiles {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// boardView is what drawBoard needs to know about the round.
type boardView struct {
	lit      memory.TileIndex // Lit by playback or a tap
	hint     memory.TileIndex
	wrong    memory.TileIndex // Tile the player got wrong
	disabled bool             // Input closed, tiles drawn muted
}

// drawBoard draws the four tiles.
func drawBoard(s *core.Screen, l Layout, v boardView) {
	for i, r := range l.Tiles {
		tile := memory.TileIndex(i)
		base := tileColors[i]

		fill, color := '▒', base
		switch {
		case tile == v.wrong:
			fill, color = '╳', core.ColorBrightRed
		case tile == v.lit:
			fill, color = '█', base.Bright()
		case v.disabled:
			fill = '░'
		}

		s.DrawRect(r.Inset(1), fill, color)

		border := core.ColorGray
		if tile == v.hint {
			border = core.ColorWhite
		}
		s.DrawBox(r, border)

		_, cy := r.Center()
		label := string(rune('1' + i))
		if tile == v.hint {
			label = "> " + label + " <"
		}
		s.DrawTextIn(r, cy, " "+label+" ", core.ColorWhite)
	}
}
