package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-stacker/internal/core"
)

// palette maps core.Color to ANSI color codes. ColorDefault has no entry.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// cellStyle is the part of a cell that affects styling.
type cellStyle struct {
	color core.Color
	fg    core.RGB
	bg    core.RGB
}

func styleOf(c core.Cell) cellStyle {
	return cellStyle{color: c.Color, fg: c.FG, bg: c.BG}
}

// on builds the style for a run of cells with renderer r.
// True-color foreground overrides the palette color.
func (cs cellStyle) on(r *lipgloss.Renderer) lipgloss.Style {
	style := r.NewStyle()
	if c, ok := palette[cs.color]; ok {
		style = style.Foreground(c)
	}
	if cs.fg.Valid() {
		style = style.Foreground(lipgloss.Color(cs.fg.Hex()))
	}
	if cs.bg.Valid() {
		style = style.Background(lipgloss.Color(cs.bg.Hex()))
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same style share one escape sequence. A nil
// renderer uses the process default; SSH sessions pass their own so colors
// match the remote terminal.
func RenderScreen(s *core.Screen, r *lipgloss.Renderer) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := styleOf(s.GetCell(x, y))

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if styleOf(cell) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(start.on(r).Render(run.String()))
		}
	}
	return sb.String()
}
