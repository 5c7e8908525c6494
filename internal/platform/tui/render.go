package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tiles/internal/core"
)

// palette holds the ANSI color of each core.Color. ColorDefault renders
// without a foreground.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:     "1",
	core.ColorGreen:   "2",
	core.ColorYellow:  "3",
	core.ColorBlue:    "4",
	core.ColorMagenta: "5",
	core.ColorCyan:    "6",
	core.ColorWhite:   "7",
	core.ColorOrange:  "208",
	core.ColorGray:    "245",
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// styleFor returns the lipgloss style cells of color c are drawn with.
func styleFor(c core.Color) lipgloss.Style {
	fg, ok := palette[c]
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(fg)
}

// RenderScreen turns a Screen into styled terminal output, one line per row.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = renderRow(s, y)
	}
	return strings.Join(rows, "\n")
}

// renderRow styles one row, emitting a single escape sequence per run of
// same-colored cells.
func renderRow(s *core.Screen, y int) string {
	var (
		out   strings.Builder
		run   []rune
		color core.Color
	)
	flush := func() {
		if len(run) > 0 {
			out.WriteString(styleFor(color).Render(string(run)))
			run = run[:0]
		}
	}

	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != color {
			flush()
			color = cell.Color
		}
		run = append(run, cell.Rune)
	}
	flush()
	return out.String()
}
