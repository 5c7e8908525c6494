package registry

import "github.com/vovakirdan/tui-tiles/internal/core"

func init() {
	Register(Layout{
		ID:     "4k",
		Title:  "Four lanes on the home row",
		Keys:   []string{"d", "f", "j", "k"},
		Colors: []core.Color{core.ColorRed, core.ColorGreen, core.ColorBlue, core.ColorYellow},
	})
	Register(Layout{
		ID:     "4k-arrows",
		Title:  "Four lanes on the arrow keys",
		Keys:   []string{"left", "down", "up", "right"},
		Colors: []core.Color{core.ColorMagenta, core.ColorCyan, core.ColorGreen, core.ColorRed},
	})
	Register(Layout{
		ID:     "5k",
		Title:  "Five lanes with the space bar in the middle",
		Keys:   []string{"d", "f", "space", "j", "k"},
		Colors: []core.Color{core.ColorRed, core.ColorGreen, core.ColorOrange, core.ColorBlue, core.ColorYellow},
	})
	Register(Layout{
		ID:     "6k",
		Title:  "Six lanes on the home row",
		Keys:   []string{"s", "d", "f", "j", "k", "l"},
		Colors: []core.Color{core.ColorCyan, core.ColorRed, core.ColorGreen, core.ColorBlue, core.ColorYellow, core.ColorMagenta},
	})
	Register(Layout{
		ID:     "7k",
		Title:  "Seven lanes with the space bar in the middle",
		Keys:   []string{"s", "d", "f", "space", "j", "k", "l"},
		Colors: []core.Color{core.ColorCyan, core.ColorRed, core.ColorGreen, core.ColorOrange, core.ColorBlue, core.ColorYellow, core.ColorMagenta},
	})
}
