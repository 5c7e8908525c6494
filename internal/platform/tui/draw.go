package tui

import (
	"math"

	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/tiles"
)

const (
	maxLaneWidth = 9
	tileRune     = '█'
	sepRune      = '│'
	strikeRune   = '─'
)

// Draw renders a snapshot into dst. Lanes are centered columns; tile
// positions are scaled from lane units to rows so the strike boundary sits
// just above the key labels.
func Draw(dst *core.Screen, snap tiles.Snapshot) {
	dst.Clear()

	n := len(snap.Lanes)
	w, h := dst.Width(), dst.Height()
	if n == 0 || w < 2*n+1 || h < 3 || snap.LaneLength <= 0 {
		dst.DrawTextCentered(h/2, "terminal too small", core.ColorGray)
		return
	}

	laneRows := h - 2
	strikeY := laneRows
	labelY := laneRows + 1

	laneW := core.Clamp((w-(n+1))/n, 1, maxLaneWidth)
	total := n*laneW + n + 1
	left := (w - total) / 2
	scale := float64(laneRows) / snap.LaneLength

	for i := 0; i <= n; i++ {
		dst.DrawVLine(left+i*(laneW+1), 0, laneRows, sepRune, core.ColorGray)
	}

	for i, lane := range snap.Lanes {
		x := left + 1 + i*(laneW+1)

		for _, pos := range lane.Tiles {
			top := int(math.Floor(pos * scale))
			bottom := int(math.Ceil((pos+snap.TileHeight)*scale)) - 1
			if bottom < 0 || top >= laneRows {
				continue
			}
			top = core.Max(top, 0)
			bottom = core.Min(bottom, laneRows-1)
			dst.DrawRect(core.NewRect(x, top, laneW, bottom-top+1), tileRune, lane.Color)
		}

		if lane.Pressed {
			dst.DrawHLine(x, strikeY, laneW, tileRune, lane.Color)
		} else {
			dst.DrawHLine(x, strikeY, laneW, strikeRune, core.ColorGray)
		}

		label := KeyLabel(lane.Key)
		lx := x + (laneW-len([]rune(label)))/2
		dst.DrawText(core.Max(lx, x), labelY, label, lane.Color)
	}
}
