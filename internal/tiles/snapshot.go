package tiles

import "github.com/vovakirdan/tui-tiles/internal/core"

// LaneSnapshot is the drawable state of one lane.
type LaneSnapshot struct {
	Key     string
	Color   core.Color
	Pressed bool
	Tiles   []float64 // Tile positions, head first
}

// Snapshot is an immutable copy of the lanes after a committed tick.
type Snapshot struct {
	Tick       uint64
	LaneLength float64
	TileHeight float64
	Lanes      []LaneSnapshot
}

// Render returns a snapshot of the latest tick, or false when nothing has
// been ticked since the previous successful Render.
func (e *Engine) Render() (Snapshot, bool) {
	if e.stats.Ticks <= e.rendered {
		return Snapshot{}, false
	}
	e.rendered = e.stats.Ticks
	return e.snapshot(), true
}

// Rendered returns the tick number of the last rendered snapshot.
func (e *Engine) Rendered() uint64 {
	return e.rendered
}

func (e *Engine) snapshot() Snapshot {
	snap := Snapshot{
		Tick:       e.stats.Ticks,
		LaneLength: e.cfg.LaneLength,
		TileHeight: e.cfg.TileHeight,
		Lanes:      make([]LaneSnapshot, len(e.lanes)),
	}
	for i := range e.lanes {
		l := &e.lanes[i]
		positions := make([]float64, len(l.Tiles))
		for j, t := range l.Tiles {
			positions[j] = t.Position
		}
		snap.Lanes[i] = LaneSnapshot{
			Key:     l.Key,
			Color:   l.Color,
			Pressed: l.Pressed,
			Tiles:   positions,
		}
	}
	return snap
}
