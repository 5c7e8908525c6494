package tiles

import "github.com/vovakirdan/tui-tiles/internal/core"

// Tile is a falling unit travelling down a lane.
// Position is the distance of its top edge from the lane start; it grows
// toward the strike boundary. Negative positions are above the visible lane.
type Tile struct {
	ID       uint64
	Position float64
}

// Lane is a fixed channel bound to one input key.
// Tiles are ordered oldest first: Tiles[0] is closest to the strike boundary.
type Lane struct {
	Key     string
	Color   core.Color
	Tiles   []Tile
	Pressed bool
}

// Head returns the tile closest to the strike boundary.
func (l *Lane) Head() (Tile, bool) {
	if len(l.Tiles) == 0 {
		return Tile{}, false
	}
	return l.Tiles[0], true
}

// Tail returns the most recently queued tile.
func (l *Lane) Tail() (Tile, bool) {
	if len(l.Tiles) == 0 {
		return Tile{}, false
	}
	return l.Tiles[len(l.Tiles)-1], true
}

func (l *Lane) push(t Tile) {
	l.Tiles = append(l.Tiles, t)
}

func (l *Lane) removeAt(i int) Tile {
	t := l.Tiles[i]
	copy(l.Tiles[i:], l.Tiles[i+1:])
	l.Tiles = l.Tiles[:len(l.Tiles)-1]
	return t
}

// ordered reports whether positions strictly decrease from head to tail.
func (l *Lane) ordered() bool {
	for i := 1; i < len(l.Tiles); i++ {
		if l.Tiles[i].Position >= l.Tiles[i-1].Position {
			return false
		}
	}
	return true
}
