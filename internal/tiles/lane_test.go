package tiles

import "testing"

func TestLaneHeadTail(t *testing.T) {
	var l Lane
	if _, ok := l.Head(); ok {
		t.Error("empty lane should have no head")
	}
	if _, ok := l.Tail(); ok {
		t.Error("empty lane should have no tail")
	}

	l.push(Tile{ID: 1, Position: 50})
	l.push(Tile{ID: 2, Position: 10})
	l.push(Tile{ID: 3, Position: -30})

	if h, _ := l.Head(); h.ID != 1 {
		t.Errorf("head should be the oldest tile, got %d", h.ID)
	}
	if tl, _ := l.Tail(); tl.ID != 3 {
		t.Errorf("tail should be the newest tile, got %d", tl.ID)
	}
	if !l.ordered() {
		t.Error("lane should be ordered")
	}
}

func TestLaneRemoveAt(t *testing.T) {
	l := Lane{Tiles: []Tile{{ID: 1, Position: 50}, {ID: 2, Position: 10}, {ID: 3, Position: -30}}}

	removed := l.removeAt(1)
	if removed.ID != 2 {
		t.Errorf("removeAt(1) returned tile %d", removed.ID)
	}
	if len(l.Tiles) != 2 || l.Tiles[0].ID != 1 || l.Tiles[1].ID != 3 {
		t.Errorf("unexpected tiles after removal: %+v", l.Tiles)
	}
}

func TestLaneOrdered(t *testing.T) {
	l := Lane{Tiles: []Tile{{Position: 10}, {Position: 10}}}
	if l.ordered() {
		t.Error("equal positions are not strictly ordered")
	}
	l.Tiles[1].Position = 20
	if l.ordered() {
		t.Error("tail below head is out of order")
	}
}
