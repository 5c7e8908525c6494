package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tiles/internal/tiles"
)

// Display connects the scheduler's render loop to a Bubble Tea program.
// Frame ticks from the program become refresh opportunities; presented
// snapshots are handed back as messages. Only the newest snapshot is kept.
type Display struct {
	frames chan struct{}
	snaps  chan tiles.Snapshot
}

// NewDisplay creates an idle display.
func NewDisplay() *Display {
	return &Display{
		frames: make(chan struct{}, 1),
		snaps:  make(chan tiles.Snapshot, 1),
	}
}

// Frames implements loop.Display.
func (d *Display) Frames() <-chan struct{} {
	return d.frames
}

// Present implements loop.Display. A snapshot the program has not picked up
// yet is replaced.
func (d *Display) Present(s tiles.Snapshot) {
	for {
		select {
		case d.snaps <- s:
			return
		default:
		}
		select {
		case <-d.snaps:
		default:
		}
	}
}

// Refresh signals one refresh opportunity. It never blocks; a pending
// signal absorbs the new one.
func (d *Display) Refresh() {
	select {
	case d.frames <- struct{}{}:
	default:
	}
}

// waitSnapshot returns a command that blocks until the next snapshot or the
// end of the session.
func (d *Display) waitSnapshot(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-d.snaps:
			return snapshotMsg(s)
		case <-done:
			return nil
		}
	}
}
