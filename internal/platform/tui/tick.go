// Package tui provides the Bubble Tea integration for the tiles game.
// It adapts terminal key presses into lane edges, paces the render loop from
// frame ticks and draws engine snapshots.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tiles/internal/tiles"
)

// FrameMsg is one display refresh opportunity.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends a frame message after interval.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// releaseMsg ends the hold window of a lane key. Stale generations are ignored.
type releaseMsg struct {
	key string
	gen uint64
}

// releaseCmd schedules the synthesized key-up for one press.
func releaseCmd(key string, gen uint64, hold time.Duration) tea.Cmd {
	return tea.Tick(hold, func(time.Time) tea.Msg {
		return releaseMsg{key: key, gen: gen}
	})
}

// snapshotMsg carries a snapshot presented by the render loop.
type snapshotMsg tiles.Snapshot

// sessionDoneMsg reports that both loops exited.
type sessionDoneMsg struct {
	err error
}
