package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/loop"
	"github.com/vovakirdan/tui-tiles/internal/tiles"
)

// footerRows is the space below the lanes reserved for status and help.
const footerRows = 1

// minFrameInterval caps frame ticks at 1000 per second.
const minFrameInterval = time.Millisecond

// Model is the Bubble Tea model for one game session.
type Model struct {
	session  *Session
	keys     KeyMap
	lanes    map[string]bool
	adapter  *KeyAdapter
	help     help.Model
	screen   *core.Screen
	snap     tiles.Snapshot
	hasSnap  bool
	frame    time.Duration
	hold     time.Duration
	hidden   bool
	err      error
	quitting bool
}

// NewModel creates a model that presents session.
func NewModel(session *Session, cfg core.RuntimeConfig) Model {
	laneKeys := session.Keys()
	lanes := make(map[string]bool, len(laneKeys))
	for _, k := range laneKeys {
		lanes[k] = true
	}

	frame := session.cfg.Timing.FrameInterval()
	if cfg.FPS > 0 {
		frame = time.Second / time.Duration(cfg.FPS)
	}
	if frame < minFrameInterval {
		frame = minFrameInterval
	}

	return Model{
		session: session,
		keys:    NewKeyMap(laneKeys),
		lanes:   lanes,
		adapter: NewKeyAdapter(),
		help:    help.New(),
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH-footerRows),
		frame:   frame,
		hold:    session.cfg.Input.HoldDuration(),
	}
}

// Init starts frame pacing and the session watchers.
func (m Model) Init() tea.Cmd {
	done := m.session.sched.Done()
	return tea.Batch(
		frameCmd(m.frame),
		m.session.display.waitSnapshot(done),
		func() tea.Msg {
			<-done
			return sessionDoneMsg{err: m.session.sched.Err()}
		},
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case releaseMsg:
		if m.adapter.Release(msg.key, msg.gen) {
			return m.input(core.Release(msg.key))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height-footerRows)
		m.help.Width = msg.Width
		return m, nil

	case tea.BlurMsg:
		m.hidden = true
		m.session.sched.SetHidden(true)
		return m, nil

	case tea.FocusMsg:
		m.hidden = false
		m.session.sched.SetHidden(false)
		return m, nil

	case FrameMsg:
		if m.quitting {
			return m, nil
		}
		m.session.display.Refresh()
		return m, frameCmd(m.frame)

	case snapshotMsg:
		m.snap = tiles.Snapshot(msg)
		m.hasSnap = true
		return m, m.session.display.waitSnapshot(m.session.sched.Done())

	case sessionDoneMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input. Lane keys take precedence over the
// help binding; ctrl+c always quits.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if name := LaneKey(msg); m.lanes[name] {
		gen, edge := m.adapter.Press(name)
		release := releaseCmd(name, gen, m.hold)
		if !edge {
			return m, release
		}
		next, cmd := m.input(core.Press(name))
		return next, tea.Batch(cmd, release)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// input forwards one lane edge to the scheduler. A panicking engine ends the
// session; input after teardown is dropped.
func (m Model) input(ev core.InputEvent) (tea.Model, tea.Cmd) {
	err := m.session.sched.Input(ev.Key, ev.Type)
	switch {
	case err == nil, errors.Is(err, loop.ErrStopped):
		return m, nil
	default:
		m.err = err
		return m.quit()
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.session.Stop()
	return m, tea.Quit
}

// View renders the latest snapshot to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.hasSnap {
		m.screen.Clear()
		m.screen.DrawTextCentered(m.screen.Height()/2, "get ready", core.ColorGray)
	} else {
		Draw(m.screen, m.snap)
	}

	footer := m.help.View(m.keys)
	if m.hidden {
		footer = statusStyle.Render("paused  ") + footer
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Err returns the fatal session error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts a session and a Bubble Tea program for it on the local terminal.
// It returns once the player quits or the session fails.
func Run(ctx context.Context, opts SessionOptions, cfg core.RuntimeConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	session, err := StartSession(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		NewModel(session, cfg),
		tea.WithAltScreen(),   // Use alternate screen buffer
		tea.WithReportFocus(), // Blur/focus pause the logic loop
		tea.WithContext(ctx),
	)

	final, runErr := p.Run()
	session.Stop()
	sessionErr := session.Wait()

	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	if sessionErr != nil {
		return sessionErr
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return runErr
	}
	return nil
}
