package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the non-lane bindings plus a combined lane binding for help.
type KeyMap struct {
	Lanes key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// NewKeyMap creates the bindings for a session with the given lane keys.
func NewKeyMap(laneKeys []string) KeyMap {
	keys := make([]string, 0, len(laneKeys))
	labels := make([]string, len(laneKeys))
	for i, k := range laneKeys {
		keys = append(keys, bindingKeys(k)...)
		labels[i] = KeyLabel(k)
	}

	return KeyMap{
		Lanes: key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(labels, " "), "hit lane"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Lanes, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Lanes}, {k.Help, k.Quit}}
}

// LaneKey returns the config name of the key in msg: "space" for the
// space bar and Bubble Tea's own name for everything else.
func LaneKey(msg tea.KeyMsg) string {
	s := msg.String()
	if s == " " || msg.Type == tea.KeySpace {
		return "space"
	}
	return s
}

// bindingKeys maps a config key name to the strings Bubble Tea may report.
func bindingKeys(name string) []string {
	if name == "space" {
		return []string{" ", "space"}
	}
	return []string{name}
}

// KeyLabel is the short on-screen label for a lane key.
func KeyLabel(name string) string {
	switch name {
	case "space":
		return "SPC"
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return strings.ToUpper(name)
}

// KeyAdapter turns terminal key presses into press/release edges.
// Terminals report no key-up, so a key counts as held until its hold window
// passes without another press; auto-repeat presses only extend the window.
type KeyAdapter struct {
	gen  uint64
	held map[string]uint64 // key -> generation of its latest press
}

// NewKeyAdapter creates an adapter with no keys held.
func NewKeyAdapter() *KeyAdapter {
	return &KeyAdapter{held: make(map[string]uint64)}
}

// Press records a press of key. It returns the generation to release with
// and whether this press is a new edge rather than a repeat.
func (a *KeyAdapter) Press(key string) (gen uint64, edge bool) {
	a.gen++
	_, held := a.held[key]
	a.held[key] = a.gen
	return a.gen, !held
}

// Release ends the hold of key if gen is its latest press. It reports
// whether a release edge should be emitted.
func (a *KeyAdapter) Release(key string, gen uint64) bool {
	latest, held := a.held[key]
	if !held || latest != gen {
		return false
	}
	delete(a.held, key)
	return true
}

// Held reports whether key is currently held.
func (a *KeyAdapter) Held(key string) bool {
	_, held := a.held[key]
	return held
}
