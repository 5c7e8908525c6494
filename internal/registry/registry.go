// Package registry provides a global registry of lane layouts.
// Layouts register themselves in init() functions, allowing the CLI and the
// config loader to resolve a layout by name without hardcoded tables.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tiles/internal/core"
)

// Layout maps lanes to input keys and display colors.
type Layout struct {
	ID     string       // Unique name used in config and on the command line (e.g. "4k")
	Title  string       // Human-readable description
	Keys   []string     // One key per lane, left to right
	Colors []core.Color // Lane colors; cycled when shorter than Keys
}

// Lanes returns the number of lanes in the layout.
func (l Layout) Lanes() int {
	return len(l.Keys)
}

// ColorAt returns the color of lane i, cycling through Colors.
func (l Layout) ColorAt(i int) core.Color {
	if len(l.Colors) == 0 {
		return core.ColorDefault
	}
	return l.Colors[i%len(l.Colors)]
}

// LayoutInfo contains metadata about a registered layout.
type LayoutInfo struct {
	ID    string
	Title string
	Lanes int
}

var (
	layouts = make(map[string]Layout)
	mu      sync.RWMutex
)

// Register adds a layout to the registry.
// Panics if a layout with the same ID is already registered or has no lanes.
func Register(l Layout) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := layouts[l.ID]; exists {
		panic(fmt.Sprintf("registry: layout %q already registered", l.ID))
	}
	if len(l.Keys) == 0 {
		panic(fmt.Sprintf("registry: layout %q has no lanes", l.ID))
	}

	// Keep the registry immune to callers mutating their slices later
	l.Keys = append([]string(nil), l.Keys...)
	l.Colors = append([]core.Color(nil), l.Colors...)
	layouts[l.ID] = l
}

// List returns information about all registered layouts, sorted by lane
// count and then by ID.
func List() []LayoutInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LayoutInfo, 0, len(layouts))
	for id, l := range layouts {
		result = append(result, LayoutInfo{
			ID:    id,
			Title: l.Title,
			Lanes: l.Lanes(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Lanes != result[j].Lanes {
			return result[i].Lanes < result[j].Lanes
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns a copy of the layout registered under id.
func Get(id string) (Layout, error) {
	mu.RLock()
	defer mu.RUnlock()

	l, ok := layouts[id]
	if !ok {
		return Layout{}, fmt.Errorf("registry: unknown layout %q", id)
	}

	l.Keys = append([]string(nil), l.Keys...)
	l.Colors = append([]core.Color(nil), l.Colors...)
	return l, nil
}

// Exists checks if a layout with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := layouts[id]
	return ok
}
