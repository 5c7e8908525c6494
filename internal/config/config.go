// Package config provides YAML-based configuration loading for the tiles
// game: lane layout, tile motion, loop timing and input handling.
package config

import "time"

// TilesConfig contains all configuration for a game session.
type TilesConfig struct {
	Lanes  LanesConfig  `yaml:"lanes"`
	Tiles  TileConfig   `yaml:"tiles"`
	Timing TimingConfig `yaml:"timing"`
	Input  InputConfig  `yaml:"input"`
}

// LanesConfig defines how many lanes there are and which keys drive them.
type LanesConfig struct {
	Count  int      `yaml:"count"`  // 0 = take the count from the layout or keys
	Length float64  `yaml:"length"` // Distance from lane start to the strike boundary
	Layout string   `yaml:"layout"` // Registered layout supplying keys and colors
	Keys   []string `yaml:"keys"`   // Overrides the layout keys
	Colors []string `yaml:"colors"` // Overrides the layout colors, cycled when short
}

// TileConfig defines tile geometry and motion.
type TileConfig struct {
	Height         float64 `yaml:"height"`
	Velocity       float64 `yaml:"velocity"`        // Lane units per second
	CatchThreshold float64 `yaml:"catch_threshold"` // Max distance to the boundary that still catches
}

// TimingConfig defines loop frequencies.
type TimingConfig struct {
	TickRate int `yaml:"tick_rate"` // Logic loop Hz
	FPS      int `yaml:"fps"`       // Display refresh opportunities per second
}

// InputConfig defines how key presses are turned into press/release edges.
// HoldMS trades held keys against re-taps: below the OS auto-repeat delay a
// held key yields a second press, above the re-tap interval two taps merge.
type InputConfig struct {
	HoldMS int `yaml:"hold_ms"` // A key counts as released this long after its last press
}

// HoldDuration returns the synthesized key release window.
func (c InputConfig) HoldDuration() time.Duration {
	return time.Duration(c.HoldMS) * time.Millisecond
}

// FrameInterval returns the display refresh period.
func (c TimingConfig) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FPS)
}

// Overrides holds command line values that take precedence over the file.
// Zero values leave the loaded configuration alone.
type Overrides struct {
	TickRate int
	Layout   string
}

// ApplyOverrides modifies the config based on command line flags.
// Selecting a layout drops explicit keys, colors and lane count so the layout
// defines the lanes on its own.
func ApplyOverrides(cfg *TilesConfig, o Overrides) {
	if o.TickRate > 0 {
		cfg.Timing.TickRate = o.TickRate
	}
	if o.Layout != "" {
		cfg.Lanes.Layout = o.Layout
		cfg.Lanes.Keys = nil
		cfg.Lanes.Colors = nil
		cfg.Lanes.Count = 0
	}
}
