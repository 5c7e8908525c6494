package config

import (
	_ "embed"
)

//go:embed defaults/tiles.yaml
var defaultTilesYAML []byte

// DefaultTilesConfig returns the default configuration.
func DefaultTilesConfig() TilesConfig {
	return TilesConfig{
		Lanes: LanesConfig{
			Count:  4,
			Length: 160,
			Layout: "4k",
		},
		Tiles: TileConfig{
			Height:         40,
			Velocity:       160,
			CatchThreshold: 40,
		},
		Timing: TimingConfig{
			TickRate: 45,
			FPS:      60,
		},
		Input: InputConfig{
			HoldMS: 300,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTilesYAML
}
