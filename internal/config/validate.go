package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/loop"
	"github.com/vovakirdan/tui-tiles/internal/registry"
	"github.com/vovakirdan/tui-tiles/internal/tiles"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// MaxFPS is the highest accepted timing.fps.
const MaxFPS = 1000

// Validate reports every configuration problem at once. A nil result means
// ToEngine will succeed.
func (c TilesConfig) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	keys, _, err := c.Lanes.resolveKeys()
	if err != nil {
		invalid("%v", err)
	}
	count := c.Lanes.Count
	if count < 0 {
		invalid("lanes.count must not be negative, got %d", count)
	}
	if keys != nil {
		if count == 0 {
			count = len(keys)
		}
		if len(keys) == 0 {
			invalid("at least one lane is required")
		} else if count != len(keys) {
			invalid("lanes.count is %d but %d keys are mapped", count, len(keys))
		}
		seen := make(map[string]bool, len(keys))
		for i, k := range keys {
			switch {
			case k == "":
				invalid("lane %d has an empty key", i)
			case seen[k]:
				invalid("key %q is mapped to more than one lane", k)
			}
			seen[k] = true
		}
	}
	for _, name := range c.Lanes.Colors {
		if _, err := core.ParseColor(name); err != nil {
			invalid("%v", err)
		}
	}

	if !positive(c.Lanes.Length) {
		invalid("lanes.length must be positive, got %v", c.Lanes.Length)
	}
	if !positive(c.Tiles.Height) {
		invalid("tiles.height must be positive, got %v", c.Tiles.Height)
	} else if positive(c.Lanes.Length) && c.Tiles.Height > c.Lanes.Length {
		invalid("tiles.height %v exceeds lanes.length %v", c.Tiles.Height, c.Lanes.Length)
	}
	if !positive(c.Tiles.Velocity) {
		invalid("tiles.velocity must be positive, got %v", c.Tiles.Velocity)
	}
	if c.Tiles.CatchThreshold < 0 || math.IsNaN(c.Tiles.CatchThreshold) {
		invalid("tiles.catch_threshold must not be negative, got %v", c.Tiles.CatchThreshold)
	}
	if c.Timing.TickRate <= 0 || c.Timing.TickRate > loop.MaxTickRate {
		invalid("timing.tick_rate must be between 1 and %d, got %d", loop.MaxTickRate, c.Timing.TickRate)
	}
	if c.Timing.FPS <= 0 || c.Timing.FPS > MaxFPS {
		invalid("timing.fps must be between 1 and %d, got %d", MaxFPS, c.Timing.FPS)
	}
	if c.Input.HoldMS <= 0 {
		invalid("input.hold_ms must be positive, got %d", c.Input.HoldMS)
	}

	return errors.Join(errs...)
}

// ToEngine validates the configuration and converts it to engine parameters.
func (c TilesConfig) ToEngine() (tiles.Config, error) {
	if err := c.Validate(); err != nil {
		return tiles.Config{}, err
	}

	keys, layoutColors, _ := c.Lanes.resolveKeys()
	colors := layoutColors
	if len(c.Lanes.Colors) > 0 {
		colors = make([]core.Color, len(c.Lanes.Colors))
		for i, name := range c.Lanes.Colors {
			colors[i], _ = core.ParseColor(name)
		}
	}

	lanes := make([]tiles.LaneSpec, len(keys))
	for i, k := range keys {
		lanes[i] = tiles.LaneSpec{Key: k, Color: core.ColorDefault}
		if len(colors) > 0 {
			lanes[i].Color = colors[i%len(colors)]
		}
	}

	return tiles.Config{
		Lanes:          lanes,
		LaneLength:     c.Lanes.Length,
		TileHeight:     c.Tiles.Height,
		Velocity:       c.Tiles.Velocity,
		CatchThreshold: c.Tiles.CatchThreshold,
	}, nil
}

// resolveKeys returns the lane keys and the layout colors. Explicit keys win
// over the layout; the layout still supplies colors when it is set.
func (c LanesConfig) resolveKeys() ([]string, []core.Color, error) {
	var layout registry.Layout
	if c.Layout != "" {
		l, err := registry.Get(c.Layout)
		if err != nil {
			if len(c.Keys) > 0 {
				return c.Keys, nil, err
			}
			return nil, nil, err
		}
		layout = l
	}

	if len(c.Keys) > 0 {
		return c.Keys, layout.Colors, nil
	}
	if c.Layout == "" {
		return []string{}, nil, nil
	}
	return layout.Keys, layout.Colors, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
