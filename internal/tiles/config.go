package tiles

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-tiles/internal/core"
)

// ErrInvalidConfig is wrapped by every configuration error returned from New.
var ErrInvalidConfig = errors.New("tiles: invalid config")

// LaneSpec fixes the identity of one lane for the whole session.
type LaneSpec struct {
	Key   string     // Input symbol the lane responds to
	Color core.Color // Display color
}

// Config holds the engine parameters. All distances share one unit
// (whatever the host maps to rows); velocity is units per second.
type Config struct {
	Lanes          []LaneSpec
	LaneLength     float64 // Distance from lane start to the strike boundary
	TileHeight     float64 // Tile extent along the lane, also the spawn spacing
	Velocity       float64 // Units per second
	CatchThreshold float64 // Max distance to the boundary at which a press consumes the head
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if len(c.Lanes) == 0 {
		invalid("at least one lane is required")
	}
	seen := make(map[string]bool, len(c.Lanes))
	for i, l := range c.Lanes {
		if l.Key == "" {
			invalid("lane %d has no key", i)
			continue
		}
		if seen[l.Key] {
			invalid("key %q is mapped to more than one lane", l.Key)
		}
		seen[l.Key] = true
	}
	if !positive(c.LaneLength) {
		invalid("lane length must be positive, got %v", c.LaneLength)
	}
	if !positive(c.TileHeight) {
		invalid("tile height must be positive, got %v", c.TileHeight)
	} else if positive(c.LaneLength) && c.TileHeight > c.LaneLength {
		invalid("tile height %v exceeds lane length %v", c.TileHeight, c.LaneLength)
	}
	if !positive(c.Velocity) {
		invalid("velocity must be positive, got %v", c.Velocity)
	}
	if c.CatchThreshold < 0 || math.IsNaN(c.CatchThreshold) {
		invalid("catch threshold must not be negative, got %v", c.CatchThreshold)
	}

	return errors.Join(errs...)
}

// InitialTiles is the number of tiles in flight for the whole session.
func (c Config) InitialTiles() int {
	n := int(math.Ceil(c.LaneLength / c.TileHeight))
	if n < 1 {
		return 1
	}
	return n
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
