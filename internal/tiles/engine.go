// Package tiles implements the falling-tile game state: lanes, tile spawning
// and recycling, and the reduction of lane key edges into state changes.
// It has no notion of time sources or terminals; a scheduler drives Tick and
// Render and a host adapter draws the snapshots.
package tiles

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-tiles/internal/core"
)

// Rand is the randomness the engine needs to pick spawn lanes.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// SpawnReason tells why a tile was created.
type SpawnReason int

const (
	SpawnInitial  SpawnReason = iota // Seeding the lanes at session start
	SpawnBoundary                    // Replacing a tile that reached the strike boundary
	SpawnInput                       // Replacing a tile caught by a press
	SpawnManual                      // Explicit Spawn call
)

// String returns a human-readable name for the reason.
func (r SpawnReason) String() string {
	switch r {
	case SpawnInitial:
		return "initial"
	case SpawnBoundary:
		return "boundary"
	case SpawnInput:
		return "input"
	case SpawnManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Spawn describes one tile creation.
type Spawn struct {
	Lane     int
	Tile     Tile
	Previous float64 // Position of the previously spawned tile at this moment
	Reason   SpawnReason
}

// Stats are running counters for a session.
type Stats struct {
	Ticks    uint64
	Spawns   uint64
	Boundary uint64 // Tiles removed at the strike boundary
	Caught   uint64 // Tiles consumed by a press
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the source used to pick spawn lanes.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed seeds the default spawn lane source.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithSpawnHook registers a callback invoked synchronously on every spawn.
func WithSpawnHook(fn func(Spawn)) Option {
	return func(e *Engine) { e.onSpawn = fn }
}

// lastSpawn is a value copy of the newest tile's spacing data. It is kept in
// sync while that tile advances and is never a handle into a lane queue.
type lastSpawn struct {
	lane     int
	id       uint64
	position float64
	gone     bool // Tile already left its lane
}

// Engine owns the lanes and is their only writer. It is not safe for
// concurrent use; the scheduler serializes access.
type Engine struct {
	cfg      Config
	lanes    []Lane
	byKey    map[string]int
	rng      Rand
	onSpawn  func(Spawn)
	last     lastSpawn
	nextID   uint64
	rendered uint64
	stats    Stats

	// Running tick state: tiles with IDs up to fresh that sit in lanes after
	// walk have not moved yet this tick.
	walking bool
	walk    int
	fresh   uint64
	step    float64
}

// New validates cfg and returns an engine with its lanes seeded.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:   cfg,
		lanes: make([]Lane, len(cfg.Lanes)),
		byKey: make(map[string]int, len(cfg.Lanes)),
	}
	for i, spec := range cfg.Lanes {
		e.lanes[i] = Lane{Key: spec.Key, Color: spec.Color}
		e.byKey[spec.Key] = i
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1))
	}

	e.Reset()
	return e, nil
}

// Reset clears every lane and reseeds the initial tiles from the sentinel.
// Counters start over; the random source is not reseeded.
func (e *Engine) Reset() {
	for i := range e.lanes {
		e.lanes[i].Tiles = e.lanes[i].Tiles[:0]
		e.lanes[i].Pressed = false
	}
	e.stats = Stats{}
	e.rendered = 0
	e.last = lastSpawn{lane: -1, position: -e.cfg.TileHeight}

	for i := 0; i < e.cfg.InitialTiles(); i++ {
		e.spawn(-1, SpawnInitial)
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Stats returns the running counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// LiveTiles returns the number of tiles across all lanes.
func (e *Engine) LiveTiles() int {
	n := 0
	for i := range e.lanes {
		n += len(e.lanes[i].Tiles)
	}
	return n
}

// Tick advances the game by dt seconds. Each lane is walked from its tail to
// its head; a tile whose bottom edge has reached the strike boundary is
// removed and replaced before the walk continues, any other tile moves.
// Tiles spawned during the tick do not move until the next one.
func (e *Engine) Tick(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	e.step = dt * e.cfg.Velocity
	e.fresh = e.nextID
	e.walking = true

	for li := range e.lanes {
		e.walk = li
		lane := &e.lanes[li]
		for i := len(lane.Tiles) - 1; i >= 0; i-- {
			t := lane.Tiles[i]
			if t.ID > e.fresh {
				continue
			}
			if e.crossed(t) {
				e.remove(li, i)
				e.stats.Boundary++
				e.spawn(-1, SpawnBoundary)
				continue
			}
			lane.Tiles[i].Position += e.step
			if t.ID == e.last.id {
				e.last.position = lane.Tiles[i].Position
			}
		}
	}

	e.walking = false
	e.stats.Ticks++
}

// settled returns where t will be once the running tick completes.
func (e *Engine) settled(lane int, t Tile) float64 {
	if e.walking && t.ID <= e.fresh && lane > e.walk {
		return t.Position + e.step
	}
	return t.Position
}

// remove takes the tile at index i out of a lane.
func (e *Engine) remove(lane, i int) Tile {
	t := e.lanes[lane].removeAt(i)
	if t.ID == e.last.id {
		e.last.gone = true
	}
	return t
}

// crossed reports whether the tile's bottom edge reached the strike boundary.
func (e *Engine) crossed(t Tile) bool {
	return t.Position+e.cfg.TileHeight >= e.cfg.LaneLength
}

// Spawn creates one tile in the given lane, or in a random lane when lane is
// negative or out of range.
func (e *Engine) Spawn(lane int) Tile {
	return e.spawn(lane, SpawnManual)
}

// spawn places a tile one tile height above the previous spawn. When that
// slot would already be more than half a tile inside the lane, the tile
// enters from one tile height before the lane start instead.
func (e *Engine) spawn(lane int, reason SpawnReason) Tile {
	h := e.cfg.TileHeight
	if lane < 0 || lane >= len(e.lanes) {
		lane = e.rng.Intn(len(e.lanes))
	}

	prev := e.last.position
	if !e.last.gone {
		prev = e.settled(e.last.lane, Tile{ID: e.last.id, Position: prev})
	}
	pos := prev - h
	if pos > -h/2 {
		pos = -h
	}
	// Keep the target queue strictly ordered even after an oversized step.
	if tail, ok := e.lanes[lane].Tail(); ok {
		if limit := e.settled(lane, tail) - h; pos > limit {
			pos = limit
		}
	}

	e.nextID++
	t := Tile{ID: e.nextID, Position: pos}
	e.lanes[lane].push(t)
	e.last = lastSpawn{lane: lane, id: t.ID, position: pos}
	e.stats.Spawns++

	if e.onSpawn != nil {
		e.onSpawn(Spawn{Lane: lane, Tile: t, Previous: prev, Reason: reason})
	}
	return t
}

// HandleInput applies one key edge. A press on an idle lane marks it pressed
// and, when the head tile is within the catch threshold of the strike
// boundary, consumes that tile and spawns its replacement. Presses on an
// already pressed lane are auto-repeat and are ignored. Unknown keys are a
// no-op.
func (e *Engine) HandleInput(key string, ev core.EventType) {
	li, ok := e.byKey[key]
	if !ok {
		return
	}
	lane := &e.lanes[li]

	switch ev {
	case core.EventPress:
		if lane.Pressed {
			return
		}
		lane.Pressed = true
		if head, ok := lane.Head(); ok && e.catchable(head) {
			e.remove(li, 0)
			e.stats.Caught++
			e.spawn(-1, SpawnInput)
		}
	case core.EventRelease:
		lane.Pressed = false
	}
}

// catchable reports whether a press may consume the tile.
func (e *Engine) catchable(t Tile) bool {
	return e.cfg.LaneLength-(t.Position+e.cfg.TileHeight) <= e.cfg.CatchThreshold
}
