package tiles

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-tiles/internal/core"
)

const eps = 1e-9

// fixedRand returns the values of seq in order, wrapping around.
type fixedRand struct {
	seq []int
	i   int
}

func (r *fixedRand) Intn(n int) int {
	v := r.seq[r.i%len(r.seq)] % n
	r.i++
	return v
}

func testConfig() Config {
	return Config{
		Lanes: []LaneSpec{
			{Key: "d", Color: core.ColorRed},
			{Key: "f", Color: core.ColorGreen},
			{Key: "j", Color: core.ColorBlue},
			{Key: "k", Color: core.ColorYellow},
		},
		LaneLength:     160,
		TileHeight:     40,
		Velocity:       160,
		CatchThreshold: 40,
	}
}

func newTestEngine(t *testing.T, cfg Config, opts ...Option) *Engine {
	t.Helper()
	e, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return e
}

// injectHead puts a tile in front of a lane's queue as if it had been
// spawned long ago.
func injectHead(e *Engine, lane int, pos float64) uint64 {
	e.nextID++
	e.lanes[lane].Tiles = append([]Tile{{ID: e.nextID, Position: pos}}, e.lanes[lane].Tiles...)
	return e.nextID
}

func positions(l Lane) []float64 {
	out := make([]float64, len(l.Tiles))
	for i, tl := range l.Tiles {
		out[i] = tl.Position
	}
	return out
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero lanes", func(c *Config) { c.Lanes = nil }},
		{"zero velocity", func(c *Config) { c.Velocity = 0 }},
		{"negative velocity", func(c *Config) { c.Velocity = -10 }},
		{"zero lane length", func(c *Config) { c.LaneLength = 0 }},
		{"zero tile height", func(c *Config) { c.TileHeight = 0 }},
		{"tile taller than lane", func(c *Config) { c.TileHeight = 200 }},
		{"negative threshold", func(c *Config) { c.CatchThreshold = -1 }},
		{"NaN velocity", func(c *Config) { c.Velocity = math.NaN() }},
		{"duplicate key", func(c *Config) { c.Lanes[1].Key = "d" }},
		{"empty key", func(c *Config) { c.Lanes[2].Key = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			e, err := New(cfg)
			if err == nil {
				t.Fatal("expected configuration error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
			if e != nil {
				t.Error("no engine should be returned on configuration error")
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := testConfig()
	cfg.Velocity = 0
	cfg.CatchThreshold = -5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected joined error, got %T", err)
	}
	if n := len(joined.Unwrap()); n != 2 {
		t.Errorf("expected 2 problems, got %d: %v", n, err)
	}
}

func TestInitialTiles(t *testing.T) {
	e := newTestEngine(t, testConfig(), WithRand(&fixedRand{seq: []int{0, 1, 2, 3}}))

	if got := e.LiveTiles(); got != 4 {
		t.Fatalf("expected ceil(160/40)=4 initial tiles, got %d", got)
	}

	// One tile per lane, stacked upward from the sentinel at -40.
	expected := []float64{-80, -120, -160, -200}
	for i, want := range expected {
		got := positions(e.lanes[i])
		if len(got) != 1 || got[0] != want {
			t.Errorf("lane %d: expected [%v], got %v", i, want, got)
		}
	}
}

func TestInitialTilesRoundUp(t *testing.T) {
	cfg := testConfig()
	cfg.LaneLength = 150
	e := newTestEngine(t, cfg)

	if got := e.LiveTiles(); got != 4 {
		t.Errorf("expected ceil(150/40)=4 tiles, got %d", got)
	}
}

// Scenario A: every initial tile moves by velocity*dt on the first tick.
func TestTickAdvancesInitialTiles(t *testing.T) {
	e := newTestEngine(t, testConfig(), WithSeed(7))

	before := make(map[uint64]float64)
	for _, l := range e.lanes {
		for _, tl := range l.Tiles {
			before[tl.ID] = tl.Position
		}
	}

	e.Tick(1.0)

	after := 0
	for _, l := range e.lanes {
		for _, tl := range l.Tiles {
			prev, ok := before[tl.ID]
			if !ok {
				t.Errorf("unexpected new tile %d after first tick", tl.ID)
				continue
			}
			if math.Abs(tl.Position-prev-160) > eps {
				t.Errorf("tile %d moved from %v to %v, expected +160", tl.ID, prev, tl.Position)
			}
			after++
		}
	}
	if after != len(before) {
		t.Errorf("expected %d tiles after tick, got %d", len(before), after)
	}
}

// Scenario B: a tile touching the boundary is removed before it would move.
func TestTickRemovesCrossedTileBeforeMoving(t *testing.T) {
	var spawns []Spawn
	e := newTestEngine(t, testConfig(),
		WithRand(&fixedRand{seq: []int{1}}),
		WithSpawnHook(func(s Spawn) { spawns = append(spawns, s) }),
	)

	// Put a tile at 120 at the head of lane 0: 120+40 >= 160.
	id := injectHead(e, 0, 120)
	live := e.LiveTiles()
	spawns = nil

	e.Tick(0.01)

	for _, tl := range e.lanes[0].Tiles {
		if tl.ID == id {
			t.Fatalf("crossed tile should be removed, still at %v", tl.Position)
		}
	}
	if len(spawns) != 1 {
		t.Fatalf("expected exactly one replacement spawn, got %d", len(spawns))
	}
	if spawns[0].Reason != SpawnBoundary {
		t.Errorf("expected boundary spawn, got %v", spawns[0].Reason)
	}
	if e.LiveTiles() != live-1+1 {
		t.Errorf("live tiles changed from %d to %d", live, e.LiveTiles())
	}
	if e.Stats().Boundary != 1 {
		t.Errorf("expected 1 boundary removal, got %d", e.Stats().Boundary)
	}
}

func TestTickCrossingsAreIndependentPerLane(t *testing.T) {
	e := newTestEngine(t, testConfig(), WithRand(&fixedRand{seq: []int{3}}))

	injectHead(e, 0, 130)
	injectHead(e, 1, 125)
	live := e.LiveTiles()

	e.Tick(0.01)

	if got := e.Stats().Boundary; got != 2 {
		t.Errorf("expected 2 boundary removals, got %d", got)
	}
	if got := e.Stats().Spawns; got != 4+2 {
		t.Errorf("expected 6 spawns in total, got %d", got)
	}
	if e.LiveTiles() != live {
		t.Errorf("live tiles changed from %d to %d", live, e.LiveTiles())
	}
}

func TestTickNegativeDeltaDoesNotMove(t *testing.T) {
	e := newTestEngine(t, testConfig())
	before := e.snapshot()

	e.Tick(-1)
	e.Tick(math.NaN())

	after := e.snapshot()
	if !reflect.DeepEqual(before.Lanes, after.Lanes) {
		t.Errorf("negative or NaN dt should not move tiles")
	}
	if e.Stats().Ticks != 2 {
		t.Errorf("ticks should still be counted, got %d", e.Stats().Ticks)
	}
}

func TestSpawnSpacingInvariant(t *testing.T) {
	cfg := testConfig()
	h := cfg.TileHeight
	var spawns []Spawn
	e := newTestEngine(t, cfg,
		WithSeed(42),
		WithSpawnHook(func(s Spawn) { spawns = append(spawns, s) }),
	)

	keys := []string{"d", "f", "j", "k"}
	for i := 0; i < 3000; i++ {
		e.Tick(1.0 / 45)
		if i%7 == 0 {
			k := keys[(i/7)%len(keys)]
			e.HandleInput(k, core.EventPress)
			e.HandleInput(k, core.EventRelease)
		}
	}

	if len(spawns) < 100 {
		t.Fatalf("expected a steady flow of spawns, got %d", len(spawns))
	}
	for i, s := range spawns {
		gap := s.Previous - s.Tile.Position
		clamped := s.Tile.Position == -h && s.Previous-h > -h/2
		if !clamped && math.Abs(gap-h) > eps {
			t.Fatalf("spawn %d (%v): gap to previous spawn is %v, expected %v", i, s.Reason, gap, h)
		}
	}
}

func TestSpawnEntersAboveLaneWhenBehind(t *testing.T) {
	cfg := testConfig()
	e := newTestEngine(t, cfg, WithRand(&fixedRand{seq: []int{2}}))

	// The newest tile has already fallen deep into the lane.
	e.last = lastSpawn{lane: 0, id: 1, position: 60}
	for i := range e.lanes {
		e.lanes[i].Tiles = nil
	}

	tl := e.Spawn(-1)
	if tl.Position != -cfg.TileHeight {
		t.Errorf("expected tile to enter at %v, got %v", -cfg.TileHeight, tl.Position)
	}
	if got := positions(e.lanes[2]); len(got) != 1 {
		t.Errorf("expected tile in lane 2, got %v", got)
	}
}

func TestSpawnExplicitLane(t *testing.T) {
	e := newTestEngine(t, testConfig(), WithRand(&fixedRand{seq: []int{0}}))

	before := len(e.lanes[3].Tiles)
	e.Spawn(3)
	if len(e.lanes[3].Tiles) != before+1 {
		t.Errorf("Spawn(3) should add to lane 3")
	}

	// Out of range falls back to a random lane.
	before0 := len(e.lanes[0].Tiles)
	e.Spawn(17)
	if len(e.lanes[0].Tiles) != before0+1 {
		t.Errorf("Spawn(17) should fall back to the random lane 0")
	}
}

func TestSpawnedTilesWaitForNextTick(t *testing.T) {
	cfg := testConfig()
	var spawned []Spawn
	// Replacement goes to lane 3, which is walked after lane 0.
	e := newTestEngine(t, cfg,
		WithRand(&fixedRand{seq: []int{0, 0, 0, 0, 3}}),
		WithSpawnHook(func(s Spawn) { spawned = append(spawned, s) }),
	)
	injectHead(e, 0, 121)
	spawned = nil

	e.Tick(0.1)

	if len(spawned) != 1 {
		t.Fatalf("expected one spawn, got %d", len(spawned))
	}
	got := positions(e.lanes[3])
	if len(got) != 1 || got[0] != spawned[0].Tile.Position {
		t.Errorf("new tile should not move during its spawn tick, lane 3 = %v, spawned at %v",
			got, spawned[0].Tile.Position)
	}
	// The newest of the initial tiles ends the tick one tile height below it.
	top := positions(e.lanes[0])
	if gap := top[len(top)-1] - got[0]; math.Abs(gap-cfg.TileHeight) > eps {
		t.Errorf("expected spacing %v at the end of the tick, got %v", cfg.TileHeight, gap)
	}
}

func TestLaneOrderingInvariant(t *testing.T) {
	e := newTestEngine(t, testConfig(), WithSeed(99))

	for i := 0; i < 2000; i++ {
		// Irregular steps, including a large one.
		dt := 1.0 / 45
		if i%97 == 0 {
			dt = 0.4
		}
		e.Tick(dt)
		if i%5 == 0 {
			e.HandleInput("j", core.EventPress)
		} else if i%5 == 2 {
			e.HandleInput("j", core.EventRelease)
		}
		for li := range e.lanes {
			if !e.lanes[li].ordered() {
				t.Fatalf("tick %d: lane %d out of order: %v", i, li, positions(e.lanes[li]))
			}
		}
	}
}

func TestTileConservation(t *testing.T) {
	e := newTestEngine(t, testConfig(), WithSeed(3))
	live := e.LiveTiles()
	initial := e.Stats().Spawns

	for i := 0; i < 1500; i++ {
		e.Tick(1.0 / 45)
		if i%3 == 0 {
			e.HandleInput("f", core.EventPress)
			e.HandleInput("k", core.EventPress)
		} else {
			e.HandleInput("f", core.EventRelease)
			e.HandleInput("k", core.EventRelease)
		}
		if e.LiveTiles() != live {
			t.Fatalf("tick %d: live tiles changed from %d to %d", i, live, e.LiveTiles())
		}
	}

	st := e.Stats()
	if st.Spawns != initial+st.Boundary+st.Caught {
		t.Errorf("spawns %d != initial %d + boundary %d + caught %d",
			st.Spawns, initial, st.Boundary, st.Caught)
	}
	if st.Boundary == 0 {
		t.Error("expected some tiles to reach the boundary")
	}
}

// Scenario C: a press catches the head only when it is near the boundary.
func TestPressCatchesHeadWithinThreshold(t *testing.T) {
	cfg := testConfig()
	e := newTestEngine(t, cfg, WithRand(&fixedRand{seq: []int{0}}))

	// Everything is in lane 0: 80, 40, 0, -40 after one second.
	e.Tick(1.0)
	if got := positions(e.lanes[0]); !reflect.DeepEqual(got, []float64{80, 40, 0, -40}) {
		t.Fatalf("unexpected lane 0 after tick: %v", got)
	}

	e.HandleInput("d", core.EventPress)

	if !e.lanes[0].Pressed {
		t.Error("lane should be pressed")
	}
	if got := positions(e.lanes[0]); !reflect.DeepEqual(got, []float64{40, 0, -40, -80}) {
		t.Errorf("head should be consumed and replaced above, got %v", got)
	}
	if e.Stats().Caught != 1 {
		t.Errorf("expected 1 catch, got %d", e.Stats().Caught)
	}
}

func TestPressFarFromBoundaryOnlyPresses(t *testing.T) {
	cfg := testConfig()
	cfg.CatchThreshold = 20
	e := newTestEngine(t, cfg, WithRand(&fixedRand{seq: []int{0}}))
	e.Tick(1.0)

	e.HandleInput("d", core.EventPress)

	if !e.lanes[0].Pressed {
		t.Error("lane should be pressed")
	}
	if len(e.lanes[0].Tiles) != 4 {
		t.Errorf("no tile should be consumed, got %v", positions(e.lanes[0]))
	}
	if e.Stats().Caught != 0 {
		t.Errorf("expected no catches, got %d", e.Stats().Caught)
	}
}

func TestPressOnEmptyLane(t *testing.T) {
	e := newTestEngine(t, testConfig(), WithRand(&fixedRand{seq: []int{0}}))

	e.HandleInput("k", core.EventPress)

	if !e.lanes[3].Pressed {
		t.Error("empty lane should still become pressed")
	}
	if e.LiveTiles() != 4 {
		t.Errorf("live tiles changed: %d", e.LiveTiles())
	}
}

func TestRepeatedPressIsIgnored(t *testing.T) {
	cfg := testConfig()
	cfg.CatchThreshold = 1000 // every head is catchable
	e := newTestEngine(t, cfg, WithRand(&fixedRand{seq: []int{0}}))

	e.HandleInput("d", core.EventPress)
	e.HandleInput("d", core.EventPress)
	e.HandleInput("d", core.EventPress)

	if got := e.Stats().Caught; got != 1 {
		t.Errorf("auto-repeat presses should catch at most once, got %d", got)
	}

	e.HandleInput("d", core.EventRelease)
	if e.lanes[0].Pressed {
		t.Error("release should clear pressed")
	}
	e.HandleInput("d", core.EventPress)
	if got := e.Stats().Caught; got != 2 {
		t.Errorf("a new press edge should catch again, got %d", got)
	}
}

func TestUnmappedKeyIsIgnored(t *testing.T) {
	e := newTestEngine(t, testConfig())
	before := e.snapshot()

	e.HandleInput("x", core.EventPress)
	e.HandleInput("", core.EventRelease)

	if !reflect.DeepEqual(before, e.snapshot()) {
		t.Error("unmapped keys should not change state")
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	e := newTestEngine(t, testConfig())

	if _, ok := e.Render(); ok {
		t.Fatal("render before the first tick should be skipped")
	}

	e.Tick(0.1)
	first, ok := e.Render()
	if !ok {
		t.Fatal("render after a tick should produce a snapshot")
	}
	if first.Tick != 1 || e.Rendered() != 1 {
		t.Errorf("expected snapshot and rendered counter at tick 1, got %d / %d", first.Tick, e.Rendered())
	}

	if _, ok := e.Render(); ok {
		t.Error("second render without a tick should be skipped")
	}
	if e.Rendered() != 1 {
		t.Errorf("skipped render should not move the counter, got %d", e.Rendered())
	}

	e.Tick(0.1)
	e.Tick(0.1)
	second, ok := e.Render()
	if !ok || second.Tick != 3 {
		t.Errorf("expected snapshot of tick 3, got %d (ok=%v)", second.Tick, ok)
	}
}

func TestRenderSnapshotIsACopy(t *testing.T) {
	e := newTestEngine(t, testConfig(), WithRand(&fixedRand{seq: []int{0}}))
	e.Tick(0.5)

	snap, _ := e.Render()
	if snap.LaneLength != 160 || snap.TileHeight != 40 {
		t.Errorf("snapshot geometry mismatch: %+v", snap)
	}
	if len(snap.Lanes) != 4 || snap.Lanes[0].Key != "d" || snap.Lanes[0].Color != core.ColorRed {
		t.Fatalf("unexpected lanes: %+v", snap.Lanes)
	}

	snap.Lanes[0].Tiles[0] = 12345
	if e.lanes[0].Tiles[0].Position == 12345 {
		t.Error("mutating a snapshot should not touch the engine")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		e := newTestEngine(t, testConfig(), WithSeed(12345))
		for i := 0; i < 500; i++ {
			e.Tick(1.0 / 45)
			if i%11 == 0 {
				e.HandleInput("j", core.EventPress)
			}
			if i%11 == 5 {
				e.HandleInput("j", core.EventRelease)
			}
		}
		snap, _ := e.Render()
		return snap
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with the same seed and inputs should produce identical snapshots")
	}
}

func TestReset(t *testing.T) {
	e := newTestEngine(t, testConfig(), WithSeed(5))
	for i := 0; i < 200; i++ {
		e.Tick(1.0 / 45)
	}
	e.HandleInput("d", core.EventPress)

	e.Reset()

	if e.Stats().Ticks != 0 || e.Rendered() != 0 {
		t.Errorf("Reset should clear counters, got %+v", e.Stats())
	}
	if e.LiveTiles() != 4 {
		t.Errorf("Reset should reseed 4 tiles, got %d", e.LiveTiles())
	}
	for i := range e.lanes {
		if e.lanes[i].Pressed {
			t.Errorf("lane %d still pressed after Reset", i)
		}
	}
}
