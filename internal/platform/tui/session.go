package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/loop"
	"github.com/vovakirdan/tui-tiles/internal/tiles"
)

// SessionOptions configures one game session.
type SessionOptions struct {
	Config config.TilesConfig
	Seed   int64       // 0 = time-based seed
	Logger *log.Logger // Defaults to a discarding logger
}

// Session is one running engine with its scheduler and display. Each local
// player or SSH connection gets its own.
type Session struct {
	cfg     config.TilesConfig
	engine  *tiles.Engine
	sched   *loop.Scheduler
	display *Display
	logger  *log.Logger
}

// StartSession builds the engine from the configuration and starts both
// loops. The session runs until ctx is cancelled or Stop is called.
func StartSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	engineCfg, err := opts.Config.ToEngine()
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	engine, err := tiles.New(engineCfg,
		tiles.WithSeed(opts.Seed),
		tiles.WithSpawnHook(func(s tiles.Spawn) {
			logger.Debug("spawn",
				"lane", s.Lane,
				"position", s.Tile.Position,
				"previous", s.Previous,
				"reason", s.Reason,
			)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: create engine: %w", err)
	}

	sched, err := loop.New(engine, loop.Options{
		TickRate: opts.Config.Timing.TickRate,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("tui: create scheduler: %w", err)
	}

	s := &Session{
		cfg:     opts.Config,
		engine:  engine,
		sched:   sched,
		display: NewDisplay(),
		logger:  logger,
	}
	if err := s.sched.Start(ctx, s.display); err != nil {
		return nil, fmt.Errorf("tui: start scheduler: %w", err)
	}

	logger.Info("session started",
		"lanes", len(engineCfg.Lanes),
		"tiles", engine.LiveTiles(),
		"tick_rate", opts.Config.Timing.TickRate,
		"seed", opts.Seed,
	)
	return s, nil
}

// Keys returns the lane keys, left to right.
func (s *Session) Keys() []string {
	lanes := s.engine.Config().Lanes
	keys := make([]string, len(lanes))
	for i, l := range lanes {
		keys[i] = l.Key
	}
	return keys
}

// Stop tears the session down. Further input is dropped.
func (s *Session) Stop() {
	s.sched.Stop()
}

// Wait blocks until both loops exited, logs the session counters and
// returns the fatal session error, if any.
func (s *Session) Wait() error {
	err := s.sched.Wait()
	st := s.engine.Stats()
	s.logger.Info("session ended",
		"ticks", st.Ticks,
		"spawns", st.Spawns,
		"boundary", st.Boundary,
		"caught", st.Caught,
	)
	return err
}
