// Package loop drives a tiles engine with two independent repeating
// activities: a fixed-rate logic loop and a display-driven render loop.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/tiles"
)

// DefaultTickRate is the logic loop frequency in Hz. Common timer minimums make
// higher requested rates imprecise.
const DefaultTickRate = 45

// MaxTickRate is the highest logic loop frequency New accepts.
const MaxTickRate = 1000

var (
	// ErrCallbackPanic wraps a panic raised inside Tick, Render or HandleInput.
	ErrCallbackPanic = errors.New("loop: engine callback panicked")

	// ErrStopped is returned for input that arrives after teardown.
	ErrStopped = errors.New("loop: scheduler stopped")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("loop: scheduler already started")

	// ErrInvalidTickRate is returned by New for rates above MaxTickRate.
	ErrInvalidTickRate = errors.New("loop: invalid tick rate")
)

// Engine is the game state the scheduler owns. *tiles.Engine implements it.
type Engine interface {
	Tick(dt float64)
	Render() (tiles.Snapshot, bool)
	HandleInput(key string, ev core.EventType)
}

// Display is the presentation side of the render loop. Every value received
// from Frames is one refresh opportunity; Present receives new snapshots.
type Display interface {
	Frames() <-chan struct{}
	Present(tiles.Snapshot)
}

// Options configures a Scheduler.
type Options struct {
	TickRate int         // Logic loop frequency in Hz (default 45, at most MaxTickRate)
	Clock    Clock       // Time source for delta computation (default SystemClock)
	Logger   *log.Logger // Defaults to a discarding logger
}

// Scheduler owns an engine exclusively and serializes every call into it, so
// a render never observes a half-applied tick and input lands between ticks.
type Scheduler struct {
	engine   Engine
	interval time.Duration
	clock    Clock
	logger   *log.Logger

	mu       sync.Mutex // Guards engine, lastTick and cancel
	lastTick time.Time
	cancel   context.CancelFunc

	hidden  atomic.Bool
	started atomic.Bool
	stopped atomic.Bool

	done chan struct{}
	err  error
}

// New creates a scheduler for engine. Nothing runs until Start.
func New(engine Engine, opts Options) (*Scheduler, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.TickRate > MaxTickRate {
		return nil, fmt.Errorf("%w: %d Hz exceeds %d Hz", ErrInvalidTickRate, opts.TickRate, MaxTickRate)
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Scheduler{
		engine:   engine,
		interval: time.Second / time.Duration(opts.TickRate),
		clock:    opts.Clock,
		logger:   opts.Logger,
		lastTick: opts.Clock.Now(),
		done:     make(chan struct{}),
	}, nil
}

// Interval returns the logic loop period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Start launches the logic loop and, when display is not nil, the render
// loop. Both run until ctx is cancelled, Stop is called, or an engine
// callback panics.
func (s *Scheduler) Start(ctx context.Context, display Display) error {
	s.mu.Lock()
	if s.stopped.Load() {
		s.mu.Unlock()
		return ErrStopped
	}
	if !s.started.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.lastTick = s.clock.Now()
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.runLogic(gctx) })
	if display != nil {
		g.Go(func() error { return s.runRender(gctx, display) })
	}

	s.logger.Debug("scheduler started", "interval", s.interval, "render", display != nil)

	go func() {
		err := g.Wait()
		cancel()
		s.err = err
		s.stopped.Store(true)
		if err != nil {
			s.logger.Error("session stopped", "error", err)
		} else {
			s.logger.Debug("scheduler stopped")
		}
		close(s.done)
	}()
	return nil
}

// Stop cancels both loops and deregisters input at once: Input calls that
// have not taken the engine lock yet fail with ErrStopped. It does not wait
// for the loops; use Wait.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped.Store(true)
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Wait blocks until both loops have exited and returns the fatal session
// error, if any. A scheduler that was never started returns immediately.
func (s *Scheduler) Wait() error {
	if !s.started.Load() {
		return nil
	}
	<-s.done
	return s.err
}

// Done is closed once both loops have exited.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Err returns the fatal session error after Done is closed, nil before.
func (s *Scheduler) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// SetHidden marks the session as backgrounded. While hidden, logic loop
// firings skip Tick but keep moving the last tick timestamp, so resuming does
// not replay the hidden period as one large step.
func (s *Scheduler) SetHidden(hidden bool) {
	if s.hidden.Swap(hidden) != hidden {
		s.logger.Debug("visibility changed", "hidden", hidden)
	}
}

// Hidden reports whether the session is backgrounded.
func (s *Scheduler) Hidden() bool {
	return s.hidden.Load()
}

// Input applies one key edge atomically between ticks. Input after
// teardown is dropped with ErrStopped.
func (s *Scheduler) Input(key string, ev core.EventType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped.Load() {
		return ErrStopped
	}
	return guard("input", func() { s.engine.HandleInput(key, ev) })
}

// Frame is one render loop iteration: it returns a snapshot when a tick has
// been committed since the previous frame.
func (s *Scheduler) Frame() (tiles.Snapshot, bool, error) {
	var (
		snap tiles.Snapshot
		ok   bool
	)
	s.mu.Lock()
	defer s.mu.Unlock()
	err := guard("render", func() { snap, ok = s.engine.Render() })
	return snap, ok, err
}

// fire is one logic loop iteration.
func (s *Scheduler) fire() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if s.hidden.Load() {
		s.lastTick = now
		return nil
	}

	dt := now.Sub(s.lastTick).Seconds()
	err := guard("tick", func() { s.engine.Tick(dt) })
	s.lastTick = now
	return err
}

func (s *Scheduler) runLogic(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.fire(); err != nil {
				return err
			}
		}
	}
}

func (s *Scheduler) runRender(ctx context.Context, display Display) error {
	frames := display.Frames()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, open := <-frames:
			if !open {
				return nil
			}
			snap, ok, err := s.Frame()
			if err != nil {
				return err
			}
			if ok {
				display.Present(snap)
			}
		}
	}
}

// guard runs fn and turns a panic into an ErrCallbackPanic error.
func guard(name string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrCallbackPanic, name, r)
		}
	}()
	fn()
	return nil
}
