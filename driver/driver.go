// Package driver runs a Grid on a timer. It guarantees at most one tick in
// flight: every tick and frame callback runs under the driver's lock, and
// pausing waits for the current tick to finish instead of interrupting it.
package driver

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
)

// DefaultRate is used when Run is given a non-positive rate
const DefaultRate = 10

// ErrStop can be returned from a FrameFunc to end the run loop without an error
var ErrStop = errors.New("driver stopped")

// FrameFunc is called before every tick with the grid in its current state.
// It must not call Pause or Run on the same driver; return ErrStop instead.
type FrameFunc func(g *model.Grid) error

// Option configures a Driver
type Option func(*Driver)

// WithFrame installs a callback that draws or inspects the grid before each tick
func WithFrame(fn FrameFunc) Option {
	return func(d *Driver) { d.frame = fn }
}

// WithLogger sets the logger for lifecycle events
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) { d.logger = logger }
}

type task struct {
	cancel context.CancelFunc
	group  *errgroup.Group
	done   chan struct{}
}

// Driver owns the periodic task advancing a grid
type Driver struct {
	grid   *model.Grid
	frame  FrameFunc
	logger *slog.Logger

	mu sync.Mutex // held for every frame and tick

	taskMu sync.Mutex
	task   *task
}

// New creates a stopped driver for grid
func New(grid *model.Grid, opts ...Option) *Driver {
	d := &Driver{
		grid:   grid,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run starts ticking at generationsPerSecond. A run already in progress is paused
// first, so repeated calls replace the timer rather than stacking another one.
func (d *Driver) Run(ctx context.Context, generationsPerSecond int) error {
	if !d.grid.Ready() {
		return errors.Wrap(model.ErrNotInitialized, "[Run]")
	}
	if generationsPerSecond <= 0 {
		generationsPerSecond = DefaultRate
	}

	d.taskMu.Lock()
	defer d.taskMu.Unlock()

	if d.task != nil {
		if err := d.stop(d.task); err != nil {
			d.logger.Warn("previous run ended with error", "err", err)
		}
		d.task = nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(runCtx)
	t := &task{cancel: cancel, group: group, done: make(chan struct{})}
	period := max(time.Second/time.Duration(generationsPerSecond), time.Nanosecond)
	generation := d.generation()

	group.Go(func() error {
		defer close(t.done)
		return d.loop(groupCtx, period)
	})
	d.task = t

	d.logger.Info("simulation running", "rate", generationsPerSecond, "generation", generation)
	return nil
}

// Pause stops the periodic task after any in-flight tick completes and returns the
// error that ended the loop, if any. Pausing a stopped driver does nothing.
func (d *Driver) Pause() error {
	d.taskMu.Lock()
	defer d.taskMu.Unlock()

	if d.task == nil {
		return nil
	}
	err := d.stop(d.task)
	d.task = nil
	d.logger.Info("simulation paused", "generation", d.generation())
	return err
}

// Wait blocks until the loop ends on its own (ErrStop, a frame or tick error,
// or cancellation of the context given to Run) and returns its error.
func (d *Driver) Wait() error {
	d.taskMu.Lock()
	t := d.task
	d.taskMu.Unlock()
	if t == nil {
		return nil
	}

	err := t.group.Wait()

	d.taskMu.Lock()
	if d.task == t {
		t.cancel()
		d.task = nil
	}
	d.taskMu.Unlock()
	return err
}

// Running reports whether the periodic task is active
func (d *Driver) Running() bool {
	d.taskMu.Lock()
	defer d.taskMu.Unlock()

	if d.task == nil {
		return false
	}
	select {
	case <-d.task.done:
		return false
	default:
		return true
	}
}

// Step advances the grid by a single generation, waiting for any in-flight tick
func (d *Driver) Step() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.grid.Tick()
}

// Do runs fn with exclusive access to the grid, between ticks. Direct mutations
// such as Randomize or StampPattern must go through Do while the driver runs.
func (d *Driver) Do(fn func(g *model.Grid) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(d.grid)
}

func (d *Driver) generation() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.grid.Generation()
}

func (d *Driver) stop(t *task) error {
	t.cancel()
	return t.group.Wait()
}

func (d *Driver) loop(ctx context.Context, period time.Duration) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.advance(); err != nil {
				if errors.Is(err, ErrStop) {
					d.logger.Debug("frame requested stop", "generation", d.generation())
					return nil
				}
				return err
			}
		}
	}
}

func (d *Driver) advance() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frame != nil {
		if err := d.frame(d.grid); err != nil {
			return err
		}
	}
	return errors.Wrap(d.grid.Tick(), "[advance]")
}
