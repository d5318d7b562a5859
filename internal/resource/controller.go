package resource

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxWorkers is the maximum number of concurrently running tasks.
	// If 0, defaults to runtime.GOMAXPROCS(0).
	MaxWorkers int64

	// StartsPerSecond limits how fast queued tasks may start.
	// If 0, unlimited.
	StartsPerSecond float64

	// StartBurst is the burst size of the start limiter.
	// If 0, defaults to MaxWorkers.
	StartBurst int
}

// Controller manages worker slots and start pacing for the task manager.
type Controller struct {
	cfg Config

	workers *semaphore.Weighted
	active  atomic.Int64

	starts *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = int64(runtime.GOMAXPROCS(0))
	}
	if cfg.StartBurst <= 0 {
		cfg.StartBurst = int(cfg.MaxWorkers)
	}

	c := &Controller{
		cfg:     cfg,
		workers: semaphore.NewWeighted(cfg.MaxWorkers),
	}

	if cfg.StartsPerSecond > 0 {
		c.starts = rate.NewLimiter(rate.Limit(cfg.StartsPerSecond), cfg.StartBurst)
	}

	return c
}

// AcquireWorker waits for a start token and a free worker slot.
// It fails only if ctx is done first.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if c.starts != nil {
		if err := c.starts.Wait(ctx); err != nil {
			return err
		}
	}
	if err := c.workers.Acquire(ctx, 1); err != nil {
		return err
	}
	c.active.Add(1)
	return nil
}

// TryAcquireWorker attempts to reserve a worker slot without blocking.
// The start limiter is not consulted.
func (c *Controller) TryAcquireWorker() bool {
	if c == nil {
		return true
	}
	if !c.workers.TryAcquire(1) {
		return false
	}
	c.active.Add(1)
	return true
}

// ReleaseWorker releases a worker slot.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.active.Add(-1)
	c.workers.Release(1)
}

// ActiveWorkers returns the number of held worker slots.
func (c *Controller) ActiveWorkers() int64 {
	if c == nil {
		return 0
	}
	return c.active.Load()
}

// MaxWorkers returns the configured worker limit.
func (c *Controller) MaxWorkers() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MaxWorkers
}
