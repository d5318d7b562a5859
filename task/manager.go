package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/graphkit/internal/resource"
)

// Observer receives task lifecycle events. Implementations must be safe for
// concurrent use.
type Observer interface {
	TaskScheduled(name string)
	TaskStarted(name string)
	TaskFinished(name string, state State, duration time.Duration)
}

type noopObserver struct{}

func (noopObserver) TaskScheduled(string)                      {}
func (noopObserver) TaskStarted(string)                        {}
func (noopObserver) TaskFinished(string, State, time.Duration) {}

type options struct {
	workers         int64
	startsPerSecond float64
	startBurst      int
	logger          *slog.Logger
	observer        Observer
}

// Option configures a Manager.
type Option func(*options)

// WithWorkers sets the maximum number of concurrently running tasks.
// Non-positive values select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = int64(n)
	}
}

// WithStartRate limits how many queued tasks may start per second.
func WithStartRate(perSecond float64, burst int) Option {
	return func(o *options) {
		o.startsPerSecond = perSecond
		o.startBurst = burst
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the lifecycle observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// Manager runs tasks and task groups on a bounded worker pool.
// All methods are safe for concurrent use.
type Manager struct {
	rc       *resource.Controller
	logger   *slog.Logger
	observer Observer

	// flushing is set while Reset runs. It is written under mu and read
	// without it on the completion fast path.
	flushing atomic.Bool

	mu        sync.RWMutex
	flushDone chan struct{} // closed when the running reset finishes
	started   int64
	completed int64
	epoch     uint64
	closed    bool
	handles   map[*Handle]struct{}
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a Manager.
func New(optFns ...Option) *Manager {
	o := options{
		logger:   slog.New(slog.DiscardHandler),
		observer: noopObserver{},
	}
	for _, fn := range optFns {
		fn(&o)
	}

	m := &Manager{
		rc: resource.NewController(resource.Config{
			MaxWorkers:      o.workers,
			StartsPerSecond: o.startsPerSecond,
			StartBurst:      o.startBurst,
		}),
		logger:   o.logger,
		observer: o.observer,
		handles:  make(map[*Handle]struct{}),
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	return m
}

// Workers returns the worker limit.
func (m *Manager) Workers() int {
	return int(m.rc.MaxWorkers())
}

// Schedule queues t for execution and returns its handle. A *Group is fanned
// out: every member gets its own handle and worker slot, and the group's
// handle completes after all members have.
//
// Scheduling on a closed or resetting manager returns a handle that is
// already cancelled with ErrClosed or ErrFlushing.
func (m *Manager) Schedule(t Task) *Handle {
	return m.schedule(t, nameOf(t))
}

func (m *Manager) schedule(t Task, name string) *Handle {
	h := newHandle(t, name)

	m.mu.Lock()
	switch {
	case m.closed:
		m.mu.Unlock()
		h.state.Store(int32(StateCancelled))
		h.err = ErrClosed
		close(h.done)
		return h
	case m.flushing.Load():
		m.mu.Unlock()
		h.state.Store(int32(StateCancelled))
		h.err = ErrFlushing
		close(h.done)
		return h
	}
	h.epoch = m.epoch
	m.started++
	m.handles[h] = struct{}{}
	ctx := m.ctx
	m.mu.Unlock()

	m.observer.TaskScheduled(name)

	if h.group != nil {
		m.runGroup(ctx, h)
	} else {
		m.runTask(ctx, h)
	}
	return h
}

func (m *Manager) runTask(ctx context.Context, h *Handle) {
	go func() {
		if err := m.rc.AcquireWorker(ctx); err != nil {
			if h.state.CompareAndSwap(int32(StateQueued), int32(StateCancelled)) {
				m.complete(h, StateCancelled, ErrCancelled, 0)
			}
			return
		}
		if !h.state.CompareAndSwap(int32(StateQueued), int32(StateRunning)) {
			// cancelled while waiting for a slot
			m.rc.ReleaseWorker()
			return
		}

		m.observer.TaskStarted(h.name)
		begin := time.Now()
		err := safeRun(ctx, h.task)
		m.rc.ReleaseWorker()
		m.complete(h, StateCompleted, err, time.Since(begin))
	}()
}

func (m *Manager) runGroup(ctx context.Context, h *Handle) {
	h.state.Store(int32(StateRunning))
	m.observer.TaskStarted(h.name)

	members := h.group.tasks
	h.children = make([]*Handle, len(members))
	for i, t := range members {
		name := nameOf(t)
		if name == "task" {
			name = fmt.Sprintf("%s#%d", h.name, i)
		}
		h.children[i] = m.schedule(t, name)
	}

	begin := time.Now()
	go func() {
		var eg errgroup.Group
		for _, c := range h.children {
			eg.Go(func() error {
				<-c.done
				return c.err
			})
		}
		err := eg.Wait()

		state := StateCompleted
		for _, c := range h.children {
			if c.State() == StateCancelled {
				state = StateCancelled
				break
			}
		}
		m.complete(h, state, err, time.Since(begin))
	}()
}

// complete records the terminal state of h. It is the only place a handle's
// done channel is closed.
func (m *Manager) complete(h *Handle, state State, err error, d time.Duration) {
	h.state.Store(int32(state))
	h.err = err

	if !m.flushing.Load() {
		m.mu.Lock()
		if !m.flushing.Load() && h.epoch == m.epoch {
			m.completed++
			delete(m.handles, h)
		}
		m.mu.Unlock()
	}

	m.observer.TaskFinished(h.name, state, d)
	close(h.done)
}

// Wait blocks until h reaches a terminal state or ctx is done, and returns
// the handle's error (or ctx's error).
func (m *Manager) Wait(ctx context.Context, h *Handle) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run schedules t and waits for it.
func (m *Manager) Run(ctx context.Context, t Task) error {
	return m.Wait(ctx, m.Schedule(t))
}

// Cancel cancels h if it has not started. For a group, all members that have
// not started are cancelled. It reports whether everything tracked by h was
// cancelled before starting. A running task is never interrupted.
func (m *Manager) Cancel(h *Handle) bool {
	if h.group != nil {
		all := true
		for _, c := range h.children {
			if !m.Cancel(c) {
				all = false
			}
		}
		return all
	}

	if h.state.CompareAndSwap(int32(StateQueued), int32(StateCancelled)) {
		m.complete(h, StateCancelled, ErrCancelled, 0)
		return true
	}
	return h.State() == StateCancelled
}

// IsWorkComplete reports whether every scheduled work item has completed.
func (m *Manager) IsWorkComplete() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.completed >= m.started
}

// Counts returns the number of scheduled and completed work items since the
// last reset. Every task and every group counts as one item.
func (m *Manager) Counts() (started, completed int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.started, m.completed
}

// Reset cancels queued work, waits for running work, and clears all records.
// It is safe to call while tasks are completing concurrently. A Reset that
// overlaps another one waits for it instead of flushing twice.
func (m *Manager) Reset() {
	m.mu.Lock()
	if m.flushing.Load() {
		done := m.flushDone
		m.mu.Unlock()
		<-done
		return
	}
	m.flushing.Store(true)
	m.flushDone = make(chan struct{})
	m.epoch++
	pending := make([]*Handle, 0, len(m.handles))
	for h := range m.handles {
		pending = append(pending, h)
	}
	m.handles = make(map[*Handle]struct{})
	cancel := m.cancel
	m.mu.Unlock()

	m.logger.Debug("task manager flushing", "pending", len(pending))

	// Graceful cancellation first, then wake tasks blocked on a worker slot.
	cancelled := 0
	for _, h := range pending {
		if h.group == nil && m.Cancel(h) {
			cancelled++
		}
	}
	cancel()

	// Tasks that refused cancellation are awaited.
	for _, h := range pending {
		<-h.done
	}

	m.mu.Lock()
	m.started = 0
	m.completed = 0
	if !m.closed {
		m.ctx, m.cancel = context.WithCancel(context.Background())
	}
	m.flushing.Store(false)
	close(m.flushDone)
	m.mu.Unlock()

	m.logger.Debug("task manager reset", "pending", len(pending), "cancelled", cancelled)
}

// Close resets the manager and rejects further scheduling.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.Reset()
	return nil
}

// Flushing reports whether a reset is in progress.
func (m *Manager) Flushing() bool {
	return m.flushing.Load()
}

func safeRun(ctx context.Context, t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task: panic: %v", r)
		}
	}()
	return t.Run(ctx)
}
