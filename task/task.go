package task

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	// ErrCancelled is the error of a handle cancelled before it started.
	ErrCancelled = errors.New("task: cancelled")

	// ErrClosed is the error of a handle scheduled on a closed manager.
	ErrClosed = errors.New("task: manager closed")

	// ErrFlushing is the error of a handle scheduled while the manager resets.
	ErrFlushing = errors.New("task: manager is flushing")
)

// State is the lifecycle state of a scheduled work item.
type State int32

const (
	StateQueued State = iota
	StateRunning
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// Task is a unit of work. Run executes synchronously to completion on one worker.
type Task interface {
	Run(ctx context.Context) error
}

// Func adapts a function to Task.
type Func func(ctx context.Context) error

// Run implements Task.
func (f Func) Run(ctx context.Context) error { return f(ctx) }

// Named is implemented by tasks that carry a name for logs and metrics.
type Named interface {
	Name() string
}

func nameOf(t Task) string {
	if n, ok := t.(Named); ok {
		return n.Name()
	}
	return "task"
}

// Group is a set of tasks scheduled and awaited together.
// A Group must not be modified after it is scheduled.
type Group struct {
	name  string
	tasks []Task
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{name: name}
}

// Name implements Named.
func (g *Group) Name() string { return g.name }

// Len returns the number of member tasks.
func (g *Group) Len() int { return len(g.tasks) }

// Add appends member tasks. Members may themselves be groups.
func (g *Group) Add(tasks ...Task) *Group {
	g.tasks = append(g.tasks, tasks...)
	return g
}

// AddFunc appends a function member.
func (g *Group) AddFunc(fn func(ctx context.Context) error) *Group {
	return g.Add(Func(fn))
}

// ForRange splits [0, n) into contiguous chunks of at most chunk indices and
// adds one member per chunk. Chunks are disjoint, so a member writing only
// to slots in its own range never races with another member.
func (g *Group) ForRange(n, chunk int, fn func(ctx context.Context, start, end int) error) *Group {
	if chunk <= 0 {
		chunk = 1
	}
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.tasks = append(g.tasks, Func(func(ctx context.Context) error {
			return fn(ctx, start, end)
		}))
	}
	return g
}

// Run executes all members sequentially on the calling goroutine.
// Managers never call it; it exists so a Group can be used where a plain
// Task is expected outside a Manager.
func (g *Group) Run(ctx context.Context) error {
	for _, t := range g.tasks {
		if err := t.Run(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Handle tracks one scheduled task or group.
type Handle struct {
	id    string
	name  string
	task  Task
	group *Group

	epoch    uint64
	state    atomic.Int32
	err      error
	done     chan struct{}
	children []*Handle
}

func newHandle(t Task, name string) *Handle {
	h := &Handle{
		id:   uuid.NewString(),
		name: name,
		task: t,
		done: make(chan struct{}),
	}
	if g, ok := t.(*Group); ok {
		h.group = g
	}
	return h
}

// ID returns the unique handle id.
func (h *Handle) ID() string { return h.id }

// Name returns the task name.
func (h *Handle) Name() string { return h.name }

// State returns the current state.
func (h *Handle) State() State { return State(h.state.Load()) }

// Done is closed once the handle reaches a terminal state.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err returns the terminal error. It is only meaningful after Done is closed.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// IsGroup reports whether the handle tracks a group.
func (h *Handle) IsGroup() bool { return h.group != nil }

func (h *Handle) String() string {
	return fmt.Sprintf("%s[%s](%s)", h.name, h.id, h.State())
}
