package graphkit

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/graphkit/attr"
	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/heuristics"
	"github.com/hupe1980/graphkit/model"
	"github.com/hupe1980/graphkit/refine"
	"github.com/hupe1980/graphkit/relax"
	"github.com/hupe1980/graphkit/search"
	"github.com/hupe1980/graphkit/spatial"
	"github.com/hupe1980/graphkit/task"
)

// Engine runs graph passes on a shared worker pool.
//
// Each method is a barrier: it returns after all of its parallel work has
// finished. Engine is safe for concurrent use, but passes over the same
// cluster must not be run concurrently.
type Engine struct {
	id      string
	manager *task.Manager
	logger  *Logger
	metrics MetricsCollector
	opts    options
	closed  atomic.Bool
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	id := uuid.NewString()
	logger := o.logger.WithRun(id)

	taskOpts := []task.Option{
		task.WithWorkers(o.workers),
		task.WithStartRate(o.startRate, o.startBurst),
		task.WithLogger(logger.Logger),
	}
	if obs, ok := o.metrics.(task.Observer); ok {
		taskOpts = append(taskOpts, task.WithObserver(obs))
	}

	return &Engine{
		id:      id,
		manager: task.New(taskOpts...),
		logger:  logger,
		metrics: o.metrics,
		opts:    o,
	}
}

// ID returns the engine's run id, attached to every log record.
func (e *Engine) ID() string { return e.id }

// Manager returns the engine's task manager.
func (e *Engine) Manager() *task.Manager { return e.manager }

// Logger returns the engine's logger.
func (e *Engine) Logger() *Logger { return e.logger }

// Build constructs a cluster from points and explicit endpoint pairs.
// Engine-level permissiveness is applied before optFns.
func (e *Engine) Build(ctx context.Context, points attr.PointBuffer, pairs []cluster.EndpointPair, optFns ...cluster.Option) (*cluster.Cluster, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	c, err := cluster.Build(points, pairs, e.buildOptions(optFns)...)
	e.recordBuild(ctx, points, c, start, err)
	if err != nil {
		return nil, passError("build", "", err)
	}
	return c, nil
}

// BuildFromIndex connects every pair of points closer than radius, using idx
// for the neighbor queries. A nil idx builds a k-d tree over points. A
// non-positive radius selects the engine's configured radius.
func (e *Engine) BuildFromIndex(ctx context.Context, points attr.PointBuffer, idx spatial.Index, radius float64, optFns ...cluster.Option) (*cluster.Cluster, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	if radius <= 0 {
		radius = e.opts.radius
	}

	opts := append([]cluster.Option{
		cluster.WithManager(e.manager),
		cluster.WithChunkSize(e.opts.chunkSize),
	}, e.buildOptions(optFns)...)

	start := time.Now()
	c, err := cluster.BuildFromIndex(ctx, points, idx, radius, opts...)
	e.recordBuild(ctx, points, c, start, err)
	if err != nil {
		return nil, passError("build", "radius", err)
	}
	return c, nil
}

func (e *Engine) buildOptions(optFns []cluster.Option) []cluster.Option {
	if !e.opts.permissive {
		return optFns
	}
	return append([]cluster.Option{cluster.WithPermissive()}, optFns...)
}

func (e *Engine) recordBuild(ctx context.Context, points attr.PointBuffer, c *cluster.Cluster, start time.Time, err error) {
	var nodes, edges, skipped int
	if c != nil {
		nodes, edges, skipped = c.NumNodes(), c.NumEdges(), c.Skipped()
	} else if points != nil {
		nodes = points.Len()
	}
	e.logger.LogBuild(ctx, nodes, edges, skipped, err)
	e.metrics.RecordBuild(nodes, edges, skipped, time.Since(start), err)
}

// Refine runs refiners over c one after another. Each refiner is its own
// pass; the first failing pass stops the sequence.
func (e *Engine) Refine(ctx context.Context, c *cluster.Cluster, refiners ...refine.Refiner) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if c == nil {
		return ErrNilCluster
	}

	for _, r := range refiners {
		name := typeName(r)
		start := time.Now()
		err := refine.Run(ctx, e.manager, c, r, refine.WithChunkSize(e.opts.chunkSize))
		valid := c.CountValidEdges()
		e.logger.LogRefine(ctx, name, valid, err)
		e.metrics.RecordRefine(name, valid, time.Since(start), err)
		if err != nil {
			return passError("refine", name, err)
		}
	}
	return nil
}

// Relax smooths c's node positions with r using the engine's relax options
// and writes them back to positions.
func (e *Engine) Relax(ctx context.Context, c *cluster.Cluster, positions attr.PointBuffer, r relax.Relaxer) error {
	return e.RelaxWith(ctx, c, positions, r, e.opts.relax)
}

// RelaxWith is like Relax with explicit options. A zero ChunkSize selects
// the engine's chunk size.
func (e *Engine) RelaxWith(ctx context.Context, c *cluster.Cluster, positions attr.PointBuffer, r relax.Relaxer, opts relax.Options) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if c == nil {
		return ErrNilCluster
	}
	if opts.ChunkSize == 0 {
		opts.ChunkSize = e.opts.chunkSize
	}

	name := typeName(r)
	start := time.Now()
	err := relax.Run(ctx, e.manager, c, positions, r, opts)
	e.logger.LogRelax(ctx, name, opts.Iterations, err)
	e.metrics.RecordRelax(opts.Iterations, time.Since(start), err)
	return passError("relax", name, err)
}

// FindPath runs a single best-first search from seed to goal; a nil h scores
// every edge 1. An unprepared h is prepared for c with seed and goal as its
// roaming endpoints. A prepared h is only read, so one prepared handler may
// be shared by concurrent calls.
func (e *Engine) FindPath(ctx context.Context, c *cluster.Cluster, h *heuristics.Handler, seed, goal model.NodeID) (search.Path, bool, error) {
	if e.closed.Load() {
		return search.Path{}, false, ErrClosed
	}
	if c == nil {
		return search.Path{}, false, ErrNilCluster
	}
	if h == nil {
		h = heuristics.New()
	}
	if !h.IsPrepared() {
		if err := h.PrepareForCluster(c, seed, goal); err != nil {
			return search.Path{}, false, passError("search", "", err)
		}
	}

	start := time.Now()
	p, ok := search.BestFirst{}.FindPath(ctx, c, h, seed, goal)
	err := ctx.Err()
	found := 0
	if ok {
		found = 1
	}
	e.logger.LogSearchBatch(ctx, 1, found, err)
	e.metrics.RecordSearch(1, found, time.Since(start), err)
	if err != nil {
		return search.Path{}, false, passError("search", "", err)
	}
	return p, ok, nil
}

// FindPaths runs queries as one parallel batch and returns one result per
// query in query order. An unprepared h is prepared for c without a fixed
// seed or goal.
func (e *Engine) FindPaths(ctx context.Context, c *cluster.Cluster, h *heuristics.Handler, queries []search.Query) ([]search.Result, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	if c == nil {
		return nil, ErrNilCluster
	}
	if h == nil {
		h = heuristics.New()
	}
	if !h.IsPrepared() {
		if err := h.PrepareForCluster(c, model.InvalidNode, model.InvalidNode); err != nil {
			return nil, passError("search", "", err)
		}
	}

	start := time.Now()
	results, err := search.Batch(ctx, e.manager, c, h, search.BestFirst{}, queries)
	found := 0
	for _, r := range results {
		if r.Found {
			found++
		}
	}
	e.logger.LogSearchBatch(ctx, len(queries), found, err)
	e.metrics.RecordSearch(len(queries), found, time.Since(start), err)
	if err != nil {
		return nil, passError("search", "batch", err)
	}
	return results, nil
}

// Reset cancels queued work, waits for running work, and clears the task
// manager's records.
func (e *Engine) Reset() {
	started, completed := e.manager.Counts()
	e.manager.Reset()
	e.logger.LogReset(context.Background(), started, completed)
}

// Close releases the worker pool. Further calls return ErrClosed.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	return e.manager.Close()
}

// typeName returns the bare type name of v, e.g. "RemoveLeaves".
func typeName(v any) string {
	if v == nil {
		return "Noop"
	}
	name := fmt.Sprintf("%T", v)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
