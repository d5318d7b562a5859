package refine

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/model"
	"github.com/hupe1980/graphkit/task"
)

var (
	// ErrBufferSize is returned when a filter buffer has fewer entries than
	// the cluster has edges.
	ErrBufferSize = errors.New("refine: buffer shorter than edge count")

	// ErrUnprepared is returned when a score-based refiner gets a handler
	// that has not been prepared for a cluster.
	ErrUnprepared = errors.New("refine: heuristics handler not prepared")
)

// Mode is how a refiner is dispatched.
type Mode int

const (
	// PerNode refiners run ProcessNode for every node in parallel.
	PerNode Mode = iota
	// WholeGraph refiners run ProcessGraph once on the calling goroutine.
	WholeGraph
)

func (m Mode) String() string {
	switch m {
	case PerNode:
		return "per-node"
	case WholeGraph:
		return "whole-graph"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Refiner is one refinement policy.
//
// Prepare runs once before processing and sets the family's default
// validity. ProcessNode and ProcessGraph must touch validity only through
// the atomic setters.
type Refiner interface {
	Mode() Mode
	Prepare(c *cluster.Cluster) error
	ProcessNode(c *cluster.Cluster, id model.NodeID)
	ProcessGraph(c *cluster.Cluster)
}

// Base provides no-op implementations for embedding. Its mode is PerNode.
type Base struct{}

// Mode implements Refiner.
func (Base) Mode() Mode { return PerNode }

// Prepare implements Refiner.
func (Base) Prepare(*cluster.Cluster) error { return nil }

// ProcessNode implements Refiner.
func (Base) ProcessNode(*cluster.Cluster, model.NodeID) {}

// ProcessGraph implements Refiner.
func (Base) ProcessGraph(*cluster.Cluster) {}

// Noop leaves validity untouched.
type Noop struct{ Base }

type options struct {
	chunkSize int
}

// Option configures Run.
type Option func(*options)

// WithChunkSize sets the number of nodes per PerNode task.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// Run prepares r and executes it over c. PerNode refiners are dispatched as
// one task group on m; a nil m uses a private manager for the call.
func Run(ctx context.Context, m *task.Manager, c *cluster.Cluster, r Refiner, optFns ...Option) error {
	if r == nil {
		r = Noop{}
	}

	var o options
	for _, fn := range optFns {
		fn(&o)
	}

	if err := r.Prepare(c); err != nil {
		return fmt.Errorf("refine: prepare: %w", err)
	}

	if r.Mode() == WholeGraph {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.ProcessGraph(c)
		return nil
	}

	if m == nil {
		m = task.New()
		defer m.Close()
	}
	return task.ParallelFor(ctx, m, "refine", c.NumNodes(), o.chunkSize, func(_ context.Context, start, end int) error {
		for i := start; i < end; i++ {
			r.ProcessNode(c, model.NodeID(i))
		}
		return nil
	})
}

// RunAll runs refiners one after another, each as its own pass.
func RunAll(ctx context.Context, m *task.Manager, c *cluster.Cluster, refiners []Refiner, optFns ...Option) error {
	for i, r := range refiners {
		if err := Run(ctx, m, c, r, optFns...); err != nil {
			return fmt.Errorf("refine: pass %d: %w", i, err)
		}
	}
	return nil
}

var (
	_ Refiner = Noop{}
	_ Refiner = KeepByScore{}
	_ Refiner = RemoveByLength{}
	_ Refiner = RemoveLeaves{}
	_ Refiner = Filter{}
	_ Refiner = SpanningTree{}
	_ Refiner = MinimumSpanningTree{}
	_ Refiner = RemoveOverlong{}
)
