package relax

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/graphkit/attr"
	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/model"
	"github.com/hupe1980/graphkit/task"
)

// ErrBufferSize is returned when the position buffer length differs from the
// cluster's node count.
var ErrBufferSize = errors.New("relax: position buffer does not match node count")

// Relaxer computes a node's next position.
//
// Prepare runs once before the first iteration. Step must only read current
// and the cluster.
type Relaxer interface {
	Prepare(c *cluster.Cluster) error
	Step(c *cluster.Cluster, current []model.Vec, node model.NodeID) model.Vec
}

// Base can be embedded by relaxers that need no preparation.
type Base struct{}

// Prepare implements Relaxer.
func (Base) Prepare(*cluster.Cluster) error { return nil }

// Noop keeps every node where it is.
type Noop struct{ Base }

// Step implements Relaxer.
func (Noop) Step(_ *cluster.Cluster, current []model.Vec, node model.NodeID) model.Vec {
	return current[node]
}

// Options controls Run.
type Options struct {
	// Iterations is the number of smoothing passes.
	Iterations int
	// Influence blends the final positions with the original ones when
	// writing back, clamped to [0, 1]. 1 writes the relaxed positions.
	Influence float64
	// ValidOnly pins invalid nodes in place.
	ValidOnly bool
	// ChunkSize is the number of nodes per task. Zero uses the task default.
	ChunkSize int
}

// DefaultOptions returns 10 full-influence iterations over valid nodes.
func DefaultOptions() Options {
	return Options{
		Iterations: 10,
		Influence:  1,
		ValidOnly:  true,
	}
}

// Run relaxes the positions of c's nodes and writes them back to positions.
// A nil m uses a private manager for the call.
func Run(ctx context.Context, m *task.Manager, c *cluster.Cluster, positions attr.PointBuffer, r Relaxer, opts Options) error {
	n := c.NumNodes()
	if positions == nil || positions.Len() != n {
		return ErrBufferSize
	}
	if r == nil {
		r = Noop{}
	}
	if err := r.Prepare(c); err != nil {
		return fmt.Errorf("relax: prepare: %w", err)
	}
	if opts.Iterations <= 0 || n == 0 {
		return nil
	}

	if m == nil {
		m = task.New()
		defer m.Close()
	}

	current := make([]model.Vec, n)
	for i := range current {
		current[i] = positions.Position(i)
	}
	next := make([]model.Vec, n)

	for it := range opts.Iterations {
		err := task.ParallelFor(ctx, m, "relax", n, opts.ChunkSize, func(_ context.Context, start, end int) error {
			for i := start; i < end; i++ {
				id := model.NodeID(i)
				if opts.ValidOnly && !c.Node(id).IsValid() {
					next[i] = current[i]
					continue
				}
				next[i] = r.Step(c, current, id)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("relax: iteration %d: %w", it, err)
		}
		current, next = next, current
	}

	influence := min(max(opts.Influence, 0), 1)
	for i, p := range current {
		positions.SetPosition(i, model.Lerp(positions.Position(i), p, influence))
	}
	return nil
}
