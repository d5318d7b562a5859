package search

import (
	"context"
	"fmt"

	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/heuristics"
	"github.com/hupe1980/graphkit/model"
	"github.com/hupe1980/graphkit/task"
)

// batchChunk is the number of queries per batch task.
const batchChunk = 8

// Query is one search request. If Goals is non-empty it takes precedence
// over Goal and the search ends at the first goal reached.
type Query struct {
	Seed  model.NodeID
	Goal  model.NodeID
	Goals []model.NodeID
}

// Result is the outcome of one Query.
type Result struct {
	Query Query
	Path  Path
	Found bool
}

// Err returns ErrNoPath if no path was found.
func (r Result) Err() error {
	if !r.Found {
		return ErrNoPath
	}
	return nil
}

// NearestFinder is implemented by searchers that handle multi-goal queries
// natively.
type NearestFinder interface {
	FindNearest(ctx context.Context, c *cluster.Cluster, h *heuristics.Handler, seed model.NodeID, goals []model.NodeID) (Path, bool)
}

// Batch runs all queries as one task group on m and returns one result per
// query, in query order. Each task writes only its own result slots. A nil m
// runs the batch on a private manager.
//
// h must already be prepared; it is shared read-only by all searches.
func Batch(ctx context.Context, m *task.Manager, c *cluster.Cluster, h *heuristics.Handler, s Searcher, queries []Query) ([]Result, error) {
	if s == nil {
		s = BestFirst{}
	}
	if m == nil {
		m = task.New()
		defer m.Close()
	}

	results := make([]Result, len(queries))
	err := task.ParallelFor(ctx, m, "search.batch", len(queries), batchChunk, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			q := queries[i]
			p, ok := run(ctx, c, h, s, q)
			results[i] = Result{Query: q, Path: p, Found: ok}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search: batch: %w", err)
	}
	return results, nil
}

func run(ctx context.Context, c *cluster.Cluster, h *heuristics.Handler, s Searcher, q Query) (Path, bool) {
	if len(q.Goals) == 0 {
		return s.FindPath(ctx, c, h, q.Seed, q.Goal)
	}
	if nf, ok := s.(NearestFinder); ok {
		return nf.FindNearest(ctx, c, h, q.Seed, q.Goals)
	}

	// Fall back to one search per goal, keeping the lowest score.
	var (
		best  Path
		found bool
	)
	for _, g := range q.Goals {
		p, ok := s.FindPath(ctx, c, h, q.Seed, g)
		if ok && (!found || p.Score < best.Score) {
			best, found = p, true
		}
	}
	return best, found
}

var _ NearestFinder = BestFirst{}
