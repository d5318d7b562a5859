package search

import (
	"context"
	"errors"

	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/heuristics"
	"github.com/hupe1980/graphkit/model"
)

// ErrNoPath reports that no path connects a query's seed and goal.
var ErrNoPath = errors.New("search: no path")

// Searcher finds a path between two nodes of a cluster.
// Implementations must be safe for concurrent use.
type Searcher interface {
	FindPath(ctx context.Context, c *cluster.Cluster, h *heuristics.Handler, seed, goal model.NodeID) (Path, bool)
}

// Path is a found route. Nodes[0] is the seed and Nodes[len-1] the goal;
// Edges[i] connects Nodes[i] and Nodes[i+1].
type Path struct {
	Nodes []model.NodeID
	Edges []model.EdgeID
	Score float64
}

// Len returns the number of nodes on the path.
func (p Path) Len() int { return len(p.Nodes) }

// Length returns the geometric length of the path in c.
func (p Path) Length(c *cluster.Cluster) float64 {
	var sum float64
	for _, e := range p.Edges {
		sum += c.EdgeLength(e)
	}
	return sum
}

// Goal returns the last node, or model.InvalidNode for an empty path.
func (p Path) Goal() model.NodeID {
	if len(p.Nodes) == 0 {
		return model.InvalidNode
	}
	return p.Nodes[len(p.Nodes)-1]
}

// Noop never finds a path.
type Noop struct{}

// FindPath implements Searcher.
func (Noop) FindPath(context.Context, *cluster.Cluster, *heuristics.Handler, model.NodeID, model.NodeID) (Path, bool) {
	return Path{}, false
}

var (
	_ Searcher = Noop{}
	_ Searcher = BestFirst{}
)

// isBetterScore reports whether a recorded score a blocks a tentative score b.
// Equal scores are not revisited.
func isBetterScore(a, b float64) bool { return a <= b }
