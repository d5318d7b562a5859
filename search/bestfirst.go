package search

import (
	"context"
	"slices"
	"sync"

	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/heuristics"
	"github.com/hupe1980/graphkit/internal/queue"
	"github.com/hupe1980/graphkit/internal/visited"
	"github.com/hupe1980/graphkit/model"
)

// BestFirst is a best-first search driven by a heuristics handler.
// With an empty handler it finds a path with the fewest hops. A handler with
// scorers must be prepared; an unprepared one finds no path.
type BestFirst struct{}

// step is the best recorded arrival at a node.
type step struct {
	score float64
	via   model.Link // predecessor node and edge
}

// scratch is the per-search working state. It is pooled across searches.
type scratch struct {
	open     *queue.Scored
	closed   *visited.VisitedSet
	recorded map[model.NodeID]step
}

var scratchPool = sync.Pool{
	New: func() any {
		return &scratch{
			open:     queue.NewScored(256),
			closed:   visited.New(1024),
			recorded: make(map[model.NodeID]step, 256),
		}
	},
}

func getScratch(numNodes int) *scratch {
	s := scratchPool.Get().(*scratch)
	s.closed.EnsureCapacity(numNodes)
	return s
}

func putScratch(s *scratch) {
	s.open.Reset()
	s.closed.Reset()
	clear(s.recorded)
	scratchPool.Put(s)
}

// FindPath implements Searcher.
func (b BestFirst) FindPath(ctx context.Context, c *cluster.Cluster, h *heuristics.Handler, seed, goal model.NodeID) (Path, bool) {
	return b.find(ctx, c, h, seed, goal, func(n model.NodeID) bool { return n == goal })
}

// FindNearest searches from seed until the first of goals is reached.
// Scorers see model.InvalidNode as the goal unless exactly one goal is given.
func (b BestFirst) FindNearest(ctx context.Context, c *cluster.Cluster, h *heuristics.Handler, seed model.NodeID, goals []model.NodeID) (Path, bool) {
	switch len(goals) {
	case 0:
		return Path{}, false
	case 1:
		return b.FindPath(ctx, c, h, seed, goals[0])
	}
	return b.find(ctx, c, h, seed, model.InvalidNode, func(n model.NodeID) bool {
		return slices.Contains(goals, n)
	})
}

func (BestFirst) find(ctx context.Context, c *cluster.Cluster, h *heuristics.Handler, seed, goal model.NodeID, isGoal func(model.NodeID) bool) (Path, bool) {
	n := c.NumNodes()
	if int(seed) < 0 || int(seed) >= n || !c.Node(seed).IsValid() {
		return Path{}, false
	}
	if h == nil {
		h = heuristics.New()
	}
	// Scorers read cluster state captured by PrepareForCluster.
	if h.Len() > 0 && !h.IsPrepared() {
		return Path{}, false
	}

	s := getScratch(n)
	defer putScratch(s)

	s.recorded[seed] = step{score: 0, via: model.Link{Node: model.InvalidNode, Edge: model.InvalidEdge}}
	s.open.Enqueue(int32(seed), 0)

	for {
		if ctx.Err() != nil {
			return Path{}, false
		}

		e, ok := s.open.Dequeue()
		if !ok {
			return Path{}, false
		}
		cur := model.NodeID(e.ID)
		if !s.closed.Visit(cur) {
			continue
		}
		if isGoal(cur) {
			return reconstruct(s.recorded, cur, e.Score), true
		}

		for _, l := range c.Node(cur).Links {
			if !c.Edge(l.Edge).IsValid() || !c.Node(l.Node).IsValid() {
				continue
			}
			if s.closed.Visited(l.Node) {
				continue
			}
			tentative := h.ComputeScore(e.Score, cur, l.Node, l.Edge, seed, goal)
			if prev, seen := s.recorded[l.Node]; seen && isBetterScore(prev.score, tentative) {
				continue
			}
			s.recorded[l.Node] = step{score: tentative, via: model.Link{Node: cur, Edge: l.Edge}}
			s.open.Enqueue(int32(l.Node), tentative)
		}
	}
}

func reconstruct(recorded map[model.NodeID]step, end model.NodeID, score float64) Path {
	p := Path{Score: score}
	for cur := end; cur.IsValid(); {
		p.Nodes = append(p.Nodes, cur)
		st := recorded[cur]
		if st.via.Edge.IsValid() {
			p.Edges = append(p.Edges, st.via.Edge)
		}
		cur = st.via.Node
	}
	slices.Reverse(p.Nodes)
	slices.Reverse(p.Edges)
	return p
}
