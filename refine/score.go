package refine

import (
	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/heuristics"
	"github.com/hupe1980/graphkit/model"
)

// KeepByScore keeps, for every node, only the incident edge with the highest
// (or lowest) heuristics score against the handler's roaming seed and goal.
// All edges start invalid, so the pass adds validity. On ties the first edge
// in link order wins.
//
// A nil Handler scores every edge the same.
type KeepByScore struct {
	Base
	Handler *heuristics.Handler
	Highest bool
}

// Prepare implements Refiner.
func (k KeepByScore) Prepare(c *cluster.Cluster) error {
	if k.Handler != nil && !k.Handler.IsPrepared() {
		return ErrUnprepared
	}
	c.SetAllEdges(false)
	return nil
}

// ProcessNode implements Refiner.
func (k KeepByScore) ProcessNode(c *cluster.Cluster, id model.NodeID) {
	links := c.Node(id).Links
	if len(links) == 0 {
		return
	}

	best := model.InvalidEdge
	var bestScore float64
	for _, l := range links {
		s := 0.0
		if k.Handler != nil {
			s = k.Handler.EdgeScore(id, l.Node, l.Edge)
		}
		if best == model.InvalidEdge || k.improves(s, bestScore) {
			best, bestScore = l.Edge, s
		}
	}
	c.Edge(best).SetValid(true)
}

func (k KeepByScore) improves(s, best float64) bool {
	if k.Highest {
		return s > best
	}
	return s < best
}

// RemoveByLength invalidates, for every node, only the longest (or shortest)
// incident edge. All edges start valid. On ties the first edge in link order
// is removed.
type RemoveByLength struct {
	Base
	Longest bool
}

// Prepare implements Refiner.
func (r RemoveByLength) Prepare(c *cluster.Cluster) error {
	c.SetAllEdges(true)
	return nil
}

// ProcessNode implements Refiner.
func (r RemoveByLength) ProcessNode(c *cluster.Cluster, id model.NodeID) {
	links := c.Node(id).Links
	if len(links) == 0 {
		return
	}

	// Squared lengths order edges the same way as lengths.
	best := links[0].Edge
	bestLen := c.DistanceSquared(id, links[0].Node)
	for _, l := range links[1:] {
		d := c.DistanceSquared(id, l.Node)
		if (r.Longest && d > bestLen) || (!r.Longest && d < bestLen) {
			best, bestLen = l.Edge, d
		}
	}
	c.Edge(best).SetValid(false)
}

// RemoveOverlong invalidates every edge longer than MaxLength. It keeps
// existing validity otherwise.
type RemoveOverlong struct {
	Base
	MaxLength float64
}

// ProcessNode implements Refiner.
func (r RemoveOverlong) ProcessNode(c *cluster.Cluster, id model.NodeID) {
	limit := r.MaxLength * r.MaxLength
	for _, l := range c.Node(id).Links {
		if c.DistanceSquared(id, l.Node) > limit {
			c.Edge(l.Edge).SetValid(false)
		}
	}
}
