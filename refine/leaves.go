package refine

import (
	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/model"
)

// RemoveLeaves prunes dangling chains. Starting from every leaf (a node with
// exactly one link) it walks through nodes with two links, invalidating the
// nodes and edges it passes, and stops at the first complex node (more than
// two links), which stays valid.
//
// A chain that ends in another leaf is an isolated path and is left alone;
// this includes two nodes that are each other's only neighbor.
//
// Nodes are classified by their link count, which never changes, so running
// the pass again yields the same validity. Existing validity is not reset.
type RemoveLeaves struct{ Base }

// ProcessNode implements Refiner.
func (RemoveLeaves) ProcessNode(c *cluster.Cluster, id model.NodeID) {
	start := c.Node(id)
	if !start.IsLeaf() || !start.IsValid() {
		return
	}

	var (
		nodes []model.NodeID
		edges []model.EdgeID
		prev  = model.InvalidNode
		cur   = id
	)

	// A chain visits each node at most once.
	for range c.NumNodes() {
		n := c.Node(cur)
		if n.IsComplex() {
			break
		}
		if cur != id && n.IsLeaf() {
			return
		}

		nodes = append(nodes, cur)
		next, ok := nextLink(n, prev)
		if !ok {
			return
		}
		edges = append(edges, next.Edge)
		prev, cur = cur, next.Node
	}

	if !c.Node(cur).IsComplex() {
		return
	}
	for _, n := range nodes {
		c.Node(n).SetValid(false)
	}
	for _, e := range edges {
		c.Edge(e).SetValid(false)
	}
}

// nextLink returns the link of n that does not lead back to prev.
func nextLink(n *cluster.Node, prev model.NodeID) (model.Link, bool) {
	for _, l := range n.Links {
		if l.Node != prev {
			return l, true
		}
	}
	return model.Link{}, false
}
