package cluster

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/graphkit/internal/visited"
	"github.com/hupe1980/graphkit/model"
)

// ValidEdges returns a snapshot of the ids of all valid edges.
// Concurrent flag writes may or may not be reflected.
func (c *Cluster) ValidEdges() *roaring.Bitmap {
	bm := roaring.New()
	for i := range c.edges {
		if c.edges[i].IsValid() {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// ValidNodes returns a snapshot of the ids of all valid nodes.
func (c *Cluster) ValidNodes() *roaring.Bitmap {
	bm := roaring.New()
	for i := range c.nodes {
		if c.nodes[i].IsValid() {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// CountValidEdges returns the number of valid edges.
func (c *Cluster) CountValidEdges() int {
	n := 0
	for i := range c.edges {
		if c.edges[i].IsValid() {
			n++
		}
	}
	return n
}

// CountValidNodes returns the number of valid nodes.
func (c *Cluster) CountValidNodes() int {
	n := 0
	for i := range c.nodes {
		if c.nodes[i].IsValid() {
			n++
		}
	}
	return n
}

// Components returns the connected components formed by valid edges between
// valid nodes. Invalid nodes belong to no component. Components are ordered by
// their smallest node id, and node ids within a component are in discovery
// order starting from that node.
func (c *Cluster) Components() [][]model.NodeID {
	seen := visited.New(len(c.nodes))
	var out [][]model.NodeID
	var stack []model.NodeID

	for i := range c.nodes {
		root := model.NodeID(i)
		if !c.nodes[i].IsValid() || !seen.Visit(root) {
			continue
		}

		comp := []model.NodeID{root}
		stack = append(stack[:0], root)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, l := range c.nodes[cur].Links {
				if !c.edges[l.Edge].IsValid() || !c.nodes[l.Node].IsValid() {
					continue
				}
				if seen.Visit(l.Node) {
					comp = append(comp, l.Node)
					stack = append(stack, l.Node)
				}
			}
		}
		out = append(out, comp)
	}
	return out
}

// Stats is a point-in-time summary of a cluster.
type Stats struct {
	Nodes      int
	Edges      int
	ValidNodes int
	ValidEdges int
	Skipped    int
	Leaves     int // nodes with exactly one valid link
	Components int
}

// Stats computes a summary of the current validity state.
func (c *Cluster) Stats() Stats {
	s := Stats{
		Nodes:      len(c.nodes),
		Edges:      len(c.edges),
		ValidNodes: c.CountValidNodes(),
		ValidEdges: c.CountValidEdges(),
		Skipped:    c.skipped,
		Components: len(c.Components()),
	}
	for i := range c.nodes {
		if c.ValidDegree(model.NodeID(i)) == 1 {
			s.Leaves++
		}
	}
	return s
}
