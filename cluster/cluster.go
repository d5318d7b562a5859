package cluster

import (
	"math"
	"sync/atomic"

	"github.com/hupe1980/graphkit/attr"
	"github.com/hupe1980/graphkit/model"
)

// Node is a cluster vertex. It must not be copied.
type Node struct {
	ID model.NodeID

	// Links are read-only after build, one per incident edge.
	Links []model.Link

	valid atomic.Bool
}

// IsValid reports the node's validity flag.
func (n *Node) IsValid() bool { return n.valid.Load() }

// SetValid atomically stores v and returns the previous flag.
func (n *Node) SetValid(v bool) bool { return n.valid.Swap(v) }

// CompareAndSetValid flips the flag from old to v if it still equals old.
func (n *Node) CompareAndSetValid(old, v bool) bool { return n.valid.CompareAndSwap(old, v) }

// NumLinks returns the number of incident edges, valid or not.
func (n *Node) NumLinks() int { return len(n.Links) }

// IsLeaf reports whether the node has exactly one link.
func (n *Node) IsLeaf() bool { return len(n.Links) == 1 }

// IsComplex reports whether the node has more than two links.
func (n *Node) IsComplex() bool { return len(n.Links) > 2 }

// Edge is a cluster edge between two distinct nodes. It must not be copied.
type Edge struct {
	ID    model.EdgeID
	Start model.NodeID
	End   model.NodeID

	valid atomic.Bool
}

// IsValid reports the edge's validity flag.
func (e *Edge) IsValid() bool { return e.valid.Load() }

// SetValid atomically stores v and returns the previous flag.
func (e *Edge) SetValid(v bool) bool { return e.valid.Swap(v) }

// CompareAndSetValid flips the flag from old to v if it still equals old.
func (e *Edge) CompareAndSetValid(old, v bool) bool { return e.valid.CompareAndSwap(old, v) }

// Other returns the endpoint opposite to n, or model.InvalidNode if n is not
// an endpoint of e.
func (e *Edge) Other(n model.NodeID) model.NodeID {
	switch n {
	case e.Start:
		return e.End
	case e.End:
		return e.Start
	default:
		return model.InvalidNode
	}
}

// Has reports whether n is one of e's endpoints.
func (e *Edge) Has(n model.NodeID) bool { return e.Start == n || e.End == n }

// Cluster owns the node and edge arrays of one graph.
type Cluster struct {
	nodes   []Node
	edges   []Edge
	links   []model.Link // backing storage for all Node.Links
	points  attr.PointBuffer
	skipped int
}

// NumNodes returns the node count.
func (c *Cluster) NumNodes() int { return len(c.nodes) }

// NumEdges returns the edge count.
func (c *Cluster) NumEdges() int { return len(c.edges) }

// Skipped returns the number of input edges dropped by a permissive build.
func (c *Cluster) Skipped() int { return c.skipped }

// Node returns the node with the given id.
func (c *Cluster) Node(id model.NodeID) *Node { return &c.nodes[id] }

// Edge returns the edge with the given id.
func (c *Cluster) Edge(id model.EdgeID) *Edge { return &c.edges[id] }

// Points returns the position buffer backing the cluster.
func (c *Cluster) Points() attr.PointBuffer { return c.points }

// Position returns the position of node id.
func (c *Cluster) Position(id model.NodeID) model.Vec {
	return c.points.Position(int(id))
}

// DistanceSquared returns the squared distance between two nodes.
func (c *Cluster) DistanceSquared(a, b model.NodeID) float64 {
	return model.DistanceSquared(c.Position(a), c.Position(b))
}

// Distance returns the distance between two nodes.
func (c *Cluster) Distance(a, b model.NodeID) float64 {
	return math.Sqrt(c.DistanceSquared(a, b))
}

// EdgeLengthSquared returns the squared length of edge id.
func (c *Cluster) EdgeLengthSquared(id model.EdgeID) float64 {
	e := &c.edges[id]
	return c.DistanceSquared(e.Start, e.End)
}

// EdgeLength returns the length of edge id.
func (c *Cluster) EdgeLength(id model.EdgeID) float64 {
	return math.Sqrt(c.EdgeLengthSquared(id))
}

// Other returns the endpoint of edge opposite to node.
func (c *Cluster) Other(edge model.EdgeID, node model.NodeID) model.NodeID {
	return c.edges[edge].Other(node)
}

// ValidDegree returns the number of valid edges incident to node id.
func (c *Cluster) ValidDegree(id model.NodeID) int {
	n := 0
	for _, l := range c.nodes[id].Links {
		if c.edges[l.Edge].IsValid() {
			n++
		}
	}
	return n
}

// SetAllNodes stores v in every node flag. Single-writer use only.
func (c *Cluster) SetAllNodes(v bool) {
	for i := range c.nodes {
		c.nodes[i].valid.Store(v)
	}
}

// SetAllEdges stores v in every edge flag. Single-writer use only.
func (c *Cluster) SetAllEdges(v bool) {
	for i := range c.edges {
		c.edges[i].valid.Store(v)
	}
}
