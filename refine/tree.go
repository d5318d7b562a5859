package refine

import (
	"slices"

	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/internal/visited"
	"github.com/hupe1980/graphkit/model"
)

// SpanningTree breaks cycles with a depth-first traversal. Tree edges stay
// valid and back edges become invalid; with Invert exactly the back edges
// stay valid instead.
//
// The traversal starts at Root and then at the lowest unvisited node of each
// remaining component, so the result is a spanning forest. Links are
// followed in link order. The traversal covers every edge regardless of its
// current validity.
type SpanningTree struct {
	Base
	Root   model.NodeID
	Invert bool
}

// Mode implements Refiner.
func (SpanningTree) Mode() Mode { return WholeGraph }

// ProcessGraph implements Refiner.
func (s SpanningTree) ProcessGraph(c *cluster.Cluster) {
	tree := depthFirstForest(c, s.Root)
	for i := range c.NumEdges() {
		c.Edge(model.EdgeID(i)).SetValid(tree[i] != s.Invert)
	}
}

type frame struct {
	node model.NodeID
	next int // index into the node's links
}

// depthFirstForest marks the tree edges of a depth-first forest.
func depthFirstForest(c *cluster.Cluster, root model.NodeID) []bool {
	n := c.NumNodes()
	tree := make([]bool, c.NumEdges())
	seen := visited.New(n)
	var stack []frame

	walk := func(r model.NodeID) {
		if !seen.Visit(r) {
			return
		}
		stack = append(stack[:0], frame{node: r})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			links := c.Node(top.node).Links
			if top.next == len(links) {
				stack = stack[:len(stack)-1]
				continue
			}
			l := links[top.next]
			top.next++
			if seen.Visit(l.Node) {
				tree[l.Edge] = true
				stack = append(stack, frame{node: l.Node})
			}
		}
	}

	if int(root) >= 0 && int(root) < n {
		walk(root)
	}
	for i := range n {
		walk(model.NodeID(i))
	}
	return tree
}

// MinimumSpanningTree keeps the edges of a minimum spanning forest by edge
// length (Kruskal). Equal lengths are taken in edge id order. With Invert
// exactly the non-tree edges stay valid.
type MinimumSpanningTree struct {
	Base
	Invert bool
}

// Mode implements Refiner.
func (MinimumSpanningTree) Mode() Mode { return WholeGraph }

// ProcessGraph implements Refiner.
func (m MinimumSpanningTree) ProcessGraph(c *cluster.Cluster) {
	order := make([]model.EdgeID, c.NumEdges())
	length := make([]float64, c.NumEdges())
	for i := range order {
		order[i] = model.EdgeID(i)
		length[i] = c.EdgeLengthSquared(model.EdgeID(i))
	}
	slices.SortStableFunc(order, func(a, b model.EdgeID) int {
		switch {
		case length[a] < length[b]:
			return -1
		case length[a] > length[b]:
			return 1
		default:
			return 0
		}
	})

	ds := newDisjointSet(c.NumNodes())
	tree := make([]bool, c.NumEdges())
	for _, id := range order {
		e := c.Edge(id)
		if ds.union(int(e.Start), int(e.End)) {
			tree[id] = true
		}
	}
	for i := range tree {
		c.Edge(model.EdgeID(i)).SetValid(tree[i] != m.Invert)
	}
}

// disjointSet is union-find with path halving and union by rank.
type disjointSet struct {
	parent []int
	rank   []uint8
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), rank: make([]uint8, n)}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

func (d *disjointSet) find(u int) int {
	for d.parent[u] != u {
		d.parent[u] = d.parent[d.parent[u]]
		u = d.parent[u]
	}
	return u
}

// union merges the sets of u and v and reports whether they were disjoint.
func (d *disjointSet) union(u, v int) bool {
	ru, rv := d.find(u), d.find(v)
	if ru == rv {
		return false
	}
	switch {
	case d.rank[ru] < d.rank[rv]:
		d.parent[ru] = rv
	case d.rank[ru] > d.rank[rv]:
		d.parent[rv] = ru
	default:
		d.parent[rv] = ru
		d.rank[ru]++
	}
	return true
}
