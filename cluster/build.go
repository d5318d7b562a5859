package cluster

import (
	"github.com/hupe1980/graphkit/attr"
	"github.com/hupe1980/graphkit/internal/conv"
	"github.com/hupe1980/graphkit/model"
)

// EndpointPair is one input edge given by its two endpoint keys.
type EndpointPair struct {
	A, B int
}

// Build creates a cluster with one node per point and one edge per accepted
// input pair. Links are recorded in input order. All nodes and edges start
// valid.
//
// In strict mode the first dangling, self-looping, or duplicate input edge
// fails the build with a *BuildError. In permissive mode such edges are
// skipped and counted by Skipped.
func Build(points attr.PointBuffer, pairs []EndpointPair, optFns ...Option) (*Cluster, error) {
	if points == nil {
		return nil, ErrEmptyPoints
	}

	var o options
	for _, fn := range optFns {
		fn(&o)
	}

	numNodes := points.Len()
	if _, err := conv.IntToInt32(numNodes); err != nil {
		return nil, ErrTooLarge
	}
	if _, err := conv.IntToInt32(len(pairs)); err != nil {
		return nil, ErrTooLarge
	}

	lookup := o.lookup
	if lookup == nil {
		lookup = func(key int) (model.NodeID, bool) {
			if key < 0 || key >= numNodes {
				return model.InvalidNode, false
			}
			return model.NodeID(key), true
		}
	}

	// Pass 1: resolve and validate.
	type resolved struct{ a, b model.NodeID }
	accepted := make([]resolved, 0, len(pairs))
	seen := make(map[uint64]struct{}, len(pairs))
	skipped := 0

	for i, p := range pairs {
		a, okA := lookup(p.A)
		b, okB := lookup(p.B)

		var cause error
		switch {
		case !okA || !okB || int(a) >= numNodes || int(b) >= numNodes || a < 0 || b < 0:
			cause = ErrDanglingEdge
		case a == b:
			cause = ErrSelfLoop
		default:
			key := conv.PairKey(int32(a), int32(b))
			if _, dup := seen[key]; dup {
				cause = ErrDuplicateEdge
			} else {
				seen[key] = struct{}{}
			}
		}

		if cause != nil {
			if !o.permissive {
				return nil, &BuildError{Edge: i, A: p.A, B: p.B, cause: cause}
			}
			skipped++
			continue
		}
		accepted = append(accepted, resolved{a: a, b: b})
	}

	// Pass 2: degrees, so that all links share one backing array.
	degree := make([]int, numNodes)
	for _, r := range accepted {
		degree[r.a]++
		degree[r.b]++
	}

	c := &Cluster{
		nodes:   make([]Node, numNodes),
		edges:   make([]Edge, len(accepted)),
		links:   make([]model.Link, 2*len(accepted)),
		points:  points,
		skipped: skipped,
	}

	offset := 0
	for i := range c.nodes {
		n := &c.nodes[i]
		n.ID = model.NodeID(i)
		n.Links = c.links[offset : offset : offset+degree[i]]
		n.valid.Store(true)
		offset += degree[i]
	}

	// Pass 3: edges and links in declaration order.
	for i, r := range accepted {
		e := &c.edges[i]
		e.ID = model.EdgeID(i)
		e.Start = r.a
		e.End = r.b
		e.valid.Store(true)

		na, nb := &c.nodes[r.a], &c.nodes[r.b]
		na.Links = append(na.Links, model.Link{Node: r.b, Edge: e.ID})
		nb.Links = append(nb.Links, model.Link{Node: r.a, Edge: e.ID})
	}

	return c, nil
}
