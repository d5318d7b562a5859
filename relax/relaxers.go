package relax

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/model"
)

// Laplacian moves every node to the average of its neighbors.
// Only valid edges to valid neighbors count; a node without any is left
// where it is.
type Laplacian struct{ Base }

// Step implements Relaxer.
func (Laplacian) Step(c *cluster.Cluster, current []model.Vec, node model.NodeID) model.Vec {
	p := current[node]
	var sum model.Vec
	k := 0
	for _, l := range c.Node(node).Links {
		if !active(c, l) {
			continue
		}
		sum = r3.Add(sum, r3.Sub(current[l.Node], p))
		k++
	}
	if k == 0 {
		return p
	}
	return r3.Add(p, r3.Scale(1/float64(k), sum))
}

// ForceDirected applies a spring force toward each linked neighbor and an
// inverse-square repulsion away from it. Coincident neighbors exert no force.
type ForceDirected struct {
	Base
	SpringConstant        float64
	ElectrostaticConstant float64
}

// Step implements Relaxer.
func (f ForceDirected) Step(c *cluster.Cluster, current []model.Vec, node model.NodeID) model.Vec {
	p := current[node]
	var force model.Vec
	for _, l := range c.Node(node).Links {
		if !active(c, l) {
			continue
		}
		d := r3.Sub(current[l.Node], p)
		dist2 := r3.Norm2(d)
		if dist2 == 0 {
			continue
		}
		force = r3.Add(force, r3.Scale(f.SpringConstant, d))
		// d/|d| / |d|^2 = d / |d|^3
		force = r3.Sub(force, r3.Scale(f.ElectrostaticConstant/(dist2*r3.Norm(d)), d))
	}
	return r3.Add(p, force)
}

func active(c *cluster.Cluster, l model.Link) bool {
	return c.Edge(l.Edge).IsValid() && c.Node(l.Node).IsValid()
}

var (
	_ Relaxer = Noop{}
	_ Relaxer = Laplacian{}
	_ Relaxer = ForceDirected{}
)
