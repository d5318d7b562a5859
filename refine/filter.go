package refine

import (
	"github.com/hupe1980/graphkit/attr"
	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/model"
)

// Filter copies a per-edge boolean buffer onto edge validity, optionally
// inverted.
type Filter struct {
	Buffer attr.BoolBuffer
	Invert bool
}

// Mode implements Refiner.
func (Filter) Mode() Mode { return WholeGraph }

// Prepare implements Refiner.
func (f Filter) Prepare(c *cluster.Cluster) error {
	if f.Buffer == nil || f.Buffer.Len() < c.NumEdges() {
		return ErrBufferSize
	}
	return nil
}

// ProcessNode implements Refiner.
func (Filter) ProcessNode(*cluster.Cluster, model.NodeID) {}

// ProcessGraph implements Refiner.
func (f Filter) ProcessGraph(c *cluster.Cluster) {
	for i := range c.NumEdges() {
		c.Edge(model.EdgeID(i)).SetValid(f.Buffer.Bool(i) != f.Invert)
	}
}
