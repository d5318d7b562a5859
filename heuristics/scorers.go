package heuristics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/graphkit/attr"
	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/model"
)

// Constant scores every edge the same. A zero Value scores 1, which makes a
// handler of one Constant count hops.
type Constant struct {
	Base
	Value float64
}

// Score implements Scorer.
func (s Constant) Score(model.NodeID, model.NodeID, model.EdgeID, model.NodeID, model.NodeID) float64 {
	if s.Value == 0 {
		return 1
	}
	return s.Value
}

// Distance scores an edge by its length relative to the longest edge in the
// cluster, in [0, 1].
type Distance struct {
	c      *cluster.Cluster
	maxLen float64
}

// PrepareForCluster implements Scorer.
func (s *Distance) PrepareForCluster(c *cluster.Cluster) error {
	s.c = c
	s.maxLen = 0
	for i := range c.NumEdges() {
		s.maxLen = math.Max(s.maxLen, c.EdgeLength(model.EdgeID(i)))
	}
	return nil
}

// Score implements Scorer.
func (s *Distance) Score(_, _ model.NodeID, edge model.EdgeID, _, _ model.NodeID) float64 {
	if s.maxLen == 0 {
		return 0
	}
	return s.c.EdgeLength(edge) / s.maxLen
}

// Azimuth favors edges heading toward the goal. It scores 0 for an edge that
// points straight at the goal and 1 for one pointing straight away.
type Azimuth struct {
	c *cluster.Cluster
}

// PrepareForCluster implements Scorer.
func (s *Azimuth) PrepareForCluster(c *cluster.Cluster) error {
	s.c = c
	return nil
}

// Score implements Scorer.
func (s *Azimuth) Score(from, to model.NodeID, _ model.EdgeID, _, goal model.NodeID) float64 {
	if !goal.IsValid() {
		return 0
	}
	origin := s.c.Position(from)
	dir, ok := unit(r3.Sub(s.c.Position(to), origin))
	if !ok {
		return 0
	}
	toGoal, ok := unit(r3.Sub(s.c.Position(goal), origin))
	if !ok {
		return 0
	}
	return (1 - r3.Dot(dir, toGoal)) / 2
}

// Steepness scores an edge by how closely it aligns with Up, in [0, 1].
// A zero Up selects +Z.
type Steepness struct {
	Up model.Vec

	c  *cluster.Cluster
	up model.Vec
}

// PrepareForCluster implements Scorer.
func (s *Steepness) PrepareForCluster(c *cluster.Cluster) error {
	s.c = c
	up, ok := unit(s.Up)
	if !ok {
		up = model.Vec{Z: 1}
	}
	s.up = up
	return nil
}

// Score implements Scorer.
func (s *Steepness) Score(from, to model.NodeID, _ model.EdgeID, _, _ model.NodeID) float64 {
	dir, ok := unit(r3.Sub(s.c.Position(to), s.c.Position(from)))
	if !ok {
		return 0
	}
	return math.Abs(r3.Dot(dir, s.up))
}

// Attribute scores an edge by a per-node scalar of the node it leads to,
// normalized to [0, 1] over the cluster. With Invert, low values score high.
type Attribute struct {
	Buffer attr.FloatBuffer
	Invert bool

	lo, span float64
}

// PrepareForCluster implements Scorer.
func (s *Attribute) PrepareForCluster(c *cluster.Cluster) error {
	if s.Buffer == nil || s.Buffer.Len() < c.NumNodes() {
		return ErrBufferSize
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range c.NumNodes() {
		v := s.Buffer.Float(i)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if c.NumNodes() == 0 {
		lo, hi = 0, 0
	}
	s.lo, s.span = lo, hi-lo
	return nil
}

// Score implements Scorer.
func (s *Attribute) Score(_, to model.NodeID, _ model.EdgeID, _, _ model.NodeID) float64 {
	v := 0.0
	if s.span > 0 {
		v = (s.Buffer.Float(int(to)) - s.lo) / s.span
	}
	if s.Invert {
		return 1 - v
	}
	return v
}

// unit returns v scaled to length 1, or false for the zero vector.
func unit(v model.Vec) (model.Vec, bool) {
	n := r3.Norm(v)
	if n == 0 {
		return model.Vec{}, false
	}
	return r3.Scale(1/n, v), true
}

// Compile time checks.
var (
	_ Scorer = Constant{}
	_ Scorer = (*Distance)(nil)
	_ Scorer = (*Azimuth)(nil)
	_ Scorer = (*Steepness)(nil)
	_ Scorer = (*Attribute)(nil)
)
