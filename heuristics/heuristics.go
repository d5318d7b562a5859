package heuristics

import (
	"errors"
	"fmt"

	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/model"
)

var (
	// ErrNilCluster is returned when preparing against a nil cluster.
	ErrNilCluster = errors.New("heuristics: nil cluster")

	// ErrBufferSize is returned when an attribute buffer has fewer entries
	// than the cluster has nodes.
	ErrBufferSize = errors.New("heuristics: buffer shorter than node count")
)

// Scorer scores traversing edge from one node to its neighbor.
//
// PrepareForCluster runs before any concurrent use and may build caches.
// Score must not mutate the scorer.
type Scorer interface {
	PrepareForCluster(c *cluster.Cluster) error
	Score(from, to model.NodeID, edge model.EdgeID, seed, goal model.NodeID) float64
}

// Base can be embedded by scorers that need no preparation.
type Base struct{}

// PrepareForCluster implements Scorer.
func (Base) PrepareForCluster(*cluster.Cluster) error { return nil }

// Weighted pairs a scorer with its weight in the handler's sum.
type Weighted struct {
	Scorer Scorer
	Weight float64
}

// Handler is a weighted sum of scorers plus the roaming seed and goal.
type Handler struct {
	entries  []Weighted
	seed     model.NodeID
	goal     model.NodeID
	prepared bool
}

// New creates a handler. Entries with a nil scorer are ignored.
func New(entries ...Weighted) *Handler {
	h := &Handler{seed: model.InvalidNode, goal: model.InvalidNode}
	for _, e := range entries {
		if e.Scorer != nil {
			h.entries = append(h.entries, e)
		}
	}
	return h
}

// PrepareForCluster prepares every scorer for c and records the roaming
// seed and goal. It must complete before the handler is used concurrently.
func (h *Handler) PrepareForCluster(c *cluster.Cluster, seed, goal model.NodeID) error {
	if c == nil {
		return ErrNilCluster
	}
	for i, e := range h.entries {
		if err := e.Scorer.PrepareForCluster(c); err != nil {
			return fmt.Errorf("heuristics: prepare scorer %d: %w", i, err)
		}
	}
	h.seed = seed
	h.goal = goal
	h.prepared = true
	return nil
}

// IsPrepared reports whether PrepareForCluster has succeeded.
func (h *Handler) IsPrepared() bool { return h.prepared }

// Seed returns the roaming seed.
func (h *Handler) Seed() model.NodeID { return h.seed }

// Goal returns the roaming goal.
func (h *Handler) Goal() model.NodeID { return h.goal }

// Len returns the number of scorers.
func (h *Handler) Len() int { return len(h.entries) }

// EdgeScore returns the weighted score of traversing edge from one node to
// the other, against the roaming seed and goal.
func (h *Handler) EdgeScore(from, to model.NodeID, edge model.EdgeID) float64 {
	return h.score(from, to, edge, h.seed, h.goal)
}

// ComputeScore returns the accumulated score after moving from one node to
// its neighbor along edge, given the score so far.
func (h *Handler) ComputeScore(current float64, from, to model.NodeID, edge model.EdgeID, seed, goal model.NodeID) float64 {
	if len(h.entries) == 0 {
		return current + 1
	}
	return current + h.score(from, to, edge, seed, goal)
}

func (h *Handler) score(from, to model.NodeID, edge model.EdgeID, seed, goal model.NodeID) float64 {
	var sum float64
	for _, e := range h.entries {
		sum += e.Weight * e.Scorer.Score(from, to, edge, seed, goal)
	}
	return sum
}
