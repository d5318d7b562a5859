package model

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// NodeID is a dense, cluster-local identifier for a node.
type NodeID int32

// EdgeID is a dense, cluster-local identifier for an edge.
type EdgeID int32

const (
	// InvalidNode marks the absence of a node.
	InvalidNode NodeID = -1
	// InvalidEdge marks the absence of an edge.
	InvalidEdge EdgeID = -1
)

// IsValid reports whether id refers to a node (it does not check bounds).
func (id NodeID) IsValid() bool { return id >= 0 }

// IsValid reports whether id refers to an edge (it does not check bounds).
func (id EdgeID) IsValid() bool { return id >= 0 }

// Link is one adjacency entry of a node: the neighbor reached through Edge.
// Links are read-only after cluster construction.
type Link struct {
	Node NodeID
	Edge EdgeID
}

// String returns a string representation of the Link.
func (l Link) String() string {
	return fmt.Sprintf("Link(%d via %d)", l.Node, l.Edge)
}

// Vec is a point or direction in 3D space.
type Vec = r3.Vec

// DistanceSquared returns the squared euclidean distance between a and b.
func DistanceSquared(a, b Vec) float64 {
	return r3.Norm2(r3.Sub(a, b))
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b Vec, t float64) Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
