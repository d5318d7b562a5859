// Package spatial provides neighbor-candidate queries for cluster construction.
//
// The core treats a spatial index as a black box that returns candidate
// point indices. KDTree is backed by gonum's k-d tree; Linear is a brute
// force scan useful for small inputs and as a reference in tests.
package spatial

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/hupe1980/graphkit/attr"
	"github.com/hupe1980/graphkit/model"
)

// Index answers radius queries over a fixed point set.
// Implementations must be safe for concurrent queries.
type Index interface {
	// QueryRadius returns the indices of all points within radius of p,
	// in ascending order.
	QueryRadius(p model.Vec, radius float64) []int
}

// KDTree is a static 3D k-d tree over a point buffer.
type KDTree struct {
	tree *kdtree.Tree
	size int
}

// NewKDTree builds a k-d tree over all positions in points.
// The positions are copied; later writes to points are not observed.
func NewKDTree(points attr.PointBuffer) *KDTree {
	n := points.Len()
	pts := make(indexedPoints, n)
	for i := range n {
		pts[i] = indexedPoint{idx: i, pos: points.Position(i)}
	}
	t := &KDTree{size: n}
	if n > 0 {
		t.tree = kdtree.New(pts, false)
	}
	return t
}

// Len returns the number of indexed points.
func (t *KDTree) Len() int { return t.size }

// QueryRadius implements Index.
func (t *KDTree) QueryRadius(p model.Vec, radius float64) []int {
	if t.tree == nil || radius < 0 {
		return nil
	}

	// Distances in the tree are squared.
	keep := kdtree.NewDistKeeper(radius * radius)
	t.tree.NearestSet(keep, indexedPoint{idx: -1, pos: p})

	out := make([]int, 0, len(keep.Heap))
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			// sentinel
			continue
		}
		out = append(out, c.Comparable.(indexedPoint).idx)
	}
	sort.Ints(out)
	return out
}

// Linear is a brute force Index.
type Linear struct {
	points attr.PointBuffer
}

// NewLinear creates a brute force index over points.
func NewLinear(points attr.PointBuffer) *Linear {
	return &Linear{points: points}
}

// QueryRadius implements Index.
func (l *Linear) QueryRadius(p model.Vec, radius float64) []int {
	if radius < 0 {
		return nil
	}
	r2 := radius * radius
	var out []int
	for i := range l.points.Len() {
		if model.DistanceSquared(p, l.points.Position(i)) <= r2 {
			out = append(out, i)
		}
	}
	return out
}

// Compile time checks.
var (
	_ Index = (*KDTree)(nil)
	_ Index = (*Linear)(nil)
)
