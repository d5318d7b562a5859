package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/graphkit/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Points generates num points uniformly in [0, extent)^3.
func (r *RNG) Points(num int, extent float64) []model.Vec {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]model.Vec, num)
	for i := range pts {
		pts[i] = model.Vec{
			X: r.rand.Float64() * extent,
			Y: r.rand.Float64() * extent,
			Z: r.rand.Float64() * extent,
		}
	}
	return pts
}

// PlanarPoints generates num points uniformly in [0, extent)^2 with Z = 0.
func (r *RNG) PlanarPoints(num int, extent float64) []model.Vec {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]model.Vec, num)
	for i := range pts {
		pts[i] = model.Vec{X: r.rand.Float64() * extent, Y: r.rand.Float64() * extent}
	}
	return pts
}

// Floats generates num values uniformly in [0, 1).
func (r *RNG) Floats(num int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, num)
	for i := range out {
		out[i] = r.rand.Float64()
	}
	return out
}

// Bools generates num booleans that are true with probability p.
func (r *RNG) Bools(num int, p float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]bool, num)
	for i := range out {
		out[i] = r.rand.Float64() < p
	}
	return out
}

// Fixture is a graph described by positions and undirected endpoint tuples.
type Fixture struct {
	Points []model.Vec
	Pairs  [][2]int
}

// NumNodes returns the number of points.
func (f Fixture) NumNodes() int { return len(f.Points) }

// NumEdges returns the number of endpoint tuples.
func (f Fixture) NumEdges() int { return len(f.Pairs) }

// Clone returns a deep copy, so that passes writing positions do not affect f.
func (f Fixture) Clone() Fixture {
	return Fixture{
		Points: append([]model.Vec(nil), f.Points...),
		Pairs:  append([][2]int(nil), f.Pairs...),
	}
}

// Cycle returns n points on a circle of the given radius in the XY plane,
// joined as a ring: edge i connects i and (i+1) mod n.
func Cycle(n int, radius float64) Fixture {
	f := Fixture{Points: make([]model.Vec, n), Pairs: make([][2]int, 0, n)}
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		f.Points[i] = model.Vec{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	if n < 3 {
		for i := 0; i+1 < n; i++ {
			f.Pairs = append(f.Pairs, [2]int{i, i + 1})
		}
		return f
	}
	for i := range n {
		f.Pairs = append(f.Pairs, [2]int{i, (i + 1) % n})
	}
	return f
}

// Star returns a hub at the origin (node 0) with the given number of leaves
// on the unit circle. Edge i connects the hub and leaf i+1.
func Star(leaves int) Fixture {
	f := Fixture{Points: make([]model.Vec, leaves+1), Pairs: make([][2]int, leaves)}
	for i := range leaves {
		a := 2 * math.Pi * float64(i) / float64(leaves)
		f.Points[i+1] = model.Vec{X: math.Cos(a), Y: math.Sin(a)}
		f.Pairs[i] = [2]int{0, i + 1}
	}
	return f
}

// Path returns n collinear points along X with unit spacing joined in order.
func Path(n int) Fixture {
	f := Fixture{Points: make([]model.Vec, n)}
	for i := range n {
		f.Points[i] = model.Vec{X: float64(i)}
		if i > 0 {
			f.Pairs = append(f.Pairs, [2]int{i - 1, i})
		}
	}
	return f
}

// GridPoints returns w*h points on a lattice in the XY plane, row major:
// point x+y*w sits at (x*spacing, y*spacing, 0).
func GridPoints(w, h int, spacing float64) []model.Vec {
	pts := make([]model.Vec, 0, w*h)
	for y := range h {
		for x := range w {
			pts = append(pts, model.Vec{X: float64(x) * spacing, Y: float64(y) * spacing})
		}
	}
	return pts
}

// Grid returns a lattice with 4-neighbour edges. Horizontal edges come first,
// then vertical ones. It has (w-1)*h + w*(h-1) edges.
func Grid(w, h int, spacing float64) Fixture {
	f := Fixture{Points: GridPoints(w, h, spacing)}
	for y := range h {
		for x := 0; x+1 < w; x++ {
			f.Pairs = append(f.Pairs, [2]int{x + y*w, x + 1 + y*w})
		}
	}
	for y := 0; y+1 < h; y++ {
		for x := range w {
			f.Pairs = append(f.Pairs, [2]int{x + y*w, x + (y+1)*w})
		}
	}
	return f
}

// RandomGeometric returns num uniform points connected whenever they are
// closer than radius, found by brute force. Pairs are sorted lexicographically
// with the smaller index first.
func (r *RNG) RandomGeometric(num int, extent, radius float64) Fixture {
	f := Fixture{Points: r.Points(num, extent)}
	r2 := radius * radius
	for i := range num {
		for j := i + 1; j < num; j++ {
			if model.DistanceSquared(f.Points[i], f.Points[j]) <= r2 {
				f.Pairs = append(f.Pairs, [2]int{i, j})
			}
		}
	}
	return f
}
