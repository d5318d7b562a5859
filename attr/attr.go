// Package attr defines the buffer interfaces graphkit uses to read and write
// per-point and per-edge attributes owned by the surrounding system.
//
// The core never owns attribute schema or serialization. It reads positions
// and filter flags through these interfaces and writes smoothed positions
// back through PointBuffer. The slice-backed implementations in this package
// are sufficient for tests and for callers that keep attributes in memory.
package attr

import "github.com/hupe1980/graphkit/model"

// PointBuffer is an indexable position buffer.
// Position must be safe for concurrent reads. SetPosition is only called
// from a single writer after a relaxation run finishes.
type PointBuffer interface {
	Len() int
	Position(i int) model.Vec
	SetPosition(i int, v model.Vec)
}

// BoolBuffer is an indexable read-only boolean buffer.
type BoolBuffer interface {
	Len() int
	Bool(i int) bool
}

// FloatBuffer is an indexable read-only scalar buffer.
type FloatBuffer interface {
	Len() int
	Float(i int) float64
}

// Points is a slice-backed PointBuffer.
type Points []model.Vec

// Len implements PointBuffer.
func (p Points) Len() int { return len(p) }

// Position implements PointBuffer.
func (p Points) Position(i int) model.Vec { return p[i] }

// SetPosition implements PointBuffer.
func (p Points) SetPosition(i int, v model.Vec) { p[i] = v }

// Bools is a slice-backed BoolBuffer.
type Bools []bool

// Len implements BoolBuffer.
func (b Bools) Len() int { return len(b) }

// Bool implements BoolBuffer.
func (b Bools) Bool(i int) bool { return b[i] }

// Floats is a slice-backed FloatBuffer.
type Floats []float64

// Len implements FloatBuffer.
func (f Floats) Len() int { return len(f) }

// Float implements FloatBuffer.
func (f Floats) Float(i int) float64 { return f[i] }

// Compile time checks.
var (
	_ PointBuffer = Points(nil)
	_ BoolBuffer  = Bools(nil)
	_ FloatBuffer = Floats(nil)
)
