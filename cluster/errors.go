package cluster

import (
	"errors"
	"fmt"
)

var (
	// ErrDanglingEdge indicates an edge endpoint that does not resolve to a node.
	ErrDanglingEdge = errors.New("cluster: dangling edge endpoint")

	// ErrDuplicateEdge indicates an edge that repeats an earlier undirected edge.
	ErrDuplicateEdge = errors.New("cluster: duplicate edge")

	// ErrSelfLoop indicates an edge whose endpoints resolve to the same node.
	ErrSelfLoop = errors.New("cluster: self loop")

	// ErrEmptyPoints is returned when no point buffer is supplied.
	ErrEmptyPoints = errors.New("cluster: nil point buffer")

	// ErrTooLarge is returned when node or edge counts exceed the id range.
	ErrTooLarge = errors.New("cluster: too many elements")
)

// BuildError describes the input edge that made a strict build fail.
//
// The original underlying error can be accessed via errors.Unwrap.
type BuildError struct {
	Edge int // index into the input edge list
	A, B int // input endpoint keys
	cause error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%v: input edge %d (%d-%d)", e.cause, e.Edge, e.A, e.B)
}

func (e *BuildError) Unwrap() error { return e.cause }
