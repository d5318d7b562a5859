package graphkit

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by Engine methods after Close.
	ErrClosed = errors.New("graphkit: engine closed")

	// ErrNilCluster is returned when a pass is given a nil cluster.
	ErrNilCluster = errors.New("graphkit: nil cluster")
)

// PassError describes a failed engine pass.
//
// The original underlying error can be accessed via errors.Unwrap.
type PassError struct {
	Pass  string // build, refine, relax, search
	Name  string // refiner or relaxer type, if any
	cause error
}

func (e *PassError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("graphkit: %s %s: %v", e.Pass, e.Name, e.cause)
	}
	return fmt.Sprintf("graphkit: %s: %v", e.Pass, e.cause)
}

func (e *PassError) Unwrap() error { return e.cause }

func passError(pass, name string, err error) error {
	if err == nil {
		return nil
	}
	return &PassError{Pass: pass, Name: name, cause: err}
}
