// Package testutil provides testing utilities for graphkit.
//
// This package is intended for use in tests and benchmarks only.
// It provides a deterministic RNG and small graph fixtures described as
// plain points plus endpoint tuples, so that it can be imported from any
// package's tests without import cycles.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.Points(1000, 10) // uniform in [0, 10)^3
//
// # Fixtures
//
//	f := testutil.Cycle(5, 1)  // regular pentagon, 5 edges
//	f := testutil.Star(4)      // hub 0 with leaves 1..4
//	f := testutil.Grid(3, 3, 1) // 4-neighbour lattice
package testutil
