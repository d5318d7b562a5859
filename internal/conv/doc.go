// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow
// when converting between Go's platform-dependent int and the fixed-width
// index types used for nodes, edges, and bitmap ids.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices bounded by a cluster's node count), use direct type casts instead.
package conv
