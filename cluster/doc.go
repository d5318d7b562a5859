// Package cluster implements the in-memory graph that every pass operates on.
//
// A Cluster owns a contiguous node array and a contiguous edge array indexed
// by dense ids. Each node carries its Links (neighbor, edge) in the order the
// edges were declared. Positions are read from an externally owned
// attr.PointBuffer.
//
// # Lifecycle
//
// A cluster is built once by a single writer (Build or BuildFromIndex) and is
// then shared read-only by any number of concurrent readers. Counts never
// change after build. The only sanctioned mutation is flipping node and edge
// validity flags, which are atomic booleans:
//
//	c, err := cluster.Build(points, []cluster.EndpointPair{{A: 0, B: 1}, {A: 1, B: 2}})
//	if err != nil {
//	    return err
//	}
//	c.Edge(0).SetValid(false) // last writer wins
//
// # Build Modes
//
// Strict mode (the default) rejects dangling endpoints, self loops, and
// duplicate edges with a *BuildError. Permissive mode (WithPermissive) skips
// the offending edges instead. A partially built cluster is never returned.
package cluster
