// Package model defines core types used throughout graphkit.
//
// # Identity Types
//
//   - NodeID: Dense, cluster-local node index (int32)
//   - EdgeID: Dense, cluster-local edge index (int32)
//   - Link: Adjacency record pairing a neighbor node with the connecting edge
//
// Indices are assigned at cluster build time and are stable only for the
// lifetime of the owning cluster. A Link never owns the node or edge it
// points at; it is an index into the cluster's arrays.
//
// # Geometry
//
// Vec is an alias for gonum's r3.Vec so positions interoperate directly with
// gonum's spatial packages:
//
//	p := model.Vec{X: 1, Y: 2, Z: 0}
//	d := model.DistanceSquared(p, model.Vec{})
package model
