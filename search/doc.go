// Package search implements heuristic-guided path search over a cluster.
//
// BestFirst expands the lowest scoring node first using a lazy-deletion
// priority queue. Only valid edges between valid nodes are traversed, so
// search composes with refinement passes that flip validity flags.
//
// A missing path is an expected outcome, not an error:
//
//	path, ok := search.BestFirst{}.FindPath(ctx, c, h, seed, goal)
//	if !ok {
//	    // no path
//	}
//
// Batch runs many independent searches as one task group.
package search
