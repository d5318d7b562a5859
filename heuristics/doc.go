// Package heuristics composes weighted scoring functions into the edge score
// used by path search and score-based refinement.
//
// A Handler is prepared once per cluster (single writer), after which it and
// all of its scorers are read-only and may be shared by any number of
// concurrent searches:
//
//	h := heuristics.New(
//	    heuristics.Weighted{Scorer: &heuristics.Distance{}, Weight: 1},
//	    heuristics.Weighted{Scorer: &heuristics.Steepness{}, Weight: 0.5},
//	)
//	if err := h.PrepareForCluster(c, seed, goal); err != nil {
//	    return err
//	}
//
// A Handler with no scorers counts hops: every traversed edge adds 1.
package heuristics
