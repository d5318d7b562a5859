// Package refine implements passes that decide which nodes and edges of a
// cluster stay valid.
//
// Every Refiner declares one processing mode. PerNode refiners are invoked
// once per node in parallel and may only flip validity flags through the
// cluster's atomic setters. WholeGraph refiners run once, sequentially, for
// passes that need global traversal state such as spanning trees.
//
// Run is a barrier: it returns after the whole pass has finished, so passes
// run back to back never overlap.
//
//	if err := refine.Run(ctx, m, c, refine.RemoveByLength{Longest: true}); err != nil {
//	    return err
//	}
package refine
