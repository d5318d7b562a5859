// Package graphkit is the concurrent graph-processing core of a procedural
// content toolkit.
//
// It builds an in-memory cluster of nodes and edges from point data, runs
// heuristic-guided path search over it, and applies refinement and
// relaxation passes that mutate node and edge state in parallel.
//
// # Quick Start
//
//	ctx := context.Background()
//	eng := graphkit.New(graphkit.WithWorkers(8))
//	defer eng.Close()
//
//	points := attr.Points{{X: 0}, {X: 1}, {X: 2}}
//	c, _ := eng.Build(ctx, points, cluster.Pairs([2]int{0, 1}, [2]int{1, 2}))
//
//	_ = eng.Refine(ctx, c, refine.SpanningTree{Root: 0})
//	_ = eng.Relax(ctx, c, points, relax.Laplacian{})
//
//	results, _ := eng.FindPaths(ctx, c, heuristics.New(), []search.Query{{Seed: 0, Goal: 2}})
//
// # Passes
//
// Every Engine method that touches a cluster is a barrier: it returns only
// after all of its parallel work has completed, so passes run back to back
// never overlap. After build, the only mutations are atomic validity flips
// and double-buffered position writes.
//
// # Packages
//
//   - cluster: nodes, edges, links, validity, build
//   - search, heuristics: best-first path search and edge scoring
//   - refine: validity passes (filters, spanning trees, leaf pruning, ...)
//   - relax: position smoothing
//   - task: bounded worker pool with task groups, cancellation, and reset
//   - shard: sharded concurrent set and map
//   - spatial: radius queries over gonum's k-d tree
//   - config: YAML configuration
//
// # Observability
//
// Logging uses log/slog through Logger. Metrics go to a MetricsCollector;
// BasicMetricsCollector keeps in-memory counters and PrometheusCollector
// exports to a Prometheus registry. Both also observe task lifecycles.
package graphkit
