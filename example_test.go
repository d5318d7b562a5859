package graphkit_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/graphkit"
	"github.com/hupe1980/graphkit/attr"
	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/heuristics"
	"github.com/hupe1980/graphkit/refine"
	"github.com/hupe1980/graphkit/relax"
	"github.com/hupe1980/graphkit/search"
)

// Example demonstrates building a cluster, pruning it, and finding a path.
func Example() {
	ctx := context.Background()
	eng := graphkit.New(graphkit.WithWorkers(4))
	defer eng.Close()

	// A square with a dangling tail off corner 2.
	points := attr.Points{{X: 0}, {X: 1}, {X: 1, Y: 1}, {Y: 1}, {X: 2, Y: 2}}
	c, err := eng.Build(ctx, points, cluster.Pairs(
		[2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 0}, [2]int{2, 4},
	))
	if err != nil {
		log.Fatal(err)
	}

	if err := eng.Refine(ctx, c, refine.RemoveLeaves{}); err != nil {
		log.Fatal(err)
	}
	fmt.Println("valid edges:", c.CountValidEdges())

	h := heuristics.New(heuristics.Weighted{Scorer: &heuristics.Distance{}, Weight: 1})
	p, ok, err := eng.FindPath(ctx, c, h, 0, 2)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("found:", ok, "nodes:", p.Nodes)
	// Output:
	// valid edges: 4
	// found: true nodes: [0 1 2]
}

// Example_radius demonstrates connecting points by distance.
func Example_radius() {
	ctx := context.Background()
	eng := graphkit.New()
	defer eng.Close()

	points := attr.Points{{X: 0}, {X: 1}, {X: 2}, {X: 5}}
	c, err := eng.BuildFromIndex(ctx, points, nil, 1.5)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("edges:", c.NumEdges(), "components:", len(c.Components()))
	// Output: edges: 2 components: 2
}

// Example_batch demonstrates running several queries in parallel.
func Example_batch() {
	ctx := context.Background()
	eng := graphkit.New()
	defer eng.Close()

	points := attr.Points{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	c, err := eng.Build(ctx, points, cluster.Pairs([2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3}))
	if err != nil {
		log.Fatal(err)
	}

	results, err := eng.FindPaths(ctx, c, nil, []search.Query{
		{Seed: 0, Goal: 3},
		{Seed: 3, Goal: 1},
	})
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range results {
		fmt.Println(r.Path.Nodes)
	}
	// Output:
	// [0 1 2 3]
	// [3 2 1]
}

// Example_relax demonstrates smoothing a polyline.
func Example_relax() {
	ctx := context.Background()
	eng := graphkit.New(graphkit.WithRelaxOptions(relax.Options{Iterations: 1, Influence: 1, ValidOnly: true}))
	defer eng.Close()

	points := attr.Points{{X: 0}, {X: 1, Y: 1}, {X: 2}}
	c, err := eng.Build(ctx, points, cluster.Pairs([2]int{0, 1}, [2]int{1, 2}))
	if err != nil {
		log.Fatal(err)
	}

	if err := eng.Relax(ctx, c, points, relax.Laplacian{}); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.1f %.1f\n", points[1].X, points[1].Y)
	// Output: 1.0 0.0
}
