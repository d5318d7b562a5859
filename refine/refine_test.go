package refine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/graphkit/attr"
	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/heuristics"
	"github.com/hupe1980/graphkit/model"
	"github.com/hupe1980/graphkit/task"
	"github.com/hupe1980/graphkit/testutil"
)

func build(t *testing.T, f testutil.Fixture) *cluster.Cluster {
	t.Helper()
	c, err := cluster.Build(attr.Points(f.Points), cluster.Pairs(f.Pairs...))
	require.NoError(t, err)
	return c
}

// triangle has sides e0 = 0-1 (1), e1 = 1-2 (sqrt 5), e2 = 0-2 (2).
func triangle(t *testing.T) *cluster.Cluster {
	t.Helper()
	return build(t, testutil.Fixture{
		Points: []model.Vec{{X: 0}, {X: 1}, {Y: 2}},
		Pairs:  [][2]int{{0, 1}, {1, 2}, {0, 2}},
	})
}

func validEdges(c *cluster.Cluster) []uint32 { return c.ValidEdges().ToArray() }

func newManager(t *testing.T) *task.Manager {
	t.Helper()
	m := task.New(task.WithWorkers(4))
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestSpanningTree_FiveCycle(t *testing.T) {
	c := build(t, testutil.Cycle(5, 1))

	require.NoError(t, Run(t.Context(), nil, c, SpanningTree{Root: 0}))

	assert.Equal(t, 4, c.CountValidEdges())
	assert.Equal(t, []uint32{0, 1, 2, 3}, validEdges(c))
	assert.Len(t, c.Components(), 1, "valid subgraph is connected")

	require.NoError(t, Run(t.Context(), nil, c, SpanningTree{Root: 0, Invert: true}))
	assert.Equal(t, []uint32{4}, validEdges(c))
}

func TestSpanningTree_Forest(t *testing.T) {
	rng := testutil.NewRNG(5)
	c := build(t, rng.RandomGeometric(300, 10, 1.1))

	require.NoError(t, Run(t.Context(), nil, c, SpanningTree{Root: 17}))

	valid := c.CountValidEdges()
	assert.LessOrEqual(t, valid, c.NumNodes()-1)
	// A forest has exactly one edge fewer than nodes per component.
	assert.Equal(t, c.NumNodes()-len(c.Components()), valid)
}

func TestMinimumSpanningTree(t *testing.T) {
	// Unit square plus one diagonal (edge 4).
	c := build(t, testutil.Fixture{
		Points: []model.Vec{{X: 0}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
		Pairs:  [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}},
	})

	require.NoError(t, Run(t.Context(), nil, c, MinimumSpanningTree{}))
	assert.Equal(t, []uint32{0, 1, 2}, validEdges(c))

	require.NoError(t, Run(t.Context(), nil, c, MinimumSpanningTree{Invert: true}))
	assert.Equal(t, []uint32{3, 4}, validEdges(c))
}

func TestRemoveLeaves_Star(t *testing.T) {
	c := build(t, testutil.Star(4))

	require.NoError(t, Run(t.Context(), newManager(t), c, RemoveLeaves{}, WithChunkSize(1)))

	assert.True(t, c.Node(0).IsValid())
	for i := 1; i <= 4; i++ {
		assert.False(t, c.Node(model.NodeID(i)).IsValid(), "leaf %d", i)
	}
	assert.Equal(t, 0, c.CountValidEdges())
}

func TestRemoveLeaves_Chain(t *testing.T) {
	// 0-1-2 dangles off triangle 2-3-4.
	c := build(t, testutil.Fixture{
		Points: testutil.GridPoints(5, 1, 1),
		Pairs:  [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 2}},
	})

	require.NoError(t, Run(t.Context(), nil, c, RemoveLeaves{}))

	assert.Equal(t, []uint32{2, 3, 4}, c.ValidNodes().ToArray())
	assert.Equal(t, []uint32{2, 3, 4}, validEdges(c))
}

func TestRemoveLeaves_IsolatedPaths(t *testing.T) {
	for _, n := range []int{2, 3, 6} {
		c := build(t, testutil.Path(n))

		require.NoError(t, Run(t.Context(), nil, c, RemoveLeaves{}))
		assert.Equal(t, n, c.CountValidNodes(), "path of %d", n)
		assert.Equal(t, n-1, c.CountValidEdges(), "path of %d", n)
	}
}

func TestRemoveLeaves_Idempotent(t *testing.T) {
	rng := testutil.NewRNG(21)
	c := build(t, rng.RandomGeometric(400, 10, 0.9))
	m := newManager(t)

	require.NoError(t, Run(t.Context(), m, c, RemoveLeaves{}, WithChunkSize(16)))
	nodes, edges := c.ValidNodes(), c.ValidEdges()

	require.NoError(t, Run(t.Context(), m, c, RemoveLeaves{}, WithChunkSize(16)))
	assert.True(t, nodes.Equals(c.ValidNodes()))
	assert.True(t, edges.Equals(c.ValidEdges()))
}

func TestKeepByScore(t *testing.T) {
	c := triangle(t)
	h := heuristics.New(heuristics.Weighted{Scorer: &heuristics.Distance{}, Weight: 1})
	require.NoError(t, h.PrepareForCluster(c, 0, 2))

	require.NoError(t, Run(t.Context(), nil, c, KeepByScore{Handler: h, Highest: true}))
	assert.Equal(t, []uint32{1, 2}, validEdges(c))

	require.NoError(t, Run(t.Context(), nil, c, KeepByScore{Handler: h}))
	assert.Equal(t, []uint32{0, 2}, validEdges(c))
}

func TestKeepByScore_TieFirstLinkWins(t *testing.T) {
	c := triangle(t)

	require.NoError(t, Run(t.Context(), nil, c, KeepByScore{Highest: true}))
	// node 0 -> e0, node 1 -> e0, node 2 -> e1
	assert.Equal(t, []uint32{0, 1}, validEdges(c))
}

func TestKeepByScore_Unprepared(t *testing.T) {
	c := triangle(t)
	err := Run(t.Context(), nil, c, KeepByScore{Handler: heuristics.New()})
	assert.ErrorIs(t, err, ErrUnprepared)
	assert.Equal(t, 3, c.CountValidEdges(), "prepare failure leaves validity alone")
}

func TestRemoveByLength(t *testing.T) {
	c := triangle(t)

	require.NoError(t, Run(t.Context(), nil, c, RemoveByLength{Longest: true}))
	assert.Equal(t, []uint32{0}, validEdges(c))

	require.NoError(t, Run(t.Context(), nil, c, RemoveByLength{}))
	assert.Equal(t, []uint32{1}, validEdges(c))
}

func TestRemoveByLength_Idempotent(t *testing.T) {
	rng := testutil.NewRNG(8)
	c := build(t, rng.RandomGeometric(200, 10, 1.5))
	m := newManager(t)

	require.NoError(t, Run(t.Context(), m, c, RemoveByLength{Longest: true}, WithChunkSize(8)))
	first := c.ValidEdges()
	require.NoError(t, Run(t.Context(), m, c, RemoveByLength{Longest: true}, WithChunkSize(3)))
	assert.True(t, first.Equals(c.ValidEdges()))
}

func TestRemoveOverlong(t *testing.T) {
	c := triangle(t)

	require.NoError(t, Run(t.Context(), nil, c, RemoveOverlong{MaxLength: 1.5}))
	assert.Equal(t, []uint32{0}, validEdges(c))
}

func TestFilter(t *testing.T) {
	c := triangle(t)

	require.NoError(t, Run(t.Context(), nil, c, Filter{Buffer: attr.Bools{true, false, true}}))
	assert.Equal(t, []uint32{0, 2}, validEdges(c))

	require.NoError(t, Run(t.Context(), nil, c, Filter{Buffer: attr.Bools{true, false, true}, Invert: true}))
	assert.Equal(t, []uint32{1}, validEdges(c))

	err := Run(t.Context(), nil, c, Filter{Buffer: attr.Bools{true}})
	assert.ErrorIs(t, err, ErrBufferSize)
}

func TestPartitionInvariant(t *testing.T) {
	rng := testutil.NewRNG(13)
	f := rng.RandomGeometric(250, 10, 1.3)
	m := newManager(t)

	refiners := []Refiner{
		Noop{},
		KeepByScore{Highest: true},
		RemoveByLength{Longest: true},
		RemoveLeaves{},
		Filter{Buffer: attr.Bools(rng.Bools(len(f.Pairs), 0.5))},
		SpanningTree{},
		MinimumSpanningTree{},
		RemoveOverlong{MaxLength: 1},
	}
	for _, r := range refiners {
		c := build(t, f)
		require.NoError(t, Run(t.Context(), m, c, r))

		valid := c.ValidEdges()
		invalid := valid.Clone()
		invalid.Flip(0, uint64(c.NumEdges()))
		assert.Equal(t, uint64(c.NumEdges()), valid.GetCardinality()+invalid.GetCardinality())
		assert.Zero(t, valid.AndCardinality(invalid))
	}
}

func TestRunAll(t *testing.T) {
	c := build(t, testutil.Grid(4, 4, 1))

	err := RunAll(t.Context(), newManager(t), c, []Refiner{MinimumSpanningTree{}, RemoveLeaves{}})
	require.NoError(t, err)
	assert.Equal(t, c.NumNodes()-1, c.CountValidEdges())
}

func TestRun_Cancelled(t *testing.T) {
	c := build(t, testutil.Cycle(5, 1))
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	assert.ErrorIs(t, Run(ctx, nil, c, RemoveLeaves{}), context.Canceled)
	assert.ErrorIs(t, Run(ctx, nil, c, SpanningTree{}), context.Canceled)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "per-node", PerNode.String())
	assert.Equal(t, "whole-graph", WholeGraph.String())
	assert.Equal(t, WholeGraph, SpanningTree{}.Mode())
	assert.Equal(t, PerNode, RemoveLeaves{}.Mode())
}
