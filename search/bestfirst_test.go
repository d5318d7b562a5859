package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/graphkit/attr"
	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/heuristics"
	"github.com/hupe1980/graphkit/model"
	"github.com/hupe1980/graphkit/testutil"
)

func build(t *testing.T, f testutil.Fixture) *cluster.Cluster {
	t.Helper()
	c, err := cluster.Build(attr.Points(f.Points), cluster.Pairs(f.Pairs...))
	require.NoError(t, err)
	return c
}

func TestBestFirst_Line(t *testing.T) {
	c := build(t, testutil.Path(5))

	p, ok := BestFirst{}.FindPath(t.Context(), c, heuristics.New(), 0, 4)
	require.True(t, ok)
	assert.Equal(t, []model.NodeID{0, 1, 2, 3, 4}, p.Nodes)
	assert.Equal(t, []model.EdgeID{0, 1, 2, 3}, p.Edges)
	assert.Equal(t, 4.0, p.Score)
	assert.Equal(t, 5, p.Len())
	assert.InDelta(t, 4.0, p.Length(c), 1e-12)
	assert.Equal(t, model.NodeID(4), p.Goal())
}

func TestBestFirst_SeedIsGoal(t *testing.T) {
	c := build(t, testutil.Path(3))

	p, ok := BestFirst{}.FindPath(t.Context(), c, nil, 1, 1)
	require.True(t, ok)
	assert.Equal(t, []model.NodeID{1}, p.Nodes)
	assert.Empty(t, p.Edges)
	assert.Equal(t, 0.0, p.Score)
}

func TestBestFirst_TieBreakFirstDiscovered(t *testing.T) {
	c := build(t, testutil.Cycle(6, 1))

	// Node 0 links to 1 (edge 0) before 5 (edge 5), so the 1-2-3 side wins.
	for range 10 {
		p, ok := BestFirst{}.FindPath(t.Context(), c, heuristics.New(), 0, 3)
		require.True(t, ok)
		assert.Equal(t, []model.NodeID{0, 1, 2, 3}, p.Nodes)
	}
}

func TestBestFirst_SkipsInvalidEdges(t *testing.T) {
	c := build(t, testutil.Cycle(6, 1))

	c.Edge(1).SetValid(false) // 1-2
	p, ok := BestFirst{}.FindPath(t.Context(), c, heuristics.New(), 0, 3)
	require.True(t, ok)
	assert.Equal(t, []model.NodeID{0, 5, 4, 3}, p.Nodes)
	for _, e := range p.Edges {
		assert.True(t, c.Edge(e).IsValid())
	}

	c.Edge(4).SetValid(false) // 4-5
	_, ok = BestFirst{}.FindPath(t.Context(), c, heuristics.New(), 0, 3)
	assert.False(t, ok)
}

func TestBestFirst_SkipsInvalidNodes(t *testing.T) {
	c := build(t, testutil.Path(4))

	c.Node(2).SetValid(false)
	_, ok := BestFirst{}.FindPath(t.Context(), c, nil, 0, 3)
	assert.False(t, ok)

	_, ok = BestFirst{}.FindPath(t.Context(), c, nil, 2, 3)
	assert.False(t, ok, "invalid seed")

	_, ok = BestFirst{}.FindPath(t.Context(), c, nil, 99, 3)
	assert.False(t, ok, "out of range seed")
}

func TestBestFirst_DistanceHeuristic(t *testing.T) {
	// 0-1-3 has two hops but a long detour; 0-2-4-3 hugs the axis.
	points := attr.Points{
		{X: 0},
		{X: 2, Y: 5},
		{X: 1, Y: 0.1},
		{X: 4},
		{X: 3, Y: 0.1},
	}
	c, err := cluster.Build(points, cluster.Pairs([2]int{0, 1}, [2]int{1, 3}, [2]int{0, 2}, [2]int{2, 4}, [2]int{4, 3}))
	require.NoError(t, err)

	hops, ok := BestFirst{}.FindPath(t.Context(), c, heuristics.New(), 0, 3)
	require.True(t, ok)
	assert.Equal(t, []model.NodeID{0, 1, 3}, hops.Nodes)

	h := heuristics.New(heuristics.Weighted{Scorer: &heuristics.Distance{}, Weight: 1})
	require.NoError(t, h.PrepareForCluster(c, 0, 3))
	short, ok := BestFirst{}.FindPath(t.Context(), c, h, 0, 3)
	require.True(t, ok)
	assert.Equal(t, []model.NodeID{0, 2, 4, 3}, short.Nodes)
	assert.Less(t, short.Length(c), hops.Length(c))
}

func TestBestFirst_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(3)
	c := build(t, rng.RandomGeometric(400, 10, 1.2))
	h := heuristics.New(heuristics.Weighted{Scorer: &heuristics.Distance{}, Weight: 1})
	require.NoError(t, h.PrepareForCluster(c, 0, 399))

	first, ok1 := BestFirst{}.FindPath(t.Context(), c, h, 0, 399)
	for range 5 {
		p, ok := BestFirst{}.FindPath(t.Context(), c, h, 0, 399)
		assert.Equal(t, ok1, ok)
		assert.Equal(t, first, p)
	}
}

func TestBestFirst_Cancelled(t *testing.T) {
	c := build(t, testutil.Path(10))
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, ok := BestFirst{}.FindPath(ctx, c, nil, 0, 9)
	assert.False(t, ok)
}

func TestBestFirst_UnpreparedHandler(t *testing.T) {
	c := build(t, testutil.Path(4))

	for _, sc := range []heuristics.Scorer{&heuristics.Azimuth{}, &heuristics.Steepness{}} {
		h := heuristics.New(heuristics.Weighted{Scorer: sc, Weight: 1})

		var ok bool
		require.NotPanics(t, func() {
			_, ok = BestFirst{}.FindPath(t.Context(), c, h, 0, 3)
		})
		assert.False(t, ok)

		_, ok = BestFirst{}.FindNearest(t.Context(), c, h, 0, []model.NodeID{2, 3})
		assert.False(t, ok)

		require.NoError(t, h.PrepareForCluster(c, 0, 3))
		_, ok = BestFirst{}.FindPath(t.Context(), c, h, 0, 3)
		assert.True(t, ok)
	}
}

func TestBestFirst_FindNearest(t *testing.T) {
	c := build(t, testutil.Path(5))

	p, ok := BestFirst{}.FindNearest(t.Context(), c, nil, 2, []model.NodeID{0, 4})
	require.True(t, ok)
	assert.Equal(t, model.NodeID(0), p.Goal())
	assert.Equal(t, 2.0, p.Score)

	p, ok = BestFirst{}.FindNearest(t.Context(), c, nil, 1, []model.NodeID{4, 3})
	require.True(t, ok)
	assert.Equal(t, model.NodeID(3), p.Goal())

	_, ok = BestFirst{}.FindNearest(t.Context(), c, nil, 1, nil)
	assert.False(t, ok)
}

func TestNoop(t *testing.T) {
	c := build(t, testutil.Path(2))
	_, ok := Noop{}.FindPath(t.Context(), c, nil, 0, 1)
	assert.False(t, ok)
}
