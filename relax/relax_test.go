package relax

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/graphkit/attr"
	"github.com/hupe1980/graphkit/cluster"
	"github.com/hupe1980/graphkit/model"
	"github.com/hupe1980/graphkit/task"
	"github.com/hupe1980/graphkit/testutil"
)

func build(t *testing.T, f testutil.Fixture) (*cluster.Cluster, attr.Points) {
	t.Helper()
	points := attr.Points(f.Points)
	c, err := cluster.Build(points, cluster.Pairs(f.Pairs...))
	require.NoError(t, err)
	return c, points
}

func TestLaplacian_RingContracts(t *testing.T) {
	c, points := build(t, testutil.Cycle(8, 1))

	opts := DefaultOptions()
	opts.Iterations = 1
	require.NoError(t, Run(t.Context(), nil, c, points, Laplacian{}, opts))

	// The midpoint of two neighbors on a regular octagon.
	want := math.Cos(2 * math.Pi / 8)
	for i := range points {
		assert.InDelta(t, want, r3.Norm(points[i]), 1e-12)
	}

	opts.Iterations = 50
	require.NoError(t, Run(t.Context(), nil, c, points, Laplacian{}, opts))
	assert.Less(t, r3.Norm(points[0]), 0.01, "converges toward the centroid")
}

func TestLaplacian_ZeroLinksUnmoved(t *testing.T) {
	f := testutil.Path(3)
	f.Points = append(f.Points, model.Vec{X: 7, Y: 7})
	c, points := build(t, f)

	require.NoError(t, Run(t.Context(), nil, c, points, Laplacian{}, DefaultOptions()))
	assert.Equal(t, model.Vec{X: 7, Y: 7}, points[3])
	assert.False(t, math.IsNaN(points[0].X))
}

func TestLaplacian_IgnoresInvalid(t *testing.T) {
	c, points := build(t, testutil.Path(3))
	c.Edge(1).SetValid(false)

	opts := DefaultOptions()
	opts.Iterations = 1
	require.NoError(t, Run(t.Context(), nil, c, points, Laplacian{}, opts))

	// 0 and 1 swap onto each other's position; 2 has no valid links.
	assert.Equal(t, model.Vec{X: 1}, points[0])
	assert.Equal(t, model.Vec{X: 0}, points[1])
	assert.Equal(t, model.Vec{X: 2}, points[2])
}

func TestRun_ValidOnlyPinsNodes(t *testing.T) {
	c, points := build(t, testutil.Star(4))
	c.Node(0).SetValid(false)
	hub := points[0]

	opts := DefaultOptions()
	opts.Iterations = 3
	require.NoError(t, Run(t.Context(), nil, c, points, Laplacian{}, opts))
	assert.Equal(t, hub, points[0])
}

func TestRun_Influence(t *testing.T) {
	c, points := build(t, testutil.Path(2))
	opts := Options{Iterations: 1, Influence: 0.5, ValidOnly: true}

	require.NoError(t, Run(t.Context(), nil, c, points, Laplacian{}, opts))
	assert.Equal(t, model.Vec{X: 0.5}, points[0])
	assert.Equal(t, model.Vec{X: 0.5}, points[1])

	c2, points2 := build(t, testutil.Path(2))
	require.NoError(t, Run(t.Context(), nil, c2, points2, Laplacian{}, Options{Iterations: 1, Influence: -3}))
	assert.Equal(t, model.Vec{X: 1}, points2[1])
}

func TestForceDirected(t *testing.T) {
	points := attr.Points{{X: 0}, {X: 2}, {X: 2}}
	c, err := cluster.Build(points, cluster.Pairs([2]int{0, 1}, [2]int{1, 2}))
	require.NoError(t, err)

	r := ForceDirected{SpringConstant: 0.1, ElectrostaticConstant: 0.4}
	current := []model.Vec(points)

	// Spring: 0.1 * 2 = 0.2 toward; repulsion: 0.4 / 4 = 0.1 away.
	assert.InDelta(t, 0.1, r.Step(c, current, 0).X, 1e-12)
	// Node 2 coincides with node 1, so it feels nothing.
	assert.Equal(t, model.Vec{X: 2}, r.Step(c, current, 2))
	// Node 1 only feels node 0 (node 2 coincides).
	assert.InDelta(t, 1.9, r.Step(c, current, 1).X, 1e-12)
}

func TestRun_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(17)
	f := rng.RandomGeometric(300, 10, 1.4)

	relaxed := func(workers, chunk int) []model.Vec {
		c, points := build(t, f.Clone())
		m := task.New(task.WithWorkers(workers))
		defer m.Close()

		opts := DefaultOptions()
		opts.ChunkSize = chunk
		r := ForceDirected{SpringConstant: 0.05, ElectrostaticConstant: 0.01}
		require.NoError(t, Run(t.Context(), m, c, points, r, opts))
		return points
	}

	assert.Equal(t, relaxed(1, 300), relaxed(8, 7))
}

func TestRun_Errors(t *testing.T) {
	c, points := build(t, testutil.Path(3))

	assert.ErrorIs(t, Run(t.Context(), nil, c, points[:2], Laplacian{}, DefaultOptions()), ErrBufferSize)
	assert.ErrorIs(t, Run(t.Context(), nil, c, nil, Laplacian{}, DefaultOptions()), ErrBufferSize)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	before := append([]model.Vec(nil), points...)
	assert.ErrorIs(t, Run(ctx, nil, c, points, Laplacian{}, DefaultOptions()), context.Canceled)
	assert.Equal(t, before, []model.Vec(points), "cancelled runs write nothing back")

	boom := errors.New("boom")
	err := Run(t.Context(), nil, c, points, failing{err: boom}, DefaultOptions())
	assert.ErrorIs(t, err, boom)
}

func TestNoop(t *testing.T) {
	c, points := build(t, testutil.Cycle(4, 1))
	before := append([]model.Vec(nil), points...)

	require.NoError(t, Run(t.Context(), nil, c, points, nil, DefaultOptions()))
	assert.Equal(t, before, []model.Vec(points))
}

type failing struct {
	Noop
	err error
}

func (f failing) Prepare(*cluster.Cluster) error { return f.err }
