package cluster

import (
	"context"
	"fmt"
	"slices"

	"github.com/hupe1980/graphkit/attr"
	"github.com/hupe1980/graphkit/internal/conv"
	"github.com/hupe1980/graphkit/shard"
	"github.com/hupe1980/graphkit/spatial"
	"github.com/hupe1980/graphkit/task"
)

// BuildFromIndex connects every pair of points closer than radius.
//
// Neighbor queries run in parallel on the task manager; undirected pairs are
// collected in a sharded set, sorted, and then built by a single writer. The
// resulting edge order is therefore independent of scheduling.
func BuildFromIndex(ctx context.Context, points attr.PointBuffer, idx spatial.Index, radius float64, optFns ...Option) (*Cluster, error) {
	if points == nil {
		return nil, ErrEmptyPoints
	}
	if idx == nil {
		idx = spatial.NewKDTree(points)
	}

	var o options
	for _, fn := range optFns {
		fn(&o)
	}

	n := points.Len()
	if _, err := conv.IntToInt32(n); err != nil {
		return nil, ErrTooLarge
	}

	m := o.manager
	if m == nil {
		m = task.New()
		defer m.Close()
	}

	pairs := shard.NewSet[uint64](shard.DefaultShards)
	err := task.ParallelFor(ctx, m, "cluster.radius", n, o.chunkSize, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, j := range idx.QueryRadius(points.Position(i), radius) {
				if j == i || j < 0 || j >= n {
					continue
				}
				pairs.Insert(conv.PairKey(int32(i), int32(j)))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cluster: radius query: %w", err)
	}

	keys := pairs.Keys()
	slices.Sort(keys)

	edges := make([]EndpointPair, len(keys))
	for i, k := range keys {
		a, b := conv.SplitPairKey(k)
		edges[i] = EndpointPair{A: int(a), B: int(b)}
	}

	// Pairs are distinct, in range, and loop free, so strict mode cannot fail.
	return Build(points, edges)
}

// Pairs converts [2]int endpoint tuples to EndpointPairs.
func Pairs(tuples ...[2]int) []EndpointPair {
	out := make([]EndpointPair, len(tuples))
	for i, t := range tuples {
		out[i] = EndpointPair{A: t[0], B: t[1]}
	}
	return out
}
