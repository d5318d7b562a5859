package shard

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_BasicOperations(t *testing.T) {
	s := NewSet[int](4)

	assert.True(t, s.Insert(1))
	assert.False(t, s.Insert(1))
	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(2))
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Remove(1))
	assert.False(t, s.Remove(1))
	assert.False(t, s.Contains(1))
}

func TestSet_DefaultShards(t *testing.T) {
	s := NewSet[string](0)
	assert.Len(t, s.ShardLens(), DefaultShards)
}

func TestSet_InsertExactlyOnce(t *testing.T) {
	s := NewSet[uint64](0)

	const numGoroutines = 64
	const key = uint64(42)

	var wins atomic.Int64
	var losses atomic.Int64
	var start sync.WaitGroup
	var wg sync.WaitGroup
	start.Add(1)
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()
			start.Wait()
			if s.Insert(key) {
				wins.Add(1)
			} else {
				losses.Add(1)
			}
		}()
	}
	start.Done()
	wg.Wait()

	assert.Equal(t, int64(1), wins.Load())
	assert.Equal(t, int64(numGoroutines-1), losses.Load())
	assert.True(t, s.Contains(key))
}

func TestSet_ConcurrentDistinctKeys(t *testing.T) {
	s := NewSet[int](16)

	const numGoroutines = 32
	const keysPerGoroutine = 500

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for g := range numGoroutines {
		go func(base int) {
			defer wg.Done()
			for i := range keysPerGoroutine {
				// every key is inserted by two goroutines
				s.Insert((base/2)*keysPerGoroutine + i)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, numGoroutines/2*keysPerGoroutine, s.Len())
	assert.Len(t, s.Keys(), s.Len())
}

func TestSet_ShardDistribution(t *testing.T) {
	s := NewSet[int](64)
	for i := range 1000 {
		s.Insert(i)
	}

	nonEmpty := 0
	for _, n := range s.ShardLens() {
		if n > 0 {
			nonEmpty++
		}
	}
	// With 1000 keys across 64 shards, we expect most shards to have keys
	require.Greater(t, nonEmpty, 30, "poor shard distribution")
}

func TestSet_RangeStops(t *testing.T) {
	s := NewSet[int](4)
	for i := range 100 {
		s.Insert(i)
	}

	visited := 0
	s.Range(func(int) bool {
		visited++
		return visited < 10
	})
	assert.Equal(t, 10, visited)
}

func BenchmarkSet_Insert(b *testing.B) {
	s := NewSet[int](0)
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			s.Insert(i)
			i++
		}
	})
}
