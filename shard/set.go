package shard

import (
	"hash/maphash"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// DefaultShards is the shard count used when a non-positive count is requested.
const DefaultShards = 64

// Set is a sharded concurrent set.
type Set[K comparable] struct {
	shards []setShard[K]
	seed   maphash.Seed
}

type setShard[K comparable] struct {
	mu    sync.RWMutex
	items mapset.Set[K] // thread-unsafe; guarded by mu
}

// NewSet creates a set with n shards (DefaultShards if n <= 0).
func NewSet[K comparable](n int) *Set[K] {
	if n <= 0 {
		n = DefaultShards
	}
	s := &Set[K]{
		shards: make([]setShard[K], n),
		seed:   maphash.MakeSeed(),
	}
	for i := range s.shards {
		s.shards[i].items = mapset.NewThreadUnsafeSet[K]()
	}
	return s
}

func (s *Set[K]) shard(key K) *setShard[K] {
	idx := maphash.Comparable(s.seed, key) % uint64(len(s.shards))
	return &s.shards[idx]
}

// Insert adds key and reports whether it was not present before.
// For any key, exactly one of any number of concurrent Insert calls returns true.
func (s *Set[K]) Insert(key K) bool {
	sh := s.shard(key)
	sh.mu.Lock()
	added := sh.items.Add(key)
	sh.mu.Unlock()
	return added
}

// Contains reports whether key is present.
func (s *Set[K]) Contains(key K) bool {
	sh := s.shard(key)
	sh.mu.RLock()
	ok := sh.items.Contains(key)
	sh.mu.RUnlock()
	return ok
}

// Remove deletes key and reports whether it was present.
func (s *Set[K]) Remove(key K) bool {
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if !sh.items.Contains(key) {
		return false
	}
	sh.items.Remove(key)
	return true
}

// Len returns the total number of keys across all shards.
// It is not a consistent snapshot while writers are active.
func (s *Set[K]) Len() int {
	total := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		total += sh.items.Cardinality()
		sh.mu.RUnlock()
	}
	return total
}

// Range calls fn for every key, shard by shard, until fn returns false.
// fn must not call back into the set.
func (s *Set[K]) Range(fn func(K) bool) {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		stop := false
		sh.items.Each(func(k K) bool {
			if !fn(k) {
				stop = true
			}
			return stop
		})
		sh.mu.RUnlock()
		if stop {
			return
		}
	}
}

// Keys returns all keys in unspecified order.
func (s *Set[K]) Keys() []K {
	keys := make([]K, 0, s.Len())
	s.Range(func(k K) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// ShardLens returns the number of keys per shard, for distribution diagnostics.
func (s *Set[K]) ShardLens() []int {
	lens := make([]int, len(s.shards))
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		lens[i] = sh.items.Cardinality()
		sh.mu.RUnlock()
	}
	return lens
}
