package shard

import (
	"hash/maphash"
	"sync"
)

// Map is a sharded concurrent map.
type Map[K comparable, V any] struct {
	shards []mapShard[K, V]
	seed   maphash.Seed
}

type mapShard[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// NewMap creates a map with n shards (DefaultShards if n <= 0).
func NewMap[K comparable, V any](n int) *Map[K, V] {
	if n <= 0 {
		n = DefaultShards
	}
	m := &Map[K, V]{
		shards: make([]mapShard[K, V], n),
		seed:   maphash.MakeSeed(),
	}
	for i := range m.shards {
		m.shards[i].items = make(map[K]V)
	}
	return m
}

func (m *Map[K, V]) shard(key K) *mapShard[K, V] {
	idx := maphash.Comparable(m.seed, key) % uint64(len(m.shards))
	return &m.shards[idx]
}

// Load returns the value stored for key.
func (m *Map[K, V]) Load(key K) (V, bool) {
	sh := m.shard(key)
	sh.mu.RLock()
	v, ok := sh.items[key]
	sh.mu.RUnlock()
	return v, ok
}

// Store sets the value for key.
func (m *Map[K, V]) Store(key K, value V) {
	sh := m.shard(key)
	sh.mu.Lock()
	sh.items[key] = value
	sh.mu.Unlock()
}

// LoadOrStore returns the existing value for key if present. Otherwise it
// stores value and returns it. loaded is true if the value was already present.
func (m *Map[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	sh := m.shard(key)

	sh.mu.RLock()
	if v, ok := sh.items[key]; ok {
		sh.mu.RUnlock()
		return v, true
	}
	sh.mu.RUnlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if v, ok := sh.items[key]; ok {
		return v, true
	}
	sh.items[key] = value
	return value, false
}

// Delete removes key.
func (m *Map[K, V]) Delete(key K) {
	sh := m.shard(key)
	sh.mu.Lock()
	delete(sh.items, key)
	sh.mu.Unlock()
}

// Len returns the total number of entries across all shards.
func (m *Map[K, V]) Len() int {
	total := 0
	for i := range m.shards {
		sh := &m.shards[i]
		sh.mu.RLock()
		total += len(sh.items)
		sh.mu.RUnlock()
	}
	return total
}

// Range calls fn for every entry, shard by shard, until fn returns false.
// fn must not call back into the map.
func (m *Map[K, V]) Range(fn func(K, V) bool) {
	for i := range m.shards {
		sh := &m.shards[i]
		sh.mu.RLock()
		for k, v := range sh.items {
			if !fn(k, v) {
				sh.mu.RUnlock()
				return
			}
		}
		sh.mu.RUnlock()
	}
}
