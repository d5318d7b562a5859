// Package shard provides low-contention concurrent containers.
//
// A container splits its keys across a fixed number of independent shards.
// The shard for a key is a pure function of the key's hash, and every shard
// has its own lock, so concurrent operations on keys in different shards
// never contend. Worst-case contention is bounded to 1/N of a single global
// lock.
//
// The typical use is merging results discovered independently by many
// parallel workers without double counting:
//
//	seen := shard.NewSet[uint64](0)
//	// in each worker:
//	if seen.Insert(pairKey) {
//	    // first worker to report this key
//	}
package shard
