// Package visited provides a dense visited set with cheap reset for
// repeated traversals over the same cluster.
package visited

import "github.com/hupe1980/graphkit/model"

// VisitedSet tracks visited nodes using a bitset and a dirty list for fast reset.
// It is not safe for concurrent use; each traversal owns its own set.
type VisitedSet struct {
	bits  []uint64
	dirty []model.NodeID
}

// New creates a new visited set.
func New(capacity int) *VisitedSet {
	// bits needed = (capacity + 63) / 64
	return &VisitedSet{
		bits:  make([]uint64, (capacity+63)/64),
		dirty: make([]model.NodeID, 0, 128),
	}
}

// Visit marks a node as visited. It reports whether the node was newly visited.
func (v *VisitedSet) Visit(id model.NodeID) bool {
	wordIdx := int(id >> 6)
	bitMask := uint64(1) << (uint32(id) & 63)

	if wordIdx >= len(v.bits) {
		v.grow(wordIdx + 1)
	}

	if v.bits[wordIdx]&bitMask != 0 {
		return false
	}
	v.bits[wordIdx] |= bitMask
	v.dirty = append(v.dirty, id)
	return true
}

// Visited returns true if the node has been visited.
func (v *VisitedSet) Visited(id model.NodeID) bool {
	wordIdx := int(id >> 6)
	if wordIdx >= len(v.bits) {
		return false
	}
	return v.bits[wordIdx]&(uint64(1)<<(uint32(id)&63)) != 0
}

// Count returns the number of nodes visited since the last reset.
func (v *VisitedSet) Count() int {
	return len(v.dirty)
}

// Reset clears the visited status for all nodes visited in the current session.
func (v *VisitedSet) Reset() {
	for _, id := range v.dirty {
		wordIdx := int(id >> 6)
		bitMask := uint64(1) << (uint32(id) & 63)
		v.bits[wordIdx] &^= bitMask
	}
	v.dirty = v.dirty[:0]
}

// EnsureCapacity ensures the visited set can hold at least the given number of nodes.
func (v *VisitedSet) EnsureCapacity(capacity int) {
	wordIdx := (capacity + 63) / 64
	if wordIdx > len(v.bits) {
		v.grow(wordIdx)
	}
}

func (v *VisitedSet) grow(newLen int) {
	currentLen := len(v.bits)
	newCap := currentLen * 2
	if newCap < newLen {
		newCap = newLen
	}

	newBits := make([]uint64, newCap)
	copy(newBits, v.bits)
	v.bits = newBits
}
