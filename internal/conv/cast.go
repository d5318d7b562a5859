package conv

import (
	"fmt"
	"math"
)

// IntToInt32 converts int to int32 safely.
func IntToInt32(v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int32", v)
	}
	return int32(v), nil
}

// Int32ToUint32 converts int32 to uint32 safely.
func Int32ToUint32(v int32) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (negative)", v)
	}
	return uint32(v), nil
}

// PairKey packs two non-negative int32 values into one uint64, smaller first,
// so that (a, b) and (b, a) share a key.
func PairKey(a, b int32) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(uint32(a))<<32 | uint64(uint32(b))
}

// SplitPairKey is the inverse of PairKey.
func SplitPairKey(k uint64) (a, b int32) {
	return int32(uint32(k >> 32)), int32(uint32(k))
}
