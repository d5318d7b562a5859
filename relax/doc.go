// Package relax implements iterative position smoothing over a cluster.
//
// Each iteration reads a current position buffer and writes a next buffer,
// one task per disjoint node range, then swaps the two. A Relaxer only
// computes one node's next position from the current buffer, so the writes
// of one iteration never alias its reads.
package relax
