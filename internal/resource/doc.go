// Package resource implements the worker-slot controller behind the task manager.
//
// The Controller governs two resources:
//
//   - Concurrency: a weighted semaphore bounds the number of running tasks.
//   - Start pacing: an optional token bucket limits how fast queued tasks start,
//     so that a large fan-out does not starve foreground work.
//
// # Usage
//
//	rc := resource.NewController(resource.Config{
//	    MaxWorkers:      8,
//	    StartsPerSecond: 10000,
//	})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err // ctx cancelled while queued
//	}
//	defer rc.ReleaseWorker()
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
