// Package task schedules and tracks parallel work units.
//
// A Manager runs Tasks on a bounded worker pool and tracks how many work
// items were started and completed. A Group is a Task made of member tasks;
// its handle completes only after every member completes, so groups nest to
// express hierarchical fan-out and fan-in.
//
//	tm := task.New(task.WithWorkers(8))
//	defer tm.Close()
//
//	g := task.NewGroup("relax").ForRange(numNodes, 256, func(ctx context.Context, start, end int) error {
//	    for i := start; i < end; i++ {
//	        next[i] = step(current, i)
//	    }
//	    return nil
//	})
//	if err := tm.Wait(ctx, tm.Schedule(g)); err != nil {
//	    return err
//	}
//
// # States
//
// Every handle moves from StateQueued to StateRunning to StateCompleted, or
// from StateQueued to StateCancelled. A task can only be cancelled before it
// starts. Once running it runs to completion; callers must accept
// "cancel requested, task still completed" as a terminal outcome.
//
// # Reset
//
// Reset sets a flushing flag, cancels queued tasks, blocks until running
// tasks finish, and then drops all records and zeroes the counters. A
// completion that observes the flushing flag does not touch the counters.
// That single flag is the authoritative resolution of the race between
// cancellation and completion.
package task
