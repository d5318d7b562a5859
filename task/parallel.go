package task

import "context"

// DefaultChunkSize is the number of indices per member used by ParallelFor
// when chunk is not positive.
const DefaultChunkSize = 256

// ParallelFor runs fn over [0, n) as one group of disjoint chunks on m and
// waits for all of them. It is the barrier between passes: when it returns,
// no chunk is running, even if ctx was cancelled.
//
// fn receives ctx, not the manager's context. Chunks that have not started
// when ctx is cancelled are skipped.
func ParallelFor(ctx context.Context, m *Manager, name string, n, chunk int, fn func(ctx context.Context, start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	g := NewGroup(name).ForRange(n, chunk, func(mctx context.Context, start, end int) error {
		if err := mctx.Err(); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(ctx, start, end)
	})

	h := m.Schedule(g)
	err := m.Wait(ctx, h)
	if ctx.Err() != nil {
		m.Cancel(h)
		<-h.Done()
		return ctx.Err()
	}
	return err
}
