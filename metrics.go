package graphkit

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/graphkit/task"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
// PrometheusCollector is the bundled Prometheus integration.
//
// A collector that also implements task.Observer receives task lifecycle
// events from the engine's task manager.
type MetricsCollector interface {
	// RecordBuild is called after each cluster build.
	RecordBuild(nodes, edges, skipped int, duration time.Duration, err error)

	// RecordRefine is called after each refinement pass with the number of
	// valid edges left.
	RecordRefine(pass string, validEdges int, duration time.Duration, err error)

	// RecordRelax is called after each relaxation run.
	RecordRelax(iterations int, duration time.Duration, err error)

	// RecordSearch is called after each search batch.
	RecordSearch(queries, found int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRefine(string, int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordRelax(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordSearch(int, int, time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildErrors      atomic.Int64
	BuildSkipped     atomic.Int64
	RefineCount      atomic.Int64
	RefineErrors     atomic.Int64
	RefineTotalNanos atomic.Int64
	RelaxCount       atomic.Int64
	RelaxErrors      atomic.Int64
	RelaxIterations  atomic.Int64
	SearchBatches    atomic.Int64
	SearchQueries    atomic.Int64
	SearchFound      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	TasksScheduled   atomic.Int64
	TasksCompleted   atomic.Int64
	TasksCancelled   atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(_, _, skipped int, _ time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildSkipped.Add(int64(skipped))
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordRefine implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRefine(_ string, _ int, duration time.Duration, err error) {
	b.RefineCount.Add(1)
	b.RefineTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RefineErrors.Add(1)
	}
}

// RecordRelax implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelax(iterations int, _ time.Duration, err error) {
	b.RelaxCount.Add(1)
	b.RelaxIterations.Add(int64(iterations))
	if err != nil {
		b.RelaxErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(queries, found int, duration time.Duration, err error) {
	b.SearchBatches.Add(1)
	b.SearchQueries.Add(int64(queries))
	b.SearchFound.Add(int64(found))
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// TaskScheduled implements task.Observer.
func (b *BasicMetricsCollector) TaskScheduled(string) { b.TasksScheduled.Add(1) }

// TaskStarted implements task.Observer.
func (b *BasicMetricsCollector) TaskStarted(string) {}

// TaskFinished implements task.Observer.
func (b *BasicMetricsCollector) TaskFinished(_ string, state task.State, _ time.Duration) {
	if state == task.StateCancelled {
		b.TasksCancelled.Add(1)
		return
	}
	b.TasksCompleted.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:      b.BuildCount.Load(),
		BuildErrors:     b.BuildErrors.Load(),
		BuildSkipped:    b.BuildSkipped.Load(),
		RefineCount:     b.RefineCount.Load(),
		RefineErrors:    b.RefineErrors.Load(),
		RefineAvgNanos:  avg(b.RefineTotalNanos.Load(), b.RefineCount.Load()),
		RelaxCount:      b.RelaxCount.Load(),
		RelaxErrors:     b.RelaxErrors.Load(),
		RelaxIterations: b.RelaxIterations.Load(),
		SearchBatches:   b.SearchBatches.Load(),
		SearchQueries:   b.SearchQueries.Load(),
		SearchFound:     b.SearchFound.Load(),
		SearchErrors:    b.SearchErrors.Load(),
		SearchAvgNanos:  avg(b.SearchTotalNanos.Load(), b.SearchBatches.Load()),
		TasksScheduled:  b.TasksScheduled.Load(),
		TasksCompleted:  b.TasksCompleted.Load(),
		TasksCancelled:  b.TasksCancelled.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount      int64
	BuildErrors     int64
	BuildSkipped    int64
	RefineCount     int64
	RefineErrors    int64
	RefineAvgNanos  int64
	RelaxCount      int64
	RelaxErrors     int64
	RelaxIterations int64
	SearchBatches   int64
	SearchQueries   int64
	SearchFound     int64
	SearchErrors    int64
	SearchAvgNanos  int64
	TasksScheduled  int64
	TasksCompleted  int64
	TasksCancelled  int64
}

var (
	_ MetricsCollector = NoopMetricsCollector{}
	_ MetricsCollector = (*BasicMetricsCollector)(nil)
	_ task.Observer    = (*BasicMetricsCollector)(nil)
)
