package graphkit

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with graphkit-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithRun adds the engine run id to the logger.
func (l *Logger) WithRun(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", id),
	}
}

// LogBuild logs a cluster build.
func (l *Logger) LogBuild(ctx context.Context, nodes, edges, skipped int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"nodes", nodes,
			"error", err,
		)
		return
	}
	if skipped > 0 {
		l.WarnContext(ctx, "build skipped input edges",
			"nodes", nodes,
			"edges", edges,
			"skipped", skipped,
		)
		return
	}
	l.DebugContext(ctx, "build completed",
		"nodes", nodes,
		"edges", edges,
	)
}

// LogRefine logs a refinement pass.
func (l *Logger) LogRefine(ctx context.Context, pass string, validEdges int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "refine failed",
			"pass", pass,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "refine completed",
		"pass", pass,
		"valid_edges", validEdges,
	)
}

// LogRelax logs a relaxation pass.
func (l *Logger) LogRelax(ctx context.Context, relaxer string, iterations int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "relax failed",
			"relaxer", relaxer,
			"iterations", iterations,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "relax completed",
		"relaxer", relaxer,
		"iterations", iterations,
	)
}

// LogSearchBatch logs a batch of path searches.
func (l *Logger) LogSearchBatch(ctx context.Context, queries, found int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"queries", queries,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "search completed",
		"queries", queries,
		"found", found,
		"missing", queries-found,
	)
}

// LogReset logs a task manager reset.
func (l *Logger) LogReset(ctx context.Context, started, completed int64) {
	l.InfoContext(ctx, "engine reset",
		"started", started,
		"completed", completed,
	)
}
