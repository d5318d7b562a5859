package graphkit

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/graphkit/config"
	"github.com/hupe1980/graphkit/relax"
)

type options struct {
	workers    int
	chunkSize  int
	startRate  float64
	startBurst int
	logger     *Logger
	metrics    MetricsCollector
	permissive bool
	radius     float64
	relax      relax.Options
}

func defaultOptions() options {
	return options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
		radius:  1,
		relax:   relax.DefaultOptions(),
	}
}

// Option configures an Engine.
type Option func(*options)

// WithWorkers sets the worker pool size. Non-positive values select
// runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithChunkSize sets the number of nodes (or queries) per parallel task.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithStartRate limits how many tasks may start per second.
func WithStartRate(perSecond float64, burst int) Option {
	return func(o *options) {
		o.startRate = perSecond
		o.startBurst = burst
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsCollector sets the metrics collector.
// A collector that implements task.Observer also receives task events.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metrics = mc
		}
	}
}

// WithPermissive makes Build skip offending input edges instead of failing.
func WithPermissive() Option {
	return func(o *options) {
		o.permissive = true
	}
}

// WithRadius sets the connection radius BuildFromIndex uses when called with
// a non-positive radius.
func WithRadius(r float64) Option {
	return func(o *options) {
		o.radius = r
	}
}

// WithRelaxOptions sets the options Relax uses.
func WithRelaxOptions(ro relax.Options) Option {
	return func(o *options) {
		o.relax = ro
	}
}

// FromConfig converts cfg into engine options. When metrics are enabled, a
// PrometheusCollector is registered on reg, or, if reg is nil, an in-memory
// BasicMetricsCollector is used.
func FromConfig(cfg config.Config, reg prometheus.Registerer) []Option {
	opts := []Option{
		WithWorkers(cfg.Workers),
		WithChunkSize(cfg.ChunkSize),
		WithStartRate(cfg.StartRate, cfg.StartBurst),
		WithRadius(cfg.Build.Radius),
		WithRelaxOptions(relax.Options{
			Iterations: cfg.Relax.Iterations,
			Influence:  cfg.Relax.Influence,
			ValidOnly:  cfg.Relax.ValidOnly,
			ChunkSize:  cfg.ChunkSize,
		}),
	}

	if cfg.Build.Permissive {
		opts = append(opts, WithPermissive())
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "json":
		opts = append(opts, WithLogger(NewJSONLogger(cfg.LogLevel())))
	case "text":
		opts = append(opts, WithLogger(NewTextLogger(cfg.LogLevel())))
	}

	if cfg.Metrics.Enabled {
		if reg != nil {
			opts = append(opts, WithMetricsCollector(NewPrometheusCollector(reg, cfg.Metrics.Namespace)))
		} else {
			opts = append(opts, WithMetricsCollector(&BasicMetricsCollector{}))
		}
	}

	return opts
}
