package graphkit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/graphkit/task"
)

// PrometheusCollector exports engine and task metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	eng := graphkit.New(graphkit.WithMetricsCollector(graphkit.NewPrometheusCollector(reg, "graphkit")))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// It is safe for concurrent use.
type PrometheusCollector struct {
	operations *prometheus.CounterVec   // op, status
	duration   *prometheus.HistogramVec // op
	skipped    prometheus.Counter
	validEdges *prometheus.GaugeVec   // pass
	queries    *prometheus.CounterVec // result
	tasks      *prometheus.CounterVec // state
}

// NewPrometheusCollector creates and registers all metrics on reg under
// namespace. A nil reg uses prometheus.DefaultRegisterer. Registering twice on
// the same registry panics.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "graphkit"
	}
	factory := promauto.With(reg)

	return &PrometheusCollector{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Engine operations by kind and outcome",
		}, []string{"op", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Engine operation duration",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
		}, []string{"op"}),
		skipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "build_skipped_edges_total",
			Help:      "Input edges dropped by permissive builds",
		}),
		validEdges: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "refine_valid_edges",
			Help:      "Valid edges after the last refinement pass",
		}, []string{"pass"}),
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_queries_total",
			Help:      "Path queries by result",
		}, []string{"result"}),
		tasks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_total",
			Help:      "Task lifecycle events",
		}, []string{"state"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (p *PrometheusCollector) observe(op string, d time.Duration, err error) {
	p.operations.WithLabelValues(op, status(err)).Inc()
	p.duration.WithLabelValues(op).Observe(d.Seconds())
}

// RecordBuild implements MetricsCollector.
func (p *PrometheusCollector) RecordBuild(_, _, skipped int, d time.Duration, err error) {
	p.observe("build", d, err)
	p.skipped.Add(float64(skipped))
}

// RecordRefine implements MetricsCollector.
func (p *PrometheusCollector) RecordRefine(pass string, validEdges int, d time.Duration, err error) {
	p.observe("refine", d, err)
	if err == nil {
		p.validEdges.WithLabelValues(pass).Set(float64(validEdges))
	}
}

// RecordRelax implements MetricsCollector.
func (p *PrometheusCollector) RecordRelax(_ int, d time.Duration, err error) {
	p.observe("relax", d, err)
}

// RecordSearch implements MetricsCollector.
func (p *PrometheusCollector) RecordSearch(queries, found int, d time.Duration, err error) {
	p.observe("search", d, err)
	p.queries.WithLabelValues("found").Add(float64(found))
	p.queries.WithLabelValues("missing").Add(float64(queries - found))
}

// TaskScheduled implements task.Observer.
func (p *PrometheusCollector) TaskScheduled(string) {
	p.tasks.WithLabelValues("scheduled").Inc()
}

// TaskStarted implements task.Observer.
func (p *PrometheusCollector) TaskStarted(string) {
	p.tasks.WithLabelValues("started").Inc()
}

// TaskFinished implements task.Observer.
func (p *PrometheusCollector) TaskFinished(_ string, state task.State, _ time.Duration) {
	p.tasks.WithLabelValues(state.String()).Inc()
}

var (
	_ MetricsCollector = (*PrometheusCollector)(nil)
	_ task.Observer    = (*PrometheusCollector)(nil)
)
