package graphkit

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/graphkit/task"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func counterValue(mf *dto.MetricFamily, labels map[string]string) float64 {
	for _, m := range mf.GetMetric() {
		match := true
		for _, lp := range m.GetLabel() {
			if v, ok := labels[lp.GetName()]; ok && v != lp.GetValue() {
				match = false
			}
		}
		if match {
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				return g.GetValue()
			}
		}
	}
	return 0
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	pc := NewPrometheusCollector(reg, "test")

	pc.RecordBuild(4, 3, 1, time.Millisecond, nil)
	pc.RecordRefine("RemoveLeaves", 2, time.Millisecond, nil)
	pc.RecordRefine("Filter", 0, time.Millisecond, errors.New("short"))
	pc.RecordRelax(10, time.Millisecond, nil)
	pc.RecordSearch(5, 3, time.Millisecond, nil)

	fams := gather(t, reg)

	ops := fams["test_operations_total"]
	require.NotNil(t, ops)
	assert.Equal(t, 1.0, counterValue(ops, map[string]string{"op": "build", "status": "success"}))
	assert.Equal(t, 1.0, counterValue(ops, map[string]string{"op": "refine", "status": "error"}))
	assert.Equal(t, 1.0, counterValue(ops, map[string]string{"op": "refine", "status": "success"}))

	assert.Equal(t, 1.0, counterValue(fams["test_build_skipped_edges_total"], nil))
	assert.Equal(t, 2.0, counterValue(fams["test_refine_valid_edges"], map[string]string{"pass": "RemoveLeaves"}))
	assert.Equal(t, 3.0, counterValue(fams["test_search_queries_total"], map[string]string{"result": "found"}))
	assert.Equal(t, 2.0, counterValue(fams["test_search_queries_total"], map[string]string{"result": "missing"}))

	require.NotNil(t, fams["test_operation_duration_seconds"])
}

func TestPrometheusCollector_Observer(t *testing.T) {
	reg := prometheus.NewRegistry()
	pc := NewPrometheusCollector(reg, "")

	pc.TaskScheduled("a")
	pc.TaskStarted("a")
	pc.TaskFinished("a", task.StateCompleted, time.Millisecond)

	fams := gather(t, reg)
	tasks := fams["graphkit_tasks_total"]
	require.NotNil(t, tasks)
	assert.Equal(t, 1.0, counterValue(tasks, map[string]string{"state": "scheduled"}))
	assert.Equal(t, 1.0, counterValue(tasks, map[string]string{"state": "completed"}))
}

func TestPrometheusCollector_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusCollector(reg, "dup")
	assert.Panics(t, func() { NewPrometheusCollector(reg, "dup") })
}
