package metrics

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/infrastructure/config"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{fmt.Errorf("failed to get task: %w", &entities.NotFoundError{Kind: "task", ID: "1"}), "not_found"},
		{&entities.InvalidArgumentError{Field: "status", Reason: "bad"}, "invalid_argument"},
		{&entities.LinkExpiredError{ID: "s1"}, "link_expired"},
		{&entities.TransientError{Op: "list", Err: errors.New("timeout")}, "transient"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestRecorder(t *testing.T) {
	rec := New(config.MetricsConfig{Enabled: true, Namespace: "taskflow"})

	rec.Observe("task", "create", 10*time.Millisecond, nil)
	rec.Observe("task", "create", 12*time.Millisecond, nil)
	rec.Observe("task", "get", time.Millisecond, &entities.NotFoundError{Kind: "task", ID: "9"})

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.operations.WithLabelValues("task", "create", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.operations.WithLabelValues("task", "get", "not_found")))

	var buf bytes.Buffer
	require.NoError(t, rec.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, `taskflow_service_operations_total{entity="task",operation="create",outcome="success"} 2`)
	assert.Contains(t, out, "taskflow_service_operation_duration_seconds_count")
}

func TestRecorder_DurationHistogram(t *testing.T) {
	rec := New(config.MetricsConfig{Enabled: true, Namespace: "taskflow"})

	rec.Observe("project", "list", 300*time.Millisecond, nil)
	rec.Observe("project", "list", 310*time.Millisecond, errors.New("boom"))
	rec.Observe("project", "get", 200*time.Millisecond, nil)

	families, err := rec.Registry().Gather()
	require.NoError(t, err)

	h := findHistogram(families, "taskflow_service_operation_duration_seconds", "list")
	require.NotNil(t, h)
	assert.Equal(t, uint64(2), h.GetSampleCount())
	assert.InDelta(t, 0.61, h.GetSampleSum(), 1e-9)
}

func findHistogram(families []*dto.MetricFamily, name, operation string) *dto.Histogram {
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "operation" && lp.GetValue() == operation {
					return m.GetHistogram()
				}
			}
		}
	}
	return nil
}
