package metrics

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/infrastructure/config"
	"github.com/taskmaster/taskflow/internal/ports"
)

// Recorder collects service call metrics in a private registry
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

var _ ports.OperationRecorder = (*Recorder)(nil)

// New creates a recorder and registers its collectors
func New(cfg config.MetricsConfig) *Recorder {
	registry := prometheus.NewRegistry()

	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "service_operations_total",
			Help:      "Total number of service operations",
		},
		[]string{"entity", "operation", "outcome"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "service_operation_duration_seconds",
			Help:      "Service operation duration in seconds, simulated latency included",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"entity", "operation"},
	)

	registry.MustRegister(operations, duration)

	return &Recorder{
		registry:   registry,
		operations: operations,
		duration:   duration,
	}
}

// Observe implements ports.OperationRecorder
func (r *Recorder) Observe(entity, operation string, d time.Duration, err error) {
	r.operations.WithLabelValues(entity, operation, Outcome(err)).Inc()
	r.duration.WithLabelValues(entity, operation).Observe(d.Seconds())
}

// Outcome classifies err for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, entities.ErrNotFound):
		return "not_found"
	case errors.Is(err, entities.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, entities.ErrLinkExpired):
		return "link_expired"
	case errors.Is(err, entities.ErrTransient):
		return "transient"
	default:
		return "error"
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteText writes every collected metric in the text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
