package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsRecorder exports service operation metrics through a
// prometheus registry: a counter vector keyed by operation and status, and a
// histogram vector of operation latencies.
type PrometheusMetricsRecorder struct {
	registry  *prometheus.Registry
	results   *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewPrometheusMetricsRecorder constructs a recorder registered against the
// provided registry. A nil registry gets a fresh private one.
func NewPrometheusMetricsRecorder(registry *prometheus.Registry) *PrometheusMetricsRecorder {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chemcore",
		Subsystem: "inventory",
		Name:      "operations_total",
		Help:      "Count of inventory service operations by outcome.",
	}, []string{"operation", "status"})
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chemcore",
		Subsystem: "inventory",
		Name:      "operation_duration_seconds",
		Help:      "Latency of inventory service operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	registry.MustRegister(results, durations)
	return &PrometheusMetricsRecorder{registry: registry, results: results, durations: durations}
}

// Registry returns the registry holding the recorder's collectors.
func (r *PrometheusMetricsRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records a service operation outcome.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.results.WithLabelValues(operation, status).Inc()
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
}
