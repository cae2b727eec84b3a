package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EngineMetrics records the outcome and latency of every operation.
type EngineMetrics struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewEngineMetrics exposes memberships_operations_total and
// memberships_operation_duration_seconds for the service layer.
func NewEngineMetrics(registry *prometheus.Registry) *EngineMetrics {
	return newOperationMetrics(registry, "", "engine operations")
}

// NewRPCMetrics exposes the same pair under the grpc subsystem, labelled by
// method and status code.
func NewRPCMetrics(registry *prometheus.Registry) *EngineMetrics {
	return newOperationMetrics(registry, "grpc", "gRPC calls")
}

func newOperationMetrics(registry *prometheus.Registry, subsystem, what string) *EngineMetrics {
	operations := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memberships",
			Subsystem: subsystem,
			Name:      "operations_total",
			Help:      "The total number of " + what + " by outcome",
		},
		[]string{"operation", "outcome"},
	)

	latency := promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "memberships",
			Subsystem: subsystem,
			Name:      "operation_duration_seconds",
			Help:      "Latency of " + what,
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 7),
		},
		[]string{"operation"},
	)

	return &EngineMetrics{operations: operations, latency: latency}
}

func (m *EngineMetrics) ObserveOperation(operation, outcome string, elapsed time.Duration) {
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.latency.WithLabelValues(operation).Observe(elapsed.Seconds())
}
