// Package metrics holds the Prometheus metrics of the events module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "event_horizon"

// Refresh results.
const (
	RefreshSuccess = "success"
	RefreshFailure = "failure"
	RefreshStale   = "stale"
)

var (
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_total",
			Help:      "Store refreshes by result",
		},
		[]string{"result"},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of store refreshes (seconds)",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	Events = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events",
			Help:      "Number of events in the last committed snapshot",
		},
	)

	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Mutating actions by kind and result",
		},
		[]string{"action", "result"},
	)

	InflightOperations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inflight_operations",
			Help:      "Store operations holding the loading state",
		},
	)
)

func RecordRefresh(result string, durationSeconds float64) {
	RefreshTotal.WithLabelValues(result).Inc()
	RefreshDuration.Observe(durationSeconds)
}

func RecordAction(action string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	ActionsTotal.WithLabelValues(action, result).Inc()
}
