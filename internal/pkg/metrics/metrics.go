// Package metrics holds the Prometheus collectors for background jobs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "turfbook"

// Job result label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics groups the job collectors
type Metrics struct {
	ReconcileRuns      *prometheus.CounterVec
	BookingsCompleted  prometheus.Counter
	ReconcileFailures  prometheus.Counter
	ReconcileDuration  prometheus.Histogram
	LivenessPings      *prometheus.CounterVec
	LivenessLastStatus prometheus.Gauge
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ReconcileRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_runs_total",
			Help:      "Booking reconciliation runs by result.",
		}, []string{"result"}),
		BookingsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_completed_total",
			Help:      "Confirmed bookings transitioned to completed by reconciliation.",
		}),
		ReconcileFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_update_failures_total",
			Help:      "Per-booking status updates that failed during reconciliation.",
		}),
		ReconcileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of booking reconciliation runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		LivenessPings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "liveness_pings_total",
			Help:      "Self health-check pings by result.",
		}, []string{"result"}),
		LivenessLastStatus: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "liveness_last_status_code",
			Help:      "HTTP status of the most recent liveness ping (0 on transport error).",
		}),
	}

	reg.MustRegister(
		m.ReconcileRuns,
		m.BookingsCompleted,
		m.ReconcileFailures,
		m.ReconcileDuration,
		m.LivenessPings,
		m.LivenessLastStatus,
	)
	return m
}

// NewUnregistered returns collectors that are not exported anywhere
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}
