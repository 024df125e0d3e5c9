package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ReconcileRuns.WithLabelValues(ResultSuccess).Inc()
	m.LivenessPings.WithLabelValues(ResultFailure).Inc()
	m.BookingsCompleted.Add(3)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "turfbook_reconcile_runs_total")
	assert.Contains(t, names, "turfbook_bookings_completed_total")
	assert.Contains(t, names, "turfbook_liveness_pings_total")
	assert.Equal(t, float64(3), testutil.ToFloat64(m.BookingsCompleted))
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestNewUnregistered(t *testing.T) {
	a := NewUnregistered()
	b := NewUnregistered()
	a.BookingsCompleted.Inc()
	assert.Equal(t, float64(0), testutil.ToFloat64(b.BookingsCompleted))
}
