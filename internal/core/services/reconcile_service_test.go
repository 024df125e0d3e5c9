package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"turfbook/internal/adapters/persistence/models"
	"turfbook/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconcileService(repo *fakeBookingRepository, now time.Time) (*ReconcileService, *metrics.Metrics) {
	m := metrics.NewUnregistered()
	s := NewReconcileService(repo, time.UTC, m)
	s.now = func() time.Time { return now }
	return s, m
}

func TestReconcileService_CompletesOnlyExpiredConfirmed(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	repo := newFakeBookingRepository(
		&models.Booking{ID: "past", Date: today.AddDate(0, 0, -2), TimeSlot: "6 PM - 7 PM", Status: "confirmed"},
		&models.Booking{ID: "earlier-today", Date: today, TimeSlot: "7:00 AM - 8:00 AM", Status: "confirmed"},
		&models.Booking{ID: "running", Date: today, TimeSlot: "9:00 AM - 10:00 AM", Status: "confirmed"},
		&models.Booking{ID: "future", Date: today.AddDate(0, 0, 1), TimeSlot: "6 AM", Status: "confirmed"},
		&models.Booking{ID: "garbled", Date: today, TimeSlot: "after lunch", Status: "confirmed"},
		&models.Booking{ID: "past-pending", Date: today.AddDate(0, 0, -2), TimeSlot: "6 PM", Status: "pending"},
		&models.Booking{ID: "past-cancelled", Date: today.AddDate(0, 0, -2), TimeSlot: "6 PM", Status: "cancelled"},
	)
	s, m := newTestReconcileService(repo, now)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, result.Scanned)
	assert.Equal(t, 2, result.Completed)
	assert.Equal(t, 0, result.Failed)

	assert.Equal(t, "completed", repo.status("past"))
	assert.Equal(t, "completed", repo.status("earlier-today"))
	assert.Equal(t, "confirmed", repo.status("running"))
	assert.Equal(t, "confirmed", repo.status("future"))
	assert.Equal(t, "confirmed", repo.status("garbled"))
	assert.Equal(t, "pending", repo.status("past-pending"))
	assert.Equal(t, "cancelled", repo.status("past-cancelled"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReconcileRuns.WithLabelValues(metrics.ResultSuccess)))
}

func TestReconcileService_UpdateFailureDoesNotAbortBatch(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)

	repo := newFakeBookingRepository(
		&models.Booking{ID: "a", Date: yesterday, TimeSlot: "6 AM", Status: "confirmed"},
		&models.Booking{ID: "b", Date: yesterday, TimeSlot: "7 AM", Status: "confirmed"},
		&models.Booking{ID: "c", Date: yesterday, TimeSlot: "8 AM", Status: "confirmed"},
	)
	repo.transitionFn = func(id string) error {
		if id == "b" {
			return errors.New("write conflict")
		}
		return nil
	}
	s, m := newTestReconcileService(repo, now)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Completed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "completed", repo.status("a"))
	assert.Equal(t, "confirmed", repo.status("b"))
	assert.Equal(t, "completed", repo.status("c"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReconcileFailures))
}

func TestReconcileService_SkipsBookingCancelledMidRun(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)

	repo := newFakeBookingRepository(
		&models.Booking{ID: "raced", Date: yesterday, TimeSlot: "6 AM", Status: "confirmed"},
	)
	repo.transitionFn = func(id string) error {
		repo.setStatus(id, "cancelled")
		return nil
	}
	s, _ := newTestReconcileService(repo, now)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Completed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "cancelled", repo.status("raced"))
}

func TestReconcileService_ScanFailure(t *testing.T) {
	repo := newFakeBookingRepository()
	repo.findErr = errors.New("connection reset")
	s, m := newTestReconcileService(repo, time.Now())

	_, err := s.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.findErr)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReconcileRuns.WithLabelValues(metrics.ResultFailure)))

	assert.Error(t, s.RunJob(context.Background()))
}
