package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"turfbook/internal/adapters/persistence/repositories"
	"turfbook/internal/core/domain"
	"turfbook/internal/pkg/metrics"
)

// ============================================================
// Booking reconciliation: confirmed bookings whose slot has
// passed -> completed
// ============================================================

// ReconcileResult summarises a single reconciliation run
type ReconcileResult struct {
	Scanned   int           `json:"scanned"`
	Completed int           `json:"completed"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration"`
}

// ReconcileService completes confirmed bookings whose slot has elapsed
type ReconcileService struct {
	bookingRepo repositories.BookingRepository
	loc         *time.Location
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewReconcileService creates a new reconcile service evaluating dates in loc
func NewReconcileService(bookingRepo repositories.BookingRepository, loc *time.Location, m *metrics.Metrics) *ReconcileService {
	if loc == nil {
		loc = time.UTC
	}
	if m == nil {
		m = metrics.NewUnregistered()
	}
	return &ReconcileService{
		bookingRepo: bookingRepo,
		loc:         loc,
		metrics:     m,
		now:         time.Now,
	}
}

// Name identifies the job in logs
func (s *ReconcileService) Name() string {
	return "booking-reconcile"
}

// Run performs one reconciliation pass. A failed update for one booking is
// logged and does not stop the rest of the batch; only a failed scan returns
// an error.
func (s *ReconcileService) Run(ctx context.Context) (*ReconcileResult, error) {
	began := time.Now()
	now := s.now()
	result := &ReconcileResult{}

	bookings, err := s.bookingRepo.FindByStatus(ctx, string(domain.BookingConfirmed))
	if err != nil {
		s.metrics.ReconcileRuns.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, fmt.Errorf("find confirmed bookings: %w", err)
	}
	result.Scanned = len(bookings)

	for _, booking := range bookings {
		if !IsBookingExpired(booking.Date, booking.TimeSlot, now, s.loc) {
			continue
		}

		changed, err := s.bookingRepo.TransitionStatus(ctx, booking.ID,
			[]string{string(domain.BookingConfirmed)}, string(domain.BookingCompleted))
		if err != nil {
			result.Failed++
			s.metrics.ReconcileFailures.Inc()
			log.Printf("❌ Reconcile: failed to complete booking %s: %v", booking.ID, err)
			continue
		}
		if !changed {
			// Status moved on (e.g. cancelled) between scan and update
			result.Skipped++
			continue
		}

		result.Completed++
	}

	result.Duration = time.Since(began)

	s.metrics.BookingsCompleted.Add(float64(result.Completed))
	s.metrics.ReconcileDuration.Observe(result.Duration.Seconds())
	s.metrics.ReconcileRuns.WithLabelValues(metrics.ResultSuccess).Inc()

	log.Printf("✅ Reconcile: completed %d of %d confirmed bookings (skipped %d, failed %d)",
		result.Completed, result.Scanned, result.Skipped, result.Failed)

	return result, nil
}

// RunJob adapts Run to the scheduler, which only needs an error
func (s *ReconcileService) RunJob(ctx context.Context) error {
	_, err := s.Run(ctx)
	return err
}
