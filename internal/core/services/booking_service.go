package services

import (
	"context"
	"errors"
	"log"

	"turfbook/internal/adapters/persistence/models"
	"turfbook/internal/adapters/persistence/repositories"
	"turfbook/internal/core/domain"
	"turfbook/internal/pkg/apperror"
)

// BookingService handles the booking operations exposed over HTTP
type BookingService struct {
	bookingRepo repositories.BookingRepository
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo repositories.BookingRepository) *BookingService {
	return &BookingService{bookingRepo: bookingRepo}
}

// ListForUser lists a user's bookings
func (s *BookingService) ListForUser(ctx context.Context, userID string, offset, limit int) ([]*models.Booking, int64, error) {
	bookings, total, err := s.bookingRepo.List(ctx, repositories.BookingFilter{UserID: userID}, offset, limit)
	if err != nil {
		return nil, 0, apperror.Internal("Failed to list bookings", err)
	}
	return bookings, total, nil
}

// List lists all bookings, optionally filtered by status
func (s *BookingService) List(ctx context.Context, status string, offset, limit int) ([]*models.Booking, int64, error) {
	if status != "" && !domain.BookingStatus(status).IsValid() {
		return nil, 0, apperror.BadRequest("Unknown booking status: " + status)
	}

	bookings, total, err := s.bookingRepo.List(ctx, repositories.BookingFilter{Status: status}, offset, limit)
	if err != nil {
		return nil, 0, apperror.Internal("Failed to list bookings", err)
	}
	return bookings, total, nil
}

// Cancel cancels a pending or confirmed booking. Users may only cancel their
// own bookings; admins may cancel any. The update is conditional on the
// current status, so a booking the reconciler completes first stays completed.
func (s *BookingService) Cancel(ctx context.Context, principal *Principal, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return nil, apperror.Wrap(err, apperror.KindNotFound, "Booking not found")
		}
		return nil, apperror.Internal("Failed to load booking", err)
	}

	if principal.Role == domain.RoleUser && booking.UserID != principal.ID() {
		return nil, apperror.Wrap(domain.ErrBookingNotOwned, apperror.KindForbidden, "You can only cancel your own bookings")
	}

	if !domain.BookingStatus(booking.Status).Cancellable() {
		return nil, apperror.Wrap(domain.ErrBookingNotCancellable, apperror.KindConflict, "Booking is already "+booking.Status)
	}

	changed, err := s.bookingRepo.TransitionStatus(ctx, booking.ID,
		[]string{string(domain.BookingPending), string(domain.BookingConfirmed)},
		string(domain.BookingCancelled))
	if err != nil {
		return nil, apperror.Internal("Failed to cancel booking", err)
	}
	if !changed {
		return nil, apperror.Wrap(domain.ErrBookingNotCancellable, apperror.KindConflict, "Booking status changed, it can no longer be cancelled")
	}

	booking.Status = string(domain.BookingCancelled)
	log.Printf("🗑️ Booking %s cancelled by %s %s", booking.ID, principal.Role, principal.ID())
	return booking, nil
}
