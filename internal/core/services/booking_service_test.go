package services

import (
	"context"
	"testing"
	"time"

	"turfbook/internal/adapters/persistence/models"
	"turfbook/internal/core/domain"
	"turfbook/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingFixture() *fakeBookingRepository {
	day := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	return newFakeBookingRepository(
		&models.Booking{ID: "b-1", UserID: "u-1", Date: day, TimeSlot: "6 AM", Status: "confirmed"},
		&models.Booking{ID: "b-2", UserID: "u-2", Date: day, TimeSlot: "7 AM", Status: "pending"},
		&models.Booking{ID: "b-3", UserID: "u-1", Date: day, TimeSlot: "8 AM", Status: "completed"},
	)
}

var (
	asUser  = &Principal{Role: domain.RoleUser, User: &models.User{ID: "u-1"}}
	asAdmin = &Principal{Role: domain.RoleAdmin, Admin: &models.Admin{ID: "a-1"}}
)

func TestBookingService_CancelOwn(t *testing.T) {
	repo := bookingFixture()
	s := NewBookingService(repo)

	booking, err := s.Cancel(context.Background(), asUser, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", booking.Status)
	assert.Equal(t, "cancelled", repo.status("b-1"))
}

func TestBookingService_CancelOthersForbidden(t *testing.T) {
	repo := bookingFixture()
	s := NewBookingService(repo)

	_, err := s.Cancel(context.Background(), asUser, "b-2")
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	assert.Equal(t, "pending", repo.status("b-2"))
}

func TestBookingService_AdminCancelsAny(t *testing.T) {
	repo := bookingFixture()
	s := NewBookingService(repo)

	_, err := s.Cancel(context.Background(), asAdmin, "b-2")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", repo.status("b-2"))
}

func TestBookingService_CancelCompletedConflicts(t *testing.T) {
	s := NewBookingService(bookingFixture())

	_, err := s.Cancel(context.Background(), asUser, "b-3")
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.ErrorIs(t, err, domain.ErrBookingNotCancellable)
}

func TestBookingService_CancelLosesRaceToReconciler(t *testing.T) {
	repo := bookingFixture()
	repo.transitionFn = func(id string) error {
		repo.setStatus(id, "completed")
		return nil
	}
	s := NewBookingService(repo)

	_, err := s.Cancel(context.Background(), asUser, "b-1")
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, "completed", repo.status("b-1"))
}

func TestBookingService_CancelMissing(t *testing.T) {
	s := NewBookingService(bookingFixture())

	_, err := s.Cancel(context.Background(), asAdmin, "nope")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestBookingService_List(t *testing.T) {
	s := NewBookingService(bookingFixture())
	ctx := context.Background()

	mine, total, err := s.ListForUser(ctx, "u-1", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, mine, 2)

	pending, total, err := s.List(ctx, "pending", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "b-2", pending[0].ID)

	_, _, err = s.List(ctx, "archived", 0, 10)
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}
