package repositories

import (
	"context"

	"turfbook/internal/adapters/persistence/models"
)

// Implementations return domain.ErrUserNotFound, domain.ErrAdminNotFound and
// domain.ErrBookingNotFound for absent records so callers stay driver agnostic.

// UserRepository defines user repository interface
type UserRepository interface {
	// GetByID returns the user without password and refresh token
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns the full record, used for login
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetRefreshTokenHash returns the stored refresh token hash, empty after logout
	GetRefreshTokenHash(ctx context.Context, id string) (string, error)
	UpdateRefreshToken(ctx context.Context, id, tokenHash string) error
}

// AdminRepository defines admin repository interface
type AdminRepository interface {
	// GetByID returns the admin without password and refresh token
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetRefreshTokenHash(ctx context.Context, id string) (string, error)
	UpdateRefreshToken(ctx context.Context, id, tokenHash string) error
}

// BookingFilter narrows booking listings
type BookingFilter struct {
	UserID string
	Status string
}

// BookingRepository defines booking repository interface
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	FindByStatus(ctx context.Context, status string) ([]*models.Booking, error)
	List(ctx context.Context, filter BookingFilter, offset, limit int) ([]*models.Booking, int64, error)
	// TransitionStatus sets status to `to` only while the stored status is one of
	// `from`. It reports whether a record changed and skips model validation.
	TransitionStatus(ctx context.Context, id string, from []string, to string) (bool, error)
}
