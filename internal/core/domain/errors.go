package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Principal errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrAdminNotFound = errors.New("admin not found")
)

// Booking errors
var (
	ErrBookingNotFound       = errors.New("booking not found")
	ErrBookingDateInPast     = errors.New("booking date is in the past")
	ErrBookingNotCancellable = errors.New("booking can no longer be cancelled")
	ErrBookingNotOwned       = errors.New("booking belongs to another user")
)
