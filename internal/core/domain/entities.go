package domain

// Role identifies which kind of principal a request was resolved to
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// IsValid reports whether s is a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Cancellable reports whether a booking in status s may still be cancelled
func (s BookingStatus) Cancellable() bool {
	return s == BookingPending || s == BookingConfirmed
}
