package services

import (
	"context"
	"sync"

	"turfbook/internal/adapters/persistence/models"
	"turfbook/internal/adapters/persistence/repositories"
	"turfbook/internal/core/domain"
)

// ────────────────────────────────────────────────
// In-memory repositories for testing
// ────────────────────────────────────────────────

type fakeBookingRepository struct {
	mu           sync.Mutex
	bookings     map[string]*models.Booking
	findErr      error
	transitionFn func(id string) error
	transitions  []string
}

func newFakeBookingRepository(bookings ...*models.Booking) *fakeBookingRepository {
	r := &fakeBookingRepository{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepository) FindByStatus(ctx context.Context, status string) ([]*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*models.Booking
	for _, b := range r.bookings {
		if b.Status == status {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBookingRepository) List(ctx context.Context, filter repositories.BookingFilter, offset, limit int) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (r *fakeBookingRepository) TransitionStatus(ctx context.Context, id string, from []string, to string) (bool, error) {
	if r.transitionFn != nil {
		if err := r.transitionFn(id); err != nil {
			return false, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if b.Status == f {
			b.Status = to
			r.transitions = append(r.transitions, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepository) status(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id].Status
}

func (r *fakeBookingRepository) setStatus(id, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[id].Status = status
}

type fakeUserRepository struct {
	users   map[string]*models.User
	lookErr error
	tokens  map[string]string
}

func newFakeUserRepository(users ...*models.User) *fakeUserRepository {
	r := &fakeUserRepository{users: make(map[string]*models.User), tokens: make(map[string]string)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if r.lookErr != nil {
		return nil, r.lookErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	cp.Password = ""
	cp.RefreshToken = ""
	return &cp, nil
}

func (r *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepository) GetRefreshTokenHash(ctx context.Context, id string) (string, error) {
	if _, ok := r.users[id]; !ok {
		return "", domain.ErrUserNotFound
	}
	return r.tokens[id], nil
}

func (r *fakeUserRepository) UpdateRefreshToken(ctx context.Context, id, tokenHash string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	r.tokens[id] = tokenHash
	return nil
}

type fakeAdminRepository struct {
	admins  map[string]*models.Admin
	lookErr error
	tokens  map[string]string
}

func newFakeAdminRepository(admins ...*models.Admin) *fakeAdminRepository {
	r := &fakeAdminRepository{admins: make(map[string]*models.Admin), tokens: make(map[string]string)}
	for _, a := range admins {
		r.admins[a.ID] = a
	}
	return r
}

func (r *fakeAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	if r.lookErr != nil {
		return nil, r.lookErr
	}
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	cp := *a
	cp.Password = ""
	cp.RefreshToken = ""
	return &cp, nil
}

func (r *fakeAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *fakeAdminRepository) GetRefreshTokenHash(ctx context.Context, id string) (string, error) {
	if _, ok := r.admins[id]; !ok {
		return "", domain.ErrAdminNotFound
	}
	return r.tokens[id], nil
}

func (r *fakeAdminRepository) UpdateRefreshToken(ctx context.Context, id, tokenHash string) error {
	if _, ok := r.admins[id]; !ok {
		return domain.ErrAdminNotFound
	}
	r.tokens[id] = tokenHash
	return nil
}
