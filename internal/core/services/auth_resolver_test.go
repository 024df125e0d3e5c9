package services

import (
	"context"
	"errors"
	"testing"

	"turfbook/internal/adapters/persistence/models"
	"turfbook/internal/core/domain"
	"turfbook/internal/pkg/apperror"
	"turfbook/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "resolver-secret"

func newTestResolver() (*AuthResolver, *fakeUserRepository, *fakeAdminRepository) {
	users := newFakeUserRepository(&models.User{
		ID: "u-1", Name: "Asha", Email: "asha@example.com",
		Password: "hash", RefreshToken: "refresh-hash",
	})
	admins := newFakeAdminRepository(&models.Admin{
		ID: "a-1", Name: "Ravi", Email: "ravi@example.com", Password: "hash",
	})
	return NewAuthResolver(users, admins, testSecret), users, admins
}

func token(t *testing.T, subject string, minutes int) string {
	t.Helper()
	tok, err := jwt.GenerateAccessToken(subject, "", testSecret, minutes)
	require.NoError(t, err)
	return tok
}

func TestAuthResolver_Verify(t *testing.T) {
	r, _, _ := newTestResolver()
	foreign, err := jwt.GenerateAccessToken("u-1", "user", "another-secret", 10)
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		wantKind apperror.Kind
	}{
		{name: "missing", token: "", wantKind: apperror.KindUnauthorized},
		{name: "malformed", token: "garbage", wantKind: apperror.KindMalformed},
		{name: "expired", token: token(t, "u-1", -5), wantKind: apperror.KindExpired},
		{name: "bad signature", token: foreign, wantKind: apperror.KindUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Verify(tt.token)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperror.KindOf(err))
		})
	}
}

func TestAuthResolver_ExpiredIsDistinguishable(t *testing.T) {
	r, _, _ := newTestResolver()

	_, err := r.ResolveUser(context.Background(), token(t, "u-1", -1))
	require.Error(t, err)
	assert.Equal(t, apperror.KindExpired, apperror.KindOf(err))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	assert.NotErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestAuthResolver_ResolveUser(t *testing.T) {
	r, _, _ := newTestResolver()

	user, err := r.ResolveUser(context.Background(), token(t, "u-1", 10))
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Empty(t, user.Password)
	assert.Empty(t, user.RefreshToken)
}

func TestAuthResolver_ResolveUser_Failures(t *testing.T) {
	r, users, _ := newTestResolver()
	ctx := context.Background()

	_, err := r.ResolveUser(ctx, "")
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	_, err = r.ResolveUser(ctx, token(t, "a-1", 10))
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	users.lookErr = errors.New("db down")
	_, err = r.ResolveUser(ctx, token(t, "u-1", 10))
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestAuthResolver_ResolveAdmin(t *testing.T) {
	r, _, admins := newTestResolver()
	ctx := context.Background()

	admin, err := r.ResolveAdmin(ctx, token(t, "a-1", 10))
	require.NoError(t, err)
	assert.Equal(t, "a-1", admin.ID)
	assert.Empty(t, admin.Password)

	_, err = r.ResolveAdmin(ctx, token(t, "u-1", 10))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = r.ResolveAdmin(ctx, "")
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	admins.lookErr = errors.New("db down")
	_, err = r.ResolveAdmin(ctx, token(t, "a-1", 10))
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestAuthResolver_ResolveAny(t *testing.T) {
	r, _, _ := newTestResolver()
	ctx := context.Background()

	p, err := r.ResolveAny(ctx, token(t, "u-1", 10))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, p.Role)
	assert.Equal(t, "u-1", p.ID())
	assert.Nil(t, p.Admin)

	p, err = r.ResolveAny(ctx, token(t, "a-1", 10))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, p.Role)
	assert.Equal(t, "a-1", p.ID())
	assert.Nil(t, p.User)
}

func TestAuthResolver_ResolveAny_AlwaysUnauthorized(t *testing.T) {
	r, users, _ := newTestResolver()
	ctx := context.Background()

	_, err := r.ResolveAny(ctx, "")
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	_, err = r.ResolveAny(ctx, token(t, "nobody", 10))
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	assert.NotEqual(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = r.ResolveAny(ctx, token(t, "u-1", -1))
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	users.lookErr = errors.New("db down")
	_, err = r.ResolveAny(ctx, token(t, "u-1", 10))
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}
