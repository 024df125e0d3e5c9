package services

import (
	"context"
	"errors"

	"turfbook/internal/adapters/persistence/models"
	"turfbook/internal/adapters/persistence/repositories"
	"turfbook/internal/core/domain"
	"turfbook/internal/pkg/apperror"
	"turfbook/internal/pkg/jwt"
)

// Principal is the actor a credential resolved to. Exactly one of User and
// Admin is set, matching Role.
type Principal struct {
	Role  domain.Role   `json:"role"`
	User  *models.User  `json:"user,omitempty"`
	Admin *models.Admin `json:"admin,omitempty"`
}

// ID returns the principal's identifier
func (p *Principal) ID() string {
	switch {
	case p.User != nil:
		return p.User.ID
	case p.Admin != nil:
		return p.Admin.ID
	}
	return ""
}

// AuthResolver turns a bearer credential into a user, an admin or a failure
type AuthResolver struct {
	userRepo  repositories.UserRepository
	adminRepo repositories.AdminRepository
	secret    string
}

// NewAuthResolver creates a new auth resolver verifying tokens with secret
func NewAuthResolver(userRepo repositories.UserRepository, adminRepo repositories.AdminRepository, secret string) *AuthResolver {
	return &AuthResolver{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		secret:    secret,
	}
}

// Verify checks the token's signature, structure and expiry
func (r *AuthResolver) Verify(token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, apperror.Unauthorized("Access token required")
	}

	claims, err := jwt.ValidateAccessToken(token, r.secret)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperror.Wrap(err, apperror.KindExpired, "Access token expired")
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, apperror.Wrap(err, apperror.KindMalformed, "Malformed access token")
		default:
			return nil, apperror.Wrap(err, apperror.KindUnauthorized, "Invalid access token")
		}
	}
	return claims, nil
}

// ResolveUser accepts only users; an unknown subject is Unauthorized
func (r *AuthResolver) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := r.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := r.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apperror.Wrap(err, apperror.KindUnauthorized, "Invalid access token")
		}
		return nil, apperror.Internal("Failed to resolve user", err)
	}
	return user, nil
}

// ResolveAdmin accepts only admins; an unknown subject is NotFound
func (r *AuthResolver) ResolveAdmin(ctx context.Context, token string) (*models.Admin, error) {
	claims, err := r.Verify(token)
	if err != nil {
		return nil, err
	}

	admin, err := r.adminRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, apperror.Wrap(err, apperror.KindNotFound, "Admin not found")
		}
		return nil, apperror.Internal("Failed to resolve admin", err)
	}
	return admin, nil
}

// ResolveAny tries the user store first, then the admin store. Every failure
// is reported as Unauthorized; the underlying cause stays in the chain.
func (r *AuthResolver) ResolveAny(ctx context.Context, token string) (*Principal, error) {
	principal, err := r.resolveAny(ctx, token)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.KindUnauthorized, "Unauthorized")
	}
	return principal, nil
}

func (r *AuthResolver) resolveAny(ctx context.Context, token string) (*Principal, error) {
	claims, err := r.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := r.userRepo.GetByID(ctx, claims.Subject)
	if err == nil {
		return &Principal{Role: domain.RoleUser, User: user}, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	admin, err := r.adminRepo.GetByID(ctx, claims.Subject)
	if err == nil {
		return &Principal{Role: domain.RoleAdmin, Admin: admin}, nil
	}
	if !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, err
	}

	return nil, errors.New("neither user nor admin found")
}
