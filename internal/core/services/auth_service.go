package services

import (
	"context"
	"errors"
	"log"

	"turfbook/internal/adapters/persistence/repositories"
	"turfbook/internal/config"
	"turfbook/internal/core/domain"
	"turfbook/internal/pkg/apperror"
	"turfbook/internal/pkg/jwt"
	"turfbook/internal/pkg/password"
)

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Principal    *Principal `json:"principal"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"-"`
}

// AuthService issues and clears credentials for users and admins
type AuthService struct {
	userRepo  repositories.UserRepository
	adminRepo repositories.AdminRepository
	cfg       *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	adminRepo repositories.AdminRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		cfg:       cfg,
	}
}

// LoginUser authenticates a user by email and password
func (s *AuthService) LoginUser(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apperror.Wrap(domain.ErrInvalidCredentials, apperror.KindUnauthorized, "Invalid email or password")
		}
		return nil, apperror.Internal("Failed to login", err)
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, apperror.Wrap(domain.ErrInvalidCredentials, apperror.KindUnauthorized, "Invalid email or password")
	}

	tokens, err := s.generateTokens(user.ID, domain.RoleUser)
	if err != nil {
		return nil, apperror.Internal("Failed to issue tokens", err)
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, password.HashToken(tokens.RefreshToken)); err != nil {
		return nil, apperror.Internal("Failed to store refresh token", err)
	}

	user.Password = ""
	user.RefreshToken = ""

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		Principal:    &Principal{Role: domain.RoleUser, User: user},
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// LoginAdmin authenticates an admin by email and password
func (s *AuthService) LoginAdmin(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, apperror.Wrap(domain.ErrInvalidCredentials, apperror.KindUnauthorized, "Invalid email or password")
		}
		return nil, apperror.Internal("Failed to login", err)
	}

	if !password.Verify(input.Password, admin.Password) {
		return nil, apperror.Wrap(domain.ErrInvalidCredentials, apperror.KindUnauthorized, "Invalid email or password")
	}

	tokens, err := s.generateTokens(admin.ID, domain.RoleAdmin)
	if err != nil {
		return nil, apperror.Internal("Failed to issue tokens", err)
	}

	if err := s.adminRepo.UpdateRefreshToken(ctx, admin.ID, password.HashToken(tokens.RefreshToken)); err != nil {
		return nil, apperror.Internal("Failed to store refresh token", err)
	}

	admin.Password = ""
	admin.RefreshToken = ""

	log.Printf("✅ Admin logged in: %s", admin.Email)

	return &AuthResponse{
		Principal:    &Principal{Role: domain.RoleAdmin, Admin: admin},
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Refresh rotates a refresh token. The presented token must match the stored
// hash, so a token is usable once and not after logout.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, apperror.Unauthorized("Refresh token not found")
	}

	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Wrap(err, apperror.KindExpired, "Refresh token expired, please login again")
		}
		return nil, apperror.Wrap(err, apperror.KindUnauthorized, "Invalid refresh token")
	}

	principal, stored, err := s.lookupForRefresh(ctx, domain.Role(claims.Role), claims.Subject)
	if err != nil {
		return nil, err
	}
	if stored == "" || stored != password.HashToken(refreshToken) {
		return nil, apperror.Wrap(jwt.ErrTokenInvalid, apperror.KindUnauthorized, "Refresh token revoked, please login again")
	}

	tokens, err := s.generateTokens(principal.ID(), principal.Role)
	if err != nil {
		return nil, apperror.Internal("Failed to issue tokens", err)
	}

	if err := s.storeRefreshToken(ctx, principal, password.HashToken(tokens.RefreshToken)); err != nil {
		return nil, apperror.Internal("Failed to store refresh token", err)
	}

	return &AuthResponse{
		Principal:    principal,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

func (s *AuthService) lookupForRefresh(ctx context.Context, role domain.Role, id string) (*Principal, string, error) {
	invalid := func(err error) error {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrAdminNotFound) {
			return apperror.Wrap(err, apperror.KindUnauthorized, "Invalid refresh token")
		}
		return apperror.Internal("Failed to refresh token", err)
	}

	switch role {
	case domain.RoleUser:
		stored, err := s.userRepo.GetRefreshTokenHash(ctx, id)
		if err != nil {
			return nil, "", invalid(err)
		}
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, "", invalid(err)
		}
		return &Principal{Role: domain.RoleUser, User: user}, stored, nil
	case domain.RoleAdmin:
		stored, err := s.adminRepo.GetRefreshTokenHash(ctx, id)
		if err != nil {
			return nil, "", invalid(err)
		}
		admin, err := s.adminRepo.GetByID(ctx, id)
		if err != nil {
			return nil, "", invalid(err)
		}
		return &Principal{Role: domain.RoleAdmin, Admin: admin}, stored, nil
	}
	return nil, "", apperror.Malformed("Refresh token has no valid role")
}

func (s *AuthService) storeRefreshToken(ctx context.Context, principal *Principal, hash string) error {
	if principal.Role == domain.RoleAdmin {
		return s.adminRepo.UpdateRefreshToken(ctx, principal.ID(), hash)
	}
	return s.userRepo.UpdateRefreshToken(ctx, principal.ID(), hash)
}

// Logout clears the stored refresh token. Access tokens stay valid until they
// expire; clients drop them.
func (s *AuthService) Logout(ctx context.Context, principal *Principal) error {
	if err := s.storeRefreshToken(ctx, principal, ""); err != nil {
		return apperror.Internal("Failed to logout", err)
	}

	log.Printf("✅ %s logged out: %s", principal.Role, principal.ID())
	return nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(subject string, role domain.Role) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		subject,
		string(role),
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		subject,
		string(role),
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
