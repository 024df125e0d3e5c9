package repositories

import (
	"context"
	"errors"

	"turfbook/internal/adapters/persistence/models"
	"turfbook/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByID gets a user by ID, omitting sensitive columns
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Omit(models.SensitiveFields...).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, userError(err)
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, userError(err)
	}
	return &user, nil
}

// GetRefreshTokenHash reads only the refresh_token column
func (r *userRepository) GetRefreshTokenHash(ctx context.Context, id string) (string, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("id", "refresh_token").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return "", userError(err)
	}
	return user.RefreshToken, nil
}

// UpdateRefreshToken stores the hash of the user's current refresh token
func (r *userRepository) UpdateRefreshToken(ctx context.Context, id, tokenHash string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("refresh_token", tokenHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func userError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}
