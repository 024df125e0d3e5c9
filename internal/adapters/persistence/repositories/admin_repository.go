package repositories

import (
	"context"
	"errors"

	"turfbook/internal/adapters/persistence/models"
	"turfbook/internal/core/domain"

	"gorm.io/gorm"
)

// adminRepository implements AdminRepository interface
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// GetByID gets an admin by ID, omitting sensitive columns
func (r *adminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).
		Omit(models.SensitiveFields...).
		Where("id = ?", id).
		First(&admin).Error
	if err != nil {
		return nil, adminError(err)
	}
	return &admin, nil
}

// GetByEmail gets an admin by email
func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if err != nil {
		return nil, adminError(err)
	}
	return &admin, nil
}

// GetRefreshTokenHash reads only the refresh_token column
func (r *adminRepository) GetRefreshTokenHash(ctx context.Context, id string) (string, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).
		Select("id", "refresh_token").
		Where("id = ?", id).
		First(&admin).Error
	if err != nil {
		return "", adminError(err)
	}
	return admin.RefreshToken, nil
}

// UpdateRefreshToken stores the hash of the admin's current refresh token
func (r *adminRepository) UpdateRefreshToken(ctx context.Context, id, tokenHash string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("id = ?", id).
		UpdateColumn("refresh_token", tokenHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func adminError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrAdminNotFound
	}
	return err
}
