package mongostore

import (
	"context"
	"errors"
	"fmt"

	"turfbook/internal/adapters/persistence/models"
	"turfbook/internal/adapters/persistence/repositories"
	"turfbook/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type adminStore struct {
	collection *mongo.Collection
}

// NewAdminRepository creates an admin repository backed by the admins collection
func NewAdminRepository(db *mongo.Database) repositories.AdminRepository {
	return &adminStore{collection: db.Collection(AdminsCollection)}
}

func (s *adminStore) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	ctx, cancel := withTimeout(ctx, readTimeout)
	defer cancel()

	var admin models.Admin
	err := s.collection.FindOne(ctx, bson.M{"_id": id}, withoutSensitive()).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return &admin, nil
}

func (s *adminStore) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	ctx, cancel := withTimeout(ctx, readTimeout)
	defer cancel()

	var admin models.Admin
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return &admin, nil
}

func (s *adminStore) GetRefreshTokenHash(ctx context.Context, id string) (string, error) {
	ctx, cancel := withTimeout(ctx, readTimeout)
	defer cancel()

	var admin models.Admin
	opts := options.FindOne().SetProjection(bson.M{"refresh_token": 1})
	err := s.collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrAdminNotFound
		}
		return "", fmt.Errorf("failed to find admin: %w", err)
	}
	return admin.RefreshToken, nil
}

func (s *adminStore) UpdateRefreshToken(ctx context.Context, id, tokenHash string) error {
	ctx, cancel := withTimeout(ctx, writeTimeout)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"refresh_token": tokenHash}},
	)
	if err != nil {
		return fmt.Errorf("failed to update admin: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}
