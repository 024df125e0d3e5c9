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

type userStore struct {
	collection *mongo.Collection
}

// NewUserRepository creates a user repository backed by the users collection
func NewUserRepository(db *mongo.Database) repositories.UserRepository {
	return &userStore{collection: db.Collection(UsersCollection)}
}

func (s *userStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, readTimeout)
	defer cancel()

	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}, withoutSensitive()).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, readTimeout)
	defer cancel()

	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (s *userStore) GetRefreshTokenHash(ctx context.Context, id string) (string, error) {
	ctx, cancel := withTimeout(ctx, readTimeout)
	defer cancel()

	var user models.User
	opts := options.FindOne().SetProjection(bson.M{"refresh_token": 1})
	err := s.collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	return user.RefreshToken, nil
}

func (s *userStore) UpdateRefreshToken(ctx context.Context, id, tokenHash string) error {
	ctx, cancel := withTimeout(ctx, writeTimeout)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"refresh_token": tokenHash}},
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
