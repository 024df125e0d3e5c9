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

type bookingStore struct {
	collection *mongo.Collection
}

// NewBookingRepository creates a booking repository backed by the bookings collection
func NewBookingRepository(db *mongo.Database) repositories.BookingRepository {
	return &bookingStore{collection: db.Collection(BookingsCollection)}
}

func (s *bookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := withTimeout(ctx, readTimeout)
	defer cancel()

	var booking models.Booking
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (s *bookingStore) FindByStatus(ctx context.Context, status string) ([]*models.Booking, error) {
	ctx, cancel := withTimeout(ctx, readTimeout)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingStore) List(ctx context.Context, filter repositories.BookingFilter, offset, limit int) ([]*models.Booking, int64, error) {
	ctx, cancel := withTimeout(ctx, readTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := s.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

// TransitionStatus matches on the current status so a concurrent change wins cleanly
func (s *bookingStore) TransitionStatus(ctx context.Context, id string, from []string, to string) (bool, error) {
	ctx, cancel := withTimeout(ctx, writeTimeout)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": from}},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update booking status: %w", err)
	}
	return result.ModifiedCount > 0, nil
}
