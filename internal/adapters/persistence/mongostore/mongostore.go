// Package mongostore implements the repository interfaces on MongoDB, used when
// DB_DRIVER=mongo.
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	UsersCollection    = "users"
	AdminsCollection   = "admins"
	BookingsCollection = "bookings"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
)

// withTimeout bounds ctx by timeout unless it already has an earlier deadline
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// withoutSensitive excludes password and refresh token from a lookup
func withoutSensitive() *options.FindOneOptions {
	return options.FindOne().SetProjection(bson.M{"password": 0, "refresh_token": 0})
}
