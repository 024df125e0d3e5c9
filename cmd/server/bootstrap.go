package main

import (
	"context"
	"fmt"
	"log"

	"turfbook/internal/adapters/persistence/models"
	"turfbook/internal/adapters/persistence/mongostore"
	"turfbook/internal/adapters/persistence/repositories"
	"turfbook/internal/config"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// stores holds the repositories for the configured driver
type stores struct {
	users    repositories.UserRepository
	admins   repositories.AdminRepository
	bookings repositories.BookingRepository
	ping     func(ctx context.Context) error
	close    func()
}

// openStores connects to the configured database. MySQL schemas are migrated,
// and seeded in dev mode.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		db, err := config.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:    mongostore.NewUserRepository(db),
			admins:   mongostore.NewAdminRepository(db),
			bookings: mongostore.NewBookingRepository(db),
			ping: func(ctx context.Context) error {
				return db.Client().Ping(ctx, readpref.Primary())
			},
			close: func() {
				if err := config.DisconnectMongo(db); err != nil {
					log.Printf("⚠️ Failed to disconnect mongo: %v", err)
				}
			},
		}, nil

	case config.DriverMySQL:
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			return nil, err
		}

		if err := models.AutoMigrate(db); err != nil {
			_ = config.CloseDatabase(db)
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
		log.Println("✅ Database migration completed")

		if cfg.IsDev() {
			if err := config.NewSeeder(db).Run(); err != nil {
				log.Printf("⚠️ Warning: Failed to seed data: %v", err)
			}
		}

		return &stores{
			users:    repositories.NewUserRepository(db),
			admins:   repositories.NewAdminRepository(db),
			bookings: repositories.NewBookingRepository(db),
			ping: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			close: func() {
				if err := config.CloseDatabase(db); err != nil {
					log.Printf("⚠️ Failed to close database: %v", err)
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
}
