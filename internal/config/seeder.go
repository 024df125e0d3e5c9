package config

import (
	"errors"
	"fmt"
	"log"

	"turfbook/internal/adapters/persistence/models"
	"turfbook/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Development only; production accounts are
// created through the admin tooling.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	admin, err := s.seedAdmin()
	if err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if err := s.seedUser(); err != nil {
		log.Printf("⚠️ User seeder skipped: %v", err)
	}

	if admin != nil {
		if err := s.seedTurf(admin.ID); err != nil {
			log.Printf("⚠️ Turf seeder skipped: %v", err)
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}

func (s *Seeder) seedAdmin() (*models.Admin, error) {
	email := getEnv("SEED_ADMIN_EMAIL", "admin@turfbook.local")

	var existing models.Admin
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	plain := getEnv("SEED_ADMIN_PASSWORD", "admin123456")
	if !password.ValidatePassword(plain) {
		return nil, fmt.Errorf("SEED_ADMIN_PASSWORD must be at least %d characters", password.MinLength)
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{Name: "Turf Admin", Email: email, Password: hashed}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, err
	}

	log.Printf("✅ Admin created: %s", admin.Email)
	return admin, nil
}

func (s *Seeder) seedUser() error {
	email := getEnv("SEED_USER_EMAIL", "player@turfbook.local")

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plain := getEnv("SEED_USER_PASSWORD", "player123456")
	if !password.ValidatePassword(plain) {
		return fmt.Errorf("SEED_USER_PASSWORD must be at least %d characters", password.MinLength)
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return err
	}

	user := &models.User{Name: "Demo Player", Email: email, Password: hashed}
	if err := s.db.Create(user).Error; err != nil {
		return err
	}

	log.Printf("✅ User created: %s", user.Email)
	return nil
}

func (s *Seeder) seedTurf(adminID string) error {
	var count int64
	if err := s.db.Model(&models.Turf{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	turf := &models.Turf{Name: "Central Arena", Location: "Downtown", PricePerHour: 1200, AdminID: adminID}
	if err := s.db.Create(turf).Error; err != nil {
		return err
	}

	log.Printf("✅ Turf created: %s", turf.Name)
	return nil
}
