package models

import (
	"time"

	"turfbook/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================
// Principals
// ============================================================

// User represents users table / collection
type User struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	Name         string         `gorm:"size:100;not null" json:"name" bson:"name"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email" bson:"email"`
	Phone        string         `gorm:"size:20" json:"phone,omitempty" bson:"phone,omitempty"`
	Password     string         `gorm:"size:255;not null" json:"-" bson:"password,omitempty"`
	RefreshToken string         `gorm:"size:255" json:"-" bson:"refresh_token,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at" bson:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-" bson:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Admin represents admins table / collection
type Admin struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	Name         string         `gorm:"size:100;not null" json:"name" bson:"name"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email" bson:"email"`
	Phone        string         `gorm:"size:20" json:"phone,omitempty" bson:"phone,omitempty"`
	Password     string         `gorm:"size:255;not null" json:"-" bson:"password,omitempty"`
	RefreshToken string         `gorm:"size:255" json:"-" bson:"refresh_token,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at" bson:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-" bson:"-"`
}

func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// SensitiveFields are never loaded when resolving a principal
var SensitiveFields = []string{"password", "refresh_token"}

// ============================================================
// Turfs & Bookings
// ============================================================

// Turf represents turfs table
type Turf struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	Name         string    `gorm:"size:100;not null" json:"name" bson:"name"`
	Location     string    `gorm:"size:255" json:"location" bson:"location"`
	PricePerHour float64   `gorm:"type:decimal(10,2)" json:"price_per_hour" bson:"price_per_hour"`
	AdminID      string    `gorm:"index;size:36" json:"admin_id" bson:"admin_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at" bson:"updated_at"`
}

func (Turf) TableName() string {
	return "turfs"
}

func (t *Turf) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Booking represents bookings table
type Booking struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	UserID    string    `gorm:"index;size:36;not null" json:"user_id" bson:"user_id"`
	TurfID    string    `gorm:"index;size:36;not null" json:"turf_id" bson:"turf_id"`
	Date      time.Time `gorm:"type:date;not null" json:"date" bson:"date"`
	TimeSlot  string    `gorm:"size:50;not null" json:"time_slot" bson:"time_slot"`
	Status    string    `gorm:"size:20;index;default:'pending'" json:"status" bson:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at" bson:"updated_at"`
	Turf      *Turf     `gorm:"foreignKey:TurfID" json:"turf,omitempty" bson:"-"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate assigns an id and rejects bookings for days that have passed.
// Status transitions go through column updates, which skip this hook.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = string(domain.BookingPending)
	}
	return b.Validate(time.Now())
}

// Validate checks the record-level rules applied on creation
func (b *Booking) Validate(now time.Time) error {
	y, m, d := b.Date.Date()
	ny, nm, nd := now.In(b.Date.Location()).Date()
	if time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Before(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)) {
		return domain.ErrBookingDateInPast
	}
	if !domain.BookingStatus(b.Status).IsValid() {
		return domain.ErrInvalidInput
	}
	return nil
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Admin{},
		&Turf{},
		&Booking{},
	)
}
