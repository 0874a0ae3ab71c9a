package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/expiryguard/backend/internal/config"
	"github.com/expiryguard/backend/internal/database/migrations"
)

// User is the persistence model for an account.
type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Username           string `gorm:"uniqueIndex"`
	// email uniqueness is enforced in the service layer: accounts without an
	// email store the empty string
	Email              string `gorm:"index"`
	PasswordHash       string
	NotificationHour   int `gorm:"default:6"`
	NotificationMinute int `gorm:"default:0"`
}

// InventoryItem is the persistence model for a tracked product. ExpiryDate is
// stored as canonical DD/MM/YYYY text, or empty when nothing was extracted.
type InventoryItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	User        User
	ProductName string
	ExpiryDate  string
	ImageURL    string
	Barcode     string `gorm:"index"`
	Status      string
	CreatedAt   time.Time
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := db.AutoMigrate(&User{}, &InventoryItem{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return db, nil
}
