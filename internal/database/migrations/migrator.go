package migrations

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Migration represents a database migration
type Migration struct {
	ID   string
	Up   func(*gorm.DB) error
	Down func(*gorm.DB) error
}

// MigrationRecord tracks which migrations have been executed
type MigrationRecord struct {
	ID        string `gorm:"primaryKey"`
	AppliedAt time.Time
}

var migrations = make(map[string]Migration)

// Register adds a new migration to the registry
func Register(id string, up, down func(*gorm.DB) error) {
	migrations[id] = Migration{ID: id, Up: up, Down: down}
}

// RunMigrations executes all pending migrations in lexical order
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var ids []string
	for id := range migrations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		var record MigrationRecord
		err := db.Where("id = ?", id).First(&record).Error
		if err == nil {
			continue // already applied
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to check migration %s: %w", id, err)
		}

		if err := migrations[id].Up(db); err != nil {
			return fmt.Errorf("migration %s failed: %w", id, err)
		}
		if err := db.Create(&MigrationRecord{ID: id, AppliedAt: time.Now()}).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", id, err)
		}
	}
	return nil
}
