package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/expiryguard/backend/internal/expiry"
)

// User represents a registered account
type User struct {
	ID                 uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Username           string
	Email              string
	PasswordHash       string
	NotificationHour   int // 0-23, local wall clock
	NotificationMinute int // 0-59
}

// InventoryItem is a single tracked product. Items are immutable once
// created; they are only ever deleted.
type InventoryItem struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ProductName string
	ExpiryDate  string // canonical DD/MM/YYYY, or empty when nothing was extracted
	ImageURL    string
	Barcode     string
	Status      expiry.Freshness // cached; recomputed from ExpiryDate on every read
	CreatedAt   time.Time
}

// VoiceExtraction is the result of parsing a spoken sentence.
type VoiceExtraction struct {
	ProductName string
	ExpiryDate  string // canonical DD/MM/YYYY or empty
}

// BarcodeProduct is a barcode lookup result together with where it came from.
type BarcodeProduct struct {
	ProductName string
	Barcode     string
	Source      string // "user_inventory", "openfoodfacts" or "openbeautyfacts"
}

// InventoryStats summarizes one user's inventory.
type InventoryStats struct {
	TotalItems       int
	ExpiringThisWeek int
	ExpiredItems     int
	StatusBreakdown  map[expiry.Freshness]int
}
