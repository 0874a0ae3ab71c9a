package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository handles user persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListWithEmail(ctx context.Context) ([]User, error)
	UpdateNotificationTime(ctx context.Context, id uuid.UUID, hour, minute int) error
}

// ItemRepository handles inventory item persistence, always scoped by owner
type ItemRepository interface {
	Create(ctx context.Context, item *InventoryItem) error
	FindByOwner(ctx context.Context, userID uuid.UUID) ([]InventoryItem, error)
	FindByOwnerAndBarcode(ctx context.Context, userID uuid.UUID, barcode string) (*InventoryItem, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}

// GateStore is the durable global notification on/off switch. Missing state
// reads as off.
type GateStore interface {
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
	Enabled(ctx context.Context) (bool, error)
}

// Mailer dispatches expiry alert emails
type Mailer interface {
	SendExpiryAlert(ctx context.Context, to string, items []InventoryItem) error
}

// TextSource extracts raw text from an uploaded image. The pipeline makes no
// assumption about the quality of the returned text.
type TextSource interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// VoiceExtractor parses a spoken transcript into a product and expiry date
type VoiceExtractor interface {
	ExtractFromTranscript(ctx context.Context, transcript string) (*VoiceExtraction, error)
}
