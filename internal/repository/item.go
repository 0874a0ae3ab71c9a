package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expiryguard/backend/internal/database"
	"github.com/expiryguard/backend/internal/domain"
	"github.com/expiryguard/backend/internal/expiry"
)

// ItemRepository handles inventory item operations. Every query is scoped by
// owner; there is no cross-user read or delete path.
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new inventory item repository
func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	row := itemToRow(item)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	item.CreatedAt = row.CreatedAt
	return nil
}

func (r *ItemRepository) FindByOwner(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	var rows []database.InventoryItem
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	items := make([]domain.InventoryItem, 0, len(rows))
	for i := range rows {
		items = append(items, *itemFromRow(&rows[i]))
	}
	return items, nil
}

func (r *ItemRepository) FindByOwnerAndBarcode(ctx context.Context, userID uuid.UUID, barcode string) (*domain.InventoryItem, error) {
	var row database.InventoryItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND barcode = ?", userID, barcode).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item by barcode: %w", err)
	}
	return itemFromRow(&row), nil
}

func (r *ItemRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&database.InventoryItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func itemToRow(item *domain.InventoryItem) *database.InventoryItem {
	return &database.InventoryItem{
		ID:          item.ID,
		UserID:      item.UserID,
		ProductName: item.ProductName,
		ExpiryDate:  item.ExpiryDate,
		ImageURL:    item.ImageURL,
		Barcode:     item.Barcode,
		Status:      string(item.Status),
	}
}

func itemFromRow(row *database.InventoryItem) *domain.InventoryItem {
	return &domain.InventoryItem{
		ID:          row.ID,
		UserID:      row.UserID,
		ProductName: row.ProductName,
		ExpiryDate:  row.ExpiryDate,
		ImageURL:    row.ImageURL,
		Barcode:     row.Barcode,
		Status:      expiry.Freshness(row.Status),
		CreatedAt:   row.CreatedAt,
	}
}
