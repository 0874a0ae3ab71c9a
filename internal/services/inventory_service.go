package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/expiryguard/backend/internal/domain"
	apperrors "github.com/expiryguard/backend/internal/errors"
	"github.com/expiryguard/backend/internal/expiry"
	"github.com/expiryguard/backend/internal/logger"
	"github.com/expiryguard/backend/internal/repository"
)

type InventoryService struct {
	items domain.ItemRepository
	ocr   domain.TextSource
	now   func() time.Time
}

func NewInventoryService(items domain.ItemRepository, ocr domain.TextSource) *InventoryService {
	return &InventoryService{
		items: items,
		ocr:   ocr,
		now:   time.Now,
	}
}

// ScanResult is what an image upload yields before the user confirms the item.
type ScanResult struct {
	ExpiryDate       string // canonical DD/MM/YYYY or empty
	ExtractedText    string
	ProductName      string
	BestBeforeMonths string
}

// ScanImage runs OCR over the uploaded image, extracts an expiry date and
// derives a best-guess product name and best-before duration from the label
// text. OCR failures degrade to an empty result: the user can still fill the
// form by hand.
func (s *InventoryService) ScanImage(ctx context.Context, image []byte) ScanResult {
	text, err := s.ocr.ExtractText(ctx, image)
	if err != nil {
		logger.Error("OCR extraction failed", "error", err)
		return ScanResult{}
	}
	result := ScanResult{ExtractedText: text}
	if d, ok := expiry.ExtractExpiryDate(text); ok {
		result.ExpiryDate = d.String()
	}
	info := expiry.ExtractProductInfo(text)
	result.ProductName = info.ProductName
	result.BestBeforeMonths = info.BestBeforeMonths
	if result.ExpiryDate == "" {
		result.ExpiryDate = info.ExpiryDate
	}
	return result
}

// AddItem stores a new inventory item with its freshness computed up front.
// An empty or unparseable expiry date is allowed and classifies as safe.
func (s *InventoryService) AddItem(ctx context.Context, userID uuid.UUID, productName, expiryDate, imageURL, barcode string) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{
		UserID:      userID,
		ProductName: productName,
		ExpiryDate:  expiryDate,
		ImageURL:    imageURL,
		Barcode:     barcode,
		Status:      expiry.Classify(expiryDate, s.now(), expiry.ListWindowDays),
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}
	return item, nil
}

// ListItems returns the user's inventory with freshness recomputed against
// today, sorted by expiry date with unparseable dates last.
func (s *InventoryService) ListItems(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	items, err := s.items.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	today := s.now()
	for i := range items {
		items[i].Status = expiry.Classify(items[i].ExpiryDate, today, expiry.ListWindowDays)
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, aok := expiry.ParseCanonical(items[i].ExpiryDate)
		b, bok := expiry.ParseCanonical(items[j].ExpiryDate)
		if aok != bok {
			return aok // parseable dates sort before unparseable ones
		}
		if !aok {
			return false
		}
		return a.Time().Before(b.Time())
	})
	return items, nil
}

func (s *InventoryService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	err := s.items.Delete(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// Statistics summarizes the inventory with the 7-day listing window.
func (s *InventoryService) Statistics(ctx context.Context, userID uuid.UUID) (*domain.InventoryStats, error) {
	items, err := s.items.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	today := s.now()
	stats := &domain.InventoryStats{
		TotalItems: len(items),
		StatusBreakdown: map[expiry.Freshness]int{
			expiry.Safe:    0,
			expiry.Near:    0,
			expiry.Expired: 0,
		},
	}
	for _, item := range items {
		status := expiry.Classify(item.ExpiryDate, today, expiry.ListWindowDays)
		stats.StatusBreakdown[status]++

		days, ok := expiry.DaysUntil(item.ExpiryDate, today)
		if !ok {
			continue
		}
		if days < 0 {
			stats.ExpiredItems++
		} else if days <= expiry.ListWindowDays {
			stats.ExpiringThisWeek++
		}
	}
	return stats, nil
}

// AlertItems returns the items that qualify for an alert email using the
// 3-day alert window: everything expired or expiring within it. Items
// without a parseable date never qualify.
func (s *InventoryService) AlertItems(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	items, err := s.items.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	today := s.now()
	var alerts []domain.InventoryItem
	for _, item := range items {
		days, ok := expiry.DaysUntil(item.ExpiryDate, today)
		if ok && days <= expiry.AlertWindowDays {
			alerts = append(alerts, item)
		}
	}
	return alerts, nil
}
