package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/expiryguard/backend/internal/domain"
	apperrors "github.com/expiryguard/backend/internal/errors"
	"github.com/expiryguard/backend/internal/logger"
	"github.com/expiryguard/backend/internal/repository"
)

const (
	openFoodFactsURL   = "https://world.openfoodfacts.org/api/v0/product/%s.json"
	openBeautyFactsURL = "https://world.openbeautyfacts.org/api/v0/product/%s.json"
)

// BarcodeService resolves a barcode to a product name, checking the user's
// own inventory before the public Open Facts databases.
type BarcodeService struct {
	items      domain.ItemRepository
	httpClient *http.Client
}

func NewBarcodeService(items domain.ItemRepository) *BarcodeService {
	return &BarcodeService{
		items: items,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Lookup resolves a barcode for the given user. External API failures are
// logged and degrade to not-found rather than failing the request.
func (s *BarcodeService) Lookup(ctx context.Context, userID uuid.UUID, barcode string) (*domain.BarcodeProduct, error) {
	item, err := s.items.FindByOwnerAndBarcode(ctx, userID, barcode)
	if err == nil {
		return &domain.BarcodeProduct{
			ProductName: item.ProductName,
			Barcode:     barcode,
			Source:      "user_inventory",
		}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check inventory: %w", err)
	}

	for _, source := range []struct {
		name string
		url  string
	}{
		{"openfoodfacts", openFoodFactsURL},
		{"openbeautyfacts", openBeautyFactsURL},
	} {
		name, err := s.queryOpenFacts(ctx, fmt.Sprintf(source.url, barcode))
		if err != nil {
			logger.Error("barcode lookup failed", "source", source.name, "error", err)
			continue
		}
		if name != "" {
			return &domain.BarcodeProduct{
				ProductName: name,
				Barcode:     barcode,
				Source:      source.name,
			}, nil
		}
	}
	return nil, apperrors.ErrProductNotFound
}

func (s *BarcodeService) queryOpenFacts(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	var body struct {
		Status  int `json:"status"`
		Product struct {
			ProductName string `json:"product_name"`
		} `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.Status != 1 {
		return "", nil
	}
	return body.Product.ProductName, nil
}
