package service

import (
	"context"
	"fmt"
	"strings"

	"jpaddress/internal/kana"
	"jpaddress/internal/models"
)

// GeocodeService contains the core business logic for geocoding operations
type GeoCodeService struct {
	repo GeoCodeRepository
}

// Repository interface for dependency injection
type GeoCodeRepository interface {
	SearchLocationsByText(ctx context.Context, query string) ([]models.Location, error)
}

// NewGeoCodeService creates a new geo code service
func NewGeoCodeService(repo GeoCodeRepository) *GeoCodeService {
	return &GeoCodeService{repo: repo}
}

// Geocode searches for locations whose address contains the given text.
// Whitespace is dropped because the dataset stores names without separators.
func (s *GeoCodeService) Geocode(ctx context.Context, address string) ([]models.Location, error) {
	query := strings.Join(strings.Fields(kana.NormalizePostalField(address)), "")
	if query == "" {
		return nil, fmt.Errorf("service: address cannot be empty")
	}

	locations, err := s.repo.SearchLocationsByText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search locations: %w", err)
	}

	return locations, nil
}
