package service

import (
	"context"
	"errors"
	"fmt"

	"jpaddress/internal/geocode"
	"jpaddress/internal/models"

	"github.com/paulmach/orb"
)

var world = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// ErrCoordinatesOutOfRange is returned for points outside the WGS84 range.
var ErrCoordinatesOutOfRange = errors.New("service: coordinates out of range")

// ReverseGeoCodeService contains the core business logic for reverse geocoding operations
type ReverseGeoCodeService struct {
	repo ReverseGeoCodeRepository
}

// ReverseGeoCodeRepository interface for dependency injection
type ReverseGeoCodeRepository interface {
	FindNearestLocation(ctx context.Context, lat, lon float64) (*models.Location, error)
}

// NewReverseGeoCodeService creates a new reverse geo code service
func NewReverseGeoCodeService(repo ReverseGeoCodeRepository) *ReverseGeoCodeService {
	return &ReverseGeoCodeService{repo: repo}
}

// ReverseGeocode finds the nearest address to the given coordinates using spatial query.
// A nil location means nothing was found nearby.
func (s *ReverseGeoCodeService) ReverseGeocode(ctx context.Context, lat, lon float64) (*models.Location, error) {
	if !world.Contains(orb.Point{lon, lat}) {
		return nil, fmt.Errorf("%w: %f,%f", ErrCoordinatesOutOfRange, lat, lon)
	}

	location, err := s.repo.FindNearestLocation(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find nearest location: %w", err)
	}

	// rows imported from older datasets carry no geohash
	if location != nil && location.GeoHash == "" {
		location.GeoHash = geocode.Encode(location.Latitude, location.Longitude)
	}

	return location, nil
}
