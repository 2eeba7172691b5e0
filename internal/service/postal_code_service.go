package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jpaddress/internal/models"
)

// ErrInvalidPostalCode is returned for codes that are not seven digits.
var ErrInvalidPostalCode = errors.New("service: postal code must be 7 digits")

// PostalCodeService looks up addresses by postal code
type PostalCodeService struct {
	repo PostalCodeRepository
}

// PostalCodeRepository interface for dependency injection
type PostalCodeRepository interface {
	FindByPostalCode(ctx context.Context, postalCode string) ([]models.Location, error)
}

// NewPostalCodeService creates a new postal code service
func NewPostalCodeService(repo PostalCodeRepository) *PostalCodeService {
	return &PostalCodeService{repo: repo}
}

// Lookup returns the addresses of a postal code. "100-0005" and "1000005" are equivalent.
func (s *PostalCodeService) Lookup(ctx context.Context, code string) ([]models.Location, error) {
	code = strings.ReplaceAll(strings.TrimSpace(code), "-", "")
	if len(code) != 7 || strings.Trim(code, "0123456789") != "" {
		return nil, ErrInvalidPostalCode
	}

	locations, err := s.repo.FindByPostalCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up postal code: %w", err)
	}

	return locations, nil
}
