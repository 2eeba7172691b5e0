package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jpaddress/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the addresses table loaded from the built dataset.
const Schema = `
	CREATE EXTENSION IF NOT EXISTS postgis;
	CREATE EXTENSION IF NOT EXISTS pg_trgm;

	CREATE TABLE IF NOT EXISTS addresses (
		id BIGSERIAL PRIMARY KEY,
		prefecture_code VARCHAR(2),
		prefecture VARCHAR(255),
		prefecture_kana VARCHAR(255),
		prefecture_rome VARCHAR(255),
		city_code VARCHAR(5),
		city VARCHAR(255),
		city_kana VARCHAR(255),
		city_rome VARCHAR(255),
		postal_code VARCHAR(7),
		district_code VARCHAR(12),
		district VARCHAR(255),
		geohash VARCHAR(12),
		full_address TEXT GENERATED ALWAYS AS (prefecture || city || district) STORED,
		geom GEOGRAPHY(POINT, 4326)
	);
	CREATE INDEX IF NOT EXISTS addresses_geom_idx ON addresses USING GIST (geom);
	CREATE INDEX IF NOT EXISTS addresses_full_address_trgm_idx ON addresses USING GIN (full_address gin_trgm_ops);
	CREATE INDEX IF NOT EXISTS addresses_postal_code_idx ON addresses (postal_code);
	CREATE INDEX IF NOT EXISTS addresses_geohash_idx ON addresses (geohash);
`

const selectColumns = `
	SELECT
		id,
		prefecture_code,
		prefecture,
		prefecture_kana,
		prefecture_rome,
		city_code,
		city,
		city_kana,
		city_rome,
		postal_code,
		district_code,
		district,
		ST_Y(geom::geometry) as latitude,
		ST_X(geom::geometry) as longitude,
		geohash
	FROM addresses
`

// Repository implements the repository interface for PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLocation(row scanner) (models.Location, error) {
	var loc models.Location
	err := row.Scan(
		&loc.ID,
		&loc.PrefectureCode,
		&loc.Prefecture,
		&loc.PrefectureKana,
		&loc.PrefectureRome,
		&loc.CityCode,
		&loc.City,
		&loc.CityKana,
		&loc.CityRome,
		&loc.PostalCode,
		&loc.DistrictCode,
		&loc.District,
		&loc.Latitude,
		&loc.Longitude,
		&loc.GeoHash,
	)
	return loc, err
}

func (r *Repository) queryLocations(ctx context.Context, sql string, args ...any) ([]models.Location, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute query: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return locations, nil
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// SearchLocationsByText finds addresses whose full name contains the query, shortest names first
func (r *Repository) SearchLocationsByText(ctx context.Context, query string) ([]models.Location, error) {
	sql := selectColumns + `
		WHERE full_address LIKE '%' || $1 || '%'
		ORDER BY length(full_address), id
		LIMIT 10
	`
	return r.queryLocations(ctx, sql, escapeLike(query))
}

// FindByPostalCode returns the addresses assigned to a 7-digit postal code
func (r *Repository) FindByPostalCode(ctx context.Context, postalCode string) ([]models.Location, error) {
	sql := selectColumns + `
		WHERE postal_code = $1
		ORDER BY district_code, id
		LIMIT 100
	`
	return r.queryLocations(ctx, sql, postalCode)
}

// FindNearestLocation performs a spatial query to find the nearest location to the given coordinates.
// It returns nil when nothing lies within 10km.
func (r *Repository) FindNearestLocation(ctx context.Context, lat, lon float64) (*models.Location, error) {
	sql := selectColumns + `
		WHERE ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, 10000) -- Within 10km
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
		LIMIT 1
	`

	loc, err := scanLocation(r.db.QueryRow(ctx, sql, lat, lon))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to execute spatial query: %w", err)
	}

	return &loc, nil
}
