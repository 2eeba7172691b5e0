package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"jpaddress/internal/config"
	"jpaddress/internal/logger"
	"jpaddress/internal/models"
	"jpaddress/internal/repository"
	"jpaddress/internal/writer"

	"github.com/jackc/pgx/v5"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/ewkb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configDir string
	file      string
)

var rootCmd = &cobra.Command{
	Use:          "importer",
	Short:        "Load a built address CSV into the addresses table",
	SilenceUsage: true,
	RunE:         runImport,
}

func init() {
	rootCmd.Flags().StringVar(&configDir, "config", "configs", "directory containing app.env")
	rootCmd.Flags().StringVar(&file, "file", "", "path to the CSV file to import")
	_ = rootCmd.MarkFlagRequired("file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return err
	}
	logger.Setup(cfg.LogLevel, cfg.LogPretty)

	log.Info().Str("file", file).Msg("starting import")

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("importer: failed to open file: %w", err)
	}
	defer f.Close()

	records, err := parseCSV(f)
	if err != nil {
		return err
	}
	log.Info().Int("records", len(records)).Msg("parsed records")

	ctx := cmd.Context()
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("importer: failed to connect to database: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, repository.Schema); err != nil {
		return fmt.Errorf("importer: failed to create table: %w", err)
	}

	if err := insertRecords(ctx, conn, records); err != nil {
		return err
	}

	if err := verifyImport(ctx, conn, len(records)); err != nil {
		return err
	}

	log.Info().Int("records", len(records)).Msg("import finished")
	return nil
}

// parseCSV reads a dataset produced by the builder.
func parseCSV(r io.Reader) ([]models.Location, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(writer.Header)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("importer: failed to read header: %w", err)
	}
	if !slices.Equal(header, writer.Header) {
		return nil, fmt.Errorf("importer: unexpected header %v", header)
	}

	var locations []models.Location
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: failed to read record: %w", err)
		}

		lat, err := strconv.ParseFloat(record[11], 64)
		if err != nil {
			return nil, fmt.Errorf("importer: invalid latitude %q: %w", record[11], err)
		}
		lon, err := strconv.ParseFloat(record[12], 64)
		if err != nil {
			return nil, fmt.Errorf("importer: invalid longitude %q: %w", record[12], err)
		}

		locations = append(locations, models.Location{
			PrefectureCode: record[0],
			Prefecture:     record[1],
			PrefectureKana: record[2],
			PrefectureRome: record[3],
			CityCode:       record[4],
			City:           record[5],
			CityKana:       record[6],
			CityRome:       record[7],
			PostalCode:     record[8],
			DistrictCode:   record[9],
			District:       record[10],
			Latitude:       lat,
			Longitude:      lon,
			GeoHash:        record[13],
		})
	}

	return locations, nil
}

var copyColumns = []string{
	"prefecture_code", "prefecture", "prefecture_kana", "prefecture_rome",
	"city_code", "city", "city_kana", "city_rome",
	"postal_code", "district_code", "district", "geohash", "geom",
}

// copyRow renders one location in copyColumns order. The point goes over the wire as EWKB.
func copyRow(loc models.Location) ([]any, error) {
	geom, err := ewkb.Marshal(orb.Point{loc.Longitude, loc.Latitude}, 4326)
	if err != nil {
		return nil, fmt.Errorf("importer: failed to encode point: %w", err)
	}
	return []any{
		loc.PrefectureCode, loc.Prefecture, loc.PrefectureKana, loc.PrefectureRome,
		loc.CityCode, loc.City, loc.CityKana, loc.CityRome,
		loc.PostalCode, loc.DistrictCode, loc.District, loc.GeoHash, geom,
	}, nil
}

// insertRecords replaces the table contents in one transaction.
func insertRecords(ctx context.Context, conn *pgx.Conn, records []models.Location) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("importer: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE addresses RESTART IDENTITY"); err != nil {
		return fmt.Errorf("importer: failed to truncate addresses: %w", err)
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"addresses"},
		copyColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			return copyRow(records[i])
		}),
	)
	if err != nil {
		return fmt.Errorf("importer: failed to copy records: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("importer: failed to commit: %w", err)
	}
	return nil
}

func verifyImport(ctx context.Context, conn *pgx.Conn, expectedCount int) error {
	var count int
	err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM addresses").Scan(&count)
	if err != nil {
		return fmt.Errorf("importer: failed to count records: %w", err)
	}

	if count != expectedCount {
		return fmt.Errorf("importer: record count mismatch: expected %d, got %d", expectedCount, count)
	}
	if count == 0 {
		return nil
	}

	// Check a sample geom
	var text string
	err = conn.QueryRow(ctx, "SELECT ST_AsText(geom) FROM addresses ORDER BY id LIMIT 1").Scan(&text)
	if err != nil {
		return fmt.Errorf("importer: failed to check geom: %w", err)
	}
	point, err := wkt.UnmarshalPoint(text)
	if err != nil {
		return fmt.Errorf("importer: unreadable sample geom %q: %w", text, err)
	}

	log.Info().Float64("lat", point.Lat()).Float64("lon", point.Lon()).Msg("sample geom")
	return nil
}
