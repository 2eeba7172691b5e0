// Package source downloads and decodes the published address and postal code
// archives.
package source

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/japanese"
)

var (
	// ErrNetwork means the download did not complete.
	ErrNetwork = errors.New("network failure")
	// ErrArchive means the payload is not a zip or holds no CSV entry.
	ErrArchive = errors.New("archive failure")
	// ErrDecode means the CSV bytes are not valid Shift_JIS.
	ErrDecode = errors.New("decode failure")
	// ErrParse means the CSV shape does not match the expected columns.
	ErrParse = errors.New("parse failure")
)

// Row maps a column name to its value.
type Row map[string]string

// Fetcher downloads a zipped Shift_JIS CSV and returns its rows.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher. A nil client uses http.DefaultClient.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client}
}

// Fetch downloads url and parses the first CSV entry of the archive.
// With columns nil the first CSV row is used as the header; otherwise every
// row must have exactly len(columns) fields.
func (f *Fetcher) Fetch(ctx context.Context, url string, columns []string) ([]Row, error) {
	payload, err := f.download(ctx, url)
	if err != nil {
		return nil, err
	}

	raw, err := extractCSV(payload)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", url, err)
	}

	text, err := decodeShiftJIS(raw)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", url, err)
	}

	rows, err := parseCSV(text, columns)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", url, err)
	}
	return rows, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("source: failed to build request for %s: %w: %w", url, ErrNetwork, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: GET %s: %w: %w", url, ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source: GET %s: status %d: %w", url, resp.StatusCode, ErrNetwork)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("source: reading %s: %w: %w", url, ErrNetwork, err)
	}
	return body, nil
}

func extractCSV(payload []byte) ([]byte, error) {
	if mtype := mimetype.Detect(payload); !mtype.Is("application/zip") {
		return nil, fmt.Errorf("payload is %s, not a zip: %w", mtype.String(), ErrArchive)
	}

	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w: %w", ErrArchive, err)
	}

	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name), ".csv") {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w: %w", entry.Name, ErrArchive, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w: %w", entry.Name, ErrArchive, err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("no csv entry in archive: %w", ErrArchive)
}

func decodeShiftJIS(raw []byte) (string, error) {
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	// The decoder substitutes U+FFFD for invalid sequences instead of failing.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", fmt.Errorf("invalid Shift_JIS sequence: %w", ErrDecode)
	}
	return string(decoded), nil
}

func parseCSV(text string, columns []string) ([]Row, error) {
	reader := csv.NewReader(strings.NewReader(text))

	if columns == nil {
		header, err := reader.Read()
		if err == io.EOF {
			return []Row{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w: %w", ErrParse, err)
		}
		columns = header
	}
	reader.FieldsPerRecord = len(columns)

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w: %w", ErrParse, err)
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = record[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}
