// Package writer serializes the unified address dataset.
package writer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"jpaddress/internal/models"
)

// Header is the fixed column header of the output file.
var Header = []string{
	"都道府県コード",
	"都道府県名",
	"都道府県名カナ",
	"都道府県名ローマ字",
	"市区町村コード",
	"市区町村名",
	"市区町村名カナ",
	"市区町村名ローマ字",
	"郵便番号",
	"大字町丁目コード",
	"大字町丁目名",
	"緯度",
	"経度",
	"GeoHash",
}

// quoted marks the columns written as quoted strings. Codes and coordinates stay bare.
var quoted = [...]bool{
	false, true, true, true,
	false, true, true, true,
	false, false, true,
	false, false, true,
}

// CSVWriter writes output records as newline-delimited CSV.
type CSVWriter struct{}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Write writes the header followed by records.
func (cw *CSVWriter) Write(w io.Writer, records []models.OutputRecord) error {
	bw := bufio.NewWriter(w)

	header := make([]string, len(Header))
	for i, h := range Header {
		header[i] = quote(h)
	}
	if _, err := bw.WriteString(strings.Join(header, ",") + "\n"); err != nil {
		return fmt.Errorf("writer: failed to write header: %w", err)
	}

	for i, r := range records {
		if _, err := bw.WriteString(FormatRecord(r) + "\n"); err != nil {
			return fmt.Errorf("writer: failed to write record %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writer: failed to flush: %w", err)
	}
	return nil
}

// WriteFile writes records to path, creating its directory when needed.
func (cw *CSVWriter) WriteFile(path string, records []models.OutputRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("writer: failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writer: failed to create %s: %w", path, err)
	}

	if err := cw.Write(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writer: failed to close %s: %w", path, err)
	}
	return nil
}

// FormatRecord renders one record as a CSV line without the trailing newline.
// Empty values are never quoted.
func FormatRecord(r models.OutputRecord) string {
	fields := r.Fields()
	for i, v := range fields {
		if v != "" && quoted[i] {
			fields[i] = quote(v)
		}
	}
	return strings.Join(fields, ",")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
