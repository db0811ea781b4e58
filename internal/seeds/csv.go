// Package seeds reads and writes the curated seed files and the venue master
// registry. All three are plain CSV with a header row; the registry write is
// wholesale and atomic.
package seeds

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bjwhitworth/cricket-data/internal/model"
)

// MasterFields is the registry column set, in write order.
var MasterFields = []string{"venue_id", "canonical_venue", "canonical_city", "canonical_country"}

// SchemaError reports required columns missing from an input source. It is
// fatal: nothing is reconciled or written once it occurs.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
}

// ReadRows reads a CSV file into header-keyed maps and verifies the required
// columns are present before returning any rows.
func ReadRows(path string, required []string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	for i, col := range header {
		header[i] = model.Clean(col)
	}

	if missing := missingColumns(header, required); len(missing) > 0 {
		return nil, &SchemaError{Source: filepath.Base(path), Missing: missing}
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func missingColumns(header, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}
	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)
	return missing
}

// ReadMaster loads the registry file. Rows are returned in file order;
// malformed venue IDs are kept as-is.
func ReadMaster(path string) ([]model.MasterRecord, error) {
	rows, err := ReadRows(path, MasterFields)
	if err != nil {
		return nil, err
	}

	records := make([]model.MasterRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.MasterRecord{
			VenueID: model.Clean(row["venue_id"]),
			Venue:   model.Clean(row["canonical_venue"]),
			City:    model.Clean(row["canonical_city"]),
			Country: model.Clean(row["canonical_country"]),
		})
	}
	return records, nil
}

// WriteMaster replaces the registry file wholesale. The rows are written to
// a temporary file in the same directory and renamed into place, so a crash
// mid-write cannot leave a half-written registry.
func WriteMaster(path string, records []model.MasterRecord) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp registry: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(MasterFields); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if err = w.Write([]string{rec.VenueID, rec.Venue, rec.City, rec.Country}); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("write row %s: %w", rec.VenueID, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("flush registry: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp registry: %w", err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename registry into place: %w", err)
	}
	return nil
}
