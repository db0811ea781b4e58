package seeds

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/bjwhitworth/cricket-data/internal/llm"
	"github.com/bjwhitworth/cricket-data/internal/model"
)

// SuggestionFields is the column set of the row-suggestion output, in write
// order.
var SuggestionFields = []string{"row_id", "venue", "city", "country", "suggested_city", "suggested_country"}

// AliasCandidateFields is the column set of the alias-candidate output, in
// write order. It is a superset of the alias seed's required columns, so
// reviewed candidates can be appended to the alias seed as-is.
var AliasCandidateFields = []string{"alias_venue", "alias_city", "canonical_venue", "canonical_city", "canonical_country", "review_status", "notes"}

// aliasCandidateStatus marks provider proposals awaiting manual review.
// It does not start with "approved", so the loader never consumes a
// candidate row until a reviewer promotes it.
const aliasCandidateStatus = "candidate"

// LoadEnrichRows reads the venue seed for enrichment. Unlike the curated
// loader, rows with blank city or country are kept: filling those blanks is
// what enrichment is for. Row IDs are 1-based positions in file order.
func LoadEnrichRows(path string) ([]llm.EnrichRow, error) {
	raw, err := ReadRows(path, countryFields)
	if err != nil {
		return nil, err
	}

	rows := make([]llm.EnrichRow, 0, len(raw))
	for i, row := range raw {
		rows = append(rows, llm.EnrichRow{
			RowID:   strconv.Itoa(i + 1),
			Venue:   model.Clean(row["venue"]),
			City:    model.Clean(row["city"]),
			Country: model.Clean(row["country"]),
		})
	}
	return rows, nil
}

// WriteSuggestions writes every input row alongside its suggested
// city/country, blank where the provider proposed no change.
func WriteSuggestions(path string, rows []llm.EnrichRow, updates map[string]llm.RowUpdate) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create suggestions file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close suggestions file: %w", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err = w.Write(SuggestionFields); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		upd := updates[row.RowID]
		record := []string{
			row.RowID, row.Venue, row.City, row.Country,
			model.Clean(upd.SuggestedCity), model.Clean(upd.SuggestedCountry),
		}
		if err = w.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", row.RowID, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("flush suggestions: %w", err)
	}
	return nil
}

// WriteAliasCandidates flattens the proposed alias groups into review rows,
// stamped with the candidate review status. Aliases with a blank venue are
// skipped. Returns how many candidate rows were written.
func WriteAliasCandidates(path string, groups []llm.AliasGroup) (written int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create alias candidates file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close alias candidates file: %w", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err = w.Write(AliasCandidateFields); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	for _, group := range groups {
		for _, alias := range group.Aliases {
			aliasVenue := model.Clean(alias.AliasVenue)
			if aliasVenue == "" {
				continue
			}
			record := []string{
				aliasVenue,
				model.Clean(alias.AliasCity),
				model.Clean(group.CanonicalVenue),
				model.Clean(group.CanonicalCity),
				model.Clean(group.CanonicalCountry),
				aliasCandidateStatus,
				"source=llm_candidate",
			}
			if err = w.Write(record); err != nil {
				return written, fmt.Errorf("write alias %s: %w", aliasVenue, err)
			}
			written++
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return written, fmt.Errorf("flush alias candidates: %w", err)
	}
	return written, nil
}
