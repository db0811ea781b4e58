package registry

import (
	"fmt"
	"io"

	"github.com/bjwhitworth/cricket-data/internal/model"
)

// WriteSummary prints the run statistics. It only ever writes to w; the
// registry file is never touched from here.
func WriteSummary(w io.Writer, curatedCount, existingRows int, updated []model.MasterRecord, result model.SyncResult) {
	fmt.Fprintln(w, "Venue master sync summary")
	fmt.Fprintf(w, "- curated_triples: %d\n", curatedCount)
	fmt.Fprintf(w, "- existing_master_rows: %d\n", existingRows)
	fmt.Fprintf(w, "- updated_master_rows: %d\n", len(updated))
	fmt.Fprintf(w, "- in_place_city_country_updates: %d\n", result.UpdatedInPlace)
	fmt.Fprintf(w, "- appended_new_ids: %d\n", result.AppendedNew)
	fmt.Fprintf(w, "- ambiguous_venue_name_rows_skipped: %d\n", result.AmbiguousSkipped)

	for _, amb := range result.Ambiguities {
		fmt.Fprintf(w, "  ! ambiguous: %s %q has %d curated candidates, left for manual review\n",
			amb.VenueID, amb.Venue, len(amb.Candidates))
	}
}

// WritePreview echoes up to limit appended rows. Zero or negative limits
// print nothing.
func WritePreview(w io.Writer, result model.SyncResult, limit int) {
	if result.AppendedNew == 0 || limit <= 0 {
		return
	}
	fmt.Fprintln(w, "- appended_preview:")
	for i, rec := range result.Appended {
		if i >= limit {
			break
		}
		fmt.Fprintf(w, "  %s | %s | %s | %s\n", rec.VenueID, rec.Venue, rec.City, rec.Country)
	}
}
