package registry

import (
	"strings"
	"testing"

	"github.com/bjwhitworth/cricket-data/internal/model"
)

func TestWriteSummary_IncludesCountsAndAmbiguities(t *testing.T) {
	updated := []model.MasterRecord{
		rec("ven_000001", "Eden Gardens", "Kolkata", "India"),
	}
	result := model.SyncResult{
		UpdatedInPlace:   1,
		AmbiguousSkipped: 1,
		Ambiguities: []model.Ambiguity{
			{VenueID: "ven_000002", Venue: "County Ground", Candidates: []model.Triple{
				triple("County Ground", "Bristol", "England"),
				triple("County Ground", "Taunton", "England"),
			}},
		},
	}

	var buf strings.Builder
	WriteSummary(&buf, 3, 2, updated, result)
	out := buf.String()

	for _, want := range []string{
		"curated_triples: 3",
		"existing_master_rows: 2",
		"in_place_city_country_updates: 1",
		"ambiguous_venue_name_rows_skipped: 1",
		"ven_000002",
		"manual review",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWritePreview_BoundedByLimit(t *testing.T) {
	result := model.SyncResult{
		AppendedNew: 3,
		Appended: []model.MasterRecord{
			rec("ven_000001", "A", "a", "x"),
			rec("ven_000002", "B", "b", "y"),
			rec("ven_000003", "C", "c", "z"),
		},
	}

	var buf strings.Builder
	WritePreview(&buf, result, 2)
	out := buf.String()

	if !strings.Contains(out, "ven_000001") || !strings.Contains(out, "ven_000002") {
		t.Errorf("preview missing rows:\n%s", out)
	}
	if strings.Contains(out, "ven_000003") {
		t.Errorf("preview exceeded limit:\n%s", out)
	}

	buf.Reset()
	WritePreview(&buf, result, 0)
	if buf.Len() != 0 {
		t.Errorf("expected no output for zero limit, got:\n%s", buf.String())
	}
}
