package seeds

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bjwhitworth/cricket-data/internal/model"
)

func TestReadMaster_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "master.csv")

	records := []model.MasterRecord{
		{VenueID: "ven_000001", Venue: "Eden Gardens", City: "Kolkata", Country: "India"},
		{VenueID: "ven_000002", Venue: "Lord's", City: "London", Country: "England"},
	}
	if err := WriteMaster(path, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadMaster(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 || got[0] != records[0] || got[1] != records[1] {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestReadMaster_MissingColumnIsSchemaError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "master.csv", "venue_id,canonical_venue,canonical_city\n")

	_, err := ReadMaster(path)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if !strings.Contains(schemaErr.Error(), "canonical_country") {
		t.Errorf("error does not name the missing column: %v", schemaErr)
	}
}

func TestReadRows_QuotedFieldsAndShortRecords(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.csv",
		"venue,city,country\n"+
			"\"Lord's, St John's Wood\",London,England\n")

	rows, err := ReadRows(path, []string{"venue", "city", "country"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0]["venue"] != "Lord's, St John's Wood" {
		t.Errorf("quoted field mishandled: %q", rows[0]["venue"])
	}
}

func TestWriteMaster_AtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "master.csv")
	if err := WriteMaster(path, []model.MasterRecord{
		{VenueID: "ven_000001", Venue: "Old", City: "Old", Country: "Old"},
	}); err != nil {
		t.Fatalf("initial write: %v", err)
	}

	if err := WriteMaster(path, []model.MasterRecord{
		{VenueID: "ven_000001", Venue: "New", City: "New", Country: "New"},
	}); err != nil {
		t.Fatalf("replace write: %v", err)
	}

	got, err := ReadMaster(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(got) != 1 || got[0].Venue != "New" {
		t.Errorf("replace not wholesale: %+v", got)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}
