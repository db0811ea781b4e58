package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Triple is a curated (venue, city, country) candidate record. It is a plain
// value type; identity is always decided through Key, never through the
// surface strings themselves.
type Triple struct {
	Venue   string
	City    string
	Country string
}

// TripleKey is the case- and whitespace-insensitive projection of a Triple.
// Two triples with equal keys are the same candidate.
type TripleKey struct {
	Venue   string
	City    string
	Country string
}

// Normalize produces the canonical comparison form of a field value.
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Clean trims surrounding whitespace but preserves casing. Used wherever a
// surface form is stored rather than compared.
func Clean(value string) string {
	return strings.TrimSpace(value)
}

// Key returns the normalized identity of the triple.
func (t Triple) Key() TripleKey {
	return TripleKey{
		Venue:   Normalize(t.Venue),
		City:    Normalize(t.City),
		Country: Normalize(t.Country),
	}
}

// VenueKey returns only the venue-name component of the key. Triples that
// share a VenueKey name the same venue even when their city/country differ.
func (t Triple) VenueKey() string {
	return Normalize(t.Venue)
}

// MasterRecord is one row of the venue master registry. VenueID, once
// assigned, is never reassigned or regenerated; only the canonical fields
// may be corrected in place.
type MasterRecord struct {
	VenueID string
	Venue   string
	City    string
	Country string
}

// Triple returns the record's canonical triple.
func (r MasterRecord) Triple() Triple {
	return Triple{Venue: r.Venue, City: r.City, Country: r.Country}
}

// Key returns the normalized identity of the record's canonical triple.
func (r MasterRecord) Key() TripleKey {
	return r.Triple().Key()
}

// venueIDPattern is the fixed lexical form of a registry identifier.
var venueIDPattern = regexp.MustCompile(`^ven_(\d+)$`)

// ParseVenueID extracts the numeric suffix of a venue ID. The second return
// is false for anything that does not match the ven_<digits> form; malformed
// IDs are tolerated in the registry but never contribute to allocation.
func ParseVenueID(id string) (int, bool) {
	m := venueIDPattern.FindStringSubmatch(Clean(id))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatVenueID renders a numeric identifier in the registry's zero-padded
// form.
func FormatVenueID(n int) string {
	return fmt.Sprintf("ven_%06d", n)
}
