package model

// Ambiguity describes an existing registry row whose venue name matched two
// or more distinct curated candidates. The row is left untouched; the entry
// is surfaced in the run summary for manual review.
type Ambiguity struct {
	VenueID    string
	Venue      string
	Candidates []Triple
}

// SyncResult carries the statistics of one reconciliation pass.
type SyncResult struct {
	UpdatedInPlace   int
	AppendedNew      int
	AmbiguousSkipped int

	// Appended holds the newly created records in allocation order, for the
	// dry-run preview.
	Appended []MasterRecord

	// Ambiguities lists the rows skipped as ambiguous.
	Ambiguities []Ambiguity
}
