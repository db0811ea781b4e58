package registry

import "github.com/bjwhitworth/cricket-data/internal/model"

// Allocator hands out new venue IDs above the registry's numeric high-water
// mark. IDs are consumed strictly in the order Next is called, so identical
// inputs always reproduce identical IDs.
type Allocator struct {
	last int
}

// NewAllocator scans the existing rows and seeds the allocator at the
// maximum numeric suffix found. Rows whose venue_id does not match the
// ven_<digits> form are kept in the registry but contribute nothing here.
func NewAllocator(records []model.MasterRecord) *Allocator {
	max := 0
	for _, rec := range records {
		if n, ok := model.ParseVenueID(rec.VenueID); ok && n > max {
			max = n
		}
	}
	return &Allocator{last: max}
}

// Next returns the next identifier in sequence.
func (a *Allocator) Next() string {
	a.last++
	return model.FormatVenueID(a.last)
}
