package registry

import (
	"sort"

	"github.com/bjwhitworth/cricket-data/internal/model"
)

// Sync reconciles the existing registry rows against the curated candidate
// set and returns the updated row list plus run statistics. The input slices
// are not mutated; rows keep their original order and appended rows follow.
//
// Per existing row, in order:
//   - exact key match in the curated set: row kept as-is, key marked seen;
//   - otherwise exactly one candidate shares the row's venue name: the row
//     takes the candidate's fields with its venue_id preserved, counted as an
//     update only when the normalized city/country actually changed;
//   - two or more candidates: ambiguous, row left untouched and surfaced;
//   - zero candidates: the curated sources say nothing about this venue,
//     row silently preserved.
//
// Curated triples whose key was never seen are then sorted by (venue, city,
// country) and appended with freshly allocated IDs. An ambiguous row marks
// only its own key seen, so candidates that merely share its venue name are
// still registered as new venues; ambiguity blocks the unsafe update, not
// registration.
func Sync(master []model.MasterRecord, curated []model.Triple) ([]model.MasterRecord, model.SyncResult) {
	idx := BuildCandidateIndex(curated)

	var result model.SyncResult
	updated := make([]model.MasterRecord, 0, len(master))
	seen := make(map[model.TripleKey]bool)

	for _, row := range master {
		rec := model.MasterRecord{
			VenueID: model.Clean(row.VenueID),
			Venue:   model.Clean(row.Venue),
			City:    model.Clean(row.City),
			Country: model.Clean(row.Country),
		}
		currentKey := rec.Key()

		if idx.HasKey(currentKey) {
			updated = append(updated, rec)
			seen[currentKey] = true
			continue
		}

		candidates := idx.ByVenue(rec.Triple().VenueKey())
		switch len(candidates) {
		case 1:
			target := candidates[0]
			next := model.MasterRecord{
				VenueID: rec.VenueID,
				Venue:   target.Venue,
				City:    target.City,
				Country: target.Country,
			}
			updated = append(updated, next)
			seen[target.Key()] = true

			if model.Normalize(rec.City) != model.Normalize(target.City) ||
				model.Normalize(rec.Country) != model.Normalize(target.Country) {
				result.UpdatedInPlace++
			}
		case 0:
			updated = append(updated, rec)
			seen[currentKey] = true
		default:
			result.AmbiguousSkipped++
			result.Ambiguities = append(result.Ambiguities, model.Ambiguity{
				VenueID:    rec.VenueID,
				Venue:      rec.Venue,
				Candidates: sortTriples(candidates),
			})
			updated = append(updated, rec)
			seen[currentKey] = true
		}
	}

	var missing []model.Triple
	for _, t := range curated {
		if !seen[t.Key()] {
			missing = append(missing, t)
		}
	}
	missing = sortTriples(missing)

	alloc := NewAllocator(updated)
	for _, t := range missing {
		rec := model.MasterRecord{
			VenueID: alloc.Next(),
			Venue:   t.Venue,
			City:    t.City,
			Country: t.Country,
		}
		updated = append(updated, rec)
		seen[t.Key()] = true
		result.Appended = append(result.Appended, rec)
		result.AppendedNew++
	}

	return updated, result
}

// sortTriples orders triples by surface (venue, city, country).
func sortTriples(triples []model.Triple) []model.Triple {
	out := make([]model.Triple, len(triples))
	copy(out, triples)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Venue != b.Venue {
			return a.Venue < b.Venue
		}
		if a.City != b.City {
			return a.City < b.City
		}
		return a.Country < b.Country
	})
	return out
}
