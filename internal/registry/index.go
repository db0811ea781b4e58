// Package registry implements reconciliation of the venue master registry
// against the curated candidate set: safe in-place corrections, ambiguity
// detection, and deterministic allocation of new stable IDs.
package registry

import "github.com/bjwhitworth/cricket-data/internal/model"

// CandidateIndex groups curated triples by the venue-name component of their
// key only, so distinct city/country pairs under one venue name stay visible
// as a list instead of collapsing.
type CandidateIndex struct {
	byKey   map[model.TripleKey]model.Triple
	byVenue map[string][]model.Triple
}

// BuildCandidateIndex indexes the curated set by full key and by venue name.
func BuildCandidateIndex(curated []model.Triple) *CandidateIndex {
	idx := &CandidateIndex{
		byKey:   make(map[model.TripleKey]model.Triple, len(curated)),
		byVenue: make(map[string][]model.Triple),
	}
	for _, t := range curated {
		idx.byKey[t.Key()] = t
		vk := t.VenueKey()
		idx.byVenue[vk] = append(idx.byVenue[vk], t)
	}
	return idx
}

// HasKey reports whether a candidate with exactly this normalized key exists.
func (idx *CandidateIndex) HasKey(key model.TripleKey) bool {
	_, ok := idx.byKey[key]
	return ok
}

// ByVenue returns every candidate sharing the given normalized venue name.
func (idx *CandidateIndex) ByVenue(venueKey string) []model.Triple {
	return idx.byVenue[venueKey]
}
