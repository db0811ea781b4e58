package seeds

import (
	"strings"

	"github.com/bjwhitworth/cricket-data/internal/model"
)

var (
	countryFields = []string{"venue", "city", "country"}
	aliasFields   = []string{"canonical_venue", "canonical_city", "canonical_country", "review_status"}
)

// LoadCuratedTriples merges the two curated sources into one deduplicated
// candidate set. Primary mapping rows need venue, city and country all
// non-empty; alias mapping rows additionally need an approved review status.
// Duplicates collapse by normalized key, first surface form wins. The result
// order is the encounter order, which keeps dedup deterministic; callers
// that need a sorted view sort explicitly.
func LoadCuratedTriples(countryPath, aliasPath string) ([]model.Triple, error) {
	countryRows, err := ReadRows(countryPath, countryFields)
	if err != nil {
		return nil, err
	}
	aliasRows, err := ReadRows(aliasPath, aliasFields)
	if err != nil {
		return nil, err
	}

	var triples []model.Triple
	seen := make(map[model.TripleKey]bool)

	add := func(venue, city, country string) {
		t := model.Triple{
			Venue:   model.Clean(venue),
			City:    model.Clean(city),
			Country: model.Clean(country),
		}
		if t.Venue == "" || t.City == "" || t.Country == "" {
			return
		}
		key := t.Key()
		if seen[key] {
			return
		}
		seen[key] = true
		triples = append(triples, t)
	}

	for _, row := range countryRows {
		add(row["venue"], row["city"], row["country"])
	}
	for _, row := range aliasRows {
		if !approved(row["review_status"]) {
			continue
		}
		add(row["canonical_venue"], row["canonical_city"], row["canonical_country"])
	}

	return triples, nil
}

// approved reports whether an alias row's review status admits it into the
// candidate set. Anything starting with "approved" counts, so reviewers can
// annotate ("approved - checked 2024-03") without breaking the filter.
func approved(status string) bool {
	return strings.HasPrefix(model.Normalize(status), "approved")
}
