package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// EnrichSystemPrompt steers the provider toward structured output for the
// seed enrichment flow.
const EnrichSystemPrompt = "You are a meticulous sports data curator. Return only valid JSON matching the requested schema, with no markdown and no commentary."

// EnrichRow is one venue seed row submitted for enrichment.
type EnrichRow struct {
	RowID   string `json:"row_id"`
	Venue   string `json:"venue"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// RowUpdate is a suggested city/country correction for one seed row. The
// provider echoes source_venue/source_city for traceability; they also serve
// as a fallback lookup when row_id comes back blank.
type RowUpdate struct {
	RowID            string `json:"row_id"`
	SourceVenue      string `json:"source_venue"`
	SourceCity       string `json:"source_city"`
	SuggestedCity    string `json:"suggested_city"`
	SuggestedCountry string `json:"suggested_country"`
}

// AliasEntry is one venue string the provider believes names the canonical
// venue of its group.
type AliasEntry struct {
	AliasVenue string `json:"alias_venue"`
	AliasCity  string `json:"alias_city"`
}

// AliasGroup is a proposed grouping of venue strings that refer to the same
// physical venue.
type AliasGroup struct {
	CanonicalVenue   string       `json:"canonical_venue"`
	CanonicalCity    string       `json:"canonical_city"`
	CanonicalCountry string       `json:"canonical_country"`
	Aliases          []AliasEntry `json:"aliases"`
}

// EnrichResult is the parsed provider response.
type EnrichResult struct {
	RowUpdates  []RowUpdate  `json:"row_updates"`
	AliasGroups []AliasGroup `json:"alias_groups"`
}

type enrichPayload struct {
	Task         string          `json:"task"`
	Instructions []string        `json:"instructions"`
	OutputSchema json.RawMessage `json:"output_schema"`
	Rows         []EnrichRow     `json:"rows"`
}

var enrichInstructions = []string{
	"You are cleaning cricket venue mapping data.",
	"Suggest standardized city and country only when confident and only for rows that should change or be filled.",
	"Return sparse row_updates only; do not include unchanged rows.",
	"If uncertain, keep suggested_city and suggested_country as empty strings.",
	"Use conventional country names (for example: United States of America, United Arab Emirates, Saint Lucia, England, Scotland, Wales, Northern Ireland).",
	"Then identify likely alias groupings where multiple venue strings refer to the same physical venue.",
	"Alias groups should be conservative; avoid over-merging generic names such as County Ground without strong city evidence.",
	"Each row_update must include row_id and should echo source_venue/source_city for traceability.",
	"Return ONLY valid JSON. No markdown, no commentary.",
}

const enrichSchema = `{
	"row_updates": [{"row_id": "string", "source_venue": "string", "source_city": "string", "suggested_city": "string", "suggested_country": "string"}],
	"alias_groups": [{"canonical_venue": "string", "canonical_city": "string", "canonical_country": "string", "aliases": [{"alias_venue": "string", "alias_city": "string"}]}]
}`

// BuildEnrichPrompt renders the seed rows into the enrichment prompt: task,
// instructions and output schema up front, then the rows themselves.
func BuildEnrichPrompt(rows []EnrichRow) string {
	payload := enrichPayload{
		Task:         "Standardize venue seed rows and propose alias groups",
		Instructions: enrichInstructions,
		OutputSchema: json.RawMessage(enrichSchema),
		Rows:         rows,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		// Only plain strings and slices above; marshaling cannot fail.
		return ""
	}
	return string(data)
}

// ChunkRows splits the seed rows so that each chunk's rendered prompt stays
// within maxChars, preserving row order. A non-positive limit yields a
// single chunk. A single oversized row still gets its own chunk rather than
// being dropped.
func ChunkRows(rows []EnrichRow, maxChars int) [][]EnrichRow {
	if maxChars <= 0 || len(rows) == 0 {
		return [][]EnrichRow{rows}
	}

	var chunks [][]EnrichRow
	var current []EnrichRow
	for _, row := range rows {
		candidate := append(current[:len(current):len(current)], row)
		if len(current) > 0 && len(BuildEnrichPrompt(candidate)) > maxChars {
			chunks = append(chunks, current)
			current = []EnrichRow{row}
			continue
		}
		current = candidate
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

var (
	trailingComma = regexp.MustCompile(`,\s*([\]}])`)
	jsonFence     = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")
)

// ParseEnrichResponse extracts the structured result from the provider's
// text. Providers wrap JSON in markdown fences or surrounding prose often
// enough that three attempts are made: the raw text, a fenced block, and
// the outermost brace span. Trailing commas are stripped before each parse.
func ParseEnrichResponse(text string) (*EnrichResult, error) {
	try := func(s string) (*EnrichResult, bool) {
		s = trailingComma.ReplaceAllString(s, "$1")
		var res EnrichResult
		if err := json.Unmarshal([]byte(s), &res); err != nil {
			return nil, false
		}
		return &res, true
	}

	if res, ok := try(text); ok {
		return res, nil
	}
	if m := jsonFence.FindStringSubmatch(text); m != nil {
		if res, ok := try(m[1]); ok {
			return res, nil
		}
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if res, ok := try(text[start : end+1]); ok {
			return res, nil
		}
	}
	return nil, fmt.Errorf("enrichment response did not contain parseable JSON")
}
