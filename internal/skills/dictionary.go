package skills

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/skill_data.json data/skill_data_schema.json
var dataFS embed.FS

// Dictionary holds the immutable skill lookup data loaded at startup.
// Variants maps raw spellings to canonical names (many-to-one); the
// similarity table holds related-but-not-identical skill pairs.
type Dictionary struct {
	variants map[string]string
	related  map[pairKey]float64
}

// pairKey is an order-independent key for the similarity table.
type pairKey struct {
	a, b string
}

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// skillData mirrors the embedded JSON data file.
type skillData struct {
	Variants map[string]string `json:"variants"`
	Related  []relatedPair     `json:"related"`
}

type relatedPair struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
}

// LoadDictionary loads and validates the embedded skill data.
// A data file that fails schema validation is a startup error, not a
// request-time condition.
func LoadDictionary() (*Dictionary, error) {
	dataBytes, err := dataFS.ReadFile("data/skill_data.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read skill data: %w", err)
	}
	schemaBytes, err := dataFS.ReadFile("data/skill_data_schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read skill data schema: %w", err)
	}

	if err := validateSkillData(string(schemaBytes), string(dataBytes)); err != nil {
		return nil, fmt.Errorf("skill data failed schema validation: %w", err)
	}

	var data skillData
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return nil, fmt.Errorf("failed to parse skill data: %w", err)
	}

	return NewDictionary(data.Variants, data.Related)
}

// NewDictionary builds a Dictionary from raw variant and related-pair data.
// Keys and values are lower-cased; empty canonical names are rejected.
func NewDictionary(variants map[string]string, related []relatedPair) (*Dictionary, error) {
	d := &Dictionary{
		variants: make(map[string]string, len(variants)),
		related:  make(map[pairKey]float64, len(related)),
	}

	for raw, canonical := range variants {
		raw = strings.ToLower(strings.TrimSpace(raw))
		canonical = strings.ToLower(strings.TrimSpace(canonical))
		if raw == "" || canonical == "" {
			return nil, fmt.Errorf("skill dictionary entry has empty key or value (%q -> %q)", raw, canonical)
		}
		d.variants[raw] = canonical
	}

	for _, pair := range related {
		a := strings.ToLower(strings.TrimSpace(pair.A))
		b := strings.ToLower(strings.TrimSpace(pair.B))
		if a == "" || b == "" {
			return nil, fmt.Errorf("similarity table entry has empty skill name (%q, %q)", pair.A, pair.B)
		}
		if pair.Score < 0 || pair.Score > 1 {
			return nil, fmt.Errorf("similarity table score out of range for (%q, %q): %f", a, b, pair.Score)
		}
		d.related[newPairKey(a, b)] = pair.Score
	}

	return d, nil
}

// Lookup returns the canonical name for a lower-cased raw variant.
func (d *Dictionary) Lookup(raw string) (string, bool) {
	canonical, ok := d.variants[raw]
	return canonical, ok
}

// RelatedScore returns the table similarity for two canonical names, if present.
func (d *Dictionary) RelatedScore(a, b string) (float64, bool) {
	score, ok := d.related[newPairKey(a, b)]
	return score, ok
}

// Keys returns all raw variant keys. Used for edit-distance fallback scans.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.variants))
	for k := range d.variants {
		keys = append(keys, k)
	}
	return keys
}

// validateSkillData validates data file content against the schema.
func validateSkillData(schemaContent, dataContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(dataContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed during load: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("validation failed:")
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		sb.WriteString(fmt.Sprintf(" %s: %s;", field, desc.Description()))
	}
	return fmt.Errorf("%s", sb.String())
}
