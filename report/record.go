package report

// MaxRecords caps how many incidents one report may carry. The cap is
// enforced both at extraction and at render time.
const MaxRecords = 4

// Placeholder values substituted when the analyst omits a field.
const (
	placeholderTitle = "N/A"
	placeholderURL   = "Source URL missing"
	defaultIndustry  = "General"
)

// Record is one validated cyber-incident news item ready for rendering.
type Record struct {
	Title         string
	URL           string
	Industry      string
	Summary       string
	Tip           string
	InsuranceNote string
}

// HasURL reports whether the record carries a real source link rather
// than the missing-URL placeholder.
func (r Record) HasURL() bool {
	return r.URL != placeholderURL
}

// newRecord builds a Record from one raw object of the parsed array,
// applying field-level defaults. A missing or non-string field never
// fails the record; a field present as an empty string is kept as is.
func newRecord(raw map[string]any) Record {
	return Record{
		Title:    stringField(raw, placeholderTitle, "title"),
		URL:      stringField(raw, placeholderURL, "url"),
		Industry: stringField(raw, defaultIndustry, "industry"),
		Summary:  stringField(raw, "", "summary"),
		Tip:      stringField(raw, "", "tip"),
		// the analyst prompt asks for a "Cyber Insurance" key, but
		// models occasionally snake_case it anyway
		InsuranceNote: stringField(raw, "", "Cyber Insurance", "insurance_note"),
	}
}

func stringField(raw map[string]any, fallback string, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key].(string); ok {
			return v
		}
	}
	return fallback
}
