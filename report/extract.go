package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// ErrNoStructuredData is returned when the pipeline output contains no
// JSON-array-shaped substring at all. Callers can distinguish this from
// a parse failure of a located array.
var ErrNoStructuredData = errors.New("no structured data found in agent output")

// ErrMalformedData is returned when an array-shaped substring was
// located but is not valid JSON.
var ErrMalformedData = errors.New("structured data is not valid JSON")

// jsonArrayPattern locates the widest bracketed span across line
// breaks. The analyst is asked to emit a single JSON array, usually
// wrapped in prose or a markdown fence.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// ExtractRecords scans raw agent output for the first embedded JSON
// array and converts its elements into Records.
//
// The contract has two distinct failure signals: ErrNoStructuredData
// when no array-shaped substring exists, and a wrapped parse error when
// one exists but is not valid JSON. On success at most MaxRecords
// elements are kept, in their original order, with field defaults
// applied. Fewer than MaxRecords elements is not an error.
func ExtractRecords(raw string) ([]Record, error) {
	span := jsonArrayPattern.FindString(raw)
	if span == "" {
		return nil, ErrNoStructuredData
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(span), &items); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedData, err)
	}

	if len(items) > MaxRecords {
		items = items[:MaxRecords]
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, newRecord(item))
	}
	return records, nil
}
