package report

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incidentJSON(n int) string {
	out := "["
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"title":"Incident %d","url":"http://x.test/%d","industry":"Finance","summary":"S%d","tip":"T%d","Cyber Insurance":"I%d"}`, i, i, i, i, i)
	}
	return out + "]"
}

func TestExtractRecords_CapsAtFour(t *testing.T) {
	raw := "Here is the final report:\n" + incidentJSON(6) + "\nDone."

	records, err := ExtractRecords(raw)
	require.NoError(t, err)
	require.Len(t, records, MaxRecords)

	// insertion order preserved
	for i, rec := range records {
		assert.Equal(t, fmt.Sprintf("Incident %d", i), rec.Title)
		assert.Equal(t, fmt.Sprintf("http://x.test/%d", i), rec.URL)
		assert.Equal(t, "Finance", rec.Industry)
		assert.Equal(t, fmt.Sprintf("S%d", i), rec.Summary)
		assert.Equal(t, fmt.Sprintf("T%d", i), rec.Tip)
		assert.Equal(t, fmt.Sprintf("I%d", i), rec.InsuranceNote)
	}
}

func TestExtractRecords_FewerThanFour(t *testing.T) {
	records, err := ExtractRecords("result: " + incidentJSON(2))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestExtractRecords_SpansLineBreaks(t *testing.T) {
	raw := "```json\n[\n{\"title\": \"Breach A\"},\n{\"title\": \"Breach B\"}\n]\n```"
	records, err := ExtractRecords(raw)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Breach A", records[0].Title)
}

func TestExtractRecords_NotFound(t *testing.T) {
	records, err := ExtractRecords("the agents could not verify enough sources")
	require.ErrorIs(t, err, ErrNoStructuredData)
	assert.Nil(t, records)
}

func TestExtractRecords_ParseFailureIsDistinct(t *testing.T) {
	// trailing comma makes the located array invalid JSON
	records, err := ExtractRecords(`output: [{"title":"x"},]`)
	require.ErrorIs(t, err, ErrMalformedData)
	assert.False(t, errors.Is(err, ErrNoStructuredData))
	assert.Nil(t, records)
}

func TestExtractRecords_FieldDefaults(t *testing.T) {
	records, err := ExtractRecords(`[{"summary":"only a summary"}]`)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "N/A", rec.Title)
	assert.Equal(t, "Source URL missing", rec.URL)
	assert.False(t, rec.HasURL())
	assert.Equal(t, "General", rec.Industry)
	assert.Equal(t, "only a summary", rec.Summary)
	assert.Equal(t, "", rec.Tip)
	assert.Equal(t, "", rec.InsuranceNote)
}

func TestExtractRecords_InsuranceKeyVariants(t *testing.T) {
	records, err := ExtractRecords(`[{"insurance_note":"from snake case"}]`)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "from snake case", records[0].InsuranceNote)
}

func TestExtractRecords_EmptyStringFieldsKept(t *testing.T) {
	// present-but-empty fields are not the same as missing ones; the
	// placeholders apply only when the key is absent
	records, err := ExtractRecords(`[{"title":"","url":"","industry":""}]`)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "", rec.Title)
	assert.Equal(t, "", rec.URL)
	assert.Equal(t, "", rec.Industry)
}

func TestExtractRecords_NonStringFieldFallsBack(t *testing.T) {
	records, err := ExtractRecords(`[{"title": 42, "url": null}]`)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "N/A", records[0].Title)
	assert.Equal(t, "Source URL missing", records[0].URL)
}
