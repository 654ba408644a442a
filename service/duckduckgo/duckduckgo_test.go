package duckduckgo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskreporter/service"
)

const sampleResponse = `{
	"Heading": "Cyber attack",
	"Abstract": "A cyberattack is any offensive maneuver.",
	"AbstractText": "A cyberattack is any offensive maneuver.",
	"AbstractURL": "https://en.wikipedia.org/wiki/Cyberattack",
	"AbstractSource": "Wikipedia",
	"Results": [
		{"Text": "Major breach at Acme Corp", "FirstURL": "https://news.test/acme"}
	],
	"RelatedTopics": [
		{"Text": "Ransomware hits hospital", "FirstURL": "https://news.test/hospital"},
		{"Topics": [
			{"Text": "Nested incident", "FirstURL": "https://news.test/nested"}
		]}
	]
}`

func newTestService(t *testing.T, handler http.HandlerFunc, opts Options) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts.BaseURL = srv.URL
	return NewService(service.ServiceMeta{Name: "cyber_search"}, &opts)
}

func TestService_Search(t *testing.T) {
	var gotQuery, gotUA string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(sampleResponse))
	}, Options{})

	out, err := svc.Search(context.Background(), "recent cyber attacks india")
	require.NoError(t, err)

	assert.Equal(t, "recent cyber attacks india", gotQuery)
	assert.Equal(t, "riskreporter/1.0", gotUA)
	assert.Contains(t, out, "https://en.wikipedia.org/wiki/Cyberattack")
	assert.Contains(t, out, "Major breach at Acme Corp")
	assert.Contains(t, out, "https://news.test/hospital")
	assert.Contains(t, out, "https://news.test/nested")
}

func TestService_Search_MaxResults(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	}, Options{MaxResults: 2})

	out, err := svc.Search(context.Background(), "q")
	require.NoError(t, err)

	assert.Contains(t, out, "Major breach at Acme Corp")
	assert.NotContains(t, out, "nested")
}

func TestService_Search_EmptyResults(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}, Options{})

	out, err := svc.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Equal(t, "No results found.", out)
}

func TestService_Search_HTTPError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, Options{})

	_, err := svc.Search(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 429")
}

func TestService_AsTool(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	}, Options{})

	tool, err := svc.AsTool()
	require.NoError(t, err)
	assert.Equal(t, ToolName, tool.Name())

	schema := tool.InputSchema()
	require.NotNil(t, schema)
	assert.Contains(t, schema.Required, "query")

	out, err := tool.Handle(context.Background(), `{"query":"breaches"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Major breach at Acme Corp")
}

func TestSearchTool_Handle_BadInput(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	}, Options{})

	tool, err := svc.AsTool()
	require.NoError(t, err)

	_, err = tool.Handle(context.Background(), `{"query":""}`)
	require.Error(t, err)

	_, err = tool.Handle(context.Background(), `not-json`)
	require.Error(t, err)
}

func TestService_Identity(t *testing.T) {
	svc := NewService(service.ServiceMeta{Name: "cyber_search", Description: "custom"}, &Options{})
	assert.Equal(t, "cyber_search", svc.Name())
	assert.Equal(t, "custom", svc.Description())
	assert.Equal(t, service.DuckDuckGo, svc.Type())
	assert.NoError(t, svc.Close())
}
