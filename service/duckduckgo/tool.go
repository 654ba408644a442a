package duckduckgo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToolName is how the scout agent addresses the search capability.
const ToolName = "cyber_search"

// searchTool adapts the Service to the blades tool interface with an
// explicit input schema.
type searchTool struct {
	svc *Service
}

func (t *searchTool) Name() string { return ToolName }

func (t *searchTool) Description() string {
	return t.svc.Description()
}

func (t *searchTool) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"query"},
		Properties: map[string]*jsonschema.Schema{
			"query": {
				Type:        "string",
				Description: "Free-text web search query, e.g. \"ransomware attack hospital 2026\".",
			},
		},
	}
}

func (t *searchTool) OutputSchema() *jsonschema.Schema { return nil }

func (t *searchTool) Handle(ctx context.Context, input string) (string, error) {
	args := map[string]string{}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parse %s input: %w", ToolName, err)
	}
	query := strings.TrimSpace(args["query"])
	if query == "" {
		return "", fmt.Errorf("query must be a non-empty string")
	}
	return t.svc.Search(ctx, query)
}
