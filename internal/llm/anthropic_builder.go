package llm

import (
	"context"

	"github.com/go-kratos/blades"
	"github.com/go-kratos/blades/contrib/anthropic"

	"github.com/riskreporter/config"
)

type anthropicBuilder struct {
	baseURL string
	model   string
	apiKey  string
}

func newAnthropicBuilder() ModelBuilder {
	return &anthropicBuilder{
		model:   "claude-3-5-haiku-latest",
		baseURL: "https://api.anthropic.com",
		apiKey:  "ANTHROPIC_API_KEY",
	}
}

func (b *anthropicBuilder) GetModel(cfg *config.AgentLLMConfig) string {
	return resolveModel(cfg, b.model)
}

func (b *anthropicBuilder) GetBaseURL(cfg *config.AgentLLMConfig) string {
	return resolveBaseURL(cfg, b.baseURL)
}

func (b *anthropicBuilder) Build(ctx context.Context, cfg *config.AgentLLMConfig) (blades.ModelProvider, error) {
	apiKey, err := resolveAPIKey(cfg, b.apiKey)
	if err != nil {
		return nil, err
	}

	opts := anthropic.Config{
		APIKey:  apiKey,
		BaseURL: b.GetBaseURL(cfg),
	}
	opts.MaxOutputTokens = int64(*cfg.MaxTokens)
	opts.Temperature = *cfg.Temperature

	return anthropic.NewModel(b.GetModel(cfg), opts), nil
}
