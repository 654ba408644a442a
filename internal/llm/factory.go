package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kratos/blades"
	"github.com/go-playground/validator/v10"

	"github.com/riskreporter/config"
)

// Factory builds a blades.ModelProvider from a per-agent LLM config.
//
// It applies defaults for optional fields, validates required fields,
// and dispatches to provider-specific builders.
type Factory struct {
	validate *validator.Validate
}

var builderRegistry = map[string]ModelBuilder{
	"openai":    newOpenAIBuilder(),
	"anthropic": newAnthropicBuilder(),
	"gemini":    newGeminiBuilder(),
}

func NewFactory() *Factory {
	return &Factory{validate: validator.New()}
}

// Build constructs the model provider for one agent. cfg is taken by
// value: callers may override APIKey per invocation without touching
// the loaded configuration.
func (f *Factory) Build(ctx context.Context, cfg config.AgentLLMConfig) (blades.ModelProvider, error) {
	cfg.Provider = normalizeProvider(cfg.Provider)

	if err := f.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate llm config: %w", err)
	}

	applyDefaults(&cfg)

	builder, ok := builderRegistry[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}

	return builder.Build(ctx, &cfg)
}

func normalizeProvider(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}

func applyDefaults(cfg *config.AgentLLMConfig) {
	if cfg.Timeout == "" {
		cfg.Timeout = "60s"
	}
	// optional pointer fields get defaults here so builders can
	// dereference without nil checks
	if cfg.MaxTokens == nil {
		defaultMaxTokens := 2048
		cfg.MaxTokens = &defaultMaxTokens
	}
	if cfg.Temperature == nil {
		defaultTemperature := 0.7
		cfg.Temperature = &defaultTemperature
	}
}
