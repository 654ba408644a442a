package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-kratos/blades"

	"github.com/riskreporter/config"
)

// ModelBuilder builds a blades.ModelProvider for one provider.
type ModelBuilder interface {
	GetModel(cfg *config.AgentLLMConfig) string
	GetBaseURL(cfg *config.AgentLLMConfig) string
	Build(ctx context.Context, cfg *config.AgentLLMConfig) (blades.ModelProvider, error)
}

func resolveModel(cfg *config.AgentLLMConfig, fallback string) string {
	if strings.TrimSpace(cfg.Model) == "" {
		return fallback
	}
	return cfg.Model
}

// resolveAPIKey prefers the config (or per-invocation) key and falls
// back to a comma-separated list of environment variable names.
func resolveAPIKey(cfg *config.AgentLLMConfig, envNames string) (string, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		for _, name := range strings.Split(envNames, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			apiKey = strings.TrimSpace(os.Getenv(name))
			if apiKey != "" {
				break
			}
		}
	}
	if apiKey == "" {
		return "", fmt.Errorf("%s api key not configured (api_key or %s)", cfg.Provider, envNames)
	}
	return apiKey, nil
}

func resolveBaseURL(cfg *config.AgentLLMConfig, defaultURL string) string {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return defaultURL
	}
	return cfg.BaseURL
}
