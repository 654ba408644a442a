package config

import (
	"github.com/BurntSushi/toml"

	"github.com/riskreporter/utils"
)

// Config is the root configuration structure.
type Config struct {
	App      AppConfig                `toml:"app" validate:"required"`
	Log      LogConfig                `toml:"log"`
	Server   ServerConfig             `toml:"server" validate:"required"`
	Report   ReportConfig             `toml:"report"`
	Pipeline PipelineConfig           `toml:"pipeline"`
	Agents   map[string]AgentConfig   `toml:"agents" validate:"dive"`
	Services map[string]ServiceConfig `toml:"services" validate:"dive"`
}

// AppConfig holds application-wide settings.
type AppConfig struct {
	Name string `toml:"name" validate:"required"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `toml:"format" validate:"omitempty,oneof=text json"`
	Output string `toml:"output"`
}

// ServerConfig configures the HTTP delivery surface.
type ServerConfig struct {
	Addr    string         `toml:"addr" validate:"required,hostname_port"`
	Timeout utils.Duration `toml:"timeout"`
}

// ReportConfig brands the generated PDF.
type ReportConfig struct {
	Title       string `toml:"title"`
	Attribution string `toml:"attribution"`
	// OutputDir is where one-shot mode writes the artifact.
	OutputDir string `toml:"output_dir"`
}

// PipelineConfig holds pipeline-level limits.
type PipelineConfig struct {
	// MaxRPM throttles total model requests per minute across both
	// stages. Zero disables throttling.
	MaxRPM int `toml:"max_rpm" validate:"gte=0"`
}

// AgentConfig enables one pipeline stage and selects its model.
type AgentConfig struct {
	Enabled bool           `toml:"enabled"`
	LLM     AgentLLMConfig `toml:"llm"`
}

// AgentLLMConfig selects an LLM backend for one agent.
type AgentLLMConfig struct {
	Provider    string   `toml:"provider" validate:"required"`
	Model       string   `toml:"model" validate:"required"`
	APIKey      string   `toml:"api_key"`
	BaseURL     string   `toml:"base_url"`
	MaxTokens   *int     `toml:"max_tokens"`
	Temperature *float64 `toml:"temperature"`
	Timeout     string   `toml:"timeout"`
}

// ServiceConfig declares one external capability (search backends).
// Options stays a raw TOML primitive until the matching service
// registers a parser for it.
type ServiceConfig struct {
	Type        string         `toml:"type" validate:"required,oneof=duckduckgo"`
	Enabled     bool           `toml:"enabled"`
	Description string         `toml:"description"`
	Options     toml.Primitive `toml:"options"`
}
