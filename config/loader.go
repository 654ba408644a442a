package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Loader loads, merges and validates the TOML configuration.
type Loader struct {
	baseDir   string
	env       string
	config    *Config
	meta      *toml.MetaData
	mu        sync.RWMutex
	validator *validator.Validate
}

// NewLoader creates a config loader for the given directory.
// A .env file in the directory is loaded into the process environment
// before any config file is read.
func NewLoader(baseDir string) (*Loader, error) {
	envPath := filepath.Join(baseDir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	return &Loader{
		baseDir:   baseDir,
		env:       env,
		validator: validator.New(),
	}, nil
}

// Load parses config.toml, merges config.<env>.toml on top when
// present, and validates the result.
func (l *Loader) Load() (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	basePath := filepath.Join(l.baseDir, "config.toml")
	baseContent, err := l.loadAndExpand(basePath)
	if err != nil {
		return nil, fmt.Errorf("load base config: %w", err)
	}

	var cfg Config
	meta, err := toml.Decode(baseContent, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse base config: %w", err)
	}

	envPath := filepath.Join(l.baseDir, fmt.Sprintf("config.%s.toml", l.env))
	if _, err := os.Stat(envPath); err == nil {
		envContent, err := l.loadAndExpand(envPath)
		if err != nil {
			return nil, fmt.Errorf("load env config: %w", err)
		}
		// keep the base metadata: service option primitives are
		// decoded against it later
		if _, err := toml.Decode(envContent, &cfg); err != nil {
			return nil, fmt.Errorf("parse env config: %w", err)
		}
	}

	if err := l.validator.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	l.config = &cfg
	l.meta = &meta
	return &cfg, nil
}

func (l *Loader) loadAndExpand(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return expandEnv(string(content)), nil
}

// expandEnv expands ${VAR} and ${VAR:default} placeholders.
var envPlaceholder = regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

func expandEnv(s string) string {
	return envPlaceholder.ReplaceAllStringFunc(s, func(match string) string {
		groups := envPlaceholder.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		if val := os.Getenv(groups[1]); val != "" {
			return val
		}
		if len(groups) >= 3 {
			return groups[2]
		}
		return ""
	})
}

// Get returns the last loaded config.
func (l *Loader) Get() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

// Env returns the active environment name.
func (l *Loader) Env() string {
	return l.env
}

// BaseDir returns the config directory.
func (l *Loader) BaseDir() string {
	return l.baseDir
}

// GetServiceOptions returns the raw options primitive of one service
// section for deferred decoding by the service's own parser.
func (l *Loader) GetServiceOptions(name string) (toml.Primitive, *toml.MetaData, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.config == nil {
		return toml.Primitive{}, nil, fmt.Errorf("config not loaded")
	}
	svc, ok := l.config.Services[name]
	if !ok {
		return toml.Primitive{}, nil, fmt.Errorf("service %s not found in config", name)
	}
	return svc.Options, l.meta, nil
}
