package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskreporter/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))
	return dir
}

const testConfig = `
[app]
name = "riskreporter-test"

[log]
level = "error"
format = "text"
output = "stdout"

[server]
addr = "localhost:18080"
timeout = "30s"

[report]
title = "CYBER RISK REPORT"
attribution = "Automated Cyber Risk Reporting"
output_dir = ""

[pipeline]
max_rpm = 0

[agents.scout]
enabled = true
  [agents.scout.llm]
  provider = "openai"
  model = "gpt-4o-mini"

[agents.analyst]
enabled = true
  [agents.analyst.llm]
  provider = "openai"
  model = "gpt-4o-mini"

[services.cyber_search]
type = "duckduckgo"
enabled = true
description = "search"
  [services.cyber_search.options]
  max_results = 4
`

func TestApplication_Initialize(t *testing.T) {
	dir := writeConfig(t, testConfig)

	app, err := NewApplication(dir)
	require.NoError(t, err)
	require.NoError(t, app.Initialize(context.Background()))
	defer app.Shutdown(context.Background())

	cfg := app.Config()
	require.NotNil(t, cfg)
	assert.Equal(t, "riskreporter-test", cfg.App.Name)
	assert.Len(t, app.registry.All(), 1)
}

func TestApplication_ValidateRules(t *testing.T) {
	app := &Application{}

	t.Run("missing agent", func(t *testing.T) {
		cfg := &config.Config{Agents: map[string]config.AgentConfig{
			"scout_agent": {Enabled: true},
		}}
		err := app.validateRules(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "analyst_agent")
	})

	t.Run("disabled agent", func(t *testing.T) {
		cfg := &config.Config{Agents: map[string]config.AgentConfig{
			"scout_agent":   {Enabled: true},
			"analyst_agent": {Enabled: false},
		}}
		err := app.validateRules(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be enabled")
	})

	t.Run("all present", func(t *testing.T) {
		cfg := &config.Config{Agents: map[string]config.AgentConfig{
			"scout_agent":   {Enabled: true},
			"analyst_agent": {Enabled: true},
		}}
		assert.NoError(t, app.validateRules(cfg))
	})
}

func TestGenerateReport_MissingCredential(t *testing.T) {
	dir := writeConfig(t, testConfig)

	app, err := NewApplication(dir)
	require.NoError(t, err)
	require.NoError(t, app.Initialize(context.Background()))
	defer app.Shutdown(context.Background())

	_, err = app.GenerateReport(context.Background(), GenerateRequest{})
	require.ErrorIs(t, err, ErrCredentialRequired)
}

func TestGenerateReport_WaitsForSlot(t *testing.T) {
	app := &Application{sem: make(chan struct{}, 1)}

	// occupy the single run slot
	app.sem <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := app.GenerateReport(ctx, GenerateRequest{APIKey: "k"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteArtifact(t *testing.T) {
	dir := writeConfig(t, testConfig)

	app, err := NewApplication(dir)
	require.NoError(t, err)
	require.NoError(t, app.Initialize(context.Background()))
	defer app.Shutdown(context.Background())

	out := t.TempDir()
	app.Config().Report.OutputDir = out

	path, err := app.WriteArtifact(&Artifact{
		Filename: "CyberRisk_Report_000000.pdf",
		Data:     []byte("%PDF-test"),
		Records:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "CyberRisk_Report_000000.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-test"), data)
}
