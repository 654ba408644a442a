package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-kratos/blades"
	toolkit "github.com/go-kratos/blades/tools"
	"github.com/google/uuid"

	"github.com/riskreporter/agent"
	"github.com/riskreporter/config"
	"github.com/riskreporter/internal/consts"
	"github.com/riskreporter/internal/llm"
	"github.com/riskreporter/internal/logger"
	"github.com/riskreporter/internal/metrics"
	"github.com/riskreporter/report"
	"github.com/riskreporter/service"

	_ "github.com/riskreporter/service/duckduckgo"
)

// ErrCredentialRequired is returned when a run is requested without an
// API credential. The pipeline is never invoked in that case.
var ErrCredentialRequired = errors.New("api credential required")

// GenerateRequest carries the per-invocation inputs from the delivery
// surface.
type GenerateRequest struct {
	// APIKey is the model credential for this run. Required.
	APIKey string
	// Model optionally overrides the configured model identifier for
	// both stages.
	Model string
}

// Artifact is the single output of one successful run.
type Artifact struct {
	RunID    string
	Filename string
	Data     []byte
	Records  int
}

// Application wires config, search services, models and the report
// pipeline together. One report run is in flight at a time; further
// callers wait their turn.
type Application struct {
	cfg      *config.Loader
	registry *service.Registry
	factory  *llm.Factory
	renderer *report.Renderer

	// buffered to 1: the single in-flight run slot
	sem chan struct{}
}

func NewApplication(configDir string) (*Application, error) {
	loader, err := config.NewLoader(configDir)
	if err != nil {
		return nil, fmt.Errorf("create config loader: %w", err)
	}

	return &Application{
		cfg:     loader,
		factory: llm.NewFactory(),
		sem:     make(chan struct{}, 1),
	}, nil
}

// Initialize loads config and brings up logging and search services.
func (a *Application) Initialize(ctx context.Context) error {
	cfg, err := a.cfg.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Initialize(cfg)

	if err := a.validateRules(cfg); err != nil {
		return fmt.Errorf("validate app rules: %w", err)
	}

	slog.Info("app.init.services.start")
	registry := service.NewRegistry()
	if err := registry.InitFromConfig(a.cfg); err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	a.registry = registry
	slog.Info("app.init.services.complete", "count", len(registry.All()))

	a.renderer = report.NewRenderer(report.RendererOptions{
		Title:       cfg.Report.Title,
		Attribution: cfg.Report.Attribution,
	})

	slog.Info("app.init.complete", "env", a.cfg.Env())
	return nil
}

// validateRules checks the agent sections the pipeline depends on.
func (a *Application) validateRules(cfg *config.Config) error {
	for _, name := range consts.RequiredAgents {
		agentCfg, ok := cfg.Agents[name]
		if !ok {
			return fmt.Errorf("agent %s is required but not configured", name)
		}
		if !agentCfg.Enabled {
			return fmt.Errorf("agent %s must be enabled", name)
		}
	}
	return nil
}

// Config returns the loaded configuration.
func (a *Application) Config() *config.Config {
	return a.cfg.Get()
}

// GenerateReport runs one full pipeline invocation: scout, analyst,
// extraction, rendering. It blocks until done and returns either a
// complete artifact or an error; partial output is never produced.
func (a *Application) GenerateReport(ctx context.Context, req GenerateRequest) (*Artifact, error) {
	if req.APIKey == "" {
		return nil, ErrCredentialRequired
	}

	// one run at a time; waiting honors the caller's context
	select {
	case a.sem <- struct{}{}:
		defer func() { <-a.sem }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	runID := uuid.NewString()
	start := time.Now()
	slog.Info("report.run.start", "run_id", runID)

	artifact, err := a.run(ctx, runID, req)
	metrics.RunDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RunsTotal.WithLabelValues(statusFor(err)).Inc()
		slog.Error("report.run.failed", "run_id", runID, "error", err, "duration", time.Since(start))
		return nil, err
	}

	metrics.RunsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	metrics.RecordsRendered.Add(float64(artifact.Records))
	slog.Info("report.run.complete",
		"run_id", runID,
		"records", artifact.Records,
		"filename", artifact.Filename,
		"duration", time.Since(start),
	)
	return artifact, nil
}

func (a *Application) run(ctx context.Context, runID string, req GenerateRequest) (*Artifact, error) {
	cfg := a.cfg.Get()
	if cfg == nil {
		return nil, fmt.Errorf("application not initialized")
	}

	scoutModel, err := a.buildModel(ctx, cfg, consts.AgentNameScout, req)
	if err != nil {
		return nil, fmt.Errorf("build scout model: %w", err)
	}
	analystModel, err := a.buildModel(ctx, cfg, consts.AgentNameAnalyst, req)
	if err != nil {
		return nil, fmt.Errorf("build analyst model: %w", err)
	}

	searchTools, err := a.searchTools()
	if err != nil {
		return nil, err
	}

	pipeline, err := agent.NewPipeline(agent.PipelineConfig{
		ScoutModel:   scoutModel,
		AnalystModel: analystModel,
		SearchTools:  searchTools,
		MaxRPM:       cfg.Pipeline.MaxRPM,
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}

	runner := agent.NewReportRunner(pipeline)
	output, err := runner.Run(ctx, blades.UserMessage(consts.KickoffPrompt))
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	records, err := report.ExtractRecords(output.Text())
	if err != nil {
		return nil, err
	}

	data, err := a.renderer.Render(records)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		RunID:    runID,
		Filename: fmt.Sprintf("CyberRisk_Report_%s.pdf", time.Now().Format("150405")),
		Data:     data,
		Records:  len(records),
	}, nil
}

// buildModel builds the model provider for one stage, applying the
// per-invocation credential and optional model override.
func (a *Application) buildModel(ctx context.Context, cfg *config.Config, agentName string, req GenerateRequest) (blades.ModelProvider, error) {
	llmCfg := cfg.Agents[agentName].LLM
	llmCfg.APIKey = req.APIKey
	if req.Model != "" {
		llmCfg.Model = req.Model
	}
	return a.factory.Build(ctx, llmCfg)
}

func (a *Application) searchTools() ([]toolkit.Tool, error) {
	services := a.registry.All()
	tools := make([]toolkit.Tool, 0, len(services))
	for _, s := range services {
		tool, err := s.AsTool()
		if err != nil {
			return nil, fmt.Errorf("tool for service %s: %w", s.Name(), err)
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

// statusFor maps the error taxonomy onto run outcome labels.
func statusFor(err error) string {
	switch {
	case errors.Is(err, report.ErrNoStructuredData):
		return metrics.StatusExtractionFailed
	case errors.Is(err, report.ErrMalformedData):
		return metrics.StatusParseFailed
	default:
		return metrics.StatusPipelineFailed
	}
}

// WriteArtifact writes the artifact into the configured output dir.
// Used by one-shot mode.
func (a *Application) WriteArtifact(artifact *Artifact) (string, error) {
	dir := a.cfg.Get().Report.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}

// Shutdown releases the search services.
func (a *Application) Shutdown(ctx context.Context) error {
	if a.registry != nil {
		if err := a.registry.Close(); err != nil {
			return fmt.Errorf("close services: %w", err)
		}
	}
	return nil
}

// ShutdownWithTimeout is a convenience for main.
func (a *Application) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return a.Shutdown(ctx)
}
