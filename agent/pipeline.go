package agent

import (
	"fmt"

	"github.com/go-kratos/blades"
	"github.com/go-kratos/blades/flow"
	toolkit "github.com/go-kratos/blades/tools"

	"github.com/riskreporter/internal/consts"
	"github.com/riskreporter/internal/middleware"
)

// PipelineConfig wires the two-stage report pipeline.
type PipelineConfig struct {
	// ScoutModel and AnalystModel may point at the same provider; they
	// are separate so each stage can run on a different backend.
	ScoutModel   blades.ModelProvider
	AnalystModel blades.ModelProvider
	// SearchTools are the capabilities handed to the scout.
	SearchTools []toolkit.Tool
	// MaxRPM throttles total model requests per minute across both
	// stages. Zero disables throttling.
	MaxRPM int
}

// NewPipeline builds the sequential Scout → Analyst flow. The analyst
// only starts after the scout completes, and consumes the scout's full
// free-text output as its context. There is no parallelism and no
// validation here; structuring failures surface downstream in the
// result extractor.
func NewPipeline(cfg PipelineConfig) (blades.Agent, error) {
	// one limiter shared by both stages, so the cap is pipeline-wide
	mws := []blades.Middleware{
		middleware.NewAgentLogging,
		middleware.NewAgentMetrics,
		middleware.Throttle(cfg.MaxRPM),
	}

	scout, err := NewScoutAgent(ScoutConfig{
		Model:      cfg.ScoutModel,
		Tools:      cfg.SearchTools,
		Middleware: mws,
	})
	if err != nil {
		return nil, fmt.Errorf("create scout agent: %w", err)
	}

	analyst, err := NewAnalystAgent(AnalystConfig{
		Model:      cfg.AnalystModel,
		Middleware: mws,
	})
	if err != nil {
		return nil, fmt.Errorf("create analyst agent: %w", err)
	}

	return flow.NewSequentialAgent(flow.SequentialConfig{
		Name:        consts.AgentNamePipeline,
		Description: consts.PipelineDescription,
		SubAgents:   []blades.Agent{scout, analyst},
	}), nil
}

// NewReportRunner wraps the pipeline in a runner for one-shot,
// blocking invocations.
func NewReportRunner(pipeline blades.Agent) *blades.Runner {
	return blades.NewRunner(pipeline)
}
