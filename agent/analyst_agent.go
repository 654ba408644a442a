package agent

import (
	"github.com/go-kratos/blades"

	"github.com/riskreporter/internal/consts"
)

// AnalystConfig configures the structuring stage.
type AnalystConfig struct {
	Model      blades.ModelProvider
	Middleware []blades.Middleware
}

// NewAnalystAgent creates the second pipeline stage: it consumes the
// scout's free-text leads and reshapes them into the fixed JSON array
// the result extractor scans for. It carries no tools.
func NewAnalystAgent(cfg AnalystConfig) (blades.Agent, error) {
	return blades.NewAgent(
		consts.AgentNameAnalyst,
		blades.WithDescription(consts.AnalystAgentDescription),
		blades.WithInstruction(consts.AnalystAgentInstruction),
		blades.WithModel(cfg.Model),
		blades.WithMiddleware(cfg.Middleware...),
	)
}
