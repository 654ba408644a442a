package agent

import (
	"fmt"

	"github.com/go-kratos/blades"
	"github.com/go-kratos/blades/tools"

	"github.com/riskreporter/internal/consts"
)

// ScoutConfig configures the lead-gathering stage.
type ScoutConfig struct {
	Model blades.ModelProvider
	// Tools must contain at least the search capability; the scout is
	// useless without a way to discover incidents.
	Tools      []tools.Tool
	Middleware []blades.Middleware
}

// NewScoutAgent creates the first pipeline stage: a researcher that
// hunts down four distinct recent incidents with source URLs.
func NewScoutAgent(cfg ScoutConfig) (blades.Agent, error) {
	if len(cfg.Tools) == 0 {
		return nil, fmt.Errorf("scout agent requires at least one search tool")
	}

	return blades.NewAgent(
		consts.AgentNameScout,
		blades.WithDescription(consts.ScoutAgentDescription),
		blades.WithInstruction(consts.ScoutAgentInstruction),
		blades.WithModel(cfg.Model),
		blades.WithTools(cfg.Tools...),
		blades.WithMiddleware(cfg.Middleware...),
	)
}
