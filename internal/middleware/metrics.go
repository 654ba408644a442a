package middleware

import (
	"context"

	"github.com/go-kratos/blades"

	"github.com/riskreporter/internal/metrics"
)

// NewAgentMetrics counts yielded messages and errors per agent.
func NewAgentMetrics(next blades.Handler) blades.Handler {
	return blades.HandleFunc(func(ctx context.Context, inv *blades.Invocation) blades.Generator[*blades.Message, error] {
		agentName := agentNameFromContext(ctx)

		gen := next.Handle(ctx, inv)
		return func(yield func(*blades.Message, error) bool) {
			for message, err := range gen {
				if err != nil {
					metrics.AgentErrors.WithLabelValues(agentName).Inc()
					yield(nil, err)
					return
				}
				metrics.AgentMessages.WithLabelValues(agentName).Inc()
				if !yield(message, nil) {
					return
				}
			}
		}
	})
}
