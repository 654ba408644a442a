package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-kratos/blades"
)

// NewAgentLogging logs the start, completion and failure of every agent
// run, preserving the streamed message flow untouched.
func NewAgentLogging(next blades.Handler) blades.Handler {
	return blades.HandleFunc(func(ctx context.Context, inv *blades.Invocation) blades.Generator[*blades.Message, error] {
		agentName := agentNameFromContext(ctx)
		start := time.Now()
		slog.Info("agent.run.start", "agent", agentName, "invocation_id", inv.ID, "model", inv.Model)

		gen := next.Handle(ctx, inv)
		return func(yield func(*blades.Message, error) bool) {
			var messages int
			for message, err := range gen {
				if err != nil {
					slog.Error("agent.run.error",
						"agent", agentName,
						"invocation_id", inv.ID,
						"error", err,
					)
					yield(nil, err)
					return
				}
				messages++
				if !yield(message, nil) {
					return
				}
			}
			slog.Info("agent.run.complete",
				"agent", agentName,
				"invocation_id", inv.ID,
				"messages", messages,
				"duration", time.Since(start),
			)
		}
	})
}

func agentNameFromContext(ctx context.Context) string {
	if ag, ok := blades.FromAgentContext(ctx); ok {
		return ag.Name()
	}
	return "unknown"
}
