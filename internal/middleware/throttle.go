package middleware

import (
	"context"
	"time"

	"github.com/go-kratos/blades"
	"golang.org/x/time/rate"
)

// Throttle limits how many agent requests start per minute across one
// pipeline. Zero or negative maxRPM disables throttling.
//
// This is a volume policy toward the model endpoint, not a correctness
// guarantee; the wait honors context cancellation.
func Throttle(maxRPM int) blades.Middleware {
	if maxRPM <= 0 {
		return func(next blades.Handler) blades.Handler { return next }
	}

	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxRPM)), 1)
	return func(next blades.Handler) blades.Handler {
		return blades.HandleFunc(func(ctx context.Context, inv *blades.Invocation) blades.Generator[*blades.Message, error] {
			if err := limiter.Wait(ctx); err != nil {
				return func(yield func(*blades.Message, error) bool) {
					yield(nil, err)
				}
			}
			return next.Handle(ctx, inv)
		})
	}
}
