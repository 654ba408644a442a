package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/go-kratos/blades"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passthroughHandler() blades.Handler {
	return blades.HandleFunc(func(ctx context.Context, inv *blades.Invocation) blades.Generator[*blades.Message, error] {
		return func(yield func(*blades.Message, error) bool) {
			yield(blades.AssistantMessage("ok"), nil)
		}
	})
}

func TestThrottle_Disabled(t *testing.T) {
	h := Throttle(0)(passthroughHandler())

	for msg, err := range h.Handle(context.Background(), &blades.Invocation{Message: blades.UserMessage("q")}) {
		require.NoError(t, err)
		assert.Equal(t, "ok", msg.Text())
	}
}

func TestThrottle_FirstRequestImmediate(t *testing.T) {
	h := Throttle(60)(passthroughHandler())

	start := time.Now()
	for msg, err := range h.Handle(context.Background(), &blades.Invocation{Message: blades.UserMessage("q")}) {
		require.NoError(t, err)
		assert.Equal(t, "ok", msg.Text())
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestThrottle_CancelledContext(t *testing.T) {
	mw := Throttle(1)
	h := mw(passthroughHandler())

	// burn the single burst token
	for range h.Handle(context.Background(), &blades.Invocation{Message: blades.UserMessage("q")}) {
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var gotErr error
	for _, err := range h.Handle(ctx, &blades.Invocation{Message: blades.UserMessage("q")}) {
		gotErr = err
	}
	require.Error(t, gotErr)
}
