package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/vizscript/pkg/domain"
)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithContext sets the context passed to every dispatch.
// Cancelling it does not stop the worker; use Close for that.
func WithContext(ctx context.Context) Option {
	return func(e *Engine) {
		e.ctx = ctx
	}
}

// WithStatusListener registers a listener at construction time.
func WithStatusListener(l domain.StatusListener) Option {
	return func(e *Engine) {
		e.AddStatusListener(l)
	}
}

// WithClock replaces time.Now, used for recording markers.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.recorder.now = now
	}
}
