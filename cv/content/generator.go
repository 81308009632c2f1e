// Package content turns profile data into generated résumé text. Every
// operation makes at most one provider call and falls back to deterministic
// templates on any failure, so callers never receive an error.
package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cv-backend/internal/llm"
	"cv-backend/internal/shared/metrics"
	"cv-backend/internal/shared/telemetry"
)

// DefaultTimeout bounds one provider call when the generator has none set.
const DefaultTimeout = 30 * time.Second

// Sources reported in Result.Source.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// Generator holds the provider used for every generation.
type Generator struct {
	Client  llm.Client
	Timeout time.Duration
}

// NewGenerator returns a generator. A nil client behaves as unconfigured.
func NewGenerator(client llm.Client, timeout time.Duration) *Generator {
	if client == nil {
		client = llm.PlaceholderClient{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Generator{Client: client, Timeout: timeout}
}

// Configured reports whether generations can reach a provider.
func (g *Generator) Configured() bool {
	return g != nil && llm.Configured(g.Client)
}

// Task describes one generation: how to prompt, how to accept the answer and
// what to return when the answer cannot be used.
type Task[T any] struct {
	Intent   string
	Prompt   func() string
	Accept   func(raw string) (T, error)
	Fallback func() T
}

// Result is the value produced by Run along with where it came from.
type Result[T any] struct {
	Value  T
	Source string
	Reason string
}

// Run performs a single provider call for task and returns the accepted
// value, or the task's fallback when the call or the acceptance fails.
func Run[T any](ctx context.Context, g *Generator, task Task[T]) Result[T] {
	start := time.Now()
	value, err := attempt(ctx, g, task)
	metrics.ObserveGenerationDurationMs(metrics.SinceMillis(start))

	if err != nil {
		reason := reasonFor(err)
		telemetry.Warn("content.fallback", map[string]any{
			"intent": task.Intent,
			"reason": reason,
			"error":  err.Error(),
		})
		metrics.IncGeneration(task.Intent, SourceFallback)
		return Result[T]{Value: task.Fallback(), Source: SourceFallback, Reason: reason}
	}
	metrics.IncGeneration(task.Intent, SourceAI)
	return Result[T]{Value: value, Source: SourceAI}
}

func attempt[T any](ctx context.Context, g *Generator, task Task[T]) (T, error) {
	var zero T
	if !g.Configured() {
		return zero, llm.ErrNotConfigured
	}
	callCtx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	raw, err := g.Client.Complete(callCtx, task.Prompt())
	if err != nil {
		return zero, fmt.Errorf("complete: %w", err)
	}
	value, err := task.Accept(raw)
	if err != nil {
		return zero, err
	}
	return value, nil
}

func reasonFor(err error) string {
	var rej *RejectedError
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return "not_configured"
	case errors.As(err, &rej):
		return "rejected"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, llm.ErrEmptyResponse):
		return "empty"
	default:
		return "error"
	}
}
