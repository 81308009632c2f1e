package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cv-backend/internal/shared/metrics"
	"cv-backend/internal/shared/telemetry"
)

// ErrRender is returned when no layout could produce a document.
var ErrRender = errors.New("render failed")

// Layout draws planned blocks into PDF bytes.
type Layout interface {
	Name() string
	Render(ctx context.Context, blocks []Block) ([]byte, error)
}

// Output is a rendered document and the layout that produced it.
type Output struct {
	Data   []byte
	Layout string
}

// Renderer tries Primary first and Fallback once if it fails.
type Renderer struct {
	Primary  Layout
	Fallback Layout
}

// NewRenderer returns a renderer using the structured layout with the basic
// canvas as fallback.
func NewRenderer() *Renderer {
	return &Renderer{Primary: NewStructuredLayout(), Fallback: NewBasicLayout()}
}

// Render plans doc and renders it.
func (r *Renderer) Render(ctx context.Context, doc Document) (Output, error) {
	blocks := Plan(doc)
	start := time.Now()
	defer func() { metrics.ObserveRenderDurationMs(metrics.SinceMillis(start)) }()

	data, primaryErr := r.Primary.Render(ctx, blocks)
	if primaryErr == nil {
		metrics.IncRender(r.Primary.Name())
		return Output{Data: data, Layout: r.Primary.Name()}, nil
	}
	if r.Fallback == nil {
		return Output{}, fmt.Errorf("%w: %s: %v", ErrRender, r.Primary.Name(), primaryErr)
	}

	telemetry.Warn("render.fallback", map[string]any{
		"layout":   r.Primary.Name(),
		"fallback": r.Fallback.Name(),
		"error":    primaryErr.Error(),
	})
	data, fallbackErr := r.Fallback.Render(ctx, blocks)
	if fallbackErr != nil {
		return Output{}, fmt.Errorf("%w: %s: %v; %s: %v", ErrRender, r.Primary.Name(), primaryErr, r.Fallback.Name(), fallbackErr)
	}
	metrics.IncRender(r.Fallback.Name())
	return Output{Data: data, Layout: r.Fallback.Name()}, nil
}
