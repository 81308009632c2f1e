package llm

import (
	"context"
	"errors"
)

// Client abstracts text-generation providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Provider names accepted by LLM_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("text generation not configured")

// ErrEmptyResponse is returned when a provider answers with no text.
var ErrEmptyResponse = errors.New("empty response")

// PlaceholderClient stands in when no provider credentials are present.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

// Configured reports whether c talks to a real provider.
func Configured(c Client) bool {
	if c == nil {
		return false
	}
	switch c.(type) {
	case PlaceholderClient, *PlaceholderClient:
		return false
	}
	return true
}
