package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"FRONTEND_URL", "CORS_ALLOW_ORIGINS", "SESSION_STORE", "LLM_PROVIDER", "AI_TIMEOUT_SECONDS", "RENDER_ENGINE", "PORT", "SESSION_TTL"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	if cfg.Port != "8000" {
		t.Fatalf("expected default port 8000, got %q", cfg.Port)
	}
	if cfg.FrontendURL != defaultFrontendURL {
		t.Fatalf("unexpected frontend %q", cfg.FrontendURL)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != defaultFrontendURL {
		t.Fatalf("expected frontend in CORS origins, got %v", cfg.CORSAllowOrigin)
	}
	if cfg.SessionStore != "memory" || cfg.LLMProvider != "gemini" || cfg.RenderEngine != "pdf" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.AITimeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.AITimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FRONTEND_URL", "http://localhost:5173/")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SESSION_STORE", "PG")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AI_TIMEOUT_SECONDS", "5")
	t.Setenv("SESSION_TTL", "90")
	t.Setenv("RENDER_ENGINE", "chromedp")

	cfg := Load()
	if cfg.FrontendURL != "http://localhost:5173" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.FrontendURL)
	}
	if len(cfg.CORSAllowOrigin) != 3 {
		t.Fatalf("expected 3 origins, got %v", cfg.CORSAllowOrigin)
	}
	if cfg.SessionStore != "postgres" || cfg.LLMProvider != "openai" || cfg.RenderEngine != "chrome" {
		t.Fatalf("unexpected normalization %+v", cfg)
	}
	if cfg.AIKey() != "sk-test" {
		t.Fatalf("expected openai key, got %q", cfg.AIKey())
	}
	if cfg.AITimeout != 5*time.Second || cfg.SessionTTL != 90*time.Second {
		t.Fatalf("unexpected durations %s %s", cfg.AITimeout, cfg.SessionTTL)
	}
}
