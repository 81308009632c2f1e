package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultFrontendURL = "https://linked-resumes.lovable.app"

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	FrontendURL        string
	CORSAllowOrigin    []string
	LinkedInClientID   string
	LinkedInSecret     string
	LinkedInRedirect   string
	LLMProvider        string
	LLMModel           string
	GeminiAPIKey       string
	OpenAIAPIKey       string
	AITimeout          time.Duration
	SessionStore       string
	RedisURL           string
	SessionTTL         time.Duration
	DatabaseURL        string
	ObjectStoreType    string
	PDFOutputDir       string
	AWSRegion          string
	S3Bucket           string
	S3Prefix           string
	SSEKMSKeyID        string
	RenderEngine       string
	ChromePath         string
	RateLimitPerMinute int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	frontend := strings.TrimRight(getEnv("FRONTEND_URL", defaultFrontendURL), "/")
	sessionStore := normalizeSessionStore(getEnv("SESSION_STORE", "memory"))
	dbURL := os.Getenv("DATABASE_URL")

	if sessionStore == "postgres" && dbURL == "" {
		log.Printf("SESSION_STORE=postgres requires DATABASE_URL")
	}

	return Config{
		Port:               getEnv("PORT", "8000"),
		Env:                env,
		FrontendURL:        frontend,
		CORSAllowOrigin:    withOrigin(splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "")), frontend),
		LinkedInClientID:   getEnv("LINKEDIN_CLIENT_ID", ""),
		LinkedInSecret:     getEnv("LINKEDIN_CLIENT_SECRET", ""),
		LinkedInRedirect:   getEnv("REDIRECT_URI", ""),
		LLMProvider:        normalizeProvider(getEnv("LLM_PROVIDER", "gemini")),
		LLMModel:           getEnv("LLM_MODEL", ""),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		AITimeout:          time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,
		SessionStore:       sessionStore,
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionTTL:         getEnvDuration("SESSION_TTL", 0),
		DatabaseURL:        dbURL,
		ObjectStoreType:    normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		PDFOutputDir:       getEnv("PDF_OUTPUT_DIR", ""),
		AWSRegion:          getEnv("AWS_REGION", ""),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3Prefix:           getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:        getEnv("SSE_KMS_KEY_ID", ""),
		RenderEngine:       normalizeRenderEngine(getEnv("RENDER_ENGINE", "pdf")),
		ChromePath:         getEnv("CHROME_PATH", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}
}

// AIKey returns the credential for the configured provider.
func (c Config) AIKey() string {
	switch c.LLMProvider {
	case "openai":
		return c.OpenAIAPIKey
	case "gemini":
		return c.GeminiAPIKey
	default:
		return ""
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Printf("invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return v
}

// getEnvDuration accepts Go durations ("30m") or plain seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	log.Printf("invalid %s=%q, using %s", key, raw, def)
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func withOrigin(origins []string, origin string) []string {
	if origin == "" {
		return origins
	}
	for _, o := range origins {
		if o == origin {
			return origins
		}
	}
	return append(origins, origin)
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeSessionStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "redis":
		return "redis"
	case "postgres", "postgresql", "pg":
		return "postgres"
	default:
		return "memory"
	}
}

func normalizeRenderEngine(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "chrome", "chromedp", "html":
		return "chrome"
	default:
		return "pdf"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "none", "off", "disabled":
		return "none"
	default:
		return "gemini"
	}
}
