package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"cv-backend/cv/content"
	"cv-backend/cv/render"
	"cv-backend/internal/auth"
	"cv-backend/internal/documents"
	"cv-backend/internal/llm"
	"cv-backend/internal/llm/gemini"
	"cv-backend/internal/llm/openai"
	"cv-backend/internal/services/health"
	"cv-backend/internal/sessions"
	"cv-backend/internal/shared/config"
	"cv-backend/internal/shared/server"
	"cv-backend/internal/shared/server/middleware"
	"cv-backend/internal/shared/storage/cache"
	"cv-backend/internal/shared/storage/db"
	"cv-backend/internal/shared/storage/object"
	localstore "cv-backend/internal/shared/storage/object/local"
	s3store "cv-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies and the HTTP router.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Redis            *redis.Client
	Store            object.ObjectStore
	LLM              llm.Client
	Content          *content.Generator
	Renderer         *render.Renderer
	SessionStore     sessions.Store
	DocumentsRepo    documents.Repo
	SessionsService  *sessions.Service
	DocumentsService *documents.Service
	SessionsHandler  *sessions.Handler
	DocumentsHandler *documents.Handler
	Auth             *auth.LinkedInService
	Health           *health.Service
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.SessionStore) == "" {
		cfg.SessionStore = "memory"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sessionStore, redisClient, err := buildSessionStore(ctx, cfg, sqlDB)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := BuildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:       cfg,
		DB:           sqlDB,
		Redis:        redisClient,
		Store:        store,
		LLM:          llmClient,
		Content:      content.NewGenerator(llmClient, cfg.AITimeout),
		Renderer:     buildRenderer(cfg),
		SessionStore: sessionStore,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Health:          app.Health,
		Auth:            app.Auth,
		SessionHandler:  app.SessionsHandler,
		DocumentHandler: app.DocumentsHandler,
		Limiter:         middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases network resources held by the app.
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.SessionStore == "postgres" && !isDevLike(cfg.Env) {
			return nil, fmt.Errorf("SESSION_STORE=postgres requires DATABASE_URL")
		}
		return nil, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			sqlDB.Close()
			sqlDB = nil
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database unavailable; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildSessionStore(ctx context.Context, cfg config.Config, sqlDB *sql.DB) (sessions.Store, *redis.Client, error) {
	switch cfg.SessionStore {
	case "redis":
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: redis unavailable; using in-memory sessions: %v", err)
				return sessions.NewMemoryStore(), nil, nil
			}
			return nil, nil, err
		}
		return sessions.NewRedisStore(client, cfg.SessionTTL), client, nil
	case "postgres":
		if sqlDB == nil {
			log.Printf("bootstrap: no database; using in-memory sessions")
			return sessions.NewMemoryStore(), nil, nil
		}
		return &sessions.PGStore{DB: sqlDB}, nil, nil
	default:
		return sessions.NewMemoryStore(), nil, nil
	}
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		dir := cfg.PDFOutputDir
		if strings.TrimSpace(dir) == "" {
			dir = localstore.DefaultDir()
		}
		return localstore.New(dir), nil
	}
}

// BuildLLM returns the text-generation client for cfg. Without a provider key
// it returns the placeholder client so callers use fixed templates.
func BuildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	key := cfg.AIKey()
	if cfg.LLMProvider == llm.ProviderNone || strings.TrimSpace(key) == "" {
		log.Printf("bootstrap: text generation disabled (provider=%s); fixed templates will be used", cfg.LLMProvider)
		return llm.PlaceholderClient{}, nil
	}
	switch cfg.LLMProvider {
	case llm.ProviderOpenAI:
		client, err := openai.NewClient(key, cfg.LLMModel, cfg.AITimeout)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		client, err := gemini.NewClient(ctx, gemini.Options{APIKey: key, Model: cfg.LLMModel})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func buildRenderer(cfg config.Config) *render.Renderer {
	if cfg.RenderEngine == "chrome" {
		return &render.Renderer{
			Primary:  render.NewChromeLayout(cfg.ChromePath),
			Fallback: render.NewBasicLayout(),
		}
	}
	return render.NewRenderer()
}

func buildServices(app *App) error {
	var docRepo documents.Repo
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
	}

	sessionSvc := sessions.NewService(app.SessionStore, app.Content)
	docSvc := &documents.Service{
		Sessions: sessionSvc,
		Content:  app.Content,
		Renderer: app.Renderer,
		Store:    app.Store,
		Repo:     docRepo,
	}

	app.DocumentsRepo = docRepo
	app.SessionsService = sessionSvc
	app.DocumentsService = docSvc
	app.SessionsHandler = sessions.NewHandler(sessionSvc)
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.Auth = auth.NewLinkedInService(auth.LinkedInConfig{
		ClientID:     app.Config.LinkedInClientID,
		ClientSecret: app.Config.LinkedInSecret,
		RedirectURL:  app.Config.LinkedInRedirect,
		FrontendURL:  app.Config.FrontendURL,
	}, sessionSvc)
	app.Health = health.NewService(app.Config.LLMProvider, app.Content.Configured)

	if app.SessionsHandler == nil || app.DocumentsHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
