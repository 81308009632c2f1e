package server

import (
	"github.com/gin-gonic/gin"

	"cv-backend/internal/auth"
	"cv-backend/internal/documents"
	"cv-backend/internal/services/health"
	"cv-backend/internal/sessions"
	"cv-backend/internal/shared/config"
	"cv-backend/internal/shared/metrics"
	"cv-backend/internal/shared/server/middleware"
)

// generationGroup is the rate-limit bucket shared by routes that call the
// text-generation provider or render a PDF.
const generationGroup = "generation"

// maxUserIDBodyBytes bounds how much of a JSON body is read to find user_id
// before rate limiting. Profile payloads are far smaller.
const maxUserIDBodyBytes = 256 << 10

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	Auth            *auth.LinkedInService
	SessionHandler  *sessions.Handler
	DocumentHandler *documents.Handler
	Limiter         *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.UserID(),
	)

	rules := map[string]middleware.RateLimitRule{}
	if n := deps.Config.RateLimitPerMinute; n > 0 {
		rules[generationGroup] = middleware.PerMinute(n)
	}
	limited := []gin.HandlerFunc{
		middleware.UserIDFromBody(maxUserIDBodyBytes),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        rules,
			DefaultGroup: generationGroup,
			Limiter:      deps.Limiter,
		}),
	}

	r.GET("/metrics", metrics.Handler())
	if deps.Health != nil {
		deps.Health.RegisterRoutes(&r.RouterGroup)
	}
	if deps.Auth != nil {
		deps.Auth.RegisterRoutes(&r.RouterGroup)
	}

	api := r.Group("/api")
	apiLimited := api.Group("", limited...)
	if deps.SessionHandler != nil {
		deps.SessionHandler.RegisterRoutes(api)
		deps.SessionHandler.RegisterRegenerateRoutes(apiLimited)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
		deps.DocumentHandler.RegisterGenerateRoutes(apiLimited)

		// Un-prefixed paths used by the first frontend revision.
		deps.DocumentHandler.RegisterDownloadRoute(&r.RouterGroup)
		deps.DocumentHandler.RegisterGenerateRoutes(r.Group("", limited...))
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
