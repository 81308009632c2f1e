package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-backend/internal/shared/server/respond"
)

const message = "LinkedIn CV generator API"

// StatusResponse is the health payload.
type StatusResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	AIConfigured bool   `json:"ai_configured"`
	Provider     string `json:"provider"`
}

// Service encapsulates health-related checks.
type Service struct {
	provider     string
	aiConfigured func() bool
}

// NewService constructs a new health service. aiConfigured reports whether
// text generation has a usable provider.
func NewService(provider string, aiConfigured func() bool) *Service {
	return &Service{provider: provider, aiConfigured: aiConfigured}
}

// Status returns the health payload.
func (s *Service) Status() StatusResponse {
	configured := s.aiConfigured != nil && s.aiConfigured()
	provider := s.provider
	if !configured {
		provider = "none"
	}
	return StatusResponse{
		Status:       "healthy",
		Message:      message,
		AIConfigured: configured,
		Provider:     provider,
	}
}

// RegisterRoutes mounts GET / and GET /health.
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", s.handle)
	rg.GET("/health", s.handle)
}

func (s *Service) handle(c *gin.Context) {
	respond.JSON(c, http.StatusOK, s.Status())
}
