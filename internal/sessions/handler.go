package sessions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cv-backend/cv/model"
	"cv-backend/internal/shared/server/middleware"
	"cv-backend/internal/shared/server/respond"
	"cv-backend/internal/shared/util"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts the profile routes. Regeneration is registered
// separately so it can sit behind the generation rate limit.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.getProfile)
	rg.POST("/profile", h.updateProfile)
	rg.POST("/clear", h.clear)
}

func (h *Handler) RegisterRegenerateRoutes(rg *gin.RouterGroup) {
	rg.POST("/regenerate", h.regenerate)
}

type updateProfileRequest struct {
	UserID string `json:"user_id"`
	model.ProfilePatch
}

type clearRequest struct {
	UserID string `json:"user_id"`
}

type regenerateRequest struct {
	UserID         string                 `json:"user_id"`
	Field          string                 `json:"field"`
	Index          *int                   `json:"index"`
	ExperienceData *model.ExperiencePatch `json:"experience_data"`
	CurrentData    *model.ProfilePatch    `json:"current_data"`
	Style          string                 `json:"style"`
}

func (h *Handler) getProfile(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	session, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, ProfileResponse(session))
}

func (h *Handler) updateProfile(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}
	userID := util.FirstNonEmpty(req.UserID, middleware.UserIDFromContext(c))
	middleware.SetUserID(c, userID)
	session, err := h.Svc.UpdateProfile(c.Request.Context(), userID, req.ProfilePatch)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, ProfileResponse(session))
}

func (h *Handler) clear(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req clearRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
			return
		}
	}
	userID := util.FirstNonEmpty(middleware.UserIDFromContext(c), req.UserID)
	middleware.SetUserID(c, userID)
	session, err := h.Svc.Clear(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, ProfileResponse(session))
}

func (h *Handler) regenerate(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}
	userID := util.FirstNonEmpty(req.UserID, middleware.UserIDFromContext(c))
	middleware.SetUserID(c, userID)
	c.Set("regenerateField", req.Field)

	result, err := h.Svc.Regenerate(c.Request.Context(), RegenerateRequest{
		UserID:         userID,
		Field:          req.Field,
		Index:          req.Index,
		ExperienceData: req.ExperienceData,
		CurrentData:    req.CurrentData,
		Style:          req.Style,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, result)
}

// ProfileResponse flattens identity and profile into the shape the editor expects.
func ProfileResponse(s Session) gin.H {
	p := s.Profile
	return gin.H{
		"id":         s.Identity.ID,
		"name":       s.Identity.Name,
		"firstName":  s.Identity.FirstName,
		"lastName":   s.Identity.LastName,
		"picture":    s.Identity.Picture,
		"fullName":   p.FullName,
		"title":      p.Title,
		"email":      p.Email,
		"phone":      p.Phone,
		"location":   p.Location,
		"summary":    p.Summary,
		"skills":     p.Skills,
		"experience": p.Experience,
		"education":  p.Education,
		"projects":   p.Projects,
		"languages":  p.Languages,
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusBadRequest, "unknown_user", "no session for user_id", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrInvalidField):
		respond.Error(c, http.StatusBadRequest, "invalid_field", err.Error(), gin.H{"allowed": []string{FieldSummary, FieldSkills, FieldExperience}})
	case errors.Is(err, ErrIndexRequired):
		respond.Error(c, http.StatusBadRequest, "index_required", "index is required for experience", nil)
	case errors.Is(err, ErrIndexOutOfRange):
		respond.Error(c, http.StatusBadRequest, "index_out_of_range", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "session operation failed", nil)
	}
}
