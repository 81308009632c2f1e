package documents

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"cv-backend/cv/model"
	"cv-backend/cv/render"
	"cv-backend/internal/shared/server/middleware"
	"cv-backend/internal/shared/server/respond"
	"cv-backend/internal/shared/util"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches download and history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	h.RegisterDownloadRoute(rg)
	rg.GET("/documents", h.list)
}

// RegisterDownloadRoute attaches only the download route. The un-prefixed
// legacy path uses it.
func (h *Handler) RegisterDownloadRoute(rg *gin.RouterGroup) {
	rg.GET("/download_cv", h.download)
}

// RegisterGenerateRoutes attaches the render route, kept apart so it can be rate limited.
func (h *Handler) RegisterGenerateRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate_cv", h.generate)
}

type generateRequest struct {
	UserID string `json:"user_id"`
	Style  string `json:"style"`
	model.ProfilePatch
}

func (h *Handler) generate(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}

	var req generateRequest
	if c.ContentType() == "application/json" {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
			return
		}
	} else {
		req = bindForm(c)
	}
	userID := util.FirstNonEmpty(req.UserID, middleware.UserIDFromContext(c))
	middleware.SetUserID(c, userID)

	doc, err := h.Svc.Generate(c.Request.Context(), GenerateRequest{
		UserID: userID,
		Patch:  req.ProfilePatch,
		Style:  req.Style,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownUser):
			respond.Error(c, http.StatusBadRequest, "unknown_user", "no session for user_id", nil)
		case errors.Is(err, ErrInvalidInput), errors.Is(err, model.ErrInvalidProfile):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, render.ErrRender):
			respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to render document", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate document", nil)
		}
		return
	}

	c.Set("renderLayout", doc.Layout)
	respond.OK(c, toResponse(doc))
}

// bindForm reads the form-encoded variant: comma separated skills, and
// experience items that become entries carrying only a description.
func bindForm(c *gin.Context) generateRequest {
	var req generateRequest
	req.UserID = c.PostForm("user_id")
	req.Style = c.PostForm("style")
	if v, ok := c.GetPostForm("title"); ok {
		req.Title = &v
	}
	if v, ok := c.GetPostForm("phone"); ok {
		req.Phone = &v
	}
	if v, ok := c.GetPostForm("skills"); ok {
		skills := model.SplitList(v)
		req.Skills = &skills
	}
	if v, ok := c.GetPostForm("experience"); ok {
		items := strings.Split(v, ",")
		entries := make([]model.ExperienceEntry, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				entries = append(entries, model.ExperienceEntry{Description: item})
			}
		}
		req.Experience = &entries
	}
	return req
}

func (h *Handler) download(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	storagePath := strings.TrimSpace(c.Query("path"))
	if storagePath == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "path is required", nil)
		return
	}

	rc, name, err := h.Svc.Open(c.Request.Context(), storagePath)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open document", nil)
		}
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, pdfContentType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, name),
	})
}

func (h *Handler) list(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	docs, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		}
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.JSON(c, http.StatusOK, resp)
}
