package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cv-backend/cv/content"
	"cv-backend/cv/model"
	"cv-backend/cv/prompts"
	"cv-backend/cv/render"
	"cv-backend/internal/extract"
	"cv-backend/internal/sessions"
	"cv-backend/internal/shared/metrics"
	"cv-backend/internal/shared/storage/object"
	"cv-backend/internal/shared/telemetry"
)

const (
	pdfContentType  = "application/pdf"
	maxNameAttempts = 100
)

// SessionReader loads the stored session for a user.
type SessionReader interface {
	Get(ctx context.Context, userID string) (sessions.Session, error)
}

// Service renders CVs and stores them as immutable objects.
type Service struct {
	Sessions SessionReader
	Content  *content.Generator
	Renderer *render.Renderer
	Store    object.ObjectStore
	Repo     Repo
	Now      func() time.Time
}

// GenerateRequest asks for a document built from the stored profile with
// Patch applied on top. The stored profile itself is not changed.
type GenerateRequest struct {
	UserID string
	Patch  model.ProfilePatch
	Style  string
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Generate renders the user's CV and writes it under a new name.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (GeneratedDocument, error) {
	if s == nil || s.Sessions == nil || s.Store == nil {
		return GeneratedDocument{}, errors.New("documents service not configured")
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return GeneratedDocument{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	session, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return GeneratedDocument{}, ErrUnknownUser
		}
		return GeneratedDocument{}, err
	}

	profile := req.Patch.Apply(session.Profile)
	if err := profile.ValidateForDocument(); err != nil {
		return GeneratedDocument{}, err
	}
	if profile.Summary == "" {
		profile.Summary = content.GenerateSummary(ctx, s.Content, prompts.SummaryInputFrom(profile, req.Style)).Value
	}

	renderer := s.Renderer
	if renderer == nil {
		renderer = render.NewRenderer()
	}
	out, err := renderer.Render(ctx, render.FromProfile(profile))
	if err != nil {
		metrics.IncDocumentFailed()
		return GeneratedDocument{}, err
	}

	at := s.now()
	key, size, err := s.create(ctx, render.FileName(userID, profile.Title, at), out.Data)
	if err != nil {
		metrics.IncDocumentFailed()
		return GeneratedDocument{}, err
	}

	doc := GeneratedDocument{
		Path:      key,
		FileName:  path.Base(key),
		UserID:    userID,
		Title:     profile.Title,
		CreatedAt: at,
		SizeBytes: size,
		Layout:    out.Layout,
	}
	if info, err := extract.InspectPDF(out.Data); err != nil {
		telemetry.Warn("document.inspect_failed", map[string]any{"path": key, "error": err.Error()})
	} else {
		doc.Pages = info.Pages
	}

	if s.Repo != nil {
		if err := s.Repo.Create(ctx, doc); err != nil {
			metrics.IncDocumentFailed()
			return GeneratedDocument{}, err
		}
	}
	metrics.IncDocumentGenerated()
	telemetry.Info("document.generated", map[string]any{
		"user_id":    userID,
		"path":       key,
		"layout":     doc.Layout,
		"pages":      doc.Pages,
		"size_bytes": size,
	})
	return doc, nil
}

// create writes data under name, appending _<n> before the extension while
// the name is taken.
func (s *Service) create(ctx context.Context, name string, data []byte) (string, int64, error) {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	key := name
	for n := 1; n <= maxNameAttempts; n++ {
		size, err := s.Store.Create(ctx, key, pdfContentType, bytes.NewReader(data))
		if err == nil {
			return key, size, nil
		}
		if !errors.Is(err, object.ErrExists) {
			return "", 0, fmt.Errorf("store document: %w", err)
		}
		key = fmt.Sprintf("%s_%d%s", base, n, ext)
	}
	return "", 0, fmt.Errorf("store document: no free name for %s", name)
}

// Open returns a stored document and its file name.
func (s *Service) Open(ctx context.Context, storagePath string) (io.ReadCloser, string, error) {
	if s == nil || s.Store == nil {
		return nil, "", errors.New("documents service not configured")
	}
	key, err := object.CleanKey(storagePath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !strings.EqualFold(path.Ext(key), ".pdf") {
		return nil, "", fmt.Errorf("%w: not a pdf path", ErrInvalidInput)
	}
	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		switch {
		case errors.Is(err, object.ErrNotFound):
			return nil, "", ErrNotFound
		case errors.Is(err, object.ErrInvalidKey):
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			return nil, "", err
		}
	}
	return rc, path.Base(key), nil
}

// List returns the user's generated documents, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]GeneratedDocument, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if s.Repo == nil {
		return []GeneratedDocument{}, nil
	}
	return s.Repo.ListByUser(ctx, strings.TrimSpace(userID), limit, offset)
}
