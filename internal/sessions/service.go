package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cv-backend/cv/content"
	"cv-backend/cv/model"
	"cv-backend/cv/prompts"
	"cv-backend/internal/shared/telemetry"
)

type Service struct {
	Store   Store
	Content *content.Generator
	Now     func() time.Time
}

func NewService(store Store, gen *content.Generator) *Service {
	if gen == nil {
		gen = content.NewGenerator(nil, 0)
	}
	return &Service{Store: store, Content: gen, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) ready() error {
	if s == nil || s.Store == nil {
		return errors.New("sessions service not configured")
	}
	return nil
}

// Initialize creates a fresh session for identity, replacing any previous one.
// The profile is prefilled with the identity's name and email.
func (s *Service) Initialize(ctx context.Context, identity Identity) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	identity.ID = strings.TrimSpace(identity.ID)
	if identity.ID == "" {
		return Session{}, fmt.Errorf("%w: identity id is required", ErrInvalidInput)
	}
	now := s.now()
	session := Session{
		Identity:  identity,
		Profile:   initialProfile(identity),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Put(ctx, session); err != nil {
		return Session{}, err
	}
	telemetry.Info("session.initialized", map[string]any{"user_id": identity.ID})
	return session, nil
}

func (s *Service) Get(ctx context.Context, userID string) (Session, error) {
	if err := s.ready(); err != nil {
		return Session{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Session{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	return s.Store.Get(ctx, userID)
}

// UpdateProfile merges patch into the stored profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch model.ProfilePatch) (Session, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	session.Profile = patch.Apply(session.Profile)
	return s.save(ctx, session)
}

// Clear resets the profile to its post-login shape while keeping the identity.
func (s *Service) Clear(ctx context.Context, userID string) (Session, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	session.Profile = initialProfile(session.Identity)
	return s.save(ctx, session)
}

// Regenerate rewrites one field of the profile. Generation never fails; the
// only errors are validation and storage errors.
func (s *Service) Regenerate(ctx context.Context, req RegenerateRequest) (RegenerateResult, error) {
	field := strings.ToLower(strings.TrimSpace(req.Field))
	switch field {
	case FieldSummary, FieldSkills, FieldExperience:
	case "":
		return RegenerateResult{}, fmt.Errorf("%w: field is required", ErrInvalidField)
	default:
		return RegenerateResult{}, fmt.Errorf("%w: %q", ErrInvalidField, req.Field)
	}
	if field == FieldExperience && req.Index == nil {
		return RegenerateResult{}, ErrIndexRequired
	}

	session, err := s.Get(ctx, req.UserID)
	if err != nil {
		return RegenerateResult{}, err
	}
	profile := session.Profile
	if req.CurrentData != nil {
		profile = req.CurrentData.Apply(profile)
	}

	var result RegenerateResult
	switch field {
	case FieldSummary:
		res := content.GenerateSummary(ctx, s.Content, prompts.SummaryInputFrom(profile, req.Style))
		profile.Summary = res.Value
		result = RegenerateResult{Field: field, Value: res.Value}
	case FieldSkills:
		res := content.GenerateSkills(ctx, s.Content, prompts.SkillsInputFrom(profile))
		profile.Skills = model.NormalizeSkills(res.Value)
		result = RegenerateResult{Field: field, Value: profile.Skills}
	case FieldExperience:
		idx := *req.Index
		if idx < 0 || idx >= len(profile.Experience) {
			return RegenerateResult{}, fmt.Errorf("%w: index %d, %d entries", ErrIndexOutOfRange, idx, len(profile.Experience))
		}
		entry := profile.Experience[idx]
		if req.ExperienceData != nil {
			entry = req.ExperienceData.Apply(entry)
		}
		res := content.GenerateExperienceDescription(ctx, s.Content, entry)
		entry.Description = res.Value
		profile.Experience[idx] = entry
		result = RegenerateResult{Field: field, Value: res.Value, Index: &idx}
	}

	session.Profile = profile
	if _, err := s.save(ctx, session); err != nil {
		return RegenerateResult{}, err
	}
	return result, nil
}

func (s *Service) save(ctx context.Context, session Session) (Session, error) {
	session.UpdatedAt = s.now()
	if err := s.Store.Put(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}
