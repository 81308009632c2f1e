package sessions

import (
	"encoding/json"
	"time"

	"cv-backend/cv/model"
)

// Identity is the subset of the identity provider's userinfo kept per session.
// Raw holds the full provider payload for debugging and is never sent to clients.
type Identity struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Picture   string          `json:"picture"`
	Raw       json.RawMessage `json:"raw,omitempty"`
}

// Session is the per-user record: who logged in and the CV being edited.
type Session struct {
	Identity  Identity      `json:"identity"`
	Profile   model.Profile `json:"profile"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Regeneratable fields.
const (
	FieldSummary    = "summary"
	FieldSkills     = "skills"
	FieldExperience = "experience"
)

// RegenerateRequest asks for one profile field to be rewritten.
type RegenerateRequest struct {
	UserID         string
	Field          string
	Index          *int
	ExperienceData *model.ExperiencePatch
	CurrentData    *model.ProfilePatch
	Style          string
}

// RegenerateResult carries only the regenerated value.
type RegenerateResult struct {
	Field string `json:"field"`
	Value any    `json:"value"`
	Index *int   `json:"index,omitempty"`
}

func initialProfile(identity Identity) model.Profile {
	p := model.Empty()
	p.FullName = identity.Name
	p.Email = identity.Email
	return p.Normalize()
}

func cloneSession(s Session) Session {
	out := s
	if s.Identity.Raw != nil {
		out.Identity.Raw = append(json.RawMessage(nil), s.Identity.Raw...)
	}
	out.Profile = cloneProfile(s.Profile)
	return out
}

func cloneProfile(p model.Profile) model.Profile {
	out := p
	out.Skills = append(make([]string, 0, len(p.Skills)), p.Skills...)
	out.Experience = append(make([]model.ExperienceEntry, 0, len(p.Experience)), p.Experience...)
	out.Education = append(make([]model.EducationEntry, 0, len(p.Education)), p.Education...)
	out.Projects = append(make([]model.ProjectEntry, 0, len(p.Projects)), p.Projects...)
	out.Languages = append(make([]string, 0, len(p.Languages)), p.Languages...)
	return out
}
