package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidProfile indicates the profile is missing fields required for a document.
var ErrInvalidProfile = errors.New("invalid profile")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Profile is the structured résumé data for one user.
type Profile struct {
	FullName   string            `json:"fullName" validate:"required"`
	Title      string            `json:"title" validate:"required"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Location   string            `json:"location"`
	Summary    string            `json:"summary"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Projects   []ProjectEntry    `json:"projects"`
	Languages  []string          `json:"languages"`
}

// ExperienceEntry is a work history entry. Only Description is regenerated.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Years       string `json:"years"`
	Description string `json:"description"`
}

// EducationEntry is an education history entry.
type EducationEntry struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Years  string `json:"years"`
}

// ProjectEntry is a notable project.
type ProjectEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Empty returns a profile with every collection allocated and every string blank.
func Empty() Profile {
	return Profile{
		Skills:     []string{},
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
		Projects:   []ProjectEntry{},
		Languages:  []string{},
	}
}

// ValidateForDocument reports the fields that must be present before rendering.
func (p Profile) ValidateForDocument() error {
	trimmed := p
	trimmed.FullName = strings.TrimSpace(p.FullName)
	trimmed.Title = strings.TrimSpace(p.Title)

	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, jsonName(fe.Field()))
	}
	return fmt.Errorf("%w: %s required", ErrInvalidProfile, strings.Join(missing, " and "))
}

func jsonName(field string) string {
	switch field {
	case "FullName":
		return "fullName"
	case "Title":
		return "title"
	default:
		return strings.ToLower(field)
	}
}

// Normalize trims every field and flattens skills. Entries keep their
// positions so experience indexes stay stable between requests.
func (p Profile) Normalize() Profile {
	out := p
	out.FullName = strings.TrimSpace(p.FullName)
	out.Title = strings.TrimSpace(p.Title)
	out.Email = strings.TrimSpace(p.Email)
	out.Phone = strings.TrimSpace(p.Phone)
	out.Location = strings.TrimSpace(p.Location)
	out.Summary = strings.TrimSpace(p.Summary)
	out.Skills = NormalizeSkills(p.Skills)
	out.Languages = normalizeLabels(p.Languages)

	out.Experience = make([]ExperienceEntry, 0, len(p.Experience))
	for _, e := range p.Experience {
		e = ExperienceEntry{
			Title:       strings.TrimSpace(e.Title),
			Company:     strings.TrimSpace(e.Company),
			Years:       strings.TrimSpace(e.Years),
			Description: strings.TrimSpace(e.Description),
		}
		out.Experience = append(out.Experience, e)
	}

	out.Education = make([]EducationEntry, 0, len(p.Education))
	for _, e := range p.Education {
		e = EducationEntry{
			School: strings.TrimSpace(e.School),
			Degree: strings.TrimSpace(e.Degree),
			Years:  strings.TrimSpace(e.Years),
		}
		out.Education = append(out.Education, e)
	}

	out.Projects = make([]ProjectEntry, 0, len(p.Projects))
	for _, e := range p.Projects {
		e = ProjectEntry{
			Name:        strings.TrimSpace(e.Name),
			Description: strings.TrimSpace(e.Description),
		}
		out.Projects = append(out.Projects, e)
	}
	return out
}

// NormalizeSkills flattens comma-joined labels, trims them and removes
// case-insensitive duplicates while keeping the first spelling.
func NormalizeSkills(skills []string) []string {
	var split []string
	for _, s := range skills {
		split = append(split, strings.Split(s, ",")...)
	}
	return normalizeLabels(split)
}

// SplitList splits a comma separated form value into trimmed, non-empty items.
func SplitList(raw string) []string {
	return normalizeLabels(strings.Split(raw, ","))
}

func normalizeLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		key := strings.ToLower(l)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, l)
	}
	return out
}
