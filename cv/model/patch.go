package model

// ProfilePatch carries optional profile fields supplied by a client.
// Nil fields leave the target untouched; non-nil fields replace it.
type ProfilePatch struct {
	FullName   *string            `json:"fullName,omitempty"`
	Title      *string            `json:"title,omitempty"`
	Email      *string            `json:"email,omitempty"`
	Phone      *string            `json:"phone,omitempty"`
	Location   *string            `json:"location,omitempty"`
	Summary    *string            `json:"summary,omitempty"`
	Skills     *[]string          `json:"skills,omitempty"`
	Experience *[]ExperienceEntry `json:"experience,omitempty"`
	Education  *[]EducationEntry  `json:"education,omitempty"`
	Projects   *[]ProjectEntry    `json:"projects,omitempty"`
	Languages  *[]string          `json:"languages,omitempty"`
}

// Apply merges the patch into base and returns the normalized result.
func (p ProfilePatch) Apply(base Profile) Profile {
	out := base
	if p.FullName != nil {
		out.FullName = *p.FullName
	}
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Phone != nil {
		out.Phone = *p.Phone
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.Summary != nil {
		out.Summary = *p.Summary
	}
	if p.Skills != nil {
		out.Skills = append([]string(nil), (*p.Skills)...)
	}
	if p.Experience != nil {
		out.Experience = append([]ExperienceEntry(nil), (*p.Experience)...)
	}
	if p.Education != nil {
		out.Education = append([]EducationEntry(nil), (*p.Education)...)
	}
	if p.Projects != nil {
		out.Projects = append([]ProjectEntry(nil), (*p.Projects)...)
	}
	if p.Languages != nil {
		out.Languages = append([]string(nil), (*p.Languages)...)
	}
	return out.Normalize()
}

// ExperiencePatch carries optional fields for a single experience entry.
type ExperiencePatch struct {
	Title       *string `json:"title,omitempty"`
	Company     *string `json:"company,omitempty"`
	Years       *string `json:"years,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply merges the patch into entry.
func (p ExperiencePatch) Apply(entry ExperienceEntry) ExperienceEntry {
	if p.Title != nil {
		entry.Title = *p.Title
	}
	if p.Company != nil {
		entry.Company = *p.Company
	}
	if p.Years != nil {
		entry.Years = *p.Years
	}
	if p.Description != nil {
		entry.Description = *p.Description
	}
	return entry
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }
