// Package prompts renders the instructions sent to the text-generation
// provider. Builders are pure; empty inputs render as NotProvided.
package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	"cv-backend/cv/model"
)

var (
	//go:embed templates/summary.txt
	summaryTemplate string
	//go:embed templates/skills.txt
	skillsTemplate string
	//go:embed templates/experience.txt
	experienceTemplate string
)

// NotProvided marks an empty field or collection in a prompt.
const NotProvided = "Not provided"

const (
	maxPromptSkills           = 8
	maxExperienceDescription  = 180
	maxProjectDescription     = 150
	maxCurrentDescriptionChar = 200
	defaultStyle              = "minimal"
)

// SummaryInput is the profile subset used for a summary. The candidate's
// name is deliberately absent.
type SummaryInput struct {
	Title      string
	Skills     []string
	Experience []model.ExperienceEntry
	Education  []model.EducationEntry
	Projects   []model.ProjectEntry
	Style      string
}

// SkillsInput is the profile subset used for a skill list.
type SkillsInput struct {
	Title         string
	Experience    []model.ExperienceEntry
	CurrentSkills []string
}

// SummaryInputFrom extracts the summary inputs from a profile.
func SummaryInputFrom(p model.Profile, style string) SummaryInput {
	return SummaryInput{
		Title:      p.Title,
		Skills:     p.Skills,
		Experience: p.Experience,
		Education:  p.Education,
		Projects:   p.Projects,
		Style:      style,
	}
}

// SkillsInputFrom extracts the skills inputs from a profile.
func SkillsInputFrom(p model.Profile) SkillsInput {
	return SkillsInput{
		Title:         p.Title,
		Experience:    p.Experience,
		CurrentSkills: p.Skills,
	}
}

// Summary builds the summary prompt.
func Summary(in SummaryInput) string {
	style := strings.TrimSpace(in.Style)
	if style == "" {
		style = defaultStyle
	}
	skills := in.Skills
	if len(skills) > maxPromptSkills {
		skills = skills[:maxPromptSkills]
	}
	replacer := strings.NewReplacer(
		"{{TITLE}}", orNotProvided(in.Title),
		"{{STYLE}}", style,
		"{{SKILLS}}", joinOrNotProvided(skills, ", "),
		"{{EXPERIENCE}}", experienceLines(in.Experience, maxExperienceDescription),
		"{{EDUCATION}}", educationLines(in.Education),
		"{{PROJECTS}}", projectLines(in.Projects),
	)
	return replacer.Replace(summaryTemplate)
}

// Skills builds the skill list prompt.
func Skills(in SkillsInput) string {
	replacer := strings.NewReplacer(
		"{{TITLE}}", orNotProvided(in.Title),
		"{{EXPERIENCE}}", experienceLines(in.Experience, maxExperienceDescription),
		"{{SKILLS}}", joinOrNotProvided(in.CurrentSkills, ", "),
	)
	return replacer.Replace(skillsTemplate)
}

// Experience builds the prompt for one experience description.
func Experience(entry model.ExperienceEntry) string {
	replacer := strings.NewReplacer(
		"{{TITLE}}", orNotProvided(entry.Title),
		"{{COMPANY}}", orNotProvided(entry.Company),
		"{{YEARS}}", orNotProvided(entry.Years),
		"{{DESCRIPTION}}", orNotProvided(truncate(entry.Description, maxCurrentDescriptionChar)),
	)
	return replacer.Replace(experienceTemplate)
}

func experienceLines(entries []model.ExperienceEntry, limit int) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("- %s at %s (%s)", orNotProvided(e.Title), orNotProvided(e.Company), orNotProvided(e.Years))
		if desc := truncate(e.Description, limit); desc != "" {
			line += ": " + desc
		}
		lines = append(lines, line)
	}
	return joinOrNotProvided(lines, "\n")
}

func educationLines(entries []model.EducationEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- %s, %s (%s)", orNotProvided(e.Degree), orNotProvided(e.School), orNotProvided(e.Years)))
	}
	return joinOrNotProvided(lines, "\n")
}

func projectLines(entries []model.ProjectEntry) string {
	lines := make([]string, 0, len(entries))
	for _, p := range entries {
		line := "- " + orNotProvided(p.Name)
		if desc := truncate(p.Description, maxProjectDescription); desc != "" {
			line += ": " + desc
		}
		lines = append(lines, line)
	}
	return joinOrNotProvided(lines, "\n")
}

func orNotProvided(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotProvided
	}
	return s
}

func joinOrNotProvided(items []string, sep string) string {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return NotProvided
	}
	return strings.Join(kept, sep)
}

// truncate cuts s to limit runes and appends an ellipsis when shortened.
func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
