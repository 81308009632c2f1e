package content

import (
	"context"
	"regexp"
	"strings"

	"cv-backend/cv/fallback"
	"cv-backend/cv/model"
	"cv-backend/cv/prompts"
)

// Intents used for logging and metrics.
const (
	IntentSummary    = "summary"
	IntentSkills     = "skills"
	IntentExperience = "experience"
)

const minSkills = 3

// GenerateSummary returns a professional summary for in.
func GenerateSummary(ctx context.Context, g *Generator, in prompts.SummaryInput) Result[string] {
	return Run(ctx, g, Task[string]{
		Intent: IntentSummary,
		Prompt: func() string { return prompts.Summary(in) },
		Accept: func(raw string) (string, error) {
			text := Clean(raw)
			if err := summaryGate.Check(text); err != nil {
				return "", err
			}
			return text, nil
		},
		Fallback: func() string {
			return fallback.Summary(in.Title, in.Skills, in.Experience)
		},
	})
}

// GenerateSkills returns a skill list for in. On failure the current skills
// are kept, or a title-driven list is used when there are none.
func GenerateSkills(ctx context.Context, g *Generator, in prompts.SkillsInput) Result[[]string] {
	return Run(ctx, g, Task[[]string]{
		Intent: IntentSkills,
		Prompt: func() string { return prompts.Skills(in) },
		Accept: func(raw string) ([]string, error) {
			skills := ParseSkills(raw)
			if len(skills) < minSkills {
				return nil, &RejectedError{Gate: IntentSkills, Reason: "too few skills"}
			}
			return skills, nil
		},
		Fallback: func() []string {
			if current := model.NormalizeSkills(in.CurrentSkills); len(current) > 0 {
				return current
			}
			return fallback.Skills(in.Title)
		},
	})
}

// GenerateExperienceDescription returns a description for entry.
func GenerateExperienceDescription(ctx context.Context, g *Generator, entry model.ExperienceEntry) Result[string] {
	return Run(ctx, g, Task[string]{
		Intent: IntentExperience,
		Prompt: func() string { return prompts.Experience(entry) },
		Accept: func(raw string) (string, error) {
			text := Clean(raw)
			if err := experienceGate.Check(text); err != nil {
				return "", err
			}
			return text, nil
		},
		Fallback: func() string {
			return fallback.ExperienceDescription(entry.Title, entry.Company, entry.Description)
		},
	})
}

var (
	listMarkerRe = regexp.MustCompile(`^(?:[-*•·]+|\d+[.)])\s*`)
	separatorRe  = regexp.MustCompile(`[,\n;•]`)
)

// ParseSkills splits a generated skill list into normalized labels.
func ParseSkills(raw string) []string {
	parts := separatorRe.Split(cleanLines(raw), -1)
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = listMarkerRe.ReplaceAllString(p, "")
		p = trimLabel(p)
		if p == "" || len([]rune(p)) > 60 {
			continue
		}
		labels = append(labels, p)
	}
	return model.NormalizeSkills(labels)
}

// trimLabel strips wrapping quotes, emphasis and a trailing period. Leading
// dots are kept so ".NET" survives.
func trimLabel(s string) string {
	const wrap = "\"'`*"
	s = strings.TrimRight(strings.Trim(strings.TrimSpace(s), wrap), ".")
	return strings.TrimSpace(strings.Trim(s, wrap))
}
