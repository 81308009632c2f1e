// Package fallback produces deterministic résumé text used whenever
// generated content is unavailable or rejected.
package fallback

import (
	"fmt"
	"strings"
	"unicode"

	"cv-backend/cv/model"
)

const (
	noSkillsPhrase   = "a broad set of relevant skills"
	defaultTitle     = "Professional"
	genericDuty      = "Responsible for key duties and achievements in this role."
	minExistingChars = 40
)

// SoftSkills is appended to every role family and returned alone when no
// family matches.
var SoftSkills = []string{"Communication", "Problem Solving", "Team Collaboration"}

type family struct {
	prefixes []string
	skills   []string
}

// Order matters: the first family with a matching word wins. Data and
// finance come first so "Data Engineer" and "Accountant" are not claimed by
// the engineering and sales families.
var families = []family{
	{
		prefixes: []string{"data", "analy", "scien", "statistic"},
		skills:   []string{"Data Analysis", "SQL", "Statistics", "Data Visualization", "Python"},
	},
	{
		prefixes: []string{"accountant", "accounting", "financ", "audit", "bookkeep", "controller"},
		skills:   []string{"Financial Reporting", "Bookkeeping", "Budgeting", "Excel", "Reconciliation"},
	},
	{
		prefixes: []string{"develop", "engineer", "programm", "software", "backend", "frontend", "devops"},
		skills:   []string{"Software Development", "System Design", "Code Review", "Testing", "Version Control"},
	},
	{
		prefixes: []string{"design", "ux", "ui"},
		skills:   []string{"User Research", "Wireframing", "Prototyping", "Figma", "Visual Design"},
	},
	{
		prefixes: []string{"manag", "lead", "director", "head"},
		skills:   []string{"Team Leadership", "Strategic Planning", "Stakeholder Management", "Budgeting", "Mentoring"},
	},
	{
		prefixes: []string{"market"},
		skills:   []string{"Digital Marketing", "Content Strategy", "SEO", "Campaign Management", "Market Research"},
	},
	{
		prefixes: []string{"sales", "account"},
		skills:   []string{"Negotiation", "Lead Generation", "CRM", "Client Relationship Management", "Pipeline Management"},
	},
}

// Summary returns a three sentence professional summary.
func Summary(title string, skills []string, experience []model.ExperienceEntry) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s with expertise in %s.", article(title), title, skillPhrase(skills))
	b.WriteString(" ")
	b.WriteString(experienceSentence(experience))
	b.WriteString(" Committed to delivering reliable results and contributing effectively to every team and project.")
	return b.String()
}

// Skills returns a role-appropriate skill list for title.
func Skills(title string) []string {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	for _, f := range families {
		if matches(words, f.prefixes) {
			out := make([]string, 0, len(f.skills)+len(SoftSkills))
			out = append(out, f.skills...)
			out = append(out, SoftSkills...)
			return model.NormalizeSkills(out)
		}
	}
	return append([]string(nil), SoftSkills...)
}

// ExperienceDescription keeps an existing description when it is substantial
// and otherwise writes a generic one from the title and company.
func ExperienceDescription(title, company, existing string) string {
	if len(strings.TrimSpace(existing)) >= minExistingChars {
		return existing
	}
	title = strings.TrimSpace(title)
	company = strings.TrimSpace(company)
	switch {
	case title != "" && company != "":
		return fmt.Sprintf("Worked as %s at %s, taking ownership of core responsibilities and contributing to the team's key objectives.", title, company)
	case title != "":
		return fmt.Sprintf("Worked as %s, taking ownership of core responsibilities and contributing to the team's key objectives.", title)
	case company != "":
		return fmt.Sprintf("Worked at %s, taking ownership of core responsibilities and contributing to the team's key objectives.", company)
	default:
		return genericDuty
	}
}

func matches(words, prefixes []string) bool {
	for _, w := range words {
		for _, p := range prefixes {
			if strings.HasPrefix(w, p) {
				return true
			}
		}
	}
	return false
}

func skillPhrase(skills []string) string {
	picked := make([]string, 0, 3)
	for _, s := range model.NormalizeSkills(skills) {
		picked = append(picked, s)
		if len(picked) == 3 {
			break
		}
	}
	switch len(picked) {
	case 0:
		return noSkillsPhrase
	case 1:
		return picked[0]
	default:
		return strings.Join(picked[:len(picked)-1], ", ") + " and " + picked[len(picked)-1]
	}
}

func experienceSentence(experience []model.ExperienceEntry) string {
	for _, e := range experience {
		title := strings.TrimSpace(e.Title)
		company := strings.TrimSpace(e.Company)
		switch {
		case title != "" && company != "":
			return fmt.Sprintf("Most recently worked as %s at %s, delivering measurable impact across core responsibilities.", title, company)
		case title != "":
			return fmt.Sprintf("Most recently worked as %s, delivering measurable impact across core responsibilities.", title)
		case company != "":
			return fmt.Sprintf("Most recently worked at %s, delivering measurable impact across core responsibilities.", company)
		}
	}
	if n := len(experience); n > 0 {
		if n == 1 {
			return "Brings hands-on experience from a previous role with a track record of dependable delivery."
		}
		return fmt.Sprintf("Brings hands-on experience from %d previous roles with a track record of dependable delivery.", n)
	}
	return "Known for a structured, detail-oriented approach to solving problems and learning new tools quickly."
}

// article picks "A" or "An" for the first word of phrase. Short all-caps
// words are read letter by letter, so "UX" takes "A" and "SRE" takes "An".
func article(phrase string) string {
	fields := strings.Fields(phrase)
	if len(fields) == 0 {
		return "A"
	}
	word := fields[0]
	if isAcronym(word) {
		if strings.ContainsRune("AEFHILMNORSX", rune(word[0])) {
			return "An"
		}
		return "A"
	}
	switch unicode.ToLower(rune(word[0])) {
	case 'a', 'e', 'i', 'o', 'u':
		return "An"
	}
	return "A"
}

func isAcronym(word string) bool {
	if len(word) < 2 || len(word) > 5 {
		return false
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
