// Package render lays a finished profile out as a PDF document.
package render

import (
	"strings"

	"cv-backend/cv/model"
)

// Document is the fully resolved content of one CV.
type Document struct {
	Name       string
	Title      string
	Email      string
	Phone      string
	Location   string
	Summary    string
	Skills     []string
	Experience []model.ExperienceEntry
	Education  []model.EducationEntry
	Projects   []model.ProjectEntry
	Languages  []string
}

// FromProfile builds a document from p.
func FromProfile(p model.Profile) Document {
	return Document{
		Name:       p.FullName,
		Title:      p.Title,
		Email:      p.Email,
		Phone:      p.Phone,
		Location:   p.Location,
		Summary:    p.Summary,
		Skills:     p.Skills,
		Experience: p.Experience,
		Education:  p.Education,
		Projects:   p.Projects,
		Languages:  p.Languages,
	}
}

// BlockKind identifies how a block is styled.
type BlockKind int

const (
	BlockName BlockKind = iota
	BlockTitle
	BlockContact
	BlockHeading
	BlockEntryTitle
	BlockEntryMeta
	BlockParagraph
)

func (k BlockKind) String() string {
	switch k {
	case BlockName:
		return "name"
	case BlockTitle:
		return "title"
	case BlockContact:
		return "contact"
	case BlockHeading:
		return "heading"
	case BlockEntryTitle:
		return "entryTitle"
	case BlockEntryMeta:
		return "entryMeta"
	default:
		return "paragraph"
	}
}

// Block is one laid-out line or paragraph.
type Block struct {
	Kind BlockKind
	Text string
}

// Section headings.
const (
	HeadingSummary    = "Professional Summary"
	HeadingExperience = "Experience"
	HeadingEducation  = "Education"
	HeadingSkills     = "Skills"
	HeadingProjects   = "Projects"
	HeadingLanguages  = "Languages"
)

const (
	contactSeparator = " | "
	listSeparator    = " • "
	rangeSeparator   = " — "
)

// Plan turns doc into blocks in the fixed section order. Sections with no
// content are left out together with their heading.
func Plan(doc Document) []Block {
	var blocks []Block
	add := func(kind BlockKind, text string) {
		if text = strings.TrimSpace(text); text != "" {
			blocks = append(blocks, Block{Kind: kind, Text: text})
		}
	}

	add(BlockName, doc.Name)
	add(BlockTitle, doc.Title)
	add(BlockContact, contactLine(doc))

	if strings.TrimSpace(doc.Summary) != "" {
		add(BlockHeading, HeadingSummary)
		add(BlockParagraph, doc.Summary)
	}

	if experience := nonEmptyExperience(doc.Experience); len(experience) > 0 {
		add(BlockHeading, HeadingExperience)
		for _, e := range experience {
			add(BlockEntryTitle, joinRange(e.Title, e.Years))
			add(BlockEntryMeta, e.Company)
			add(BlockParagraph, e.Description)
		}
	}

	if education := nonEmptyEducation(doc.Education); len(education) > 0 {
		add(BlockHeading, HeadingEducation)
		for _, e := range education {
			add(BlockEntryTitle, joinRange(e.School, e.Years))
			add(BlockEntryMeta, e.Degree)
		}
	}

	if skills := joinList(doc.Skills); skills != "" {
		add(BlockHeading, HeadingSkills)
		add(BlockParagraph, skills)
	}

	if projects := nonEmptyProjects(doc.Projects); len(projects) > 0 {
		add(BlockHeading, HeadingProjects)
		for _, p := range projects {
			add(BlockEntryTitle, p.Name)
			add(BlockParagraph, p.Description)
		}
	}

	if languages := joinList(doc.Languages); languages != "" {
		add(BlockHeading, HeadingLanguages)
		add(BlockParagraph, languages)
	}
	return blocks
}

func contactLine(doc Document) string {
	var parts []string
	if v := strings.TrimSpace(doc.Email); v != "" {
		parts = append(parts, "Email: "+v)
	}
	if v := strings.TrimSpace(doc.Phone); v != "" {
		parts = append(parts, "Phone: "+v)
	}
	if v := strings.TrimSpace(doc.Location); v != "" {
		parts = append(parts, "Location: "+v)
	}
	return strings.Join(parts, contactSeparator)
}

func joinRange(label, years string) string {
	label = strings.TrimSpace(label)
	years = strings.TrimSpace(years)
	switch {
	case label == "":
		return years
	case years == "":
		return label
	default:
		return label + rangeSeparator + years
	}
}

func joinList(items []string) string {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			kept = append(kept, it)
		}
	}
	return strings.Join(kept, listSeparator)
}

func nonEmptyExperience(entries []model.ExperienceEntry) []model.ExperienceEntry {
	out := make([]model.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Title+e.Company+e.Years+e.Description) != "" {
			out = append(out, e)
		}
	}
	return out
}

func nonEmptyEducation(entries []model.EducationEntry) []model.EducationEntry {
	out := make([]model.EducationEntry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.School+e.Degree+e.Years) != "" {
			out = append(out, e)
		}
	}
	return out
}

func nonEmptyProjects(entries []model.ProjectEntry) []model.ProjectEntry {
	out := make([]model.ProjectEntry, 0, len(entries))
	for _, p := range entries {
		if strings.TrimSpace(p.Name+p.Description) != "" {
			out = append(out, p)
		}
	}
	return out
}
