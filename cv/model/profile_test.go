package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSkillsSplitsAndDedupes(t *testing.T) {
	got := NormalizeSkills([]string{"Go, SQL", " go ", "", "Kubernetes,", "sql"})
	assert.Equal(t, []string{"Go", "SQL", "Kubernetes"}, got)
}

func TestNormalizeSkillsNeverNil(t *testing.T) {
	got := NormalizeSkills(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestValidateForDocument(t *testing.T) {
	p := Empty()
	err := p.ValidateForDocument()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProfile))
	assert.Contains(t, err.Error(), "fullName")
	assert.Contains(t, err.Error(), "title")

	p.FullName = "Ada Lovelace"
	p.Title = "   "
	err = p.ValidateForDocument()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "fullName")

	p.Title = "Engineer"
	assert.NoError(t, p.ValidateForDocument())
}

func TestPatchApplyLastWriteWins(t *testing.T) {
	base := Empty()
	base.FullName = "Ada"
	base.Title = "Analyst"

	skills := []string{"Go, Rust", "go"}
	patch := ProfilePatch{Title: StringPtr(" Engineer "), Skills: &skills}
	got := patch.Apply(base)

	assert.Equal(t, "Ada", got.FullName)
	assert.Equal(t, "Engineer", got.Title)
	assert.Equal(t, []string{"Go", "Rust"}, got.Skills)
	assert.NotNil(t, got.Experience)
}

func TestNormalizeKeepsEntryPositions(t *testing.T) {
	p := Empty()
	p.Experience = []ExperienceEntry{{}, {Title: " Dev "}}
	p.Projects = []ProjectEntry{{Name: " "}}
	got := p.Normalize()
	require.Len(t, got.Experience, 2)
	assert.Equal(t, ExperienceEntry{}, got.Experience[0])
	assert.Equal(t, "Dev", got.Experience[1].Title)
	require.Len(t, got.Projects, 1)
	assert.Equal(t, "", got.Projects[0].Name)
}

func TestExperiencePatchApply(t *testing.T) {
	e := ExperienceEntry{Title: "Dev", Company: "Acme"}
	got := ExperiencePatch{Company: StringPtr("Globex")}.Apply(e)
	assert.Equal(t, ExperienceEntry{Title: "Dev", Company: "Globex"}, got)
}
