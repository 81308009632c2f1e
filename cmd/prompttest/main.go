package main

// Print the generation prompts for a profile and run them once:
//   go run ./cmd/prompttest -profile ./profile.json -style modern
//   go run ./cmd/prompttest -dry

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"cv-backend/cv/content"
	"cv-backend/cv/model"
	"cv-backend/cv/prompts"
	"cv-backend/internal/bootstrap"
	"cv-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	profilePath := flag.String("profile", "", "Path to a profile JSON file (optional)")
	style := flag.String("style", "minimal", "Summary style")
	index := flag.Int("index", 0, "Experience entry to describe")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider: gemini, openai or none")
	modelName := flag.String("model", cfg.LLMModel, "LLM model")
	dry := flag.Bool("dry", false, "Print prompts without calling the provider")
	flag.Parse()

	profile, err := loadProfile(*profilePath)
	if err != nil {
		exitErr(err.Error())
	}

	summaryIn := prompts.SummaryInputFrom(profile, *style)
	skillsIn := prompts.SkillsInputFrom(profile)

	var entry *model.ExperienceEntry
	if *index >= 0 && *index < len(profile.Experience) {
		entry = &profile.Experience[*index]
	}

	printSection("summary prompt", prompts.Summary(summaryIn))
	printSection("skills prompt", prompts.Skills(skillsIn))
	if entry != nil {
		printSection("experience prompt", prompts.Experience(*entry))
	}
	if *dry {
		return
	}

	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(*provider))
	cfg.LLMModel = *modelName
	ctx := context.Background()
	client, err := bootstrap.BuildLLM(ctx, cfg)
	if err != nil {
		exitErr(fmt.Sprintf("llm client: %v", err))
	}
	gen := content.NewGenerator(client, cfg.AITimeout)

	summary := content.GenerateSummary(ctx, gen, summaryIn)
	printResult("summary", summary.Value, summary.Source, summary.Reason)

	skills := content.GenerateSkills(ctx, gen, skillsIn)
	printResult("skills", strings.Join(skills.Value, ", "), skills.Source, skills.Reason)

	if entry != nil {
		desc := content.GenerateExperienceDescription(ctx, gen, *entry)
		printResult("experience", desc.Value, desc.Source, desc.Reason)
	}
}

func loadProfile(path string) (model.Profile, error) {
	if strings.TrimSpace(path) == "" {
		return sampleProfile(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	profile := model.Empty()
	if err := json.Unmarshal(raw, &profile); err != nil {
		return model.Profile{}, fmt.Errorf("invalid profile json: %w", err)
	}
	return profile.Normalize(), nil
}

func sampleProfile() model.Profile {
	p := model.Empty()
	p.FullName = "Sam Carter"
	p.Title = "Data Engineer"
	p.Skills = []string{"Python", "SQL", "Airflow", "Spark"}
	p.Experience = []model.ExperienceEntry{
		{Title: "Data Engineer", Company: "Northwind", Years: "2020 - Present", Description: "Maintained nightly ETL jobs."},
		{Title: "Analyst", Company: "Contoso", Years: "2017 - 2020"},
	}
	p.Education = []model.EducationEntry{{School: "State University", Degree: "BSc Statistics", Years: "2013 - 2017"}}
	return p.Normalize()
}

func printSection(title, body string) {
	fmt.Printf("=== %s ===\n%s\n\n", title, strings.TrimSpace(body))
}

func printResult(intent, value, source, reason string) {
	if reason != "" {
		fmt.Printf("=== %s (%s: %s) ===\n%s\n\n", intent, source, reason, value)
		return
	}
	fmt.Printf("=== %s (%s) ===\n%s\n\n", intent, source, value)
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
