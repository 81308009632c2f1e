package main

// Render a sample CV offline and check it reads back:
//   go run ./cmd/renderdemo -out ./out -engine pdf

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cv-backend/cv/model"
	"cv-backend/cv/render"
	"cv-backend/internal/extract"
)

func main() {
	outDir := flag.String("out", "./out", "output directory for the generated PDF")
	engine := flag.String("engine", "pdf", "layout engine: pdf or chrome")
	chromePath := flag.String("chrome", "", "path to the Chrome binary (chrome engine only)")
	dumpHTML := flag.Bool("html", false, "also write the chrome layout HTML")
	flag.Parse()

	profile := sampleProfile()
	doc := render.FromProfile(profile)

	renderer := render.NewRenderer()
	if strings.EqualFold(*engine, "chrome") {
		renderer = &render.Renderer{
			Primary:  render.NewChromeLayout(*chromePath),
			Fallback: render.NewBasicLayout(),
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	out, err := renderer.Render(ctx, doc)
	if err != nil {
		exitErr("render failed: %v", err)
	}

	name := render.FileName("demo", profile.Title, time.Now())
	pdfPath, err := writeOutputs(*outDir, name, profile, out.Data)
	if err != nil {
		exitErr("write failed: %v", err)
	}

	if *dumpHTML {
		html, err := render.NewChromeLayout(*chromePath).HTML(render.Plan(doc))
		if err != nil {
			exitErr("html failed: %v", err)
		}
		if err := os.WriteFile(filepath.Join(*outDir, "sample_cv.html"), html, 0o644); err != nil {
			exitErr("write html: %v", err)
		}
	}

	info, err := extract.InspectPDF(out.Data)
	if err != nil {
		exitErr("render validation failed: %v", err)
	}
	for _, want := range []string{profile.FullName, render.HeadingSummary, render.HeadingExperience} {
		if !strings.Contains(info.Text, want) {
			exitErr("render validation failed: %q missing from text", want)
		}
	}

	fmt.Printf("OK: wrote %s (layout=%s pages=%d bytes=%d)\n", pdfPath, out.Layout, info.Pages, len(out.Data))
}

func writeOutputs(dir, name string, profile model.Profile, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	pdfPath := filepath.Join(dir, name)
	if err := os.WriteFile(pdfPath, data, 0o644); err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "sample_profile.json"), payload, 0o644); err != nil {
		return "", err
	}
	return pdfPath, nil
}

func sampleProfile() model.Profile {
	p := model.Empty()
	p.FullName = "Jordan Lee"
	p.Title = "Senior Backend Engineer"
	p.Email = "jordan.lee@example.com"
	p.Phone = "+1-555-0102"
	p.Location = "Austin, TX"
	p.Summary = "Backend engineer with eight years of experience building resilient APIs and data services. " +
		"Led platform modernization spanning cloud migration and observability adoption."
	p.Skills = []string{"Go", "PostgreSQL", "Redis", "AWS", "Docker", "Kubernetes", "Terraform"}
	p.Experience = []model.ExperienceEntry{
		{
			Title:       "Senior Backend Engineer",
			Company:     "Acme Logistics",
			Years:       "2021 - Present",
			Description: "Designed a routing service that reduced shipment latency by 18%. Introduced distributed tracing across twelve services.",
		},
		{
			Title:       "Backend Engineer",
			Company:     "Blue Harbor Systems",
			Years:       "2018 - 2021",
			Description: "Built event-driven ingestion pipelines for compliance data feeds.",
		},
	}
	p.Education = []model.EducationEntry{
		{School: "University of Texas", Degree: "BSc Computer Science", Years: "2014 - 2018"},
	}
	p.Projects = []model.ProjectEntry{
		{Name: "pgwatch-lite", Description: "Small Postgres health dashboard used by three internal teams."},
	}
	p.Languages = []string{"English", "Spanish"}
	return p.Normalize()
}

func exitErr(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
