package documents

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"cv-backend/cv/model"
	"cv-backend/cv/render"
	"cv-backend/internal/extract"
	"cv-backend/internal/sessions"
	"cv-backend/internal/shared/storage/object/local"
)

type testEnv struct {
	svc      *Service
	sessions *sessions.Service
	repo     *MemoryRepo
	clock    time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{clock: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	env.sessions = sessions.NewService(sessions.NewMemoryStore(), nil)
	env.repo = NewMemoryRepo()
	env.svc = &Service{
		Sessions: env.sessions,
		Renderer: render.NewRenderer(),
		Store:    local.New(t.TempDir()),
		Repo:     env.repo,
		Now:      func() time.Time { return env.clock },
	}
	if _, err := env.sessions.Initialize(context.Background(), sessions.Identity{
		ID:    "user-1",
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return env
}

func titlePatch(title string) model.ProfilePatch {
	return model.ProfilePatch{Title: &title}
}

func readAll(t *testing.T, svc *Service, path string) []byte {
	t.Helper()
	rc, _, err := svc.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open %s: %v", path, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

func TestGenerateUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Generate(context.Background(), GenerateRequest{UserID: "ghost", Patch: titlePatch("Engineer")})
	if !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestGenerateRequiresTitle(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Generate(context.Background(), GenerateRequest{UserID: "user-1"})
	if !errors.Is(err, model.ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
	if !strings.Contains(err.Error(), "title") {
		t.Fatalf("expected missing field to be named, got %v", err)
	}
}

func TestGenerateWritesReadablePDF(t *testing.T) {
	env := newTestEnv(t)
	doc, err := env.svc.Generate(context.Background(), GenerateRequest{UserID: "user-1", Patch: titlePatch("Backend Engineer")})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := render.FileName("user-1", "Backend Engineer", env.clock)
	if doc.Path != want || doc.FileName != want {
		t.Fatalf("expected path %q, got %+v", want, doc)
	}
	if doc.Layout != "structured" {
		t.Fatalf("expected structured layout, got %q", doc.Layout)
	}
	if doc.Pages < 1 || doc.SizeBytes <= 0 {
		t.Fatalf("expected pages and size, got %+v", doc)
	}

	info, err := extract.InspectPDF(readAll(t, env.svc, doc.Path))
	if err != nil {
		t.Fatalf("InspectPDF: %v", err)
	}
	if !strings.Contains(info.Text, "Professional Summary") {
		t.Fatalf("expected generated summary section, got %q", info.Text)
	}
}

func TestGenerateDoesNotChangeStoredProfile(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.Generate(context.Background(), GenerateRequest{UserID: "user-1", Patch: titlePatch("Engineer")}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	session, err := env.sessions.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if session.Profile.Title != "" || session.Profile.Summary != "" {
		t.Fatalf("stored profile changed: %+v", session.Profile)
	}
}

func TestTwoGenerationsYieldDistinctDownloadablePaths(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.Generate(ctx, GenerateRequest{UserID: "user-1", Patch: titlePatch("Engineer")})
	if err != nil {
		t.Fatalf("Generate first: %v", err)
	}
	env.clock = env.clock.Add(time.Minute)
	second, err := env.svc.Generate(ctx, GenerateRequest{UserID: "user-1", Patch: titlePatch("Engineer")})
	if err != nil {
		t.Fatalf("Generate second: %v", err)
	}
	if first.Path == second.Path {
		t.Fatalf("expected distinct paths, both %q", first.Path)
	}
	for _, p := range []string{first.Path, second.Path} {
		if data := readAll(t, env.svc, p); len(data) == 0 {
			t.Fatalf("empty document at %s", p)
		}
	}

	docs, err := env.svc.List(ctx, "user-1", 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 || docs[0].Path != second.Path {
		t.Fatalf("expected newest first, got %+v", docs)
	}
}

func TestSameSecondGenerationAppendsSuffix(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.Generate(ctx, GenerateRequest{UserID: "user-1", Patch: titlePatch("Engineer")})
	if err != nil {
		t.Fatalf("Generate first: %v", err)
	}
	second, err := env.svc.Generate(ctx, GenerateRequest{UserID: "user-1", Patch: titlePatch("Engineer")})
	if err != nil {
		t.Fatalf("Generate second: %v", err)
	}
	wantSecond := strings.TrimSuffix(first.Path, ".pdf") + "_1.pdf"
	if second.Path != wantSecond {
		t.Fatalf("expected %q, got %q", wantSecond, second.Path)
	}
	readAll(t, env.svc, first.Path)
	readAll(t, env.svc, second.Path)
}

func TestOpenErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, _, err := env.svc.Open(ctx, "missing.pdf"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	for _, p := range []string{"../etc/passwd.pdf", "/abs.pdf", "notes.txt"} {
		if _, _, err := env.svc.Open(ctx, p); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", p, err)
		}
	}
}

func TestListRequiresUser(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.List(context.Background(), " ", 10, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
