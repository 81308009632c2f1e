package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cv-backend/internal/bootstrap"
	"cv-backend/internal/sessions"
	"cv-backend/internal/shared/config"
)

type generated struct {
	Path      string `json:"path"`
	Link      string `json:"link"`
	FileName  string `json:"fileName"`
	Pages     int    `json:"pages"`
	Layout    string `json:"layout"`
	CreatedAt string `json:"createdAt"`
}

func buildApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		PDFOutputDir:    t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
		SessionStore:    "memory",
		LLMProvider:     "none",
		FrontendURL:     "http://localhost:5173",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	if _, err := app.SessionsService.Initialize(context.Background(), sessions.Identity{
		ID:    "user-1",
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return app
}

func postJSON(router http.Handler, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeGenerated(t *testing.T, resp *httptest.ResponseRecorder) generated {
	t.Helper()
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out generated
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode generate response: %v", err)
	}
	return out
}

func TestGenerateAndDownload(t *testing.T) {
	router := buildApp(t).Router

	doc := decodeGenerated(t, postJSON(router, "/api/generate_cv", map[string]any{
		"user_id": "user-1",
		"title":   "Backend Engineer",
		"skills":  []string{"Go", "PostgreSQL"},
		"style":   "minimal",
	}))
	if doc.Path == "" || doc.Pages < 1 || doc.Layout == "" || doc.CreatedAt == "" {
		t.Fatalf("unexpected response %+v", doc)
	}
	if !strings.HasPrefix(doc.FileName, "cv_user-1_Backend_Engineer_") {
		t.Fatalf("unexpected file name %q", doc.FileName)
	}
	if doc.Link != "/api/download_cv?path="+url.QueryEscape(doc.Path) {
		t.Fatalf("unexpected link %q", doc.Link)
	}

	req := httptest.NewRequest(http.MethodGet, doc.Link, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, doc.FileName) {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF body")
	}
}

func TestGenerateTwiceYieldsTwoDownloads(t *testing.T) {
	router := buildApp(t).Router
	body := map[string]any{"user_id": "user-1", "title": "Engineer"}

	first := decodeGenerated(t, postJSON(router, "/api/generate_cv", body))
	second := decodeGenerated(t, postJSON(router, "/api/generate_cv", body))
	if first.Path == second.Path {
		t.Fatalf("expected distinct paths, got %q twice", first.Path)
	}
	for _, link := range []string{first.Link, second.Link} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, link, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", link, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/documents?user_id=user-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	var docs []generated
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents in history, got %d", len(docs))
	}
}

func TestLegacyFormGenerate(t *testing.T) {
	router := buildApp(t).Router

	form := url.Values{}
	form.Set("user_id", "user-1")
	form.Set("title", "Data Analyst")
	form.Set("phone", "+44 20 1234 5678")
	form.Set("skills", "SQL, Python, Tableau")
	form.Set("experience", "Built dashboards for finance, Automated monthly reporting")
	req := httptest.NewRequest(http.MethodPost, "/generate_cv", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	doc := decodeGenerated(t, resp)

	dl := httptest.NewRecorder()
	router.ServeHTTP(dl, httptest.NewRequest(http.MethodGet, "/download_cv?path="+url.QueryEscape(doc.Path), nil))
	if dl.Code != http.StatusOK {
		t.Fatalf("expected legacy download 200, got %d", dl.Code)
	}
}

func TestGenerateValidation(t *testing.T) {
	router := buildApp(t).Router

	cases := []struct {
		name string
		body map[string]any
		code string
	}{
		{"missing title", map[string]any{"user_id": "user-1"}, "validation_error"},
		{"blank full name", map[string]any{"user_id": "user-1", "title": "Engineer", "fullName": "  "}, "validation_error"},
		{"unknown user", map[string]any{"user_id": "ghost", "title": "Engineer"}, "unknown_user"},
		{"missing user", map[string]any{"title": "Engineer"}, "validation_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(router, "/api/generate_cv", tc.body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
			}
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			_ = json.Unmarshal(resp.Body.Bytes(), &body)
			if body.Error.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, body.Error.Code)
			}
		})
	}
}

func TestDownloadMissing(t *testing.T) {
	router := buildApp(t).Router

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/download_cv?path=cv_nobody_x_1.pdf", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/download_cv", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without path, got %d", resp.Code)
	}
}
