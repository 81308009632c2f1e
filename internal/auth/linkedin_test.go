package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cv-backend/internal/sessions"
)

type fakeLinkedIn struct {
	server        *httptest.Server
	tokenStatus   int
	profileStatus int
	profile       map[string]any
}

func newFakeLinkedIn(t *testing.T) *fakeLinkedIn {
	t.Helper()
	f := &fakeLinkedIn{
		tokenStatus:   http.StatusOK,
		profileStatus: http.StatusOK,
		profile: map[string]any{
			"sub":         "li-123",
			"name":        "Ada Lovelace",
			"given_name":  "Ada",
			"family_name": "Lovelace",
			"email":       "ada@example.com",
			"picture":     "https://media.example.com/ada.jpg",
			"locale":      "en_GB",
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v2/accessToken", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "good-code" || r.Form.Get("client_secret") != "secret" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		if f.tokenStatus != http.StatusOK {
			w.WriteHeader(f.tokenStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "token-abc", "token_type": "Bearer", "expires_in": 3600})
	})
	mux.HandleFunc("/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if f.profileStatus != http.StatusOK {
			w.WriteHeader(f.profileStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(f.profile)
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func newTestAuth(t *testing.T, f *fakeLinkedIn) (*gin.Engine, *sessions.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := sessions.NewService(sessions.NewMemoryStore(), nil)
	cfg := LinkedInConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8000/oauth/callback",
		FrontendURL:  "https://frontend.example.com/",
	}
	if f != nil {
		cfg.AuthURL = f.server.URL + "/oauth/v2/authorization"
		cfg.TokenURL = f.server.URL + "/oauth/v2/accessToken"
		cfg.UserInfoURL = f.server.URL + "/v2/userinfo"
	}
	r := gin.New()
	NewLinkedInService(cfg, svc).RegisterRoutes(&r.RouterGroup)
	return r, svc
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestLoginRedirectsToLinkedIn(t *testing.T) {
	r, _ := newTestAuth(t, nil)
	w := get(r, "/login")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if loc.Host != "www.linkedin.com" {
		t.Fatalf("unexpected host %q", loc.Host)
	}
	q := loc.Query()
	if q.Get("client_id") != "client" || q.Get("response_type") != "code" {
		t.Fatalf("unexpected query %v", q)
	}
	if q.Get("scope") != "openid profile email" {
		t.Fatalf("unexpected scope %q", q.Get("scope"))
	}
	if q.Get("state") == "" {
		t.Fatalf("expected state parameter")
	}
}

func TestLoginNotConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewLinkedInService(LinkedInConfig{FrontendURL: "https://frontend.example.com"}, sessions.NewService(sessions.NewMemoryStore(), nil)).RegisterRoutes(&r.RouterGroup)
	w := get(r, "/login")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "auth_not_configured") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestCallbackSeedsSessionAndRedirects(t *testing.T) {
	f := newFakeLinkedIn(t)
	r, svc := newTestAuth(t, f)

	w := get(r, "/oauth/callback?code=good-code&state=anything")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != "https://frontend.example.com/cv-editor?user_id=li-123" {
		t.Fatalf("unexpected redirect %q", got)
	}

	session, err := svc.Get(context.Background(), "li-123")
	if err != nil {
		t.Fatalf("expected seeded session: %v", err)
	}
	if session.Identity.FirstName != "Ada" || session.Identity.Picture == "" {
		t.Fatalf("unexpected identity %+v", session.Identity)
	}
	if session.Profile.FullName != "Ada Lovelace" || session.Profile.Email != "ada@example.com" {
		t.Fatalf("unexpected prefill %+v", session.Profile)
	}
	if !strings.Contains(string(session.Identity.Raw), "en_GB") {
		t.Fatalf("expected raw payload to be kept, got %s", session.Identity.Raw)
	}
}

func TestCallbackErrorMarkers(t *testing.T) {
	cases := []struct {
		name   string
		target string
		setup  func(f *fakeLinkedIn)
		marker string
	}{
		{name: "provider error", target: "/oauth/callback?error=user_cancelled_login", marker: "user_cancelled_login"},
		{name: "missing code", target: "/oauth/callback", marker: ErrorNoCode},
		{name: "bad code", target: "/oauth/callback?code=bad-code", marker: ErrorTokenFailed},
		{
			name:   "profile failure",
			target: "/oauth/callback?code=good-code",
			setup:  func(f *fakeLinkedIn) { f.profileStatus = http.StatusInternalServerError },
			marker: ErrorProfileFailed,
		},
		{
			name:   "profile without subject",
			target: "/oauth/callback?code=good-code",
			setup:  func(f *fakeLinkedIn) { delete(f.profile, "sub") },
			marker: ErrorProfileFailed,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeLinkedIn(t)
			if tc.setup != nil {
				tc.setup(f)
			}
			r, _ := newTestAuth(t, f)
			w := get(r, tc.target)
			if w.Code != http.StatusFound {
				t.Fatalf("expected 302, got %d", w.Code)
			}
			want := "https://frontend.example.com/?error=" + url.QueryEscape(tc.marker)
			if got := w.Header().Get("Location"); got != want {
				t.Fatalf("expected redirect %q, got %q", want, got)
			}
		})
	}
}
