package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func userIDRouter(seen *string, body *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(UserID(), UserIDFromBody(64))
	r.POST("/x", func(c *gin.Context) {
		*seen = UserIDFromContext(c)
		raw, _ := io.ReadAll(c.Request.Body)
		*body = string(raw)
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestUserIDFromJSONBody(t *testing.T) {
	var seen, body string
	router := userIDRouter(&seen, &body)

	payload := `{"user_id":" u-1 ","field":"summary"}`
	req := httptest.NewRequest(http.MethodPost, "/x?user_id=from-query", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "u-1" {
		t.Fatalf("expected body user id, got %q", seen)
	}
	if body != payload {
		t.Fatalf("expected body restored for handler, got %q", body)
	}
}

func TestUserIDFromFormBody(t *testing.T) {
	var seen, body string
	router := userIDRouter(&seen, &body)

	form := url.Values{"user_id": {"u-2"}, "title": {"Engineer"}}
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "u-2" {
		t.Fatalf("expected form user id, got %q", seen)
	}
}

func TestUserIDFromBodySkipsOversizedJSON(t *testing.T) {
	var seen, body string
	router := userIDRouter(&seen, &body)

	payload := `{"user_id":"u-3","summary":"` + strings.Repeat("x", 200) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/x?user_id=from-query", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "from-query" {
		t.Fatalf("expected query user id for oversized body, got %q", seen)
	}
	if body != payload {
		t.Fatalf("expected full body restored, got %d bytes", len(body))
	}
}
