package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userId"

// UserID records the caller's user id from the user_id query parameter or
// the X-User-Id header so logging and rate limiting can attribute requests.
// Handlers that read user_id from a body call SetUserID.
func UserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Query("user_id"))
		if id == "" {
			id = strings.TrimSpace(c.GetHeader("X-User-Id"))
		}
		if id != "" {
			c.Set(userIDKey, id)
		}
		c.Next()
	}
}

// UserIDFromBody records the user_id carried in a JSON or form body so
// middleware that runs before the handler, such as RateLimit, can key on it.
// A body user_id wins over the query, matching the handlers. JSON bodies
// larger than maxBytes are left for the handler and fall back to the query
// or client IP. The body is restored for the handler to bind.
func UserIDFromBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		switch c.ContentType() {
		case gin.MIMEJSON:
			raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBytes+1))
			c.Request.Body = readCloser{io.MultiReader(bytes.NewReader(raw), c.Request.Body), c.Request.Body}
			if err != nil || int64(len(raw)) > maxBytes {
				break
			}
			var body struct {
				UserID string `json:"user_id"`
			}
			if json.Unmarshal(raw, &body) == nil {
				SetUserID(c, body.UserID)
			}
		case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
			SetUserID(c, c.PostForm("user_id"))
		}
		c.Next()
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}

// SetUserID stores id as the request's user id.
func SetUserID(c *gin.Context, id string) {
	if id = strings.TrimSpace(id); id != "" {
		c.Set(userIDKey, id)
	}
}

// UserIDFromContext fetches the user ID recorded for the request.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
