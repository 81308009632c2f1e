package render

import (
	"fmt"
	"regexp"
	"time"
)

const (
	maxUserChars  = 20
	maxTitleChars = 50
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// FileName returns the object name for a CV generated at at.
func FileName(userID, title string, at time.Time) string {
	return fmt.Sprintf("cv_%s_%s_%d.pdf", sanitize(userID, maxUserChars), sanitize(title, maxTitleChars), at.Unix())
}

func sanitize(s string, limit int) string {
	s = unsafeChars.ReplaceAllString(s, "_")
	if len(s) > limit {
		s = s[:limit]
	}
	return s
}
