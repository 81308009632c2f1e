package documents

import "time"

// GeneratedDocument describes one rendered CV. Each generation creates a new
// object; documents are never rewritten.
type GeneratedDocument struct {
	Path      string
	FileName  string
	UserID    string
	Title     string
	CreatedAt time.Time
	SizeBytes int64
	Pages     int
	Layout    string
}
