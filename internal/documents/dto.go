package documents

import (
	"net/url"
	"time"
)

const downloadRoute = "/api/download_cv"

// DocumentResponse is the outward-facing representation of a generated document.
type DocumentResponse struct {
	Path      string    `json:"path"`
	Link      string    `json:"link"`
	FileName  string    `json:"fileName"`
	Pages     int       `json:"pages"`
	Layout    string    `json:"layout"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(doc GeneratedDocument) DocumentResponse {
	return DocumentResponse{
		Path:      doc.Path,
		Link:      DownloadLink(doc.Path),
		FileName:  doc.FileName,
		Pages:     doc.Pages,
		Layout:    doc.Layout,
		SizeBytes: doc.SizeBytes,
		CreatedAt: doc.CreatedAt,
	}
}

// DownloadLink returns the relative download URL for a stored document.
func DownloadLink(storagePath string) string {
	return downloadRoute + "?path=" + url.QueryEscape(storagePath)
}
