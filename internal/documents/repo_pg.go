package documents

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document row.
func (r *PGRepo) Create(ctx context.Context, doc GeneratedDocument) error {
	const query = `
INSERT INTO cv_documents (
    path,
    user_id,
    file_name,
    title,
    layout,
    pages,
    size_bytes,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.Path,
		doc.UserID,
		doc.FileName,
		doc.Title,
		doc.Layout,
		doc.Pages,
		doc.SizeBytes,
		doc.CreatedAt,
	)
	return err
}

// ListByUser returns documents for a user, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedDocument, error) {
	if offset < 0 {
		offset = 0
	}
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	const query = `
SELECT path, user_id, file_name, title, layout, pages, size_bytes, created_at
FROM cv_documents
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limitArg, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []GeneratedDocument{}
	for rows.Next() {
		var doc GeneratedDocument
		if err := rows.Scan(
			&doc.Path,
			&doc.UserID,
			&doc.FileName,
			&doc.Title,
			&doc.Layout,
			&doc.Pages,
			&doc.SizeBytes,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
