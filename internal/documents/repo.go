package documents

import "context"

// Repo records generated documents so they can be listed per user.
type Repo interface {
	Create(ctx context.Context, doc GeneratedDocument) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedDocument, error)
}
