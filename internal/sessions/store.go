package sessions

import "context"

// Store persists sessions keyed by identity ID.
type Store interface {
	Get(ctx context.Context, userID string) (Session, error)
	Put(ctx context.Context, session Session) error
	Delete(ctx context.Context, userID string) error
	Clear(ctx context.Context) error
}
