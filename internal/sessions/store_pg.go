package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGStore keeps sessions in the cv_sessions table.
type PGStore struct {
	DB *sql.DB
}

func (s *PGStore) Get(ctx context.Context, userID string) (Session, error) {
	const query = `
SELECT identity, profile, created_at, updated_at
FROM cv_sessions
WHERE user_id = $1
LIMIT 1`
	var identity []byte
	var profile []byte
	var session Session
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(
		&identity,
		&profile,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	if err := json.Unmarshal(identity, &session.Identity); err != nil {
		return Session{}, err
	}
	if err := json.Unmarshal(profile, &session.Profile); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *PGStore) Put(ctx context.Context, session Session) error {
	if session.Identity.ID == "" {
		return ErrInvalidInput
	}
	const query = `
INSERT INTO cv_sessions (user_id, identity, profile, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO UPDATE SET
  identity = EXCLUDED.identity,
  profile = EXCLUDED.profile,
  created_at = EXCLUDED.created_at,
  updated_at = EXCLUDED.updated_at`
	identity, err := json.Marshal(session.Identity)
	if err != nil {
		return err
	}
	profile, err := json.Marshal(session.Profile)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, query,
		session.Identity.ID,
		identity,
		profile,
		session.CreatedAt,
		session.UpdatedAt,
	)
	return err
}

func (s *PGStore) Delete(ctx context.Context, userID string) error {
	const query = `DELETE FROM cv_sessions WHERE user_id = $1`
	_, err := s.DB.ExecContext(ctx, query, userID)
	return err
}

func (s *PGStore) Clear(ctx context.Context) error {
	const query = `DELETE FROM cv_sessions`
	_, err := s.DB.ExecContext(ctx, query)
	return err
}
