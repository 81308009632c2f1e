package sessions

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStorePutUpsertsJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := &PGStore{DB: db}
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	session := Session{
		Identity:  Identity{ID: "user-1", Name: "Ada Lovelace"},
		Profile:   initialProfile(Identity{Name: "Ada Lovelace"}),
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO cv_sessions").
		WithArgs(
			"user-1",
			sqlmock.AnyArg(), // identity
			sqlmock.AnyArg(), // profile
			now,
			now,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Put(context.Background(), session); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreGetDecodesRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"identity", "profile", "created_at", "updated_at"}).
		AddRow(
			[]byte(`{"id":"user-1","name":"Ada Lovelace","email":"ada@example.com"}`),
			[]byte(`{"fullName":"Ada Lovelace","title":"Engineer","skills":["Go"]}`),
			now,
			now,
		)
	mock.ExpectQuery("SELECT identity, profile, created_at, updated_at").
		WithArgs("user-1").
		WillReturnRows(rows)

	store := &PGStore{DB: db}
	session, err := store.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if session.Identity.Email != "ada@example.com" {
		t.Fatalf("unexpected identity %+v", session.Identity)
	}
	if session.Profile.Title != "Engineer" || len(session.Profile.Skills) != 1 {
		t.Fatalf("unexpected profile %+v", session.Profile)
	}
	if !session.CreatedAt.Equal(now) {
		t.Fatalf("unexpected created_at %s", session.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreGetMapsNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT identity, profile").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	store := &PGStore{DB: db}
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreDeleteAndClear(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("DELETE FROM cv_sessions WHERE user_id").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cv_sessions").
		WillReturnResult(sqlmock.NewResult(0, 3))

	store := &PGStore{DB: db}
	if err := store.Delete(context.Background(), "user-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
