package documents

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := GeneratedDocument{
		Path:      "cv_user-1_Engineer_1740830400.pdf",
		FileName:  "cv_user-1_Engineer_1740830400.pdf",
		UserID:    "user-1",
		Title:     "Engineer",
		CreatedAt: time.Unix(1740830400, 0).UTC(),
		SizeBytes: 2048,
		Pages:     1,
		Layout:    "structured",
	}

	mock.ExpectExec("INSERT INTO cv_documents").
		WithArgs(doc.Path, doc.UserID, doc.FileName, doc.Title, doc.Layout, doc.Pages, doc.SizeBytes, doc.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Unix(1740830400, 0).UTC()
	rows := sqlmock.NewRows([]string{"path", "user_id", "file_name", "title", "layout", "pages", "size_bytes", "created_at"}).
		AddRow("b.pdf", "user-1", "b.pdf", "Engineer", "basic", 2, int64(4096), created.Add(time.Minute)).
		AddRow("a.pdf", "user-1", "a.pdf", "Engineer", "structured", 1, int64(2048), created)
	mock.ExpectQuery("SELECT path, user_id, file_name").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	docs, err := repo.ListByUser(context.Background(), "user-1", 20, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 2 || docs[0].Path != "b.pdf" || docs[0].Pages != 2 {
		t.Fatalf("unexpected docs %+v", docs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
