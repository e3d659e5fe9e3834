package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/msomdec/inkwell/internal/domain"
)

var postColumns = []string{"id", "user_id", "title", "content", "created_at", "updated_at", "email"}

func TestPostCreate_Success(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)
	now := time.Now()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+posts\s*\(user_id,\s*title,\s*content\).*RETURNING\s+id,\s*created_at,\s*updated_at$`).
		WithArgs(int64(1), "Hello", "World").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

	p := &domain.Post{OwnerID: 1, Title: "Hello", Content: "World"}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.ID != 5 {
		t.Fatalf("expected id 5, got %d", p.ID)
	}
}

func TestPostGetByID_JoinsOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)
	now := time.Now()

	mock.ExpectQuery(`(?s)JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*p\.user_id\s+WHERE\s+p\.id\s*=\s*\$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(postColumns).AddRow(int64(5), int64(1), "Hello", "World", now, now, "owner@example.com"))

	got, err := repo.GetByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Owner == nil || got.Owner.ID != 1 || got.Owner.Email != "owner@example.com" {
		t.Fatalf("unexpected owner: %+v", got.Owner)
	}
}

func TestPostGetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`WHERE\s+p\.id\s*=\s*\$1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostListByOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)
	now := time.Now()

	mock.ExpectQuery(`WHERE\s+p\.user_id\s*=\s*\$1\s+ORDER\s+BY`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(int64(2), int64(1), "B", "b", now, now, "o@example.com").
			AddRow(int64(1), int64(1), "A", "a", now, now, "o@example.com"))

	posts, err := repo.ListByOwner(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != 2 {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestPostList_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`ORDER\s+BY\s+p\.created_at\s+DESC`).
		WillReturnRows(sqlmock.NewRows(postColumns))

	posts, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", posts)
	}
}

func TestPostUpdate_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`UPDATE\s+posts\s+SET\s+title\s*=\s*\$1`).
		WithArgs("t", "c", int64(8)).
		WillReturnError(sql.ErrNoRows)

	err := repo.Update(context.Background(), &domain.Post{ID: 8, Title: "t", Content: "c"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(`DELETE\s+FROM\s+posts\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+posts\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 3); err != nil {
		t.Fatalf("first Delete error: %v", err)
	}
	if err := repo.Delete(context.Background(), 3); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
