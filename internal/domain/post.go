package domain

import (
	"context"
	"time"
)

// Post is a text entry owned by exactly one user.
type Post struct {
	ID        int64
	OwnerID   int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Owner is populated by reads that join the users table.
	Owner *Identity
}

// PostRepository defines persistence operations for posts.
// Every read joins the owner explicitly.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	List(ctx context.Context) ([]Post, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Post, error)
	// Update writes title, content and updated_at. OwnerID is never written.
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id int64) error
}
