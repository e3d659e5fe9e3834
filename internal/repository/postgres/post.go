package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/inkwell/internal/domain"
)

const selectPostWithOwner = `
	SELECT p.id, p.user_id, p.title, p.content, p.created_at, p.updated_at, u.email
	FROM posts p
	JOIN users u ON u.id = p.user_id`

// PostRepository implements domain.PostRepository using PostgreSQL.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL-backed PostRepository.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO posts (user_id, title, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		post.OwnerID, post.Title, post.Content,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, selectPostWithOwner+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (r *PostRepository) List(ctx context.Context) ([]domain.Post, error) {
	return r.list(ctx, selectPostWithOwner+` ORDER BY p.created_at DESC, p.id DESC`)
}

func (r *PostRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Post, error) {
	return r.list(ctx, selectPostWithOwner+` WHERE p.user_id = $1 ORDER BY p.created_at DESC, p.id DESC`, ownerID)
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	err := r.db.QueryRowContext(ctx,
		`UPDATE posts SET title = $1, content = $2, updated_at = now()
		 WHERE id = $3
		 RETURNING updated_at`,
		post.Title, post.Content, post.ID,
	).Scan(&post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostRepository) list(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	p := &domain.Post{Owner: &domain.Identity{}}
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt, &p.Owner.Email); err != nil {
		return nil, err
	}
	p.Owner.ID = p.OwnerID
	return p, nil
}
