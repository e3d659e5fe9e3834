package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/inkwell/internal/domain"
)

// PostService handles post CRUD with ownership checks on mutation.
type PostService struct {
	posts  domain.PostRepository
	policy OwnershipPolicy
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// Create stores a new post owned by ownerID.
func (s *PostService) Create(ctx context.Context, ownerID int64, title, content string) (*domain.Post, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}

	post := &domain.Post{
		OwnerID: ownerID,
		Title:   title,
		Content: content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	// Re-read to pick up the joined owner.
	return s.posts.GetByID(ctx, post.ID)
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

// ListByOwner returns the posts owned by ownerID, newest first.
func (s *PostService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Post, error) {
	return s.posts.ListByOwner(ctx, ownerID)
}

// Get returns a post by ID.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Update changes the title and/or content of a post owned by requesterID.
// Nil, empty or blank values leave the field unchanged.
func (s *PostService) Update(ctx context.Context, requesterID, id int64, title, content *string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Require(post.OwnerID, requesterID); err != nil {
		return nil, err
	}

	if title != nil && strings.TrimSpace(*title) != "" {
		post.Title = *title
	}
	if content != nil && strings.TrimSpace(*content) != "" {
		post.Content = *content
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post owned by requesterID.
func (s *PostService) Delete(ctx context.Context, requesterID, id int64) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Require(post.OwnerID, requesterID); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}
