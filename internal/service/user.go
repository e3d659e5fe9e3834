package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/inkwell/internal/domain"
)

// UserService handles profile reads and updates for authenticated users.
type UserService struct {
	users  domain.UserRepository
	hasher PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// Profile returns the user with the given ID.
func (s *UserService) Profile(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile changes the email and/or password of a user. Nil or empty
// values leave the field unchanged. A new email already used by another
// account fails with domain.ErrDuplicateEmail and nothing is written.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, email, password *string) (*domain.User, error) {
	if password != nil {
		if err := checkPasswordLength(*password); err != nil {
			return nil, err
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != nil && *email != "" && *email != user.Email {
		if _, err := s.users.GetByEmail(ctx, *email); err == nil {
			return nil, domain.ErrDuplicateEmail
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get user: %w", err)
		}
		user.Email = *email
	}

	if password != nil && *password != "" {
		hash, err := s.hasher.Hash(*password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				return nil, err
			}
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
