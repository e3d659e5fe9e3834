package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/inkwell/internal/domain"
)

// Session is the result of a successful login.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
}

// AuthService handles registration, login and bearer token authentication.
type AuthService struct {
	users       domain.UserRepository
	hasher      PasswordHasher
	tokens      *TokenService
	bindToEmail bool
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithEmailBinding makes Authenticate resolve the caller by the email in the
// token instead of its subject id. Tokens then stop authenticating once the
// account's email changes.
func WithEmailBinding() AuthOption {
	return func(s *AuthService) { s.bindToEmail = true }
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, hasher PasswordHasher, tokens *TokenService, opts ...AuthOption) *AuthService {
	s := &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new user account. The returned user carries the
// password hash; callers must not expose it.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	if err := checkPasswordLength(password); err != nil {
		return nil, err
	}

	// The unique index on users.email is what actually guarantees uniqueness;
	// this lookup only lets the common case fail before hashing.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed access token.
// An unknown email and a wrong password both fail with domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	if user == nil {
		return nil, fmt.Errorf("%w: unknown email", domain.ErrUnauthorized)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: wrong password", domain.ErrUnauthorized)
	}

	token, claims, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Session{AccessToken: token, ExpiresAt: claims.ExpiresAt}, nil
}

// Authenticate verifies a bearer token and re-resolves the account it names.
// It fails with domain.ErrUnauthorized if the token is invalid or the account
// no longer exists.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return domain.Identity{}, err
	}

	var user *domain.User
	if s.bindToEmail {
		user, err = s.users.GetByEmail(ctx, claims.SubjectEmail)
	} else {
		user, err = s.users.GetByID(ctx, claims.SubjectID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Identity{}, fmt.Errorf("%w: account no longer exists", domain.ErrUnauthorized)
		}
		return domain.Identity{}, fmt.Errorf("resolve user: %w", err)
	}

	if s.bindToEmail && user.ID != claims.SubjectID {
		return domain.Identity{}, fmt.Errorf("%w: token subject mismatch", domain.ErrUnauthorized)
	}

	return domain.Identity{ID: user.ID, Email: user.Email}, nil
}
