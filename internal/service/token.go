package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/inkwell/internal/domain"
)

// DefaultTokenTTL is how long an access token stays valid when no TTL is configured.
const DefaultTokenTTL = time.Hour

// Claims is the identity asserted by an access token.
type Claims struct {
	SubjectID    int64
	SubjectEmail string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenService signs and verifies stateless HS256 access tokens.
// There is no server-side token store, so tokens cannot be revoked;
// they stop verifying only when they expire or the secret changes.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService creates a TokenService. A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenService(secret []byte, ttl time.Duration, opts ...TokenOption) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &TokenService{secret: secret, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the validity window of issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given subject.
func (s *TokenService) Issue(subjectID int64, email string) (string, Claims, error) {
	// JWT timestamps have second precision.
	now := s.now().Truncate(time.Second)
	claims := Claims{
		SubjectID:    subjectID,
		SubjectEmail: email,
		IssuedAt:     now,
		ExpiresAt:    now.Add(s.ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
		Email: email,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify checks the signature and expiry of tokenString and returns its claims.
// Failures are domain.ErrTokenMalformed, domain.ErrTokenSignature or
// domain.ErrTokenExpired, all of which match domain.ErrUnauthorized.
func (s *TokenService) Verify(tokenString string) (Claims, error) {
	parsed := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, parsed, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, domain.ErrTokenSignature
		default:
			return Claims{}, domain.ErrTokenMalformed
		}
	}

	id, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil {
		return Claims{}, domain.ErrTokenMalformed
	}

	claims := Claims{
		SubjectID:    id,
		SubjectEmail: parsed.Email,
		ExpiresAt:    parsed.ExpiresAt.Time,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	return claims, nil
}
