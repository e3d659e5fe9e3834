package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/inkwell/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := NewTokenService([]byte("super-secret"), time.Hour, WithClock(fixedClock(now)))

	tok, issued, err := svc.Issue(42, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, now, issued.IssuedAt)
	assert.Equal(t, now.Add(time.Hour), issued.ExpiresAt)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.SubjectID)
	assert.Equal(t, "alice@example.com", claims.SubjectEmail)
	assert.True(t, claims.IssuedAt.Equal(issued.IssuedAt))
	assert.True(t, claims.ExpiresAt.Equal(issued.ExpiresAt))
}

func TestTokenService_DefaultTTL(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), 0)
	assert.Equal(t, DefaultTokenTTL, svc.TTL())
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	clock := &now
	svc := NewTokenService([]byte("secret"), time.Minute, WithClock(func() time.Time { return *clock }))

	tok, _, err := svc.Issue(1, "u@example.com")
	require.NoError(t, err)

	later := now.Add(59 * time.Second)
	clock = &later
	_, err = svc.Verify(tok)
	require.NoError(t, err, "token must verify until it expires")

	expired := now.Add(2 * time.Minute)
	clock = &expired
	_, err = svc.Verify(tok)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := NewTokenService([]byte("right-secret"), time.Hour).Issue(2, "u2@example.com")
	require.NoError(t, err)

	_, err = NewTokenService([]byte("wrong-secret"), time.Hour).Verify(tok)
	require.ErrorIs(t, err, domain.ErrTokenSignature)
}

func TestTokenService_TamperedPayload(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("secret"), time.Hour)
	tok, _, err := svc.Issue(3, "u3@example.com")
	require.NoError(t, err)

	other, _, err := svc.Issue(4, "u4@example.com")
	require.NoError(t, err)

	// Swap the payload of one token into the other, keeping the original signature.
	parts := strings.Split(tok, ".")
	otherParts := strings.Split(other, ".")
	forged := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = svc.Verify(forged)
	require.ErrorIs(t, err, domain.ErrTokenSignature)
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), time.Hour)
	for _, in := range []string{"", "not-a-jwt", "not.a.jwt", "a.b"} {
		_, err := svc.Verify(in)
		assert.ErrorIs(t, err, domain.ErrTokenMalformed, "input %q", in)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	svc := NewTokenService(secret, time.Hour)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "5",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenService_RequiresExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	svc := NewTokenService(secret, time.Hour)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "5"}).SignedString(secret)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	require.ErrorIs(t, err, domain.ErrTokenMalformed)
}

func TestTokenService_NonNumericSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	svc := NewTokenService(secret, time.Hour)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	require.ErrorIs(t, err, domain.ErrTokenMalformed)
}
