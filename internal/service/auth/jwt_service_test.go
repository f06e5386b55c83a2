package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pduartel/accounts-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTokenService builds an hmacTokenService with an injected clock and
// no clock-skew leeway, so expiry behavior is deterministic.
func newTestTokenService(secret string, lifetime time.Duration, timeFunc func() time.Time) *hmacTokenService {
	return &hmacTokenService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     0,
	}
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	secret := "test-secret-that-is-long-enough-for-testing"
	accountID := uuid.New()

	svc := newTestTokenService(secret, tokenLifetime, func() time.Time {
		return fixedTime
	})

	t.Run("generates valid token", func(t *testing.T) {
		t.Parallel()
		token, err := svc.GenerateToken(context.Background(), accountID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)

		assert.Equal(t, accountID, claims.AccountID)
		assert.Equal(t, accountID.String(), claims.Subject)
		// Compare Unix timestamps to avoid timezone issues
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	secret := "test-secret-that-is-long-enough-for-testing"
	wrongSecret := "wrong-secret-that-is-long-enough-for-testing"
	accountID := uuid.New()

	t.Run("rejects token signed with a different key", func(t *testing.T) {
		t.Parallel()
		issuer := newTestTokenService(wrongSecret, tokenLifetime, func() time.Time { return fixedTime })
		verifier := newTestTokenService(secret, tokenLifetime, func() time.Time { return fixedTime })

		token, err := issuer.GenerateToken(context.Background(), accountID)
		require.NoError(t, err)

		_, err = verifier.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		t.Parallel()
		issuer := newTestTokenService(secret, tokenLifetime, func() time.Time { return fixedTime })

		token, err := issuer.GenerateToken(context.Background(), accountID)
		require.NoError(t, err)

		// Validate from a clock past the token's expiry.
		late := newTestTokenService(secret, tokenLifetime, func() time.Time {
			return fixedTime.Add(tokenLifetime + time.Minute)
		})
		_, err = late.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		t.Parallel()
		svc := newTestTokenService(secret, tokenLifetime, func() time.Time { return fixedTime })

		_, err := svc.ValidateToken(context.Background(), "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()
		_, err := NewTokenService(config.AuthConfig{
			JWTSecret:            "short",
			TokenLifetimeMinutes: 60,
		})
		assert.Error(t, err)
	})

	t.Run("accepts adequate secret", func(t *testing.T) {
		t.Parallel()
		svc, err := NewTokenService(config.AuthConfig{
			JWTSecret:            "0123456789abcdef0123456789abcdef",
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(4) // low cost keeps the test fast

	hash, err := hasher.Hash(context.Background(), "secret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret-password", hash)

	assert.NoError(t, hasher.Compare(hash, "secret-password"))
	assert.Error(t, hasher.Compare(hash, "wrong-password"))
}
