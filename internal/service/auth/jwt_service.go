package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenService defines operations for issuing and validating access tokens.
type TokenService interface {
	// GenerateToken creates a signed access token whose claims carry the
	// account's ID. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, accountID uuid.UUID) (string, error)

	// ValidateToken validates the provided access token string and extracts
	// the claims, or returns an error if validation fails (expired token,
	// invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated claims payload of an access token.
type Claims struct {
	// AccountID is the unique identifier of the account the token was issued for.
	AccountID uuid.UUID `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
