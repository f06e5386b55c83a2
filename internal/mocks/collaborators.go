package mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pduartel/accounts-api/internal/service/auth"
	"github.com/pduartel/accounts-api/internal/service/idgen"
)

// PasswordHasher implements auth.PasswordHasher for testing. The default
// behavior is a reversible fake: Hash prefixes the plaintext and Compare
// checks the prefix, so tests can assert on stored hash values directly.
type PasswordHasher struct {
	HashFn    func(ctx context.Context, password string) (string, error)
	CompareFn func(hashedPassword, password string) error
}

// Ensure PasswordHasher implements auth.PasswordHasher interface
var _ auth.PasswordHasher = (*PasswordHasher)(nil)

// HashPrefix marks fake hashes produced by the default Hash implementation.
const HashPrefix = "hashed:"

// Hash implements the PasswordHasher interface.
func (m *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(ctx, password)
	}
	return HashPrefix + password, nil
}

// Compare implements the PasswordHasher interface.
func (m *PasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != HashPrefix+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

// TokenService implements auth.TokenService for testing. The default issues
// "token-for:<id>" strings and validates them back into claims.
type TokenService struct {
	GenerateTokenFn func(ctx context.Context, accountID uuid.UUID) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

// Ensure TokenService implements auth.TokenService interface
var _ auth.TokenService = (*TokenService)(nil)

// tokenPrefix marks fake tokens produced by the default implementation.
const tokenPrefix = "token-for:"

// GenerateToken implements the TokenService interface.
func (m *TokenService) GenerateToken(ctx context.Context, accountID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, accountID)
	}
	return tokenPrefix + accountID.String(), nil
}

// ValidateToken implements the TokenService interface.
func (m *TokenService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if len(tokenString) <= len(tokenPrefix) || tokenString[:len(tokenPrefix)] != tokenPrefix {
		return nil, auth.ErrInvalidToken
	}
	id, err := uuid.Parse(tokenString[len(tokenPrefix):])
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{AccountID: id, Subject: id.String()}, nil
}

// TokenForID returns the fake token the default TokenService issues for id.
func TokenForID(id uuid.UUID) string {
	return tokenPrefix + id.String()
}

// IDGenerator implements idgen.Generator for testing, returning a fixed ID.
type IDGenerator struct {
	NextID uuid.UUID
}

// Ensure IDGenerator implements idgen.Generator interface
var _ idgen.Generator = (*IDGenerator)(nil)

// NewIDGenerator creates an IDGenerator seeded with a fresh random ID.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{NextID: uuid.New()}
}

// Generate implements the Generator interface.
func (m *IDGenerator) Generate() uuid.UUID {
	return m.NextID
}
