// Package idgen provides unique identifier generation for new accounts.
package idgen

import "github.com/google/uuid"

// Generator produces unique account identifiers.
type Generator interface {
	// Generate returns a new unique identifier.
	Generate() uuid.UUID
}

// UUIDGenerator implements Generator using random (v4) UUIDs.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate implements the Generator interface.
func (g *UUIDGenerator) Generate() uuid.UUID {
	return uuid.New()
}
