package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., an account with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrAccountNotFound indicates that the requested account does not exist in the store.
	ErrAccountNotFound = fmt.Errorf("%w: account", ErrNotFound)

	// ErrEmailExists indicates that an account with the given email already exists.
	// This is returned when attempting to create or update an account with an
	// email that's already in use.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
