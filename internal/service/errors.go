package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pduartel/accounts-api/internal/domain"
	"github.com/pduartel/accounts-api/internal/store"
)

// ErrorKind tags an Error with its place in the error taxonomy so callers
// can pattern-match on kind with errors.As instead of string comparison.
type ErrorKind string

// The error kinds produced by this package.
const (
	KindValidation ErrorKind = "validation" // malformed or missing caller input
	KindConflict   ErrorKind = "conflict"   // uniqueness violation
	KindAuth       ErrorKind = "auth"       // credential mismatch
	KindNotFound   ErrorKind = "not_found"  // no matching record
	KindInternal   ErrorKind = "internal"   // collaborator or store fault
)

// Error is the normalized error shape every service operation returns.
// It carries the kind, the HTTP status code the transport layer should use,
// a caller-safe message, and the wrapped cause (if any).
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error. Validation failures use
// 422 Unprocessable Entity, matching the service's historical contract.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusUnprocessableEntity, Message: message}
}

// NewConflictError creates a uniqueness-violation error with an explicit
// status. Signup's email collision deliberately reports 401 with a generic
// credentials message so callers cannot probe which detail collided; update
// reports a conventional 409.
func NewConflictError(status int, message string) *Error {
	return &Error{Kind: KindConflict, Status: status, Message: message}
}

// NewAuthError creates a credential-mismatch error (401).
func NewAuthError(message string) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusUnauthorized, Message: message}
}

// NewNotFoundError creates a no-matching-record error with an explicit
// status. Login's unknown-email path keeps its historical 400; update uses
// a conventional 404.
func NewNotFoundError(status int, message string) *Error {
	return &Error{Kind: KindNotFound, Status: status, Message: message}
}

// NewInternalError wraps an unexpected collaborator or store fault (500).
// The original message is preserved in the wrapped cause, not swallowed.
func NewInternalError(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Message: "internal error",
		Err:     err,
	}
}

// normalizeError guarantees the uniform error shape at the service boundary.
// Already-normalized errors pass through; known domain and store errors map
// to their taxonomy kind; anything else surfaces as an internal fault.
func normalizeError(err error) *Error {
	if err == nil {
		return nil
	}

	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}

	switch {
	case errors.Is(err, domain.ErrInvalidEmail), errors.Is(err, domain.ErrEmptyEmail):
		return NewValidationError("invalid email")
	case errors.Is(err, domain.ErrPasswordTooShort):
		return NewValidationError("invalid password")
	case errors.Is(err, domain.ErrEmptyFullName),
		errors.Is(err, domain.ErrEmptySocialName),
		errors.Is(err, domain.ErrEmptyAccountID),
		errors.Is(err, domain.ErrEmptyHashedPassword):
		return NewValidationError("missing input")
	case errors.Is(err, store.ErrEmailExists):
		return NewConflictError(http.StatusConflict, "email already in use")
	case errors.Is(err, store.ErrNotFound):
		return NewNotFoundError(http.StatusNotFound, "account not found")
	default:
		return NewInternalError(err)
	}
}
