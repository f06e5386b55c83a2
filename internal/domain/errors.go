package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEmptyAccountID is returned when an account is missing its ID.
	ErrEmptyAccountID = errors.New("account ID cannot be empty")

	// ErrEmptyFullName is returned when the display name is missing.
	ErrEmptyFullName = errors.New("full name cannot be empty")

	// ErrEmptySocialName is returned when the social name is missing.
	ErrEmptySocialName = errors.New("social name cannot be empty")

	// ErrEmptyEmail is returned when the email address is missing.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrPasswordTooShort is returned when a password doesn't meet the length rule.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")

	// ErrEmptyHashedPassword is returned when an account has no password hash.
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)
