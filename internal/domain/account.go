package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MinPasswordLength is the minimum accepted plaintext password length.
const MinPasswordLength = 6

// Account represents a registered account of the service.
// The plaintext password never lives on this struct; only its hash does.
type Account struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	SocialName     string    `json:"social_name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewAccount assembles an Account from already-prepared parts: the caller
// supplies the generated ID and the password hash. Timestamps are set to now.
// Returns an error if validation fails.
func NewAccount(id uuid.UUID, fullName, socialName, email, hashedPassword string) (*Account, error) {
	now := time.Now().UTC()
	account := &Account{
		ID:             id,
		FullName:       fullName,
		SocialName:     socialName,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks if the Account has valid data.
// Returns an error if any field fails validation.
func (a *Account) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAccountID
	}

	if a.FullName == "" {
		return ErrEmptyFullName
	}

	if a.SocialName == "" {
		return ErrEmptySocialName
	}

	if a.Email == "" {
		return ErrEmptyEmail
	}

	if !ValidEmail(a.Email) {
		return ErrInvalidEmail
	}

	if a.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

// ValidPassword reports whether a plaintext password meets the length rule.
func ValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}

// ValidEmail reports whether email has the required local@domain.tld shape:
// a non-empty whitespace-free local part, an "@", and a domain part
// containing at least one interior dot.
func ValidEmail(email string) bool {
	if strings.ContainsAny(email, " \t\n\r") {
		return false
	}

	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	// The original rule allows a single "@" only.
	domain := email[at+1:]
	if strings.Contains(domain, "@") {
		return false
	}

	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
