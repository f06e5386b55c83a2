package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/pduartel/accounts-api/internal/domain"
)

// Common request/response structures

// SignupRequest defines the payload for the account signup endpoint.
// Content rules (password length, email shape, field presence) are enforced
// by the service so its check ordering stays the observable contract; the
// binding here only shapes the JSON.
type SignupRequest struct {
	FullName   string `json:"full_name"`
	SocialName string `json:"social_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateAccountRequest defines the payload for the account update endpoint.
// Absent fields are left untouched on the stored account.
type UpdateAccountRequest struct {
	FullName   *string `json:"full_name,omitempty"`
	SocialName *string `json:"social_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Password   *string `json:"password,omitempty"`
}

// AuthResponse defines the successful response for signup and login.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
}

// AccountResponse is the caller-facing account shape. The password hash is
// never part of it.
type AccountResponse struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	SocialName string    `json:"social_name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GetAccountResponse wraps a lookup result; Account is null when absent.
type GetAccountResponse struct {
	Account *AccountResponse `json:"account"`
}

// ListAccountsResponse wraps the list-all result.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// UpdateAccountResponse confirms a successful update.
type UpdateAccountResponse struct {
	Message string `json:"message"`
}

// toAccountResponse converts a domain account to its API shape.
func toAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:         account.ID,
		FullName:   account.FullName,
		SocialName: account.SocialName,
		Email:      account.Email,
		CreatedAt:  account.CreatedAt,
		UpdatedAt:  account.UpdatedAt,
	}
}
