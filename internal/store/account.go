package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/pduartel/accounts-api/internal/domain"
)

// AccountStore defines the interface for account data persistence.
type AccountStore interface {
	// Create saves a new account to the store.
	// The account must already carry its generated ID and password hash.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by its unique ID.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// GetByEmail retrieves an account by its email address.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// GetByName retrieves an account by its full display name.
	// Returns ErrAccountNotFound if no account has that name.
	GetByName(ctx context.Context, fullName string) (*domain.Account, error)

	// Update persists the complete account record, replacing the stored row.
	// Returns ErrAccountNotFound if the account does not exist.
	// Returns ErrEmailExists if updating to an email owned by another account.
	Update(ctx context.Context, account *domain.Account) error

	// List returns every account in the store. No ordering is guaranteed
	// beyond what the backing store provides.
	List(ctx context.Context) ([]*domain.Account, error)
}
