package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pduartel/accounts-api/internal/domain"
	"github.com/pduartel/accounts-api/internal/store"
)

// AccountStore implements store.AccountStore for testing. Each method can be
// overridden with a function field; otherwise a map-backed default is used.
type AccountStore struct {
	CreateFn     func(ctx context.Context, account *domain.Account) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.Account, error)
	GetByNameFn  func(ctx context.Context, fullName string) (*domain.Account, error)
	UpdateFn     func(ctx context.Context, account *domain.Account) error
	ListFn       func(ctx context.Context) ([]*domain.Account, error)

	// Accounts backs the default implementations, keyed by email.
	Accounts map[string]*domain.Account

	// CreateCalls and UpdateCalls count invocations of the mutating methods,
	// including ones served by function fields.
	CreateCalls int
	UpdateCalls int
}

// Ensure AccountStore implements store.AccountStore interface
var _ store.AccountStore = (*AccountStore)(nil)

// NewAccountStore creates a mock store with initialized defaults.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		Accounts: make(map[string]*domain.Account),
	}
}

// Create implements the AccountStore interface.
func (m *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	m.CreateCalls++
	if m.CreateFn != nil {
		return m.CreateFn(ctx, account)
	}

	if _, exists := m.Accounts[account.Email]; exists {
		return store.ErrEmailExists
	}

	m.Accounts[account.Email] = account
	return nil
}

// GetByID implements the AccountStore interface.
func (m *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, account := range m.Accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, store.ErrAccountNotFound
}

// GetByEmail implements the AccountStore interface.
func (m *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	account, exists := m.Accounts[email]
	if !exists {
		return nil, store.ErrAccountNotFound
	}
	return account, nil
}

// GetByName implements the AccountStore interface.
func (m *AccountStore) GetByName(ctx context.Context, fullName string) (*domain.Account, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, fullName)
	}

	for _, account := range m.Accounts {
		if account.FullName == fullName {
			return account, nil
		}
	}
	return nil, store.ErrAccountNotFound
}

// Update implements the AccountStore interface.
func (m *AccountStore) Update(ctx context.Context, account *domain.Account) error {
	m.UpdateCalls++
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, account)
	}

	for email, existing := range m.Accounts {
		if existing.ID == account.ID {
			if email != account.Email {
				if _, taken := m.Accounts[account.Email]; taken {
					return store.ErrEmailExists
				}
				delete(m.Accounts, email)
			}
			m.Accounts[account.Email] = account
			return nil
		}
	}
	return store.ErrAccountNotFound
}

// List implements the AccountStore interface.
func (m *AccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	accounts := make([]*domain.Account, 0, len(m.Accounts))
	for _, account := range m.Accounts {
		accounts = append(accounts, account)
	}
	return accounts, nil
}
