package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pduartel/accounts-api/internal/domain"
	"github.com/pduartel/accounts-api/internal/service/auth"
	"github.com/pduartel/accounts-api/internal/service/idgen"
	"github.com/pduartel/accounts-api/internal/store"
)

// SignupInput carries the four plaintext fields required to open an account.
type SignupInput struct {
	FullName   string
	SocialName string
	Email      string
	Password   string
}

// GetParams selects an account by exactly one of ID or FullName.
type GetParams struct {
	ID       string
	FullName string
}

// UpdateOptions is the optional-field record for partial updates. Nil (or
// empty) fields are left untouched on the stored account.
type UpdateOptions struct {
	FullName   *string
	SocialName *string
	Email      *string
	Password   *string
}

// AccountService provides the account signup, login, lookup, and update
// workflows. Every returned error is a *Error carrying kind, status code,
// and a caller-safe message.
type AccountService interface {
	// Signup registers a new account and returns a signed access token
	// whose claims carry the new account's ID.
	Signup(ctx context.Context, input SignupInput) (string, error)

	// Login authenticates an email/password pair and returns a signed
	// access token for the matching account.
	Login(ctx context.Context, email, password string) (string, error)

	// Get looks up an account by exactly one of ID or FullName.
	// A missing account is not an error at this layer; it returns (nil, nil).
	Get(ctx context.Context, params GetParams) (*domain.Account, error)

	// List returns every account in the store.
	List(ctx context.Context) ([]*domain.Account, error)

	// Update applies the supplied fields to the account with the given ID,
	// leaving omitted fields unchanged.
	Update(ctx context.Context, id string, opts UpdateOptions) error
}

// accountService implements AccountService. It holds no state of its own;
// all state lives behind the injected collaborators.
type accountService struct {
	accounts store.AccountStore
	hasher   auth.PasswordHasher
	ids      idgen.Generator
	tokens   auth.TokenService
	logger   *slog.Logger
}

// Ensure accountService implements AccountService interface
var _ AccountService = (*accountService)(nil)

// NewAccountService creates an AccountService from its four collaborators.
// All collaborators are constructed externally and passed in, so store,
// crypto, and token backends can be swapped without touching this logic.
func NewAccountService(
	accounts store.AccountStore,
	hasher auth.PasswordHasher,
	ids idgen.Generator,
	tokens auth.TokenService,
	logger *slog.Logger,
) AccountService {
	return &accountService{
		accounts: accounts,
		hasher:   hasher,
		ids:      ids,
		tokens:   tokens,
		logger:   logger.With(slog.String("component", "account_service")),
	}
}

// Signup validates the input, persists a new account, and returns an access
// token. Checks run in a fixed order and short-circuit on the first failure;
// the ordering is part of the observable contract.
func (s *accountService) Signup(ctx context.Context, input SignupInput) (string, error) {
	if input.FullName == "" || input.SocialName == "" || input.Email == "" || input.Password == "" {
		return "", NewValidationError("missing input")
	}

	if !domain.ValidPassword(input.Password) {
		return "", NewValidationError("invalid password")
	}

	if !domain.ValidEmail(input.Email) {
		return "", NewValidationError("invalid email")
	}

	existing, err := s.accounts.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, store.ErrAccountNotFound) {
		s.logger.Error("failed to check email availability", "error", err)
		return "", NewInternalError(err)
	}
	if existing != nil {
		// Deliberately generic: does not confirm which detail collided.
		s.logger.Debug("signup attempted with taken email")
		return "", NewConflictError(http.StatusUnauthorized, "invalid credentials")
	}

	id := s.ids.Generate()

	hashed, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return "", NewInternalError(err)
	}

	account, err := domain.NewAccount(id, input.FullName, input.SocialName, input.Email, hashed)
	if err != nil {
		return "", normalizeError(err)
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		s.logger.Error("failed to persist account", "error", err, "account_id", id)
		// A lost race on the unique email index reports the same way as the
		// explicit check above.
		if errors.Is(err, store.ErrEmailExists) {
			return "", NewConflictError(http.StatusUnauthorized, "invalid credentials")
		}
		return "", NewInternalError(err)
	}

	token, err := s.tokens.GenerateToken(ctx, account.ID)
	if err != nil {
		s.logger.Error("failed to issue access token", "error", err, "account_id", id)
		return "", NewInternalError(err)
	}

	s.logger.Info("account created", "account_id", id)
	return token, nil
}

// Login authenticates the email/password pair and returns an access token.
func (s *accountService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewValidationError("missing input")
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			// Historical contract: unknown email answers 400, not 404.
			return "", NewNotFoundError(http.StatusBadRequest, "account not found")
		}
		s.logger.Error("failed to look up account by email", "error", err)
		return "", NewInternalError(err)
	}

	if err := s.hasher.Compare(account.HashedPassword, password); err != nil {
		s.logger.Debug("login with wrong password", "account_id", account.ID)
		return "", NewAuthError("invalid credentials")
	}

	token, err := s.tokens.GenerateToken(ctx, account.ID)
	if err != nil {
		s.logger.Error("failed to issue access token", "error", err, "account_id", account.ID)
		return "", NewInternalError(err)
	}

	return token, nil
}

// Get looks up an account by exactly one of ID or FullName. Supplying
// neither or both is rejected rather than disambiguated.
func (s *accountService) Get(ctx context.Context, params GetParams) (*domain.Account, error) {
	switch {
	case params.ID == "" && params.FullName == "":
		return nil, NewValidationError("user name or id required")
	case params.ID != "" && params.FullName != "":
		return nil, NewValidationError("user id or name is required")
	case params.ID != "":
		id, err := uuid.Parse(params.ID)
		if err != nil {
			return nil, NewValidationError("invalid id")
		}
		return s.getOne(ctx, func(ctx context.Context) (*domain.Account, error) {
			return s.accounts.GetByID(ctx, id)
		})
	default:
		return s.getOne(ctx, func(ctx context.Context) (*domain.Account, error) {
			return s.accounts.GetByName(ctx, params.FullName)
		})
	}
}

// getOne runs a store lookup, translating "not found" into an absent result.
func (s *accountService) getOne(
	ctx context.Context,
	find func(ctx context.Context) (*domain.Account, error),
) (*domain.Account, error) {
	account, err := find(ctx)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to look up account", "error", err)
		return nil, NewInternalError(err)
	}
	return account, nil
}

// List returns every account in the store.
func (s *accountService) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		s.logger.Error("failed to list accounts", "error", err)
		return nil, NewInternalError(err)
	}
	return accounts, nil
}

// Update applies the supplied fields to the stored account. Checks run
// sequentially: existence, then email conflict, then password validation,
// then mutation; each short-circuits with its own error.
func (s *accountService) Update(ctx context.Context, id string, opts UpdateOptions) error {
	if id == "" {
		return NewValidationError("id required")
	}

	accountID, err := uuid.Parse(id)
	if err != nil {
		return NewValidationError("invalid id")
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return NewNotFoundError(http.StatusNotFound, "account not found")
		}
		s.logger.Error("failed to load account for update", "error", err, "account_id", accountID)
		return NewInternalError(err)
	}

	if newEmail := stringValue(opts.Email); newEmail != "" {
		owner, err := s.accounts.GetByEmail(ctx, newEmail)
		if err != nil && !errors.Is(err, store.ErrAccountNotFound) {
			s.logger.Error("failed to check email availability", "error", err, "account_id", accountID)
			return NewInternalError(err)
		}
		// Updating to the account's own current email is not a conflict.
		if owner != nil && owner.ID != accountID {
			return NewConflictError(http.StatusConflict, "email already in use")
		}
	}

	// Only rehash when a password is supplied and differs from the stored
	// hash value (historical behavior, preserved).
	var newHash string
	if newPassword := stringValue(opts.Password); newPassword != "" && newPassword != account.HashedPassword {
		if !domain.ValidPassword(newPassword) {
			return NewValidationError("invalid password")
		}
		newHash, err = s.hasher.Hash(ctx, newPassword)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err, "account_id", accountID)
			return NewInternalError(err)
		}
	}

	if v := stringValue(opts.FullName); v != "" {
		account.FullName = v
	}
	if v := stringValue(opts.SocialName); v != "" {
		account.SocialName = v
	}
	if v := stringValue(opts.Email); v != "" {
		account.Email = v
	}
	if newHash != "" {
		account.HashedPassword = newHash
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.accounts.Update(ctx, account); err != nil {
		s.logger.Error("failed to persist account update", "error", err, "account_id", accountID)
		return normalizeError(err)
	}

	s.logger.Info("account updated", "account_id", accountID)
	return nil
}

// stringValue dereferences an optional field, mapping nil to "".
func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
