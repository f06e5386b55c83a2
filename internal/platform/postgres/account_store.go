package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pduartel/accounts-api/internal/domain"
	"github.com/pduartel/accounts-api/internal/platform/logger"
	"github.com/pduartel/accounts-api/internal/store"
)

// AccountStore implements the store.AccountStore interface using a
// PostgreSQL database as the storage backend.
type AccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAccountStore creates a new PostgreSQL implementation of the
// AccountStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, the default
// logger is used.
func NewAccountStore(db store.DBTX, logger *slog.Logger) *AccountStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure AccountStore implements store.AccountStore interface
var _ store.AccountStore = (*AccountStore)(nil)

// accountColumns is the column list shared by all account queries.
const accountColumns = "id, full_name, social_name, email, hashed_password, created_at, updated_at"

// Create implements store.AccountStore.Create.
// Returns store.ErrEmailExists if the unique email index rejects the row.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		log.Warn("account validation failed during create",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return err
	}

	query := `
		INSERT INTO accounts (id, full_name, social_name, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		account.ID,
		account.FullName,
		account.SocialName,
		account.Email,
		account.HashedPassword,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate email during account creation",
				slog.String("account_id", account.ID.String()))
			return mapError(err)
		}

		log.Error("failed to create account",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return err
	}

	log.Info("account created successfully",
		slog.String("account_id", account.ID.String()))
	return nil
}

// GetByID implements store.AccountStore.GetByID.
// Returns store.ErrAccountNotFound if the account does not exist.
func (s *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving account by ID", slog.String("account_id", id.String()))

	query := fmt.Sprintf("SELECT %s FROM accounts WHERE id = $1", accountColumns)
	return s.scanAccount(ctx, query, id)
}

// GetByEmail implements store.AccountStore.GetByEmail.
// Returns store.ErrAccountNotFound if the account does not exist.
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE email = $1", accountColumns)
	return s.scanAccount(ctx, query, email)
}

// GetByName implements store.AccountStore.GetByName.
// Full names are not unique; the first match wins, which mirrors the
// lookup-by-name contract of the service layer.
func (s *AccountStore) GetByName(ctx context.Context, fullName string) (*domain.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM accounts WHERE full_name = $1 LIMIT 1", accountColumns)
	return s.scanAccount(ctx, query, fullName)
}

// scanAccount runs a single-row account query and maps driver errors to
// store sentinels.
func (s *AccountStore) scanAccount(ctx context.Context, query string, arg any) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var account domain.Account
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&account.FullName,
		&account.SocialName,
		&account.Email,
		&account.HashedPassword,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		mapped := mapError(err)
		if !store.IsNotFoundError(mapped) {
			log.Error("failed to query account", slog.String("error", err.Error()))
		}
		return nil, mapped
	}

	return &account, nil
}

// Update implements store.AccountStore.Update.
// Returns store.ErrAccountNotFound if no row matches the account's ID and
// store.ErrEmailExists if the new email collides with another account.
func (s *AccountStore) Update(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		log.Warn("account validation failed during update",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return err
	}

	query := `
		UPDATE accounts
		SET full_name = $2, social_name = $3, email = $4, hashed_password = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		account.ID,
		account.FullName,
		account.SocialName,
		account.Email,
		account.HashedPassword,
		account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate email during account update",
				slog.String("account_id", account.ID.String()))
			return mapError(err)
		}

		log.Error("failed to update account",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrAccountNotFound
	}

	log.Info("account updated successfully",
		slog.String("account_id", account.ID.String()))
	return nil
}

// List implements store.AccountStore.List.
func (s *AccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf("SELECT %s FROM accounts", accountColumns)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list accounts", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Warn("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var accounts []*domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.FullName,
			&account.SocialName,
			&account.Email,
			&account.HashedPassword,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			log.Error("failed to scan account row", slog.String("error", err.Error()))
			return nil, err
		}
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		log.Error("failed while iterating account rows", slog.String("error", err.Error()))
		return nil, err
	}

	return accounts, nil
}
