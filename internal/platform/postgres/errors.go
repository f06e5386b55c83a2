package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pduartel/accounts-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"
)

// mapError maps a database error to the store's sentinel errors, wrapping
// the original error to preserve context.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrAccountNotFound, err)
	}

	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
	}

	return err
}

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
