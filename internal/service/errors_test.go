package service

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/pduartel/accounts-api/internal/domain"
	"github.com/pduartel/accounts-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewValidationError("missing input")
		assert.Equal(t, "validation: missing input", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := NewInternalError(cause)
		assert.Contains(t, err.Error(), "internal")
		assert.Contains(t, err.Error(), "connection reset")
		assert.ErrorIs(t, err, cause)
	})
}

func TestNormalizeError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, normalizeError(nil))
	})

	t.Run("already normalized passes through", func(t *testing.T) {
		original := NewAuthError("invalid credentials")
		assert.Same(t, original, normalizeError(original))
	})

	t.Run("wrapped service error is unwrapped", func(t *testing.T) {
		original := NewAuthError("invalid credentials")
		wrapped := fmt.Errorf("login: %w", original)
		assert.Same(t, original, normalizeError(wrapped))
	})

	tests := []struct {
		name       string
		err        error
		wantKind   ErrorKind
		wantStatus int
		wantMsg    string
	}{
		{"invalid email", domain.ErrInvalidEmail, KindValidation, http.StatusUnprocessableEntity, "invalid email"},
		{"short password", domain.ErrPasswordTooShort, KindValidation, http.StatusUnprocessableEntity, "invalid password"},
		{"empty full name", domain.ErrEmptyFullName, KindValidation, http.StatusUnprocessableEntity, "missing input"},
		{"email exists", store.ErrEmailExists, KindConflict, http.StatusConflict, "email already in use"},
		{"account not found", store.ErrAccountNotFound, KindNotFound, http.StatusNotFound, "account not found"},
		{"unknown fault", errors.New("connection reset"), KindInternal, http.StatusInternalServerError, "internal error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			normalized := normalizeError(tc.err)
			require.NotNil(t, normalized)
			assert.Equal(t, tc.wantKind, normalized.Kind)
			assert.Equal(t, tc.wantStatus, normalized.Status)
			assert.Equal(t, tc.wantMsg, normalized.Message)
		})
	}
}
