package service_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pduartel/accounts-api/internal/domain"
	"github.com/pduartel/accounts-api/internal/mocks"
	"github.com/pduartel/accounts-api/internal/service"
	"github.com/pduartel/accounts-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

// fixture bundles a service with its mock collaborators.
type fixture struct {
	svc    service.AccountService
	store  *mocks.AccountStore
	hasher *mocks.PasswordHasher
	ids    *mocks.IDGenerator
	tokens *mocks.TokenService
}

func newFixture() *fixture {
	f := &fixture{
		store:  mocks.NewAccountStore(),
		hasher: &mocks.PasswordHasher{},
		ids:    mocks.NewIDGenerator(),
		tokens: &mocks.TokenService{},
	}
	f.svc = service.NewAccountService(f.store, f.hasher, f.ids, f.tokens, testLogger)
	return f
}

// seedAccount puts an account into the mock store and returns it.
func (f *fixture) seedAccount(fullName, socialName, email, password string) *domain.Account {
	account := &domain.Account{
		ID:             uuid.New(),
		FullName:       fullName,
		SocialName:     socialName,
		Email:          email,
		HashedPassword: mocks.HashPrefix + password,
		CreatedAt:      time.Now().UTC().Add(-time.Hour),
		UpdatedAt:      time.Now().UTC().Add(-time.Hour),
	}
	f.store.Accounts[email] = account
	return account
}

// requireServiceError asserts err is a normalized *service.Error of the given
// kind and status.
func requireServiceError(t *testing.T, err error, kind service.ErrorKind, status int, message string) {
	t.Helper()
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, kind, svcErr.Kind)
	assert.Equal(t, status, svcErr.Status)
	assert.Equal(t, message, svcErr.Message)
}

func validSignup() service.SignupInput {
	return service.SignupInput{
		FullName:   "Ana Souza",
		SocialName: "Ana",
		Email:      "ana@example.com",
		Password:   "secret-password",
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("missing input", func(t *testing.T) {
		for _, mutate := range []func(*service.SignupInput){
			func(in *service.SignupInput) { in.FullName = "" },
			func(in *service.SignupInput) { in.SocialName = "" },
			func(in *service.SignupInput) { in.Email = "" },
			func(in *service.SignupInput) { in.Password = "" },
		} {
			f := newFixture()
			input := validSignup()
			mutate(&input)

			_, err := f.svc.Signup(ctx, input)

			requireServiceError(t, err, service.KindValidation, http.StatusUnprocessableEntity, "missing input")
			assert.Zero(t, f.store.CreateCalls, "no account should be persisted")
		}
	})

	t.Run("short password", func(t *testing.T) {
		f := newFixture()
		hashCalled := false
		f.hasher.HashFn = func(ctx context.Context, password string) (string, error) {
			hashCalled = true
			return "", nil
		}
		input := validSignup()
		input.Password = "12345"

		_, err := f.svc.Signup(ctx, input)

		requireServiceError(t, err, service.KindValidation, http.StatusUnprocessableEntity, "invalid password")
		assert.False(t, hashCalled, "no hash should be computed")
		assert.Zero(t, f.store.CreateCalls)
	})

	t.Run("malformed emails", func(t *testing.T) {
		for _, email := range []string{"no-at-sign.com", "user@nodot", "bad email@example.com"} {
			f := newFixture()
			input := validSignup()
			input.Email = email

			_, err := f.svc.Signup(ctx, input)

			requireServiceError(t, err, service.KindValidation, http.StatusUnprocessableEntity, "invalid email")
			assert.Zero(t, f.store.CreateCalls, email)
		}
	})

	t.Run("email already taken", func(t *testing.T) {
		f := newFixture()
		f.seedAccount("Bia Lima", "Bia", "ana@example.com", "other-password")

		_, err := f.svc.Signup(ctx, validSignup())

		// The conflict reports as a generic credentials failure on purpose.
		requireServiceError(t, err, service.KindConflict, http.StatusUnauthorized, "invalid credentials")
		assert.Zero(t, f.store.CreateCalls)
		assert.Len(t, f.store.Accounts, 1, "store state unchanged")
	})

	t.Run("successful signup round-trip", func(t *testing.T) {
		f := newFixture()
		input := validSignup()

		token, err := f.svc.Signup(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, mocks.TokenForID(f.ids.NextID), token, "token decodes to the generated id")

		stored, err := f.svc.Get(ctx, service.GetParams{ID: f.ids.NextID.String()})
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, input.FullName, stored.FullName)
		assert.Equal(t, input.Email, stored.Email)
		assert.NotEqual(t, input.Password, stored.HashedPassword, "plaintext is never stored")
		assert.NoError(t, f.hasher.Compare(stored.HashedPassword, input.Password))
	})

	t.Run("persistence failure issues no token", func(t *testing.T) {
		f := newFixture()
		f.store.CreateFn = func(ctx context.Context, account *domain.Account) error {
			return fmt.Errorf("connection reset")
		}
		tokenIssued := false
		f.tokens.GenerateTokenFn = func(ctx context.Context, accountID uuid.UUID) (string, error) {
			tokenIssued = true
			return "", nil
		}

		_, err := f.svc.Signup(ctx, validSignup())

		var svcErr *service.Error
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.KindInternal, svcErr.Kind)
		assert.Equal(t, http.StatusInternalServerError, svcErr.Status)
		assert.Contains(t, svcErr.Error(), "connection reset", "collaborator fault is surfaced, not swallowed")
		assert.False(t, tokenIssued)
	})

	t.Run("lost unique-index race reports as credentials conflict", func(t *testing.T) {
		f := newFixture()
		f.store.GetByEmailFn = func(ctx context.Context, email string) (*domain.Account, error) {
			return nil, store.ErrAccountNotFound // the race: check passes
		}
		f.store.CreateFn = func(ctx context.Context, account *domain.Account) error {
			return store.ErrEmailExists // the index catches it
		}

		_, err := f.svc.Signup(ctx, validSignup())

		requireServiceError(t, err, service.KindConflict, http.StatusUnauthorized, "invalid credentials")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("missing input", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Login(ctx, "", "secret-password")
		requireServiceError(t, err, service.KindValidation, http.StatusUnprocessableEntity, "missing input")

		_, err = f.svc.Login(ctx, "ana@example.com", "")
		requireServiceError(t, err, service.KindValidation, http.StatusUnprocessableEntity, "missing input")
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Login(ctx, "nobody@example.com", "secret-password")

		// Historical contract: 400, not 404.
		requireServiceError(t, err, service.KindNotFound, http.StatusBadRequest, "account not found")
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture()
		f.seedAccount("Ana Souza", "Ana", "ana@example.com", "secret-password")

		_, err := f.svc.Login(ctx, "ana@example.com", "wrong-password")

		requireServiceError(t, err, service.KindAuth, http.StatusUnauthorized, "invalid credentials")
	})

	t.Run("correct credentials", func(t *testing.T) {
		f := newFixture()
		account := f.seedAccount("Ana Souza", "Ana", "ana@example.com", "secret-password")

		token, err := f.svc.Login(ctx, "ana@example.com", "secret-password")

		require.NoError(t, err)
		assert.Equal(t, mocks.TokenForID(account.ID), token)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("neither id nor name", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Get(ctx, service.GetParams{})

		requireServiceError(t, err, service.KindValidation, http.StatusUnprocessableEntity, "user name or id required")
	})

	t.Run("both id and name", func(t *testing.T) {
		f := newFixture()
		account := f.seedAccount("Ana Souza", "Ana", "ana@example.com", "secret-password")

		// Rejected even though either key alone would resolve.
		_, err := f.svc.Get(ctx, service.GetParams{ID: account.ID.String(), FullName: account.FullName})

		requireServiceError(t, err, service.KindValidation, http.StatusUnprocessableEntity, "user id or name is required")
	})

	t.Run("by id", func(t *testing.T) {
		f := newFixture()
		account := f.seedAccount("Ana Souza", "Ana", "ana@example.com", "secret-password")

		got, err := f.svc.Get(ctx, service.GetParams{ID: account.ID.String()})

		require.NoError(t, err)
		assert.Equal(t, account, got)
	})

	t.Run("by name", func(t *testing.T) {
		f := newFixture()
		account := f.seedAccount("Ana Souza", "Ana", "ana@example.com", "secret-password")

		got, err := f.svc.Get(ctx, service.GetParams{FullName: "Ana Souza"})

		require.NoError(t, err)
		assert.Equal(t, account, got)
	})

	t.Run("absent account is not an error", func(t *testing.T) {
		f := newFixture()

		got, err := f.svc.Get(ctx, service.GetParams{ID: uuid.New().String()})

		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns every account", func(t *testing.T) {
		f := newFixture()
		f.seedAccount("Ana Souza", "Ana", "ana@example.com", "p1-secret")
		f.seedAccount("Bia Lima", "Bia", "bia@example.com", "p2-secret")

		accounts, err := f.svc.List(ctx)

		require.NoError(t, err)
		assert.Len(t, accounts, 2)
	})

	t.Run("store fault surfaces as internal", func(t *testing.T) {
		f := newFixture()
		f.store.ListFn = func(ctx context.Context) ([]*domain.Account, error) {
			return nil, errors.New("boom")
		}

		_, err := f.svc.List(ctx)

		var svcErr *service.Error
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.KindInternal, svcErr.Kind)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }

	t.Run("id required", func(t *testing.T) {
		f := newFixture()

		err := f.svc.Update(ctx, "", service.UpdateOptions{})

		requireServiceError(t, err, service.KindValidation, http.StatusUnprocessableEntity, "id required")
	})

	t.Run("account not found", func(t *testing.T) {
		f := newFixture()

		err := f.svc.Update(ctx, uuid.New().String(), service.UpdateOptions{})

		requireServiceError(t, err, service.KindNotFound, http.StatusNotFound, "account not found")
	})

	t.Run("changing only social name leaves other fields alone", func(t *testing.T) {
		f := newFixture()
		account := f.seedAccount("Ana Souza", "Ana", "ana@example.com", "secret-password")
		originalHash := account.HashedPassword

		err := f.svc.Update(ctx, account.ID.String(), service.UpdateOptions{SocialName: strPtr("Aninha")})
		require.NoError(t, err)

		updated := f.store.Accounts["ana@example.com"]
		require.NotNil(t, updated)
		assert.Equal(t, "Aninha", updated.SocialName)
		assert.Equal(t, "Ana Souza", updated.FullName)
		assert.Equal(t, "ana@example.com", updated.Email)
		assert.Equal(t, originalHash, updated.HashedPassword)
		assert.Equal(t, 1, f.store.UpdateCalls)
	})

	t.Run("email owned by a different account conflicts", func(t *testing.T) {
		f := newFixture()
		account := f.seedAccount("Ana Souza", "Ana", "ana@example.com", "secret-password")
		f.seedAccount("Bia Lima", "Bia", "bia@example.com", "other-password")

		err := f.svc.Update(ctx, account.ID.String(), service.UpdateOptions{Email: strPtr("bia@example.com")})

		requireServiceError(t, err, service.KindConflict, http.StatusConflict, "email already in use")
		assert.Equal(t, "ana@example.com", f.store.Accounts["ana@example.com"].Email, "target email unchanged")
		assert.Zero(t, f.store.UpdateCalls)
	})

	t.Run("own current email is not a conflict", func(t *testing.T) {
		f := newFixture()
		account := f.seedAccount("Ana Souza", "Ana", "ana@example.com", "secret-password")

		err := f.svc.Update(ctx, account.ID.String(), service.UpdateOptions{Email: strPtr("ana@example.com")})

		require.NoError(t, err)
		assert.Equal(t, 1, f.store.UpdateCalls)
	})

	t.Run("short new password fails before hashing", func(t *testing.T) {
		f := newFixture()
		account := f.seedAccount("Ana Souza", "Ana", "ana@example.com", "secret-password")
		hashCalled := false
		f.hasher.HashFn = func(ctx context.Context, password string) (string, error) {
			hashCalled = true
			return "", nil
		}

		err := f.svc.Update(ctx, account.ID.String(), service.UpdateOptions{Password: strPtr("123")})

		requireServiceError(t, err, service.KindValidation, http.StatusUnprocessableEntity, "invalid password")
		assert.False(t, hashCalled)
		assert.Zero(t, f.store.UpdateCalls)
	})

	t.Run("new password is rehashed", func(t *testing.T) {
		f := newFixture()
		account := f.seedAccount("Ana Souza", "Ana", "ana@example.com", "secret-password")

		err := f.svc.Update(ctx, account.ID.String(), service.UpdateOptions{Password: strPtr("new-password")})

		require.NoError(t, err)
		assert.Equal(t, mocks.HashPrefix+"new-password", f.store.Accounts["ana@example.com"].HashedPassword)
	})

	t.Run("password equal to stored hash is left unchanged", func(t *testing.T) {
		f := newFixture()
		account := f.seedAccount("Ana Souza", "Ana", "ana@example.com", "secret-password")
		storedHash := account.HashedPassword
		hashCalled := false
		f.hasher.HashFn = func(ctx context.Context, password string) (string, error) {
			hashCalled = true
			return "", nil
		}

		err := f.svc.Update(ctx, account.ID.String(), service.UpdateOptions{Password: strPtr(storedHash)})

		require.NoError(t, err)
		assert.False(t, hashCalled)
		assert.Equal(t, storedHash, f.store.Accounts["ana@example.com"].HashedPassword)
	})
}
