// Package redis provides an optional cache-aside decorator over the account
// store for the hot read paths.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pduartel/accounts-api/internal/domain"
	"github.com/pduartel/accounts-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// cache key layout
const (
	accountKeyPrefix = "account:id:"
	listKey          = "accounts:all"
)

// cachedAccount is the cache wire form of domain.Account. The domain type
// hides the password hash from JSON, so the cache carries its own record to
// round-trip every field intact.
type cachedAccount struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	SocialName     string    `json:"social_name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"hashed_password"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toCached(a *domain.Account) *cachedAccount {
	return &cachedAccount{
		ID:             a.ID,
		FullName:       a.FullName,
		SocialName:     a.SocialName,
		Email:          a.Email,
		HashedPassword: a.HashedPassword,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (c *cachedAccount) toDomain() *domain.Account {
	return &domain.Account{
		ID:             c.ID,
		FullName:       c.FullName,
		SocialName:     c.SocialName,
		Email:          c.Email,
		HashedPassword: c.HashedPassword,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// CachedAccountStore decorates a store.AccountStore with a Redis cache for
// GetByID and List. Writes go straight through to the inner store and
// invalidate the affected keys. Cache failures are logged and treated as
// misses; Redis being down never fails a request.
//
// Lookups by email and name bypass the cache: they feed the credential and
// uniqueness checks, which must always see the store's current state.
type CachedAccountStore struct {
	inner  store.AccountStore
	client *goredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Ensure CachedAccountStore implements store.AccountStore interface
var _ store.AccountStore = (*CachedAccountStore)(nil)

// NewCachedAccountStore wraps inner with a Redis cache. A ttl of 0 stores
// keys without expiry. If logger is nil, the default logger is used.
func NewCachedAccountStore(
	inner store.AccountStore,
	client *goredis.Client,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedAccountStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &CachedAccountStore{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "account_cache")),
	}
}

// Create implements store.AccountStore.Create, invalidating the list key.
func (c *CachedAccountStore) Create(ctx context.Context, account *domain.Account) error {
	if err := c.inner.Create(ctx, account); err != nil {
		return err
	}
	c.invalidate(ctx, listKey)
	return nil
}

// GetByID implements store.AccountStore.GetByID with cache-aside semantics.
func (c *CachedAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	key := accountKeyPrefix + id.String()

	if account, ok := c.get(ctx, key); ok {
		return account, nil
	}

	account, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.set(ctx, key, account)
	return account, nil
}

// GetByEmail implements store.AccountStore.GetByEmail, always hitting the
// inner store.
func (c *CachedAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return c.inner.GetByEmail(ctx, email)
}

// GetByName implements store.AccountStore.GetByName, always hitting the
// inner store.
func (c *CachedAccountStore) GetByName(ctx context.Context, fullName string) (*domain.Account, error) {
	return c.inner.GetByName(ctx, fullName)
}

// Update implements store.AccountStore.Update, invalidating the account's
// key and the list key.
func (c *CachedAccountStore) Update(ctx context.Context, account *domain.Account) error {
	if err := c.inner.Update(ctx, account); err != nil {
		return err
	}
	c.invalidate(ctx, accountKeyPrefix+account.ID.String(), listKey)
	return nil
}

// List implements store.AccountStore.List with cache-aside semantics.
func (c *CachedAccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	if data, err := c.client.Get(ctx, listKey).Bytes(); err == nil {
		var cached []*cachedAccount
		if err := json.Unmarshal(data, &cached); err == nil {
			accounts := make([]*domain.Account, len(cached))
			for i, entry := range cached {
				accounts[i] = entry.toDomain()
			}
			return accounts, nil
		}
		// Undecodable payload: drop it and fall through to the store.
		c.invalidate(ctx, listKey)
	}

	accounts, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	cached := make([]*cachedAccount, len(accounts))
	for i, account := range accounts {
		cached[i] = toCached(account)
	}
	if data, err := json.Marshal(cached); err == nil {
		if err := c.client.Set(ctx, listKey, data, c.ttl).Err(); err != nil {
			c.logger.Warn("cache write failed", "key", listKey, "error", err)
		}
	}

	return accounts, nil
}

// get reads and decodes one account from the cache. Any failure is a miss.
func (c *CachedAccountStore) get(ctx context.Context, key string) (*domain.Account, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var cached cachedAccount
	if err := json.Unmarshal(data, &cached); err != nil {
		c.logger.Warn("cache payload undecodable", "key", key, "error", err)
		return nil, false
	}
	return cached.toDomain(), true
}

// set encodes and stores one account; write failures are non-fatal.
func (c *CachedAccountStore) set(ctx context.Context, key string, account *domain.Account) {
	data, err := json.Marshal(toCached(account))
	if err != nil {
		c.logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// invalidate removes keys, logging rather than failing on error.
func (c *CachedAccountStore) invalidate(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}
