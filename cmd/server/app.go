package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/pduartel/accounts-api/internal/config"
	"github.com/pduartel/accounts-api/internal/platform/postgres"
	"github.com/pduartel/accounts-api/internal/platform/redis"
	"github.com/pduartel/accounts-api/internal/service"
	"github.com/pduartel/accounts-api/internal/service/auth"
	"github.com/pduartel/accounts-api/internal/service/idgen"
	"github.com/pduartel/accounts-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB
	cache  *goredis.Client

	accountStore store.AccountStore

	tokenService   auth.TokenService
	passwordHasher auth.PasswordHasher
	idGenerator    idgen.Generator

	accountService service.AccountService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("Token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher(bcrypt.DefaultCost)
	app.idGenerator = idgen.NewUUIDGenerator()

	app.accountStore = postgres.NewAccountStore(db, logger)

	// Layer the Redis cache over the store only when an address is configured.
	if cfg.Redis.Addr != "" {
		app.cache = goredis.NewClient(&goredis.Options{Addr: cfg.Redis.Addr})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := app.cache.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		app.accountStore = redis.NewCachedAccountStore(app.accountStore, app.cache, ttl, logger)
		logger.Info("Redis cache enabled", "addr", cfg.Redis.Addr, "ttl_seconds", cfg.Redis.TTLSeconds)
	}

	app.accountService = service.NewAccountService(
		app.accountStore,
		app.passwordHasher,
		app.idGenerator,
		app.tokenService,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("Error closing redis client", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
