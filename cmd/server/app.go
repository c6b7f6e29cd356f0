package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskr-api/internal/config"
	"github.com/phrazzld/taskr-api/internal/domain/search"
	"github.com/phrazzld/taskr-api/internal/events"
	"github.com/phrazzld/taskr-api/internal/platform/cache"
	"github.com/phrazzld/taskr-api/internal/platform/postgres"
	"github.com/phrazzld/taskr-api/internal/service"
	"github.com/phrazzld/taskr-api/internal/service/auth"
	"github.com/phrazzld/taskr-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	tokens       auth.TokenAuthenticator
	taskService  service.TaskService
	userService  service.UserService
	eventEmitter *events.InMemoryEventEmitter
	memoizer     *cache.Memoizer
	closeCache   func() error
}

// newApplication wires stores, cache, events and services around an open
// database connection.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	var err error
	app.tokens, err = auth.NewTokenAuthenticator(cfg.Auth, app.userStore, auth.NewBcryptVerifier())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token authenticator: %w", err)
	}
	logger.Info("Token authenticator initialized", "token_expiry_seconds", cfg.Auth.ExpirySeconds)

	backend, closeCache, err := cache.New(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	app.closeCache = closeCache
	app.memoizer = cache.NewMemoizer(backend, logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(app.memoizer)

	app.taskService, err = service.NewTaskService(service.TaskServiceConfig{
		Tasks:           app.taskStore,
		DB:              db,
		Memoizer:        app.memoizer,
		Emitter:         app.eventEmitter,
		Engine:          search.NewEngine(cfg.Search.DistanceThreshold, cfg.Search.MinQueryLength),
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		Logger:          logger,
	})
	if err != nil {
		_ = closeCache()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.userService = service.NewUserService(
		app.userStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		app.tokens,
		db,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the cache client and the database pool.
func (app *application) cleanup() {
	if app.closeCache != nil {
		if err := app.closeCache(); err != nil {
			app.logger.Error("Error closing cache", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

// healthHandler reports liveness.
func (app *application) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
