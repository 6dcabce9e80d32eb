package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard/internal/cache"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/platform/postgres"
	"github.com/taskboard/taskboard/internal/service"
	"github.com/taskboard/taskboard/internal/service/auth"
	"github.com/taskboard/taskboard/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore    store.UserStore
	taskStore    store.TaskStore
	commentStore store.CommentStore

	// Caches
	taskCache    *cache.Region[domain.Task]
	commentCache *cache.Region[domain.Comment]

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	userService      service.UserService
	taskService      service.TaskService
	commentService   service.CommentService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
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
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewUserStore(db, bcrypt.DefaultCost)
	app.taskStore = postgres.NewTaskStore(db)
	app.commentStore = postgres.NewCommentStore(db)

	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	app.taskCache = cache.NewRegion[domain.Task]("tasks", cfg.Cache.MaxEntries, ttl, logger)
	app.commentCache = cache.NewRegion[domain.Comment]("comments", cfg.Cache.MaxEntries, ttl, logger)
	logger.Info("Resource caches initialized",
		"max_entries", cfg.Cache.MaxEntries,
		"ttl_minutes", cfg.Cache.TTLMinutes)

	app.userService, err = service.NewUserService(app.userStore, app.passwordVerifier, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskService, err = service.NewTaskService(
		app.taskStore,
		app.commentStore,
		app.userStore,
		app.taskCache,
		app.commentCache,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.commentService, err = service.NewCommentService(
		app.commentStore,
		app.taskStore,
		app.userStore,
		app.commentCache,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment service: %w", err)
	}

	// Seed the first administrator account if configured and absent.
	if err := app.userService.EnsureFirstAdmin(ctx, cfg.FirstAdmin); err != nil {
		return nil, fmt.Errorf("failed to ensure first admin: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
