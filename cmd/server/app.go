package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/1510Jeet/user-registry/internal/config"
	"github.com/1510Jeet/user-registry/internal/service"
	"github.com/1510Jeet/user-registry/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore

	// Service layer
	userService *service.UserService

	// closeStore releases the store connection on shutdown.
	closeStore func(ctx context.Context) error
}

// newApplication creates a new application instance with all
// dependencies initialized. The store connection is established here,
// before any request is served, and released by cleanup on shutdown.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.userStore, app.closeStore, err = setupUserStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	app.userService = service.NewUserService(app.userStore, logger)

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
	if app.closeStore != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.closeStore(ctx); err != nil {
			app.logger.Error("Error closing store connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
