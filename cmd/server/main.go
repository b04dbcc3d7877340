// Package main implements the entry point for the user registry API
// server, a CRUD service over a single users collection.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/1510Jeet/user-registry/internal/config"
	"github.com/1510Jeet/user-registry/internal/platform/logger"
)

// main is the entry point for the user-registry server. It initializes
// configuration, sets up logging, establishes the store connection,
// injects dependencies and starts the HTTP server.
func main() {
	app, err := initializeApp(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_backend", cfg.Store.Backend)

	return newApplication(ctx, cfg, appLogger)
}
