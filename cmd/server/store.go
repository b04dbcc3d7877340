package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/1510Jeet/user-registry/internal/config"
	mongostore "github.com/1510Jeet/user-registry/internal/platform/mongo"
	"github.com/1510Jeet/user-registry/internal/platform/postgres"
	"github.com/1510Jeet/user-registry/internal/store"
)

// connectTimeout bounds the initial store connection and ping.
const connectTimeout = 10 * time.Second

// setupUserStore establishes the connection to the configured storage
// backend and returns the store together with its release function.
// The connection must be live before any request is served.
func setupUserStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (store.UserStore, func(ctx context.Context) error, error) {
	switch cfg.Store.Backend {
	case "mongo":
		return setupMongoStore(ctx, cfg, logger)
	case "postgres":
		return setupPostgresStore(ctx, cfg, logger)
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func setupMongoStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (store.UserStore, func(ctx context.Context) error, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Store.Mongo.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	userStore := mongostore.NewUserStore(client.Database(cfg.Store.Mongo.Database))
	if err := userStore.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	logger.Info("MongoDB connection established", "database", cfg.Store.Mongo.Database)
	return userStore, client.Disconnect, nil
}

func setupPostgresStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (store.UserStore, func(ctx context.Context) error, error) {
	db, err := sql.Open("pgx", cfg.Store.Postgres.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool with reasonable defaults
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := postgres.RunMigrations(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	logger.Info("Database connection established")
	return postgres.NewUserStore(db), func(context.Context) error { return db.Close() }, nil
}
