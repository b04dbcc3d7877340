package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/1510Jeet/user-registry/internal/api"
	apiMiddleware "github.com/1510Jeet/user-registry/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	userHandler := api.NewUserHandler(app.userService, app.logger)

	// Register routes
	r.Get("/", userHandler.Root)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/create-user", userHandler.CreateUser)
		r.Get("/read-all-users", userHandler.ReadAllUsers)
		r.Get("/read-user/{email_address}", userHandler.ReadUserByEmail)
		r.Put("/update-user/{email_address}", userHandler.UpdateUserByEmail)
		r.Delete("/delete-user/{email_address}", userHandler.DeleteUserByEmail)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := app.userStore.Ping(r.Context()); err != nil {
			app.logger.Error("Health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
