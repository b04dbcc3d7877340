// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/1510Jeet/user-registry/internal/api/shared"
	"github.com/1510Jeet/user-registry/internal/domain"
	"github.com/1510Jeet/user-registry/internal/platform/logger"
	"github.com/1510Jeet/user-registry/internal/service"
)

// UserHandler handles user record HTTP requests.
type UserHandler struct {
	userService *service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService *service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// Root handles GET / requests with a running indicator.
func (h *UserHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "User registry server is running",
	})
}

// CreateUser handles POST /api/v1/create-user requests. The payload is
// validated against the data contract before any store contact; the
// response is the stored record re-fetched by its new identifier.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var record domain.UserRecord
	if err := shared.DecodeJSON(r, &record); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	// Clients do not assign identifiers.
	record.ID = ""

	if err := shared.ValidateRequest(&record); err != nil {
		h.respondError(w, r, err)
		return
	}

	created, err := h.userService.CreateUser(r.Context(), &record)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	log.Debug("user created",
		slog.String("user_id", created.ID),
		slog.String("email", created.EmailAddress))
	shared.RespondWithJSON(w, r, http.StatusCreated, created)
}

// ReadAllUsers handles GET /api/v1/read-all-users requests.
func (h *UserHandler) ReadAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// ReadUserByEmail handles GET /api/v1/read-user/{email_address} requests.
func (h *UserHandler) ReadUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := pathEmail(r)

	user, err := h.userService.GetUserByEmail(r.Context(), email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// UpdateUserByEmail handles PUT /api/v1/update-user/{email_address}
// requests. Only fields present in the payload are applied; an empty
// payload is rejected with 400 and a no-op or unmatched update with 404.
func (h *UserHandler) UpdateUserByEmail(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	email := pathEmail(r)

	var patch domain.UserPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		// A missing body counts as an empty patch, not a malformed one.
		if !errors.Is(err, io.EOF) {
			shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request body")
			return
		}
	}

	updated, err := h.userService.UpdateUserByEmail(r.Context(), email, &patch)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	log.Debug("user updated", slog.String("email", email))
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// DeleteUserByEmail handles DELETE /api/v1/delete-user/{email_address} requests.
func (h *UserHandler) DeleteUserByEmail(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	email := pathEmail(r)

	if err := h.userService.DeleteUserByEmail(r.Context(), email); err != nil {
		h.respondError(w, r, err)
		return
	}

	log.Debug("user deleted", slog.String("email", email))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "User deleted successfully",
	})
}

// respondError maps a service error onto its status code and sanitized
// message. Validation failures additionally carry the per-field
// breakdown; store failures are logged in full but reported opaquely.
func (h *UserHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		shared.RespondWithErrorDetails(w, r, status, message, ve.Fields)
		return
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// pathEmail extracts the email_address path parameter. chi routes on
// URL.RawPath when the request path needed escaping, handing back the
// still-encoded segment; otherwise the param is already decoded and a
// second unescape would corrupt emails containing literal percent
// sequences.
func pathEmail(r *http.Request) string {
	raw := chi.URLParam(r, "email_address")
	if r.URL.RawPath == "" {
		return raw
	}
	email, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return email
}
