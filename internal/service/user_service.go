// Package service orchestrates the user record operations: validation
// at the boundary, a single store call per operation, and mapping of
// store outcomes onto the error kinds the API layer understands.
package service

import (
	"context"
	"log/slog"

	"github.com/1510Jeet/user-registry/internal/domain"
	"github.com/1510Jeet/user-registry/internal/store"
)

// UserService implements the five user record operations. It is
// stateless: the store handle is injected at construction and no state
// is held between requests.
type UserService struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewUserService creates a UserService backed by the given store.
func NewUserService(users store.UserStore, logger *slog.Logger) *UserService {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserService")
	}

	return &UserService{
		users:  users,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// CreateUser validates the record, persists it and returns the stored
// record re-fetched by its newly assigned identifier.
// Returns a *domain.ValidationError before any store contact if the
// record violates the data contract, and store.ErrEmailExists if a
// record with the same email address already exists.
func (s *UserService) CreateUser(
	ctx context.Context,
	record *domain.UserRecord,
) (*domain.UserRecord, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	id, err := s.users.Insert(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("user created",
		slog.String("user_id", id),
		slog.String("email", record.EmailAddress))

	// Re-fetch so the response reflects exactly what the store holds.
	return s.users.FindByID(ctx, id)
}

// ListUsers returns every stored record. The list may be empty.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.UserRecord, error) {
	return s.users.FindAll(ctx)
}

// GetUserByEmail returns the record addressed by its email business key.
// Returns store.ErrUserNotFound if no record matches.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	return s.users.FindByEmail(ctx, email)
}

// UpdateUserByEmail applies a sparse merge-patch to the record
// addressed by its email business key and returns the re-fetched
// result. An empty patch is rejected with domain.ErrEmptyPatch before
// the store is contacted. A modified count of zero maps to
// store.ErrUserNotFound, which deliberately conflates "no match" with
// "match but nothing changed".
func (s *UserService) UpdateUserByEmail(
	ctx context.Context,
	email string,
	patch *domain.UserPatch,
) (*domain.UserRecord, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}

	modified, err := s.users.UpdateFieldsByEmail(ctx, email, patch.Fields())
	if err != nil {
		return nil, err
	}
	if modified == 0 {
		return nil, store.ErrUserNotFound
	}

	s.logger.Debug("user updated",
		slog.String("email", email),
		slog.Int64("modified_count", modified))

	return s.users.FindByEmail(ctx, email)
}

// DeleteUserByEmail removes the record addressed by its email business
// key. Returns store.ErrUserNotFound if no record matched.
func (s *UserService) DeleteUserByEmail(ctx context.Context, email string) error {
	deleted, err := s.users.DeleteByEmail(ctx, email)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return store.ErrUserNotFound
	}

	s.logger.Debug("user deleted", slog.String("email", email))
	return nil
}
