// Package store defines the persistence interfaces and errors that
// isolate the service layer from any concrete storage backend.
package store

import (
	"context"

	"github.com/1510Jeet/user-registry/internal/domain"
)

// UserStore defines the interface for user record persistence.
//
// Every method is a single atomic round trip against the store; the
// adapter issues no transactions, performs no retries and caches
// nothing. Connectivity and query failures surface as *StoreError.
type UserStore interface {
	// Insert persists a new record and returns its store-assigned
	// identifier. Returns ErrEmailExists if a record with the same
	// email address already exists (uniqueness is enforced by an
	// index at the store boundary).
	Insert(ctx context.Context, user *domain.UserRecord) (string, error)

	// FindByID retrieves a record by its store-assigned identifier.
	// Returns ErrUserNotFound if no record matches.
	FindByID(ctx context.Context, id string) (*domain.UserRecord, error)

	// FindByEmail retrieves a record by its email address business key.
	// Returns ErrUserNotFound if no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error)

	// FindAll returns every record in the collection in insertion
	// order. No pagination is applied.
	FindAll(ctx context.Context) ([]domain.UserRecord, error)

	// UpdateFieldsByEmail applies a sparse merge-patch to the record
	// matching the email address, overwriting only the fields present
	// in the patch. It returns the number of documents actually
	// modified: 0 means either no match or a match whose stored values
	// already equal the patch.
	UpdateFieldsByEmail(ctx context.Context, email string, fields map[string]any) (int64, error)

	// DeleteByEmail removes the record matching the email address and
	// returns the number of documents deleted.
	DeleteByEmail(ctx context.Context, email string) (int64, error)

	// Ping verifies the store connection is live.
	Ping(ctx context.Context) error
}
