// Package postgres implements the store interfaces using a PostgreSQL
// database as the storage backend. Each user is kept as a JSONB
// document alongside its extracted business key, so the adapter keeps
// the same document semantics as the MongoDB backend.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/1510Jeet/user-registry/internal/domain"
	"github.com/1510Jeet/user-registry/internal/store"
)

// UserStore implements the store.UserStore interface using a PostgreSQL
// database as the storage backend.
type UserStore struct {
	db *sql.DB
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a PostgreSQL implementation of the UserStore
// interface. It accepts a database connection that should be
// initialized and managed by the caller.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// docFromDomain renders the stored JSONB document: the record's
// external shape minus the id, which lives in its own column.
func docFromDomain(u *domain.UserRecord) ([]byte, error) {
	clone := *u
	clone.ID = ""
	return json.Marshal(&clone)
}

func domainFromDoc(id string, doc []byte) (*domain.UserRecord, error) {
	var record domain.UserRecord
	if err := json.Unmarshal(doc, &record); err != nil {
		return nil, err
	}
	record.ID = id
	return &record, nil
}

// Insert implements store.UserStore.Insert
func (s *UserStore) Insert(ctx context.Context, user *domain.UserRecord) (string, error) {
	doc, err := docFromDomain(user)
	if err != nil {
		return "", store.NewStoreError("user", "insert", "failed to encode user document", err)
	}

	id := uuid.New()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, email_address, doc) VALUES ($1, $2, $3)`,
		id, user.EmailAddress, doc)
	if err != nil {
		if isUniqueViolation(err) {
			return "", store.ErrEmailExists
		}
		return "", store.NewStoreError("user", "insert", "failed to insert user", err)
	}

	return id.String(), nil
}

// FindByID implements store.UserStore.FindByID
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.UserRecord, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		// An ID that cannot be a valid UUID cannot match any row.
		return nil, store.ErrUserNotFound
	}

	return s.findOne(ctx, `SELECT id, doc FROM users WHERE id = $1`, uid)
}

// FindByEmail implements store.UserStore.FindByEmail
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	return s.findOne(ctx, `SELECT id, doc FROM users WHERE email_address = $1`, email)
}

func (s *UserStore) findOne(ctx context.Context, query string, arg any) (*domain.UserRecord, error) {
	var (
		id  uuid.UUID
		doc []byte
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&id, &doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("user", "find", "failed to find user", err)
	}

	record, err := domainFromDoc(id.String(), doc)
	if err != nil {
		return nil, store.NewStoreError("user", "find", "failed to decode user document", err)
	}
	return record, nil
}

// FindAll implements store.UserStore.FindAll. The seq column preserves
// insertion order.
func (s *UserStore) FindAll(ctx context.Context) ([]domain.UserRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, doc FROM users ORDER BY seq`)
	if err != nil {
		return nil, store.NewStoreError("user", "find_all", "failed to query users", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	users := make([]domain.UserRecord, 0)
	for rows.Next() {
		var (
			id  uuid.UUID
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, store.NewStoreError("user", "find_all", "failed to scan user row", err)
		}
		record, err := domainFromDoc(id.String(), doc)
		if err != nil {
			return nil, store.NewStoreError("user", "find_all", "failed to decode user document", err)
		}
		users = append(users, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("user", "find_all", "row iteration failed", err)
	}

	return users, nil
}

// UpdateFieldsByEmail implements store.UserStore.UpdateFieldsByEmail.
// The JSONB concatenation merges only the fields present in the patch.
// The guard compares the merged document against the stored one, so a
// row counts as modified exactly when the merge would change it. This
// matches the MongoDB backend's modified-count semantics: 0 for both
// "no match" and "match but no change". Containment (doc @> patch)
// would be wrong here: it treats arrays as unordered subsets, so a
// patch shrinking or reordering other_names would be skipped.
func (s *UserStore) UpdateFieldsByEmail(
	ctx context.Context,
	email string,
	fields map[string]any,
) (int64, error) {
	patch, err := json.Marshal(fields)
	if err != nil {
		return 0, store.NewStoreError("user", "update", "failed to encode patch", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET doc = doc || $2::jsonb
		 WHERE email_address = $1 AND doc || $2::jsonb IS DISTINCT FROM doc`,
		email, patch)
	if err != nil {
		return 0, store.NewStoreError("user", "update", "failed to update user", err)
	}

	modified, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("user", "update", "failed to read affected rows", err)
	}
	return modified, nil
}

// DeleteByEmail implements store.UserStore.DeleteByEmail
func (s *UserStore) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE email_address = $1`, email)
	if err != nil {
		return 0, store.NewStoreError("user", "delete", "failed to delete user", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("user", "delete", "failed to read affected rows", err)
	}
	return deleted, nil
}

// Ping implements store.UserStore.Ping
func (s *UserStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return store.NewStoreError("user", "ping", "store connection is not live", err)
	}
	return nil
}
