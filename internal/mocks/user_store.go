// Package mocks provides hand-written test doubles for the store
// interfaces.
package mocks

import (
	"context"
	"fmt"
	"reflect"

	"github.com/1510Jeet/user-registry/internal/domain"
	"github.com/1510Jeet/user-registry/internal/store"
)

// MockUserStore implements store.UserStore for testing. Function fields
// override individual methods; otherwise an in-memory map-backed
// default implementation is used, which mirrors the real backends'
// semantics (unique email, merge-patch, modified-count ambiguity).
type MockUserStore struct {
	// Function fields for customizable behavior
	InsertFn              func(ctx context.Context, user *domain.UserRecord) (string, error)
	FindByIDFn            func(ctx context.Context, id string) (*domain.UserRecord, error)
	FindByEmailFn         func(ctx context.Context, email string) (*domain.UserRecord, error)
	FindAllFn             func(ctx context.Context) ([]domain.UserRecord, error)
	UpdateFieldsByEmailFn func(ctx context.Context, email string, fields map[string]any) (int64, error)
	DeleteByEmailFn       func(ctx context.Context, email string) (int64, error)

	// Data for the default implementation
	Users  map[string]*domain.UserRecord // keyed by email
	order  []string                      // insertion order of emails
	nextID int
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.UserRecord),
	}
}

// Insert implements the UserStore interface
func (m *MockUserStore) Insert(ctx context.Context, user *domain.UserRecord) (string, error) {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, user)
	}

	if _, exists := m.Users[user.EmailAddress]; exists {
		return "", store.ErrEmailExists
	}

	m.nextID++
	stored := *user
	stored.ID = fmt.Sprintf("mock-id-%d", m.nextID)
	m.Users[stored.EmailAddress] = &stored
	m.order = append(m.order, stored.EmailAddress)
	return stored.ID, nil
}

// FindByID implements the UserStore interface
func (m *MockUserStore) FindByID(ctx context.Context, id string) (*domain.UserRecord, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}

	for _, user := range m.Users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// FindByEmail implements the UserStore interface
func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}

	user, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// FindAll implements the UserStore interface
func (m *MockUserStore) FindAll(ctx context.Context) ([]domain.UserRecord, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}

	users := make([]domain.UserRecord, 0, len(m.order))
	for _, email := range m.order {
		users = append(users, *m.Users[email])
	}
	return users, nil
}

// UpdateFieldsByEmail implements the UserStore interface
func (m *MockUserStore) UpdateFieldsByEmail(
	ctx context.Context,
	email string,
	fields map[string]any,
) (int64, error) {
	if m.UpdateFieldsByEmailFn != nil {
		return m.UpdateFieldsByEmailFn(ctx, email, fields)
	}

	user, exists := m.Users[email]
	if !exists {
		return 0, nil
	}

	var modified int64
	for name, value := range fields {
		switch name {
		case "other_names":
			names, ok := value.([]string)
			if !ok {
				return 0, store.NewStoreError("user", "update", "bad other_names value", nil)
			}
			if !reflect.DeepEqual(user.OtherNames, names) {
				user.OtherNames = names
				modified = 1
			}
		case "age":
			age, ok := value.(int)
			if !ok {
				return 0, store.NewStoreError("user", "update", "bad age value", nil)
			}
			if user.Age == nil || *user.Age != age {
				user.Age = &age
				modified = 1
			}
		}
	}
	return modified, nil
}

// DeleteByEmail implements the UserStore interface
func (m *MockUserStore) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	if m.DeleteByEmailFn != nil {
		return m.DeleteByEmailFn(ctx, email)
	}

	if _, exists := m.Users[email]; !exists {
		return 0, nil
	}

	delete(m.Users, email)
	for i, e := range m.order {
		if e == email {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

// Ping implements the UserStore interface
func (m *MockUserStore) Ping(ctx context.Context) error {
	return nil
}
