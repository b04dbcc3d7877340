package postgres

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1510Jeet/user-registry/internal/domain"
	"github.com/1510Jeet/user-registry/internal/store"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(assert.AnError))
	assert.False(t, isUniqueViolation(nil))
}

func TestFindByIDRejectsMalformedID(t *testing.T) {
	t.Parallel()

	// A malformed UUID can never match a row, so the store reports
	// not-found without a round trip.
	s := &UserStore{}
	_, err := s.FindByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	age := 30
	record := &domain.UserRecord{
		ID:           "should-not-be-stored",
		FirstName:    "Jane",
		LastName:     "Doe",
		Gender:       domain.GenderFemale,
		EmailAddress: "jane.doe@example.com",
		PhoneNumber:  "123-456-7890",
		Roles:        []domain.Role{domain.RoleUser},
		Age:          &age,
	}

	doc, err := docFromDomain(record)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(doc, &raw))
	assert.NotContains(t, raw, "id", "the id lives in its own column, not the document")

	back, err := domainFromDoc("0f2e8a1c-0000-4000-8000-000000000000", doc)
	require.NoError(t, err)
	assert.Equal(t, "0f2e8a1c-0000-4000-8000-000000000000", back.ID)
	assert.Equal(t, record.EmailAddress, back.EmailAddress)
	assert.Equal(t, record.Roles, back.Roles)
	require.NotNil(t, back.Age)
	assert.Equal(t, 30, *back.Age)
}
