package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/1510Jeet/user-registry/internal/domain"
	"github.com/1510Jeet/user-registry/internal/store"
)

func TestFindByIDRejectsMalformedID(t *testing.T) {
	t.Parallel()

	// A malformed ObjectID can never match a document, so the store
	// reports not-found without a round trip.
	s := &UserStore{}
	_, err := s.FindByID(context.Background(), "not-a-hex-object-id")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestDocumentMapping(t *testing.T) {
	t.Parallel()

	age := 30
	record := &domain.UserRecord{
		FirstName:    "Jane",
		LastName:     "Doe",
		MiddleName:   "Marie",
		Gender:       domain.GenderFemale,
		EmailAddress: "jane.doe@example.com",
		PhoneNumber:  "123-456-7890",
		Roles:        []domain.Role{domain.RoleUser, domain.RoleStudent},
		OtherNames:   []string{"JD"},
		Age:          &age,
	}

	doc := fromDomain(record)
	assert.True(t, doc.ID.IsZero(), "store assigns the ID, not the mapper")
	assert.Equal(t, []string{"user", "student"}, doc.Roles)

	doc.ID = primitive.NewObjectID()
	back := doc.toDomain()

	assert.Equal(t, doc.ID.Hex(), back.ID)
	assert.Equal(t, record.Roles, back.Roles)
	assert.Equal(t, record.EmailAddress, back.EmailAddress)
	require.NotNil(t, back.Age)
	assert.Equal(t, 30, *back.Age)
}

func TestDocumentMappingEmptyRoles(t *testing.T) {
	t.Parallel()

	doc := fromDomain(&domain.UserRecord{Roles: []domain.Role{}})
	assert.NotNil(t, doc.Roles, "empty roles must persist as an empty list, not null")

	back := doc.toDomain()
	assert.NotNil(t, back.Roles)
	assert.Empty(t, back.Roles)
}
