package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1510Jeet/user-registry/internal/domain"
	"github.com/1510Jeet/user-registry/internal/platform/postgres"
	"github.com/1510Jeet/user-registry/internal/store"
)

// openTestDB connects to the database named by USERREG_TEST_POSTGRES_URL,
// applies migrations and empties the users table. Tests that need a
// live database skip when the variable is unset.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("USERREG_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("USERREG_TEST_POSTGRES_URL not set; skipping database test")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, db.PingContext(context.Background()))
	require.NoError(t, postgres.RunMigrations(db))

	_, err = db.ExecContext(context.Background(), `DELETE FROM users`)
	require.NoError(t, err)

	return db
}

func storedJane() *domain.UserRecord {
	return &domain.UserRecord{
		FirstName:    "Jane",
		LastName:     "Doe",
		Gender:       domain.GenderFemale,
		EmailAddress: "jane.doe@example.com",
		PhoneNumber:  "123-456-7890",
		Roles:        []domain.Role{domain.RoleUser, domain.RoleStudent},
	}
}

func TestUserStoreCRUD(t *testing.T) {
	db := openTestDB(t)
	s := postgres.NewUserStore(db)
	ctx := context.Background()

	id, err := s.Insert(ctx, storedJane())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.Insert(ctx, storedJane())
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("find by id and email agree", func(t *testing.T) {
		byID, err := s.FindByID(ctx, id)
		require.NoError(t, err)
		byEmail, err := s.FindByEmail(ctx, "jane.doe@example.com")
		require.NoError(t, err)
		assert.Equal(t, byID, byEmail)
		assert.Equal(t, []domain.Role{domain.RoleUser, domain.RoleStudent}, byID.Roles)
	})

	t.Run("find all", func(t *testing.T) {
		users, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, id, users[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := s.DeleteByEmail(ctx, "jane.doe@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		deleted, err = s.DeleteByEmail(ctx, "jane.doe@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(0), deleted)

		_, err = s.FindByEmail(ctx, "jane.doe@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

// TestUpdateFieldsByEmailModifiedCount pins the merge-patch boundary:
// the count is 0 only for "no match" and "values already equal"; any
// patch that changes the document — including one that shrinks or
// reorders an array — must be applied and counted.
func TestUpdateFieldsByEmailModifiedCount(t *testing.T) {
	db := openTestDB(t)
	s := postgres.NewUserStore(db)
	ctx := context.Background()

	jane := storedJane()
	jane.OtherNames = []string{"JD", "Janey"}
	_, err := s.Insert(ctx, jane)
	require.NoError(t, err)

	t.Run("no matching row", func(t *testing.T) {
		modified, err := s.UpdateFieldsByEmail(ctx, "nobody@example.com", map[string]any{"age": 30})
		require.NoError(t, err)
		assert.Equal(t, int64(0), modified)
	})

	t.Run("new field is applied", func(t *testing.T) {
		modified, err := s.UpdateFieldsByEmail(ctx, jane.EmailAddress, map[string]any{"age": 30})
		require.NoError(t, err)
		assert.Equal(t, int64(1), modified)

		got, err := s.FindByEmail(ctx, jane.EmailAddress)
		require.NoError(t, err)
		require.NotNil(t, got.Age)
		assert.Equal(t, 30, *got.Age)
		assert.Equal(t, "Jane", got.FirstName)
	})

	t.Run("identical values count as no-op", func(t *testing.T) {
		modified, err := s.UpdateFieldsByEmail(ctx, jane.EmailAddress, map[string]any{"age": 30})
		require.NoError(t, err)
		assert.Equal(t, int64(0), modified)
	})

	t.Run("shrinking an array is applied", func(t *testing.T) {
		modified, err := s.UpdateFieldsByEmail(ctx, jane.EmailAddress,
			map[string]any{"other_names": []string{"JD"}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), modified)

		got, err := s.FindByEmail(ctx, jane.EmailAddress)
		require.NoError(t, err)
		assert.Equal(t, []string{"JD"}, got.OtherNames)
	})

	t.Run("reordering an array is applied", func(t *testing.T) {
		modified, err := s.UpdateFieldsByEmail(ctx, jane.EmailAddress,
			map[string]any{"other_names": []string{"Janey", "JD"}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), modified)

		got, err := s.FindByEmail(ctx, jane.EmailAddress)
		require.NoError(t, err)
		assert.Equal(t, []string{"Janey", "JD"}, got.OtherNames)
	})

	t.Run("identical array counts as no-op", func(t *testing.T) {
		modified, err := s.UpdateFieldsByEmail(ctx, jane.EmailAddress,
			map[string]any{"other_names": []string{"Janey", "JD"}})
		require.NoError(t, err)
		assert.Equal(t, int64(0), modified)
	})
}
