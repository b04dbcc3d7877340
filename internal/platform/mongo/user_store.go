// Package mongo implements the store interfaces using a MongoDB
// collection as the storage backend.
package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/1510Jeet/user-registry/internal/domain"
	"github.com/1510Jeet/user-registry/internal/store"
)

// usersCollection is the single collection this service persists to.
const usersCollection = "users"

// userDocument is the stored shape of a domain.UserRecord. The store
// itself is schema-less; this mapping exists only on our write path and
// nothing prevents other writers from inserting malformed documents.
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	MiddleName   string             `bson:"middle_name,omitempty"`
	Gender       string             `bson:"gender"`
	EmailAddress string             `bson:"email_address"`
	PhoneNumber  string             `bson:"phone_number"`
	Roles        []string           `bson:"roles"`
	OtherNames   []string           `bson:"other_names,omitempty"`
	Age          *int               `bson:"age,omitempty"`
}

func (d *userDocument) toDomain() *domain.UserRecord {
	roles := make([]domain.Role, 0, len(d.Roles))
	for _, r := range d.Roles {
		roles = append(roles, domain.Role(r))
	}

	return &domain.UserRecord{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		MiddleName:   d.MiddleName,
		Gender:       domain.Gender(d.Gender),
		EmailAddress: d.EmailAddress,
		PhoneNumber:  d.PhoneNumber,
		Roles:        roles,
		OtherNames:   d.OtherNames,
		Age:          d.Age,
	}
}

func fromDomain(u *domain.UserRecord) *userDocument {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r))
	}

	return &userDocument{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		MiddleName:   u.MiddleName,
		Gender:       string(u.Gender),
		EmailAddress: u.EmailAddress,
		PhoneNumber:  u.PhoneNumber,
		Roles:        roles,
		OtherNames:   u.OtherNames,
		Age:          u.Age,
	}
}

// UserStore implements the store.UserStore interface using a MongoDB
// collection as the storage backend.
type UserStore struct {
	users *mongo.Collection
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a MongoDB implementation of the UserStore
// interface. It accepts a database handle that should be connected and
// managed by the caller.
func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{
		users: db.Collection(usersCollection),
	}
}

// EnsureIndexes creates the unique index on email_address. Email is the
// business key for every lookup, so the index both speeds the field
// scans up and enforces uniqueness at the store boundary.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email_address", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return store.NewStoreError("user", "ensure_indexes", "failed to create email index", err)
	}
	return nil
}

// Insert implements store.UserStore.Insert
func (s *UserStore) Insert(ctx context.Context, user *domain.UserRecord) (string, error) {
	result, err := s.users.InsertOne(ctx, fromDomain(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", store.ErrEmailExists
		}
		return "", store.NewStoreError("user", "insert", "failed to insert user", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", store.NewStoreError("user", "insert", "unexpected inserted ID type", nil)
	}
	return id.Hex(), nil
}

// FindByID implements store.UserStore.FindByID
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.UserRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// An ID that cannot be a valid ObjectID cannot match any document.
		return nil, store.ErrUserNotFound
	}

	return s.findOne(ctx, bson.M{"_id": oid})
}

// FindByEmail implements store.UserStore.FindByEmail
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	return s.findOne(ctx, bson.M{"email_address": email})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*domain.UserRecord, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "find", "failed to find user", err)
	}
	return doc.toDomain(), nil
}

// FindAll implements store.UserStore.FindAll. Records come back in
// insertion order (ObjectIDs are monotonically increasing).
func (s *UserStore) FindAll(ctx context.Context) ([]domain.UserRecord, error) {
	cursor, err := s.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, store.NewStoreError("user", "find_all", "failed to query users", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	users := make([]domain.UserRecord, 0)
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, store.NewStoreError("user", "find_all", "failed to decode user document", err)
		}
		users = append(users, *doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, store.NewStoreError("user", "find_all", "cursor iteration failed", err)
	}

	return users, nil
}

// UpdateFieldsByEmail implements store.UserStore.UpdateFieldsByEmail.
// Only the fields present in the patch are written ($set merge-patch);
// the returned count is Mongo's ModifiedCount, which is 0 both when no
// document matched and when the matched document already held the new
// values.
func (s *UserStore) UpdateFieldsByEmail(
	ctx context.Context,
	email string,
	fields map[string]any,
) (int64, error) {
	set := bson.M{}
	for name, value := range fields {
		set[name] = value
	}

	result, err := s.users.UpdateOne(ctx, bson.M{"email_address": email}, bson.M{"$set": set})
	if err != nil {
		return 0, store.NewStoreError("user", "update", "failed to update user", err)
	}

	return result.ModifiedCount, nil
}

// DeleteByEmail implements store.UserStore.DeleteByEmail
func (s *UserStore) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	result, err := s.users.DeleteOne(ctx, bson.M{"email_address": email})
	if err != nil {
		return 0, store.NewStoreError("user", "delete", "failed to delete user", err)
	}

	return result.DeletedCount, nil
}

// Ping implements store.UserStore.Ping
func (s *UserStore) Ping(ctx context.Context) error {
	if err := s.users.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return store.NewStoreError("user", "ping", "store connection is not live", err)
	}
	return nil
}
