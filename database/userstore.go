package database

import (
	"context"

	"agrinet/models"
	"agrinet/registration"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserStore adapts the users collection to the registration service.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{coll: db.Users}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Insert maps a unique-index violation on email to ErrEmailInUse so two
// concurrent registrations for the same address both resolve as a conflict
// rather than a server fault.
func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := s.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return registration.ErrEmailInUse
	}
	return err
}
