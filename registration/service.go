// Package registration implements the signup flow: ordered input validation,
// email uniqueness, bcrypt hashing, and persistence of the new user.
package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agrinet/models"
	"agrinet/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor applied to every password hash.
const BcryptCost = 12

var (
	// ErrInvalidEmail rejects an absent or malformed email address.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrEmailInUse rejects a registration whose email already belongs to a user.
	ErrEmailInUse = errors.New("email already in use")
)

// UserStore is the slice of persistence the service needs. FindByEmail
// returns (nil, nil) when no user matches. Insert must return ErrEmailInUse
// when a unique-index violation on email occurs, so the check-then-insert
// race still surfaces as an ordinary conflict.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

// Input is a candidate registration. Name, UserName, Bio and ProfileImage
// are optional.
type Input struct {
	Email        string
	Password     string
	Name         string
	UserName     string
	Bio          string
	ProfileImage []byte
}

type Service struct {
	store UserStore
}

func NewService(store UserStore) *Service {
	return &Service{store: store}
}

// Register validates in, hashes the password, and persists a new user.
// Validation failures short-circuit before any store access. On success the
// returned user carries the hash actually stored; the plaintext is never
// persisted or logged.
func (s *Service) Register(ctx context.Context, in Input) (*models.User, error) {
	if in.Email == "" || !validation.Email(in.Email) {
		return nil, ErrInvalidEmail
	}
	if err := validation.Password(in.Password); err != nil {
		return nil, err
	}

	existing, err := s.store.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("looking up email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:             primitive.NewObjectID(),
		Name:           in.Name,
		Email:          in.Email,
		HashedPassword: string(hashed),
		UserName:       in.UserName,
		ProfileImg:     in.ProfileImage,
		Bio:            in.Bio,
		CreatedAt:      time.Now().Unix(),
	}

	if err := s.store.Insert(ctx, user); err != nil {
		if errors.Is(err, ErrEmailInUse) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return user, nil
}
