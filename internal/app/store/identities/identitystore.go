// internal/app/store/identities/identitystore.go
package identitystore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/dalemusser/workseek/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmail = errors.New("an account with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("identities")}
}

// Create inserts a new identity. Role is fixed at creation and never updated.
func (s *Store) Create(ctx context.Context, identity models.AuthIdentity) (models.AuthIdentity, error) {
	now := time.Now().UTC()
	identity.ID = primitive.NewObjectID()
	identity.EmailCI = text.Fold(identity.Email)
	if identity.Status == "" {
		identity.Status = "active"
	}
	identity.CreatedAt = now
	identity.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, identity)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.AuthIdentity{}, ErrDuplicateEmail
		}
		return models.AuthIdentity{}, err
	}
	return identity, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.AuthIdentity, error) {
	var identity models.AuthIdentity
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&identity)
	if err != nil {
		return models.AuthIdentity{}, err
	}
	return identity, nil
}

// GetByEmail looks an identity up by case/diacritic-folded email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.AuthIdentity, error) {
	var identity models.AuthIdentity
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&identity)
	if err != nil {
		return models.AuthIdentity{}, err
	}
	return identity, nil
}
