// internal/app/store/organizations/organizationstore.go
package organizationstore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/dalemusser/workseek/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

func (s *Store) Create(ctx context.Context, profile models.OrganizationProfile) (models.OrganizationProfile, error) {
	now := time.Now().UTC()
	profile.ID = primitive.NewObjectID()
	profile.NameCI = text.Fold(profile.Name)
	profile.CreatedAt = now
	profile.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, profile)
	if err != nil {
		return models.OrganizationProfile{}, err
	}
	return profile, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.OrganizationProfile, error) {
	var profile models.OrganizationProfile
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		return models.OrganizationProfile{}, err
	}
	return profile, nil
}

func (s *Store) GetByIdentityID(ctx context.Context, identityID primitive.ObjectID) (models.OrganizationProfile, error) {
	var profile models.OrganizationProfile
	err := s.c.FindOne(ctx, bson.M{"identity_id": identityID}).Decode(&profile)
	if err != nil {
		return models.OrganizationProfile{}, err
	}
	return profile, nil
}

// GetByIDs loads multiple organization profiles by their ObjectIDs.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.OrganizationProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var profiles []models.OrganizationProfile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// AddFollower records that followerID now follows this profile.
func (s *Store) AddFollower(ctx context.Context, id, followerID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"follower_ids": followerID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

func (s *Store) RemoveFollower(ctx context.Context, id, followerID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"follower_ids": followerID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// AddFollowed records that this profile now follows followedID.
func (s *Store) AddFollowed(ctx context.Context, id, followedID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"followed_ids": followedID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

func (s *Store) RemoveFollowed(ctx context.Context, id, followedID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"followed_ids": followedID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

func (s *Store) IncViewCount(ctx context.Context, id primitive.ObjectID, delta int64) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"view_count": delta}})
	return err
}

func (s *Store) SetViewCount(ctx context.Context, id primitive.ObjectID, n int64) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"view_count": n}})
	return err
}
