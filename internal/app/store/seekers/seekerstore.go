// internal/app/store/seekers/seekerstore.go
package seekerstore

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
	return &Store{c: db.Collection("seekers")}
}

func (s *Store) Create(ctx context.Context, profile models.SeekerProfile) (models.SeekerProfile, error) {
	now := time.Now().UTC()
	profile.ID = primitive.NewObjectID()
	profile.FullNameCI = text.Fold(profile.FullName)
	profile.CreatedAt = now
	profile.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, profile)
	if err != nil {
		return models.SeekerProfile{}, err
	}
	return profile, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.SeekerProfile, error) {
	var profile models.SeekerProfile
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		return models.SeekerProfile{}, err
	}
	return profile, nil
}

func (s *Store) GetByIdentityID(ctx context.Context, identityID primitive.ObjectID) (models.SeekerProfile, error) {
	var profile models.SeekerProfile
	err := s.c.FindOne(ctx, bson.M{"identity_id": identityID}).Decode(&profile)
	if err != nil {
		return models.SeekerProfile{}, err
	}
	return profile, nil
}

// GetByIDs loads multiple seeker profiles by their ObjectIDs.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.SeekerProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var profiles []models.SeekerProfile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// AddFollower records that followerID now follows this profile.
// $addToSet keeps the ref list a set, so a retried toggle cannot
// double-insert the same edge.
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

// IncViewCount bumps the cached view counter. The counter is a derived
// cache over profile_views; SetViewCount rewrites it after a replay.
func (s *Store) IncViewCount(ctx context.Context, id primitive.ObjectID, delta int64) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"view_count": delta}})
	return err
}

func (s *Store) SetViewCount(ctx context.Context, id primitive.ObjectID, n int64) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"view_count": n}})
	return err
}
