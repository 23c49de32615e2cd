// internal/app/store/profileviews/viewstore.go
package viewstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/workseek/internal/app/system/daybucket"
	"github.com/dalemusser/workseek/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the append-only profile_views log.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("profile_views")}
}

// Record inserts a view event unless the identified viewer was already
// counted inside the trailing dedup window. It reports whether an event was
// inserted, which is when the viewed profile's cached counter must be
// incremented.
//
// The window check is a read, so two concurrent duplicates can both pass it;
// the partial unique index on (viewer_id, viewed_id, day) turns the loser's
// insert into a duplicate-key error, which is treated as "already counted".
// Anonymous views (viewer == nil) carry no viewer_id, fall outside the
// partial index, and always insert.
func (s *Store) Record(ctx context.Context, viewer *primitive.ObjectID, viewed primitive.ObjectID, now time.Time, window time.Duration) (bool, error) {
	now = now.UTC()

	if viewer != nil {
		err := s.c.FindOne(ctx, bson.M{
			"viewer_id":  *viewer,
			"viewed_id":  viewed,
			"created_at": bson.M{"$gte": now.Add(-window)},
		}).Err()
		if err == nil {
			return false, nil // already counted in the current window
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return false, err
		}
	}

	view := models.ProfileView{
		ID:        primitive.NewObjectID(),
		ViewerID:  viewer,
		ViewedID:  viewed,
		Day:       daybucket.Key(now),
		CreatedAt: now,
	}
	if viewer == nil {
		view.VisitorToken = uuid.NewString()
	}

	if _, err := s.c.InsertOne(ctx, view); err != nil {
		if wafflemongo.IsDup(err) {
			return false, nil // lost the race to a concurrent duplicate
		}
		return false, err
	}
	return true, nil
}

// Recent returns the newest events for a viewed identity, newest first.
func (s *Store) Recent(ctx context.Context, viewed primitive.ObjectID, limit int64) ([]models.ProfileView, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{"viewed_id": viewed}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var views []models.ProfileView
	if err := cur.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}

// CountsByDay groups events for a viewed identity by stored day bucket,
// returning a sparse day → count map for events at or after since.
func (s *Store) CountsByDay(ctx context.Context, viewed primitive.ObjectID, since time.Time) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{
			"viewed_id":  viewed,
			"created_at": bson.M{"$gte": since.UTC()},
		}},
		{"$group": bson.M{
			"_id":   "$day",
			"count": bson.M{"$sum": 1},
		}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := make(map[string]int64)
	for cur.Next(ctx) {
		var doc struct {
			Day   string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		counts[doc.Day] = doc.Count
	}
	return counts, cur.Err()
}

// CountForViewed counts every logged event for a viewed identity. The log is
// authoritative, so this is the replay value for rebuilding a profile's
// cached view counter.
func (s *Store) CountForViewed(ctx context.Context, viewed primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"viewed_id": viewed})
}
