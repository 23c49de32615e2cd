// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The profile_views dedup index is load-bearing for correctness, not just
performance: the recorder relies on its uniqueness to make the
insert-if-absent atomic.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureIdentities(ctx, db); err != nil {
		problems = append(problems, "identities: "+err.Error())
	}
	if err := ensureSeekers(ctx, db); err != nil {
		problems = append(problems, "seekers: "+err.Error())
	}
	if err := ensureOrganizations(ctx, db); err != nil {
		problems = append(problems, "organizations: "+err.Error())
	}
	if err := ensureProfileViews(ctx, db); err != nil {
		problems = append(problems, "profile_views: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	start := time.Now()
	names, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		zap.L().Warn("index ensure failed",
			zap.String("collection", coll.Name()),
			zap.Error(err))
		return err
	}
	zap.L().Info("indexes ensured",
		zap.String("collection", coll.Name()),
		zap.Strings("names", names),
		zap.String("took", time.Since(start).String()))
	return nil
}

func ensureIdentities(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("identities")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique across all identities (folded form).
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_identities_emailci"),
		},
	})
}

func ensureSeekers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("seekers")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Exactly one seeker profile per identity.
		{
			Keys:    bson.D{{Key: "identity_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_seekers_identity"),
		},
		// Name prefix search + stable sort
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_seekers_fullnameci__id"),
		},
	})
}

func ensureOrganizations(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("organizations")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Exactly one organization profile per identity.
		{
			Keys:    bson.D{{Key: "identity_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_orgs_identity"),
		},
		// Name prefix search + stable sort
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_orgs_nameci__id"),
		},
	})
}

func ensureProfileViews(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("profile_views")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Dedup: at most one counted view per (viewer, viewed, day).
		// Partial on viewer_id so anonymous events (no viewer_id) are
		// exempt — they are never deduplicated.
		{
			Keys: bson.D{
				{Key: "viewer_id", Value: 1},
				{Key: "viewed_id", Value: 1},
				{Key: "day", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"viewer_id": bson.M{"$exists": true}}).
				SetName("uniq_views_viewer_viewed_day"),
		},
		// Recent views per profile (latest-first) and trailing-window scans.
		{
			Keys:    bson.D{{Key: "viewed_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_views_viewed_created"),
		},
		// Day-bucket aggregation path.
		{
			Keys:    bson.D{{Key: "viewed_id", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index().SetName("idx_views_viewed_day"),
		},
	})
}
