package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/dalemusser/workseek/internal/app/system/daybucket"
	"github.com/dalemusser/workseek/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateSeeker creates an identity with the seeker role plus its profile.
func (f *Fixtures) CreateSeeker(ctx context.Context, fullName, email string) (models.AuthIdentity, models.SeekerProfile) {
	f.t.Helper()

	identity := f.createIdentity(ctx, email, models.RoleSeeker)

	now := time.Now().UTC()
	profile := models.SeekerProfile{
		ID:         primitive.NewObjectID(),
		IdentityID: identity.ID,
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("seekers").InsertOne(ctx, profile); err != nil {
		f.t.Fatalf("failed to create test seeker profile: %v", err)
	}
	return identity, profile
}

// CreateOrganization creates an identity with the organization role plus
// its profile.
func (f *Fixtures) CreateOrganization(ctx context.Context, name, email string) (models.AuthIdentity, models.OrganizationProfile) {
	f.t.Helper()

	identity := f.createIdentity(ctx, email, models.RoleOrganization)

	now := time.Now().UTC()
	profile := models.OrganizationProfile{
		ID:         primitive.NewObjectID(),
		IdentityID: identity.ID,
		Name:       name,
		NameCI:     text.Fold(name),
		Email:      email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("organizations").InsertOne(ctx, profile); err != nil {
		f.t.Fatalf("failed to create test organization profile: %v", err)
	}
	return identity, profile
}

// CreateDanglingIdentity creates an identity with no profile document.
// Resolving it must fail, never default.
func (f *Fixtures) CreateDanglingIdentity(ctx context.Context, email string) models.AuthIdentity {
	f.t.Helper()
	return f.createIdentity(ctx, email, models.RoleSeeker)
}

// InsertView inserts a raw view event with the given timestamp, bypassing
// dedup. Useful for seeding analytics windows.
func (f *Fixtures) InsertView(ctx context.Context, viewer *primitive.ObjectID, viewed primitive.ObjectID, at time.Time) models.ProfileView {
	f.t.Helper()

	at = at.UTC()
	view := models.ProfileView{
		ID:        primitive.NewObjectID(),
		ViewerID:  viewer,
		ViewedID:  viewed,
		Day:       daybucket.Key(at),
		CreatedAt: at,
	}
	if _, err := f.db.Collection("profile_views").InsertOne(ctx, view); err != nil {
		f.t.Fatalf("failed to insert test view event: %v", err)
	}
	return view
}

func (f *Fixtures) createIdentity(ctx context.Context, email, role string) models.AuthIdentity {
	f.t.Helper()

	now := time.Now().UTC()
	identity := models.AuthIdentity{
		ID:        primitive.NewObjectID(),
		Email:     email,
		EmailCI:   text.Fold(email),
		Role:      role,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("identities").InsertOne(ctx, identity); err != nil {
		f.t.Fatalf("failed to create test identity: %v", err)
	}
	return identity
}
