package organizationstore_test

import (
	"testing"

	organizationstore "github.com/dalemusser/workseek/internal/app/store/organizations"
	"github.com/dalemusser/workseek/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFollowEdges_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, profile := fixtures.CreateOrganization(ctx, "Initech", "jobs@initech.com")
	otherID := primitive.NewObjectID()

	for i := 0; i < 2; i++ {
		if err := store.AddFollowed(ctx, profile.ID, otherID); err != nil {
			t.Fatalf("AddFollowed %d failed: %v", i, err)
		}
	}

	got, err := store.GetByID(ctx, profile.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.FollowedIDs) != 1 {
		t.Fatalf("followed ids: got %d entries, want 1", len(got.FollowedIDs))
	}

	if err := store.RemoveFollowed(ctx, profile.ID, otherID); err != nil {
		t.Fatalf("RemoveFollowed failed: %v", err)
	}
	got, err = store.GetByID(ctx, profile.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.FollowedIDs) != 0 {
		t.Errorf("followed ids after remove: got %d entries, want 0", len(got.FollowedIDs))
	}
}

func TestGetByIdentityID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	identity, profile := fixtures.CreateOrganization(ctx, "Initech", "jobs@initech.com")

	got, err := store.GetByIdentityID(ctx, identity.ID)
	if err != nil {
		t.Fatalf("GetByIdentityID failed: %v", err)
	}
	if got.ID != profile.ID {
		t.Errorf("profile id: got %v, want %v", got.ID, profile.ID)
	}
}
