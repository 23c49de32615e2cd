package follow_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/workseek/internal/app/features/follow"
	"github.com/dalemusser/workseek/internal/app/system/auth"
	"github.com/dalemusser/workseek/internal/testutil"
	"go.uber.org/zap"
)

func callerSession(identityID string) *auth.SessionUser {
	return &auth.SessionUser{ID: identityID}
}

type toggleResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	FollowerProfile struct {
		ProfileID   string   `json:"profile_id"`
		Kind        string   `json:"kind"`
		FollowerIDs []string `json:"follower_ids"`
		FollowedIDs []string `json:"followed_ids"`
	} `json:"follower_profile"`
	FollowedProfile struct {
		ProfileID   string   `json:"profile_id"`
		Kind        string   `json:"kind"`
		FollowerIDs []string `json:"follower_ids"`
		FollowedIDs []string `json:"followed_ids"`
	} `json:"followed_profile"`
}

func doToggle(t *testing.T, h *follow.Handler, callerID, targetID string) (*httptest.ResponseRecorder, toggleResult) {
	t.Helper()

	req := testutil.NewAuthenticatedRequest("PATCH", "/follow/"+targetID, callerSession(callerID))
	req = testutil.WithChiURLParam(req, "targetID", targetID)
	rec := httptest.NewRecorder()

	h.HandleToggle(rec, req)

	var result toggleResult
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse toggle response: %v", err)
		}
	}
	return rec, result
}

func TestHandleToggle_FollowThenUnfollow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := follow.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seekerIdentity, seekerProfile := fixtures.CreateSeeker(ctx, "Ada Byrne", "ada@example.com")
	orgIdentity, orgProfile := fixtures.CreateOrganization(ctx, "Initech", "jobs@initech.com")

	// First toggle follows.
	rec, result := doToggle(t, h, seekerIdentity.ID.Hex(), orgIdentity.ID.Hex())
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if result.Message != "Followed" {
		t.Errorf("message: got %q, want %q", result.Message, "Followed")
	}
	if got := result.FollowedProfile.FollowerIDs; len(got) != 1 || got[0] != seekerProfile.ID.Hex() {
		t.Errorf("target follower ids: got %v, want [%s]", got, seekerProfile.ID.Hex())
	}
	if got := result.FollowerProfile.FollowedIDs; len(got) != 1 || got[0] != orgProfile.ID.Hex() {
		t.Errorf("caller followed ids: got %v, want [%s]", got, orgProfile.ID.Hex())
	}

	// Second toggle unfollows, restoring both sides.
	rec, result = doToggle(t, h, seekerIdentity.ID.Hex(), orgIdentity.ID.Hex())
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if result.Message != "Unfollowed" {
		t.Errorf("message: got %q, want %q", result.Message, "Unfollowed")
	}
	if len(result.FollowedProfile.FollowerIDs) != 0 {
		t.Errorf("target follower ids after unfollow: got %v, want empty", result.FollowedProfile.FollowerIDs)
	}
	if len(result.FollowerProfile.FollowedIDs) != 0 {
		t.Errorf("caller followed ids after unfollow: got %v, want empty", result.FollowerProfile.FollowedIDs)
	}
}

func TestHandleToggle_SelfFollowRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := follow.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	identity, _ := fixtures.CreateSeeker(ctx, "Ada Byrne", "ada@example.com")

	rec, _ := doToggle(t, h, identity.ID.Hex(), identity.ID.Hex())
	if rec.Code != http.StatusBadRequest {
		t.Errorf("self-follow status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleToggle_UnknownTarget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := follow.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	identity, _ := fixtures.CreateSeeker(ctx, "Ada Byrne", "ada@example.com")

	rec, _ := doToggle(t, h, identity.ID.Hex(), testutil.AnonymousID())
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown target status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleToggle_RequiresSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := follow.NewHandler(db, zap.NewNop())

	target := testutil.AnonymousID()
	req := testutil.NewRequest("PATCH", "/follow/"+target, nil)
	req = testutil.WithChiURLParam(req, "targetID", target)
	rec := httptest.NewRecorder()

	h.HandleToggle(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous toggle status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestServeFollowers_ListsDenormalizedActors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := follow.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seekerIdentity, _ := fixtures.CreateSeeker(ctx, "Ada Byrne", "ada@example.com")
	orgIdentity, _ := fixtures.CreateOrganization(ctx, "Initech", "jobs@initech.com")

	// Seeker follows the organization; the org's follower list then contains
	// the seeker.
	rec, _ := doToggle(t, h, seekerIdentity.ID.Hex(), orgIdentity.ID.Hex())
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status: got %d, want %d", rec.Code, http.StatusOK)
	}

	req := testutil.NewAuthenticatedRequest("GET", "/followers", callerSession(orgIdentity.ID.Hex()))
	rec = httptest.NewRecorder()
	h.ServeFollowers(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("followers status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Actors  []struct {
			Kind string `json:"kind"`
			Name string `json:"name"`
		} `json:"actors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse followers response: %v", err)
	}
	if len(resp.Actors) != 1 {
		t.Fatalf("expected 1 follower, got %d", len(resp.Actors))
	}
	if resp.Actors[0].Kind != "seeker" {
		t.Errorf("follower kind: got %q, want %q", resp.Actors[0].Kind, "seeker")
	}
	if resp.Actors[0].Name != "Ada Byrne" {
		t.Errorf("follower name: got %q, want %q", resp.Actors[0].Name, "Ada Byrne")
	}
}
