package views_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/workseek/internal/app/features/views"
	"github.com/dalemusser/workseek/internal/app/system/auth"
	"github.com/dalemusser/workseek/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func callerSession(identityID string) *auth.SessionUser {
	return &auth.SessionUser{ID: identityID}
}

func recordView(t *testing.T, h *views.Handler, caller *auth.SessionUser, viewedID string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if caller != nil {
		req = testutil.NewAuthenticatedRequest("POST", "/profile/"+viewedID+"/view", caller)
	} else {
		req = testutil.NewRequest("POST", "/profile/"+viewedID+"/view", nil)
	}
	req = testutil.WithChiURLParam(req, "viewedID", viewedID)
	rec := httptest.NewRecorder()
	h.HandleRecord(rec, req)
	return rec
}

func TestHandleRecord_CountsOncePerWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := views.NewHandler(db, 0, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seekerIdentity, _ := fixtures.CreateSeeker(ctx, "Ada Byrne", "ada@example.com")
	orgIdentity, _ := fixtures.CreateOrganization(ctx, "Initech", "jobs@initech.com")

	caller := callerSession(seekerIdentity.ID.Hex())
	for i := 0; i < 3; i++ {
		rec := recordView(t, h, caller, orgIdentity.ID.Hex())
		if rec.Code != http.StatusOK {
			t.Fatalf("record %d status: got %d, want %d (%s)", i, rec.Code, http.StatusOK, rec.Body.String())
		}
	}

	actor, err := h.Dir.Resolve(ctx, orgIdentity.ID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if actor.ViewCount != 1 {
		t.Errorf("view count after repeated views: got %d, want 1", actor.ViewCount)
	}

	n, err := h.Views.CountForViewed(ctx, orgIdentity.ID)
	if err != nil {
		t.Fatalf("CountForViewed failed: %v", err)
	}
	if n != 1 {
		t.Errorf("event count: got %d, want 1", n)
	}
}

func TestHandleRecord_SelfViewIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := views.NewHandler(db, 0, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	identity, _ := fixtures.CreateSeeker(ctx, "Ada Byrne", "ada@example.com")

	rec := recordView(t, h, callerSession(identity.ID.Hex()), identity.ID.Hex())
	if rec.Code != http.StatusOK {
		t.Fatalf("self view status: got %d, want %d", rec.Code, http.StatusOK)
	}

	n, err := h.Views.CountForViewed(ctx, identity.ID)
	if err != nil {
		t.Fatalf("CountForViewed failed: %v", err)
	}
	if n != 0 {
		t.Errorf("self view logged %d events, want 0", n)
	}
}

func TestHandleRecord_AnonymousAlwaysCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := views.NewHandler(db, 0, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgIdentity, _ := fixtures.CreateOrganization(ctx, "Initech", "jobs@initech.com")

	for i := 0; i < 2; i++ {
		rec := recordView(t, h, nil, orgIdentity.ID.Hex())
		if rec.Code != http.StatusOK {
			t.Fatalf("anonymous record %d status: got %d, want %d", i, rec.Code, http.StatusOK)
		}
	}

	n, err := h.Views.CountForViewed(ctx, orgIdentity.ID)
	if err != nil {
		t.Fatalf("CountForViewed failed: %v", err)
	}
	if n != 2 {
		t.Errorf("anonymous event count: got %d, want 2", n)
	}
}

func TestHandleRecord_UnknownProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := views.NewHandler(db, 0, zap.NewNop())

	rec := recordView(t, h, nil, testutil.AnonymousID())
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown profile status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeTrailing_DensifiesWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := views.NewHandler(db, 0, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgIdentity, _ := fixtures.CreateOrganization(ctx, "Initech", "jobs@initech.com")

	// Two views today from distinct viewers, one three days ago.
	now := time.Now().UTC()
	v1, v2, v3 := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	fixtures.InsertView(ctx, &v1, orgIdentity.ID, now)
	fixtures.InsertView(ctx, &v2, orgIdentity.ID, now)
	fixtures.InsertView(ctx, &v3, orgIdentity.ID, now.Add(-3*24*time.Hour))

	req := testutil.NewAuthenticatedRequest("GET", "/profile/views/last-7-days", callerSession(orgIdentity.ID.Hex()))
	req = testutil.WithChiURLParam(req, "days", "7")
	rec := httptest.NewRecorder()
	h.ServeTrailing(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("trailing status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Days    int  `json:"days"`
		Series  []struct {
			Day   string `json:"day"`
			Count int64  `json:"count"`
		} `json:"series"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse trailing response: %v", err)
	}

	if len(resp.Series) != 7 {
		t.Fatalf("series length: got %d, want 7", len(resp.Series))
	}

	var total int64
	for _, e := range resp.Series {
		total += e.Count
	}
	if total != 3 {
		t.Errorf("series total: got %d, want 3", total)
	}
	if last := resp.Series[len(resp.Series)-1]; last.Count != 2 {
		t.Errorf("today's bucket: got %d, want 2", last.Count)
	}
}

func TestServeTrailing_EmptyWindowIsZeroFilled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := views.NewHandler(db, 0, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	identity, _ := fixtures.CreateSeeker(ctx, "Ada Byrne", "ada@example.com")

	req := testutil.NewAuthenticatedRequest("GET", "/profile/views/last-15-days", callerSession(identity.ID.Hex()))
	req = testutil.WithChiURLParam(req, "days", "15")
	rec := httptest.NewRecorder()
	h.ServeTrailing(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("trailing status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Series []struct {
			Day   string `json:"day"`
			Count int64  `json:"count"`
		} `json:"series"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse trailing response: %v", err)
	}
	if len(resp.Series) != 15 {
		t.Fatalf("series length: got %d, want 15", len(resp.Series))
	}
	for i, e := range resp.Series {
		if e.Count != 0 {
			t.Errorf("bucket %d (%s): got %d, want 0", i, e.Day, e.Count)
		}
	}
}

func TestServeTrailing_RejectsUnsupportedPeriod(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := views.NewHandler(db, 0, zap.NewNop())

	req := testutil.NewAuthenticatedRequest("GET", "/profile/views/last-14-days", callerSession(testutil.AnonymousID()))
	req = testutil.WithChiURLParam(req, "days", "14")
	rec := httptest.NewRecorder()
	h.ServeTrailing(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("unsupported period status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleRebuild_ReplaysLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := views.NewHandler(db, 0, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgIdentity, _ := fixtures.CreateOrganization(ctx, "Initech", "jobs@initech.com")

	// Seed three log events directly; the cached counter never saw them.
	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		viewer := primitive.NewObjectID()
		fixtures.InsertView(ctx, &viewer, orgIdentity.ID, now.Add(time.Duration(-i)*time.Hour))
	}

	req := testutil.NewAuthenticatedRequest("POST", "/profile/views/rebuild", callerSession(orgIdentity.ID.Hex()))
	rec := httptest.NewRecorder()
	h.HandleRebuild(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("rebuild status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Success   bool  `json:"success"`
		ViewCount int64 `json:"view_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse rebuild response: %v", err)
	}
	if resp.ViewCount != 3 {
		t.Errorf("rebuilt count: got %d, want 3", resp.ViewCount)
	}

	actor, err := h.Dir.Resolve(ctx, orgIdentity.ID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if actor.ViewCount != 3 {
		t.Errorf("cached count after rebuild: got %d, want 3", actor.ViewCount)
	}
}

func TestServeRecent_FlagsAnonymousViews(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := views.NewHandler(db, 0, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seekerIdentity, _ := fixtures.CreateSeeker(ctx, "Ada Byrne", "ada@example.com")
	orgIdentity, _ := fixtures.CreateOrganization(ctx, "Initech", "jobs@initech.com")

	now := time.Now().UTC()
	fixtures.InsertView(ctx, &seekerIdentity.ID, orgIdentity.ID, now)
	fixtures.InsertView(ctx, nil, orgIdentity.ID, now.Add(-time.Hour))

	req := testutil.NewRequest("GET", "/profile/"+orgIdentity.ID.Hex()+"/views", nil)
	req = testutil.WithChiURLParam(req, "viewedID", orgIdentity.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeRecent(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("recent status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Views []struct {
			Anonymous bool `json:"anonymous"`
			Viewer    *struct {
				Name string `json:"name"`
				Kind string `json:"kind"`
			} `json:"viewer"`
		} `json:"views"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse recent response: %v", err)
	}
	if len(resp.Views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(resp.Views))
	}

	// Newest first: the identified view precedes the anonymous one.
	if resp.Views[0].Anonymous || resp.Views[0].Viewer == nil {
		t.Error("expected first view to carry a resolved viewer")
	} else if resp.Views[0].Viewer.Name != "Ada Byrne" {
		t.Errorf("viewer name: got %q, want %q", resp.Views[0].Viewer.Name, "Ada Byrne")
	}
	if !resp.Views[1].Anonymous {
		t.Error("expected second view to be anonymous")
	}
}
