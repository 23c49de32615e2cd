// internal/app/features/follow/toggle.go
package follow

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/workseek/internal/app/system/auth"
	"github.com/dalemusser/workseek/internal/app/system/directory"
	"github.com/dalemusser/workseek/internal/app/system/respond"
	"github.com/dalemusser/workseek/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// relationshipSummary is the per-side payload returned by a toggle.
type relationshipSummary struct {
	ProfileID   string   `json:"profile_id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	FollowerIDs []string `json:"follower_ids"`
	FollowedIDs []string `json:"followed_ids"`
}

type toggleResponse struct {
	Success         bool                `json:"success"`
	Message         string              `json:"message"`
	FollowerProfile relationshipSummary `json:"follower_profile"`
	FollowedProfile relationshipSummary `json:"followed_profile"`
}

// HandleToggle flips the follow edge between the signed-in caller and the
// target identity.
//
// PATCH /follow/{targetID}
//
// The two profile writes are separate document updates, not one transaction;
// serializing on the unordered identity pair keeps concurrent toggles from
// double-applying, and the $addToSet/$pull set semantics make a retry after
// a mid-flight crash converge instead of corrupting either side.
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}

	callerID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid caller id")
		return
	}
	targetHex := chi.URLParam(r, "targetID")
	targetID, err := primitive.ObjectIDFromHex(targetHex)
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid target id")
		return
	}

	// Self-follow is rejected before anything is resolved or written.
	if callerID == targetID {
		respond.Fail(w, http.StatusBadRequest, "you cannot follow yourself")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	unlock := h.Locks.Lock(u.ID, targetHex)
	defer unlock()

	follower, err := h.Dir.Resolve(ctx, callerID)
	if err != nil {
		h.respondResolveErr(w, "caller", err)
		return
	}
	target, err := h.Dir.Resolve(ctx, targetID)
	if err != nil {
		h.respondResolveErr(w, "target", err)
		return
	}

	following := containsID(target.FollowerIDs, follower.ProfileID)

	var message string
	if !following {
		if err := h.Dir.AddFollower(ctx, target, follower.ProfileID); err != nil {
			h.storageErr(w, "add follower", err)
			return
		}
		if err := h.Dir.AddFollowed(ctx, follower, target.ProfileID); err != nil {
			h.storageErr(w, "add followed", err)
			return
		}
		message = "Followed"
	} else {
		if err := h.Dir.RemoveFollower(ctx, target, follower.ProfileID); err != nil {
			h.storageErr(w, "remove follower", err)
			return
		}
		if err := h.Dir.RemoveFollowed(ctx, follower, target.ProfileID); err != nil {
			h.storageErr(w, "remove followed", err)
			return
		}
		message = "Unfollowed"
	}

	// Re-read both sides so the summaries reflect the committed state.
	follower, err = h.Dir.Resolve(ctx, callerID)
	if err != nil {
		h.respondResolveErr(w, "caller", err)
		return
	}
	target, err = h.Dir.Resolve(ctx, targetID)
	if err != nil {
		h.respondResolveErr(w, "target", err)
		return
	}

	respond.JSON(w, http.StatusOK, toggleResponse{
		Success:         true,
		Message:         message,
		FollowerProfile: summarize(follower),
		FollowedProfile: summarize(target),
	})
}

func (h *Handler) respondResolveErr(w http.ResponseWriter, who string, err error) {
	if errors.Is(err, directory.ErrNotFound) {
		respond.NotFound(w, who+" profile not found")
		return
	}
	h.storageErr(w, "resolve "+who, err)
}

func (h *Handler) storageErr(w http.ResponseWriter, op string, err error) {
	h.Log.Error("follow toggle failed", zap.String("op", op), zap.Error(err))
	respond.StorageFailure(w)
}

func summarize(a directory.Actor) relationshipSummary {
	return relationshipSummary{
		ProfileID:   a.ProfileID.Hex(),
		Kind:        string(a.Kind),
		Name:        a.Name,
		FollowerIDs: hexIDs(a.FollowerIDs),
		FollowedIDs: hexIDs(a.FollowedIDs),
	}
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
