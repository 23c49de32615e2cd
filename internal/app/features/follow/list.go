// internal/app/features/follow/list.go
package follow

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/workseek/internal/app/system/auth"
	"github.com/dalemusser/workseek/internal/app/system/directory"
	"github.com/dalemusser/workseek/internal/app/system/htmlsanitize"
	"github.com/dalemusser/workseek/internal/app/system/respond"
	"github.com/dalemusser/workseek/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// actorPayload is the denormalized actor shape returned in follower and
// following lists.
type actorPayload struct {
	ProfileID  string `json:"profile_id"`
	IdentityID string `json:"identity_id"`
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Headline   string `json:"headline,omitempty"`
	Picture    string `json:"picture,omitempty"`
}

type listResponse struct {
	Success    bool           `json:"success"`
	ProfileIDs []string       `json:"profile_ids"`
	Actors     []actorPayload `json:"actors"`
}

// ServeFollowers returns the actors following the signed-in caller.
//
// GET /followers
func (h *Handler) ServeFollowers(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, func(a directory.Actor) []primitive.ObjectID { return a.FollowerIDs })
}

// ServeFollowing returns the actors the signed-in caller follows.
//
// GET /following
func (h *Handler) ServeFollowing(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, func(a directory.Actor) []primitive.ObjectID { return a.FollowedIDs })
}

func (h *Handler) serveList(w http.ResponseWriter, r *http.Request, pick func(directory.Actor) []primitive.ObjectID) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	actor, err := h.Dir.Resolve(ctx, callerID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			respond.NotFound(w, "profile not found")
			return
		}
		h.Log.Error("list resolve failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}

	ids := pick(actor)

	// Ids that no longer resolve (deleted accounts are never pruned out of
	// ref lists) are dropped here; the raw id list still shows them.
	actors, err := h.Dir.ResolveProfiles(ctx, ids)
	if err != nil {
		h.Log.Error("list denormalize failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}

	payloads := make([]actorPayload, 0, len(actors))
	for _, a := range actors {
		payloads = append(payloads, denormalize(a))
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Success:    true,
		ProfileIDs: hexIDs(ids),
		Actors:     payloads,
	})
}

func denormalize(a directory.Actor) actorPayload {
	return actorPayload{
		ProfileID:  a.ProfileID.Hex(),
		IdentityID: a.IdentityID.Hex(),
		Kind:       string(a.Kind),
		Name:       a.Name,
		Email:      a.Email,
		Headline:   htmlsanitize.Strip(a.Headline),
		Picture:    a.Picture,
	}
}
