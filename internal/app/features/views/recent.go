// internal/app/features/views/recent.go
package views

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/workseek/internal/app/system/directory"
	"github.com/dalemusser/workseek/internal/app/system/htmlsanitize"
	"github.com/dalemusser/workseek/internal/app/system/respond"
	"github.com/dalemusser/workseek/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// viewerPayload is the denormalized viewer on a recent-view entry.
type viewerPayload struct {
	IdentityID string `json:"identity_id"`
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Headline   string `json:"headline,omitempty"`
	Picture    string `json:"picture,omitempty"`
}

type recentEntry struct {
	ViewedAt  time.Time      `json:"viewed_at"`
	Anonymous bool           `json:"anonymous"`
	Viewer    *viewerPayload `json:"viewer,omitempty"`
}

type recentResponse struct {
	Success bool          `json:"success"`
	Views   []recentEntry `json:"views"`
}

// ServeRecent returns the most recent views of a profile, newest first.
//
// GET /profile/{viewedID}/views
//
// Viewers whose identity no longer resolves are shown as anonymous rather
// than dropped, so the event count stays honest.
func (h *Handler) ServeRecent(w http.ResponseWriter, r *http.Request) {
	viewedID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "viewedID"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Dir.Resolve(ctx, viewedID); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			respond.NotFound(w, "profile not found")
			return
		}
		h.Log.Error("recent views: resolve failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}

	views, err := h.Views.Recent(ctx, viewedID, recentLimit)
	if err != nil {
		h.Log.Error("recent views: query failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}

	// Resolve each distinct viewer once.
	resolved := make(map[primitive.ObjectID]*viewerPayload)
	for _, v := range views {
		if v.ViewerID == nil {
			continue
		}
		if _, seen := resolved[*v.ViewerID]; seen {
			continue
		}
		actor, err := h.Dir.Resolve(ctx, *v.ViewerID)
		if err != nil {
			if errors.Is(err, directory.ErrNotFound) {
				resolved[*v.ViewerID] = nil
				continue
			}
			h.Log.Error("recent views: viewer resolve failed", zap.Error(err))
			respond.StorageFailure(w)
			return
		}
		resolved[*v.ViewerID] = &viewerPayload{
			IdentityID: actor.IdentityID.Hex(),
			Kind:       string(actor.Kind),
			Name:       actor.Name,
			Email:      actor.Email,
			Headline:   htmlsanitize.Strip(actor.Headline),
			Picture:    actor.Picture,
		}
	}

	entries := make([]recentEntry, 0, len(views))
	for _, v := range views {
		entry := recentEntry{ViewedAt: v.CreatedAt, Anonymous: true}
		if v.ViewerID != nil {
			if p := resolved[*v.ViewerID]; p != nil {
				entry.Anonymous = false
				entry.Viewer = p
			}
		}
		entries = append(entries, entry)
	}

	respond.JSON(w, http.StatusOK, recentResponse{Success: true, Views: entries})
}
