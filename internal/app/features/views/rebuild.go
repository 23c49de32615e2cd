// internal/app/features/views/rebuild.go
package views

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/workseek/internal/app/system/auth"
	"github.com/dalemusser/workseek/internal/app/system/directory"
	"github.com/dalemusser/workseek/internal/app/system/respond"
	"github.com/dalemusser/workseek/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type rebuildResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ViewCount int64  `json:"view_count"`
}

// HandleRebuild recomputes the caller's cached view counter by replaying
// the event log. The log is authoritative; this is the recovery path when
// the cache has drifted (e.g. a lost increment after a partial failure).
//
// POST /profile/views/rebuild
func (h *Handler) HandleRebuild(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}
	ownerID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid caller id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	actor, err := h.Dir.Resolve(ctx, ownerID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			respond.NotFound(w, "profile not found")
			return
		}
		h.Log.Error("rebuild: resolve failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}

	n, err := h.Views.CountForViewed(ctx, ownerID)
	if err != nil {
		h.Log.Error("rebuild: replay count failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}
	if err := h.Dir.SetViewCount(ctx, actor, n); err != nil {
		h.Log.Error("rebuild: counter write failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}

	respond.JSON(w, http.StatusOK, rebuildResponse{
		Success:   true,
		Message:   "view count rebuilt",
		ViewCount: n,
	})
}
