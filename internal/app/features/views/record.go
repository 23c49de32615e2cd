// internal/app/features/views/record.go
package views

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/workseek/internal/app/system/auth"
	"github.com/dalemusser/workseek/internal/app/system/directory"
	"github.com/dalemusser/workseek/internal/app/system/respond"
	"github.com/dalemusser/workseek/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleRecord logs a profile view.
//
// POST /profile/{viewedID}/view
//
// Anonymous callers are allowed; their views always insert because there is
// no stable key to dedup on. Identified viewers are counted at most once per
// dedup window. A self view is a success no-op, not an error.
func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	viewedID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "viewedID"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	var viewer *primitive.ObjectID
	if u, ok := auth.CurrentUser(r); ok {
		callerID, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			respond.Fail(w, http.StatusBadRequest, "invalid caller id")
			return
		}
		if callerID == viewedID {
			respond.OK(w, "self view ignored")
			return
		}
		viewer = &callerID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Resolve before any write: a missing target aborts with NotFound and
	// leaves the log untouched.
	viewed, err := h.Dir.Resolve(ctx, viewedID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			respond.NotFound(w, "profile not found")
			return
		}
		h.Log.Error("record view: resolve failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}

	inserted, err := h.Views.Record(ctx, viewer, viewedID, time.Now(), h.DedupWindow)
	if err != nil {
		h.Log.Error("record view: insert failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}
	if !inserted {
		respond.OK(w, "view already counted")
		return
	}

	// Counter update is synchronous with the event; the log stays
	// authoritative if this increment is ever lost.
	if err := h.Dir.IncrementViewCount(ctx, viewed); err != nil {
		h.Log.Error("record view: counter increment failed",
			zap.String("viewed_id", viewedID.Hex()),
			zap.Error(err))
	}

	respond.OK(w, "view recorded")
}
