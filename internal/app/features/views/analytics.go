// internal/app/features/views/analytics.go
package views

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/workseek/internal/app/system/auth"
	"github.com/dalemusser/workseek/internal/app/system/daybucket"
	"github.com/dalemusser/workseek/internal/app/system/directory"
	"github.com/dalemusser/workseek/internal/app/system/respond"
	"github.com/dalemusser/workseek/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type trailingResponse struct {
	Success bool                 `json:"success"`
	Days    int                  `json:"days"`
	Series  []daybucket.DayCount `json:"series"`
}

// ServeTrailing returns the caller's per-day view counts over a bounded
// trailing window.
//
// GET /profile/views/last-{days}-days with days in {7, 15, 30}
//
// The series is densified here: exactly `days` entries ending today (UTC),
// ascending, with zero fill for quiet days.
func (h *Handler) ServeTrailing(w http.ResponseWriter, r *http.Request) {
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

	days, err := strconv.Atoi(chi.URLParam(r, "days"))
	if err != nil || (days != 7 && days != 15 && days != 30) {
		respond.Fail(w, http.StatusBadRequest, "period must be 7, 15, or 30 days")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Dir.Resolve(ctx, ownerID); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			respond.NotFound(w, "profile not found")
			return
		}
		h.Log.Error("trailing views: resolve failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}

	now := time.Now().UTC()
	sparse, err := h.Views.CountsByDay(ctx, ownerID, daybucket.WindowStart(now, days))
	if err != nil {
		h.Log.Error("trailing views: aggregation failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}

	respond.JSON(w, http.StatusOK, trailingResponse{
		Success: true,
		Days:    days,
		Series:  daybucket.Densify(now, days, sparse),
	})
}
