// internal/app/features/session/logout.go
package session

import (
	"net/http"

	"github.com/dalemusser/workseek/internal/app/system/respond"
	"go.uber.org/zap"
)

// HandleLogout clears the session cookie. Signing out without a session is
// still a success.
//
// DELETE /session
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: session clear failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}
	respond.OK(w, "signed out")
}
