// internal/app/features/follow/routes.go
package follow

import (
	"github.com/dalemusser/workseek/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /follow.
// The /followers and /following list endpoints live at the root and are
// registered directly in bootstrap.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Patch("/{targetID}", h.HandleToggle)
	return r
}
