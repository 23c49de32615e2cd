// internal/app/features/views/routes.go
package views

import (
	"github.com/dalemusser/workseek/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /profile.
//
// The static /views prefix takes priority over the {viewedID} routes, so
// the owner-only analytics endpoints never collide with a profile id.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Owner-only analytics and maintenance.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/views/last-{days}-days", h.ServeTrailing)
		pr.Post("/views/rebuild", h.HandleRebuild)
	})

	// Recording allows anonymous callers; LoadSessionUser (applied globally)
	// supplies the viewer when a session exists.
	r.Post("/{viewedID}/view", h.HandleRecord)
	r.Get("/{viewedID}/views", h.ServeRecent)

	return r
}
