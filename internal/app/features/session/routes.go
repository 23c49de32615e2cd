// internal/app/features/session/routes.go
package session

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLogin)
	r.Delete("/", h.HandleLogout)
	return r
}
