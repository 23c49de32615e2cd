package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/dalemusser/workseek/internal/app/system/auth"
	"github.com/dalemusser/workseek/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// SessionUserFor builds the session view of an identity for request injection.
func SessionUserFor(identity models.AuthIdentity) *auth.SessionUser {
	return &auth.SessionUser{
		ID:    identity.ID.Hex(),
		Email: identity.Email,
		Role:  identity.Role,
	}
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string, body io.Reader) *http.Request {
	return httptest.NewRequest(method, target, body)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context,
// bypassing the session middleware.
func NewAuthenticatedRequest(method, target string, u *auth.SessionUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return auth.WithTestUser(req, u)
}

// AnonymousID returns a fresh ObjectID hex for request paths that need an
// id that resolves to nothing.
func AnonymousID() string {
	return primitive.NewObjectID().Hex()
}
