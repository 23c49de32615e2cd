// internal/app/features/session/login.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/workseek/internal/app/system/auth"
	"github.com/dalemusser/workseek/internal/app/system/respond"
	"github.com/dalemusser/workseek/internal/app/system/timeouts"
	"github.com/dalemusser/workseek/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	IdentityID string `json:"identity_id"`
	Role       string `json:"role"`
}

// HandleLogin verifies credentials and establishes a session cookie.
//
// POST /session
//
// Bad email and bad password get the same message so the endpoint does not
// confirm which addresses exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		respond.Fail(w, http.StatusBadRequest, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	identity, err := h.Identities.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Fail(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.Log.Error("login: identity lookup failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(req.Password)); err != nil {
		respond.Fail(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if identity.Status != models.StatusActive {
		respond.Fail(w, http.StatusForbidden, "account is not active")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, &auth.SessionUser{
		ID:    identity.ID.Hex(),
		Email: identity.Email,
		Role:  identity.Role,
	}); err != nil {
		h.Log.Error("login: session write failed", zap.Error(err))
		respond.StorageFailure(w)
		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{
		Success:    true,
		Message:    "signed in",
		IdentityID: identity.ID.Hex(),
		Role:       identity.Role,
	})
}
