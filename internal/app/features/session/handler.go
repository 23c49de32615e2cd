// internal/app/features/session/handler.go
package session

import (
	identitystore "github.com/dalemusser/workseek/internal/app/store/identities"
	"github.com/dalemusser/workseek/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns sign-in and sign-out for the JSON API.
type Handler struct {
	DB         *mongo.Database
	Identities *identitystore.Store
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Identities: identitystore.New(db),
		SessionMgr: sm,
		Log:        logger,
	}
}
