// internal/app/features/follow/handler.go
package follow

import (
	"github.com/dalemusser/workseek/internal/app/system/directory"
	"github.com/dalemusser/workseek/internal/app/system/pairlock"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the follow graph.
type Handler struct {
	DB    *mongo.Database
	Dir   *directory.Directory
	Locks *pairlock.Locker
	Log   *zap.Logger
}

// NewHandler constructs a follow Handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Dir:   directory.New(db),
		Locks: pairlock.New(),
		Log:   logger,
	}
}
