// internal/app/features/views/handler.go
package views

import (
	"time"

	viewstore "github.com/dalemusser/workseek/internal/app/store/profileviews"
	"github.com/dalemusser/workseek/internal/app/system/directory"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultDedupWindow is the trailing span within which repeat views from the
// same identified viewer are not counted again.
const DefaultDedupWindow = 24 * time.Hour

// recentLimit caps the recent-views listing.
const recentLimit = 50

// Handler is the feature-level entry point for the view log and analytics.
type Handler struct {
	DB          *mongo.Database
	Dir         *directory.Directory
	Views       *viewstore.Store
	DedupWindow time.Duration
	Log         *zap.Logger
}

// NewHandler constructs a views Handler. A zero dedupWindow selects
// DefaultDedupWindow.
func NewHandler(db *mongo.Database, dedupWindow time.Duration, logger *zap.Logger) *Handler {
	if dedupWindow <= 0 {
		dedupWindow = DefaultDedupWindow
	}
	return &Handler{
		DB:          db,
		Dir:         directory.New(db),
		Views:       viewstore.New(db),
		DedupWindow: dedupWindow,
		Log:         logger,
	}
}
