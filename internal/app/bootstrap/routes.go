// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	followfeature "github.com/dalemusser/workseek/internal/app/features/follow"
	healthfeature "github.com/dalemusser/workseek/internal/app/features/health"
	sessionfeature "github.com/dalemusser/workseek/internal/app/features/session"
	viewsfeature "github.com/dalemusser/workseek/internal/app/features/views"
	"github.com/dalemusser/workseek/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.WorkSeekMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Sign in / sign out
	sessionHandler := sessionfeature.NewHandler(deps.WorkSeekMongoDatabase, sessionMgr, logger)
	r.Mount("/session", sessionfeature.Routes(sessionHandler))

	// Follow graph
	followHandler := followfeature.NewHandler(deps.WorkSeekMongoDatabase, logger)
	r.Mount("/follow", followfeature.Routes(followHandler, sessionMgr))
	r.Group(func(gr chi.Router) {
		gr.Use(sessionMgr.RequireSignedIn)
		gr.Get("/followers", followHandler.ServeFollowers)
		gr.Get("/following", followHandler.ServeFollowing)
	})

	// Profile views and analytics
	viewsHandler := viewsfeature.NewHandler(deps.WorkSeekMongoDatabase, appCfg.ViewDedupWindow, logger)
	r.Mount("/profile", viewsfeature.Routes(viewsHandler, sessionMgr))

	return r, nil
}
