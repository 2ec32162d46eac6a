// Package api assembles the Gin engine: middleware, inline routes, static
// assets and mounted blueprints.
package api

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oszuidwest/zwfm-arcview/internal/api/handlers"
	"github.com/oszuidwest/zwfm-arcview/internal/config"
	"github.com/oszuidwest/zwfm-arcview/internal/middleware"
	"github.com/oszuidwest/zwfm-arcview/internal/routes"
	"github.com/oszuidwest/zwfm-arcview/internal/utils"
	"github.com/oszuidwest/zwfm-arcview/internal/web"
)

// RouterDeps are the collaborators SetupRouter wires into the engine.
type RouterDeps struct {
	Config     *config.Config
	Logger     *slog.Logger
	Static     fs.FS
	Blueprints []*routes.Blueprint
}

// SetupRouter configures and returns a new engine with all routes and middleware.
// Every call returns an independent engine with its own route table.
func SetupRouter(deps RouterDeps) (*gin.Engine, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sessionMiddleware, err := middleware.Sessions(middleware.SessionConfig{
		CookieName: cfg.Web.SessionCookie,
		SecretKey:  cfg.SecretKey,
		Secure:     cfg.Environment.IsProduction(),
		SameSite:   cfg.Web.CookieSameSite.ToHTTP(),
		MaxAge:     86400,
	})
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		middleware.SecurityHeaders(cfg.Environment.IsProduction(), false),
		middleware.CORS(cfg.Server.AllowedOrigins),
		sessionMiddleware,
	)

	RegisterCoreRoutes(r)

	if deps.Static != nil {
		web.MountStatic(r, web.StaticURL, deps.Static)
	}

	for _, bp := range deps.Blueprints {
		bp.Mount(r)
		logger.Debug("Mounted blueprint", "name", bp.Name, "prefix", bp.Prefix, "paths", bp.Paths())
	}

	r.NoRoute(utils.NotFoundHandler)

	return r, nil
}

// RegisterCoreRoutes binds the inline routes of the application to r.
func RegisterCoreRoutes(r gin.IRouter) {
	get := routes.Methods(http.MethodGet)
	r.Match(get, "/", handlers.Index)
	r.Match(get, "/welcome", handlers.Welcome)
	r.Match(get, "/health", handlers.Health)
}
