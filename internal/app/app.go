// Package app is the application factory. Each call to New yields an
// independent, fully wired application instance.
package app

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/oszuidwest/zwfm-arcview/internal/api"
	"github.com/oszuidwest/zwfm-arcview/internal/arcapp"
	"github.com/oszuidwest/zwfm-arcview/internal/config"
	"github.com/oszuidwest/zwfm-arcview/internal/instance"
	"github.com/oszuidwest/zwfm-arcview/internal/routes"
	"github.com/oszuidwest/zwfm-arcview/internal/web"
)

// App is one configured application instance.
type App struct {
	Config   *config.Config
	Instance instance.Dir
	// InstanceErr records a failure to prepare the instance directory when
	// strict mode is off.
	InstanceErr error

	engine   *gin.Engine
	renderer *web.Renderer
	logger   *slog.Logger
}

type options struct {
	logger     *slog.Logger
	templates  []fs.FS
	static     fs.FS
	blueprints []*routes.Blueprint
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger used by the instance.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTemplateSources replaces the default template lookup order
// (configured directory, then embedded templates).
func WithTemplateSources(sources ...fs.FS) Option {
	return func(o *options) {
		o.templates = sources
	}
}

// WithStatic replaces the static asset filesystem.
func WithStatic(fsys fs.FS) Option {
	return func(o *options) {
		o.static = fsys
	}
}

// WithBlueprints mounts additional route groups after the arc blueprint.
func WithBlueprints(bps ...*routes.Blueprint) Option {
	return func(o *options) {
		o.blueprints = append(o.blueprints, bps...)
	}
}

// New creates an application instance from cfg. Failure to prepare the
// instance directory is logged and recorded on App.InstanceErr; it is only
// returned when cfg.Instance.Strict is set.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger

	a := &App{
		Config: cfg,
		logger: logger,
	}

	if cfg.Environment.IsProduction() && cfg.SecretKey == config.DefaultSecretKey {
		logger.Warn("Running in production with the default secret key")
	}

	if err := a.prepareInstance(); err != nil {
		if cfg.Instance.Strict {
			return nil, err
		}
		a.InstanceErr = err
		logger.Warn("Instance directory unavailable", "path", cfg.Instance.Path, "error", err)
	}

	templates := o.templates
	if templates == nil {
		templates = defaultTemplateSources(cfg.Web.TemplatesPath)
	}
	renderOpts := []web.RendererOption{
		web.WithCache(cfg.Environment.IsProduction()),
		web.WithLogger(logger),
	}
	for _, src := range templates {
		renderOpts = append(renderOpts, web.WithSource(src))
	}
	a.renderer = web.NewRenderer(renderOpts...)

	static := o.static
	if static == nil {
		static = web.StaticSource(cfg.Web.StaticPath)
	}

	blueprints := append([]*routes.Blueprint{arcapp.NewBlueprint(a.renderer)}, o.blueprints...)

	engine, err := api.SetupRouter(api.RouterDeps{
		Config:     cfg,
		Logger:     logger,
		Static:     static,
		Blueprints: blueprints,
	})
	if err != nil {
		return nil, err
	}
	a.engine = engine

	return a, nil
}

func (a *App) prepareInstance() error {
	dir, err := instance.Resolve(a.Config.Instance.Path)
	if err != nil {
		return err
	}
	a.Instance = dir
	return dir.Ensure()
}

// Handler returns the HTTP handler serving the instance's routes.
func (a *App) Handler() http.Handler {
	return a.engine
}

// Engine returns the underlying Gin engine.
func (a *App) Engine() *gin.Engine {
	return a.engine
}

// Routes returns the instance's route table.
func (a *App) Routes() []routes.Entry {
	return routes.Table(a.engine)
}

func defaultTemplateSources(dir string) []fs.FS {
	sources := make([]fs.FS, 0, 2)
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			sources = append(sources, os.DirFS(dir))
		}
	}
	return append(sources, web.EmbeddedTemplates())
}
