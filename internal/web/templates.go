// Package web renders HTML templates and serves static assets for the
// application. Both come from a directory on disk when it exists and fall
// back to the copies embedded in the binary.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/oszuidwest/zwfm-arcview/internal/apperrors"
	"github.com/oszuidwest/zwfm-arcview/internal/utils"
)

//go:embed templates
var embeddedTemplates embed.FS

// StaticURL is the URL prefix static assets are served under.
const StaticURL = "/static"

// PageData contains the data passed to page templates during rendering.
type PageData struct {
	Title     string
	StaticURL string
	Data      any
}

// Renderer resolves templates by name across an ordered list of filesystems.
// With caching enabled a parsed template is reused for the process lifetime.
type Renderer struct {
	sources []fs.FS
	cache   bool
	logger  *slog.Logger

	mu     sync.RWMutex
	parsed map[string]*template.Template
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithSource appends a filesystem to the lookup order.
func WithSource(fsys fs.FS) RendererOption {
	return func(r *Renderer) {
		if fsys != nil {
			r.sources = append(r.sources, fsys)
		}
	}
}

// WithCache enables caching of parsed templates.
func WithCache(enabled bool) RendererOption {
	return func(r *Renderer) {
		r.cache = enabled
	}
}

// WithLogger sets the logger used for render failures.
func WithLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer creates a Renderer that looks in the given sources in order.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		logger: slog.Default(),
		parsed: make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EmbeddedTemplates returns the templates compiled into the binary.
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic("embedded templates: " + err.Error())
	}
	return sub
}

// Lookup returns the parsed template registered under name.
func (r *Renderer) Lookup(name string) (*template.Template, error) {
	if r.cache {
		r.mu.RLock()
		t, ok := r.parsed[name]
		r.mu.RUnlock()
		if ok {
			return t, nil
		}
	}

	for _, src := range r.sources {
		if _, err := fs.Stat(src, name); err != nil {
			continue
		}
		t, err := template.ParseFS(src, name)
		if err != nil {
			return nil, apperrors.Template("Page could not be rendered").
				WithInternal("parse %s: %v", name, err).Wrap(err)
		}
		if r.cache {
			r.mu.Lock()
			r.parsed[name] = t
			r.mu.Unlock()
		}
		return t, nil
	}

	return nil, apperrors.Template("Page could not be rendered").
		WithInternal("template %s not found in %d sources", name, len(r.sources)).
		Wrap(fs.ErrNotExist)
}

// Render executes the named template into a buffer. Nothing is written to
// the client when execution fails.
func (r *Renderer) Render(c *gin.Context, status int, name string, data PageData) error {
	t, err := r.Lookup(name)
	if err != nil {
		return err
	}

	if data.StaticURL == "" {
		data.StaticURL = StaticURL
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return apperrors.Template("Page could not be rendered").
			WithInternal("execute %s: %v", name, err).Wrap(err)
	}

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
	return nil
}

// Handler returns a gin handler rendering the template name with title.
// Render failures answer 500 problem details.
func (r *Renderer) Handler(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := r.Render(c, http.StatusOK, name, PageData{Title: title})
		if err == nil {
			return
		}

		var appErr *apperrors.Error
		if apperrors.As(err, &appErr) {
			r.logger.Error("Failed to render template",
				"template", name,
				"error", fmt.Sprintf("%s (%s)", appErr.Message, appErr.Internal))
		} else {
			r.logger.Error("Failed to render template", "template", name, "error", err)
		}
		_ = c.Error(err)
		utils.SendProblem(c, utils.ProblemFromError(err, c.Request.URL.Path))
	}
}
