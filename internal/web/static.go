package web

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed static/*
var embeddedStatic embed.FS

// EmbeddedStatic returns the static assets compiled into the binary.
func EmbeddedStatic() fs.FS {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		panic("embedded static files: " + err.Error())
	}
	return sub
}

// StaticSource returns dir as a filesystem when it exists on disk, otherwise
// the embedded assets.
func StaticSource(dir string) fs.FS {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir)
		}
	}
	return EmbeddedStatic()
}

// StaticHandler returns a Gin handler serving files from fsys below prefix.
// Directory requests answer 404.
func StaticHandler(prefix string, fsys fs.FS) gin.HandlerFunc {
	fileServer := http.FileServer(http.FS(fsys))

	return func(c *gin.Context) {
		path := strings.TrimPrefix(c.Request.URL.Path, prefix)
		if path == "" || strings.HasSuffix(path, "/") {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		info, err := fs.Stat(fsys, strings.TrimPrefix(path, "/"))
		if err != nil || info.IsDir() {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		// Serve from a copy so later middleware still sees the original path.
		req := c.Request.Clone(c.Request.Context())
		req.URL.Path = path

		c.Header("Cache-Control", "public, max-age=3600") // browser caches an hour
		fileServer.ServeHTTP(c.Writer, req)
	}
}

// MountStatic registers the static handler for GET and HEAD under prefix.
func MountStatic(r gin.IRouter, prefix string, fsys fs.FS) {
	h := StaticHandler(prefix, fsys)
	r.GET(prefix+"/*filepath", h)
	r.HEAD(prefix+"/*filepath", h)
}
