// Package routes describes route groups as plain values that can be mounted
// onto any Gin router.
package routes

import (
	"net/http"
	"path"
	"sort"

	"github.com/gin-gonic/gin"
)

// Route represents an HTTP route with method, path and handler.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Blueprint is a named collection of routes sharing a URL prefix.
type Blueprint struct {
	Name   string
	Prefix string
	Routes []Route
}

// GET is shorthand for a GET route.
func GET(p string, h gin.HandlerFunc) Route {
	return Route{Method: http.MethodGet, Path: p, Handler: h}
}

// Mount registers every route of the blueprint on r under the blueprint prefix.
// GET routes also answer HEAD. Gin panics on a duplicate (method, path) registration.
func (b *Blueprint) Mount(r gin.IRouter) {
	g := r.Group(b.Prefix)
	for _, rt := range b.Routes {
		g.Match(Methods(rt.Method), rt.Path, rt.Handler)
	}
}

// Methods returns the methods a route answers: HEAD rides along with GET.
func Methods(method string) []string {
	if method == http.MethodGet {
		return []string{http.MethodGet, http.MethodHead}
	}
	return []string{method}
}

// Paths returns the full paths the blueprint serves once mounted.
func (b *Blueprint) Paths() []string {
	paths := make([]string, 0, len(b.Routes))
	for _, rt := range b.Routes {
		paths = append(paths, path.Join("/", b.Prefix, rt.Path))
	}
	return paths
}

// Entry is one row of a route table.
type Entry struct {
	Method  string `yaml:"method"`
	Path    string `yaml:"path"`
	Handler string `yaml:"handler"`
}

// Table returns the routes registered on engine sorted by path then method.
func Table(engine *gin.Engine) []Entry {
	info := engine.Routes()
	entries := make([]Entry, 0, len(info))
	for _, ri := range info {
		entries = append(entries, Entry{Method: ri.Method, Path: ri.Path, Handler: ri.Handler})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Path != entries[j].Path {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].Method < entries[j].Method
	})
	return entries
}
