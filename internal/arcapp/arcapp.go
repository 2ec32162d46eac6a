// Package arcapp provides the arc route group, mounted under /arcapp.
package arcapp

import (
	"github.com/gin-gonic/gin"
	"github.com/oszuidwest/zwfm-arcview/internal/routes"
)

const (
	// Name identifies the route group.
	Name = "arcapp"
	// Prefix is the URL prefix the group is mounted under.
	Prefix = "/arcapp"
	// IndexTemplate is rendered by the arc page.
	IndexTemplate = "arcv/index.html"
	// IndexTitle is passed to the template as the page title.
	IndexTitle = "Arc View"
)

// PageRenderer produces a handler rendering a named template.
type PageRenderer interface {
	Handler(name, title string) gin.HandlerFunc
}

// NewBlueprint returns the arc route group. Template lookup, rendering and
// rendering errors are owned by pages.
func NewBlueprint(pages PageRenderer) *routes.Blueprint {
	return &routes.Blueprint{
		Name:   Name,
		Prefix: Prefix,
		Routes: []routes.Route{
			routes.GET("/arc", pages.Handler(IndexTemplate, IndexTitle)),
		},
	}
}
