// Package handlers provides the HTTP handlers registered directly on the application.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oszuidwest/zwfm-arcview/pkg/version"
)

// Response bodies of the inline routes.
const (
	IndexMessage   = "This is the starting line"
	WelcomeMessage = "Welcome to the Flask App!"
)

// ServiceName is reported by the health check.
const ServiceName = "arcview"

// Index answers the landing page.
func Index(c *gin.Context) {
	c.String(http.StatusOK, IndexMessage)
}

// Welcome answers the welcome page.
func Welcome(c *gin.Context) {
	c.String(http.StatusOK, WelcomeMessage)
}

// Health reports liveness and the build version.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": ServiceName,
		"version": version.Version,
	})
}
