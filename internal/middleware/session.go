package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SessionConfig defines how the signed session cookie is issued.
type SessionConfig struct {
	CookieName string
	SecretKey  string
	Secure     bool
	SameSite   http.SameSite
	MaxAge     int // seconds
}

// Sessions installs a cookie session store signed with the application secret key.
// Handlers reach the session through sessions.Default.
func Sessions(cfg SessionConfig) (gin.HandlerFunc, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("secret key is required for cookie store")
	}

	store := cookie.NewStore([]byte(cfg.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: cfg.SameSite,
	})

	return sessions.Sessions(cfg.CookieName, store), nil
}
