// Package middleware holds the Gin middleware installed on every application instance.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oszuidwest/zwfm-arcview/internal/utils"
)

// HeaderXRequestID carries the request id in both directions.
const HeaderXRequestID = "X-Request-ID"

// RequestID reuses a valid UUID from the X-Request-ID header or generates a
// new one, stores it as the trace id and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := ""
		if raw := c.GetHeader(HeaderXRequestID); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				rid = id.String()
			}
		}
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(utils.TraceIDKey, rid)
		c.Header(HeaderXRequestID, rid)
		c.Next()
	}
}
