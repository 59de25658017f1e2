package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitclub/internal/logger"
)

// RequestLoggingMiddleware logs successful ops requests at debug level and
// failed ones as warnings, so scrapes do not flood the session log.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		if status >= http.StatusBadRequest {
			logger.Warn("ops request failed", args...)
			return
		}
		logger.Debug("ops request", args...)
	}
}
