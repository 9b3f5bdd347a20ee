// Package http provides the API and metrics HTTP servers.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/holograph/vault/internal/httputil"
)

// CustomLoggerMiddleware logs one line per request with method, path, status,
// duration, and the request id assigned by the requestid middleware.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote_addr", c.ClientIP()),
			slog.String("request_id", requestid.Get(c)),
		)
	}
}

// HealthHandler reports liveness.
func HealthHandler(c *gin.Context) {
	httputil.MakeJSONResponse(c.Writer, http.StatusOK, map[string]string{"status": "healthy"})
}

// ReadinessHandler reports readiness: not ready once the application context
// is cancelled for shutdown.
func ReadinessHandler(ctx context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		select {
		case <-ctx.Done():
			httputil.MakeJSONResponse(
				c.Writer,
				http.StatusServiceUnavailable,
				map[string]string{"status": "not ready"},
			)
			return
		default:
		}

		httputil.MakeJSONResponse(c.Writer, http.StatusOK, map[string]string{"status": "ready"})
	}
}
