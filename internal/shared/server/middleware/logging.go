package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	CatalogVersionKey = "catalogVersion"
	MatchCountKey     = "matchCount"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		catalogVersion, _ := c.Get(CatalogVersionKey)
		matchCount, _ := c.Get(MatchCountKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":      RequestIDFromContext(c),
			"method":          c.Request.Method,
			"path":            c.Request.URL.Path,
			"route":           c.FullPath(),
			"status":          c.Writer.Status(),
			"duration_ms":     float64(latency.Microseconds()) / 1000.0,
			"catalog_version": catalogVersion,
			"match_count":     matchCount,
			"client_ip":       c.ClientIP(),
			"user_agent":      c.Request.UserAgent(),
		})
	}
}
