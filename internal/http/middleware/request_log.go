package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurobridge-recommender/internal/platform/ctxutil"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

// RequestLogger writes one line per request once the handler chain finishes.
// Probe and scrape traffic is logged at debug; failures carry the gin error chain.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"route", routeLabel(c),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if learner := c.Param("id"); learner != "" {
			fields = append(fields, "learner_id", learner)
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, "query", q)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}
		fields = append(fields, ctxutil.LogFields(c.Request.Context())...)

		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		case unobservedRoutes[c.FullPath()]:
			log.Debug("probe served", fields...)
		default:
			log.Info("request served", fields...)
		}
	}
}
