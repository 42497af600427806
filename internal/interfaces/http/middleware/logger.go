package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"timecard.backend/pkg/logger"
	"timecard.backend/pkg/metrics"
)

// probeRoutes are polled by the orchestrator and the scraper; logging them
// would drown the access log.
var probeRoutes = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// LoggerMiddleware logs HTTP requests and records their latency
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		route := c.FullPath()
		if probeRoutes[route] {
			return
		}

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		// FullPath is the route template, which keeps metric cardinality bounded
		metrics.ObserveHTTPRequest(route, c.Request.Method, c.Writer.Status(), latency)
		logger.LogRequest(c.Request.Context(), logger.RequestLog{
			Method:   c.Request.Method,
			Path:     path,
			Route:    route,
			Status:   c.Writer.Status(),
			Latency:  latency,
			ClientIP: c.ClientIP(),
		})
	}
}
