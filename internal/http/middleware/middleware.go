package middleware

import (
	"time"

	"riseleads_backend/platform/metrics"

	"github.com/gin-gonic/gin"
)

const unmatchedRoute = "unmatched"

// RequestTimer records request count and latency per route template, so
// /leads/:id is one series regardless of the id.
func RequestTimer(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		collector.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
