package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cash-advance-monitoring/cam-api/internal/service"
)

// Metrics records duration and status for every handled request. It
// labels by route template rather than raw path so parameterized routes
// share a series; unmatched requests fall back to the raw path.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
