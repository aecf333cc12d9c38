package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lab-portal-api/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics records request count and latency labelled by route template, so
// /labs/:id is one series regardless of the id. Requests for the skipped
// route templates (typically the scrape endpoint) are not recorded.
func Metrics(metricsSvc *service.MetricsService, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, route := range skip {
		skipped[route] = struct{}{}
	}
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, ok := skipped[route]; ok {
			return
		}
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
