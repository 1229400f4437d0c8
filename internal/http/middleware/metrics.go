package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/youthcare-backend/internal/observability"
)

// unscraped routes are polled by infrastructure and would drown the
// latency histogram.
var unscraped = map[string]bool{
	"/metrics":    true,
	"/api/health": true,
}

// Metrics records request counts and latency per matched route.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if m == nil || unscraped[route] {
			c.Next()
			return
		}
		// Unmatched paths share one label so scanners cannot grow cardinality.
		if route == "" {
			route = "unmatched"
		}

		m.ApiInflightInc()
		defer m.ApiInflightDec()
		start := time.Now()
		c.Next()
		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
