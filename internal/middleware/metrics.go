package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/bank_ledger/internal/platform/observability"
	"github.com/gin-gonic/gin"
)

// Metrics records request duration per matched route.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
