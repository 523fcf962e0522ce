package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware logs every request with its ID, tenant and outcome.
// The request ID is echoed back so support tickets can quote it.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		tenant := "-"
		if tenantID := GetTenantID(c); tenantID != uuid.Nil {
			tenant = tenantID.String()[:8]
		}

		log.Printf("[%s] %s %s | %d | %v | tenant=%s | %s",
			requestID[:8],
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			tenant,
			c.ClientIP(),
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", requestID[:8], e.Err)
		}
	}
}
