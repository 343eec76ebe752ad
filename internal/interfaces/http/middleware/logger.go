package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"complianceconnect.backend/pkg/logger"
)

// LoggerMiddleware writes one access log line per request, labelled with the
// same route pattern the metrics use and the caller when authenticated.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		ctx := c.Request.Context()
		if id, ok := GetUserID(c); ok {
			ctx = context.WithValue(ctx, logger.UserIDKey, id.String())
		}
		logger.LogRequest(ctx, logger.RequestLog{
			Method:   c.Request.Method,
			Route:    routeLabel(c),
			Path:     path,
			Status:   c.Writer.Status(),
			Latency:  time.Since(start),
			ClientIP: c.ClientIP(),
		})
	}
}
