package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/pkg/logger"
)

// RecoveryMiddleware turns a handler panic into a single 500 response.
// The panic is logged and not re-raised.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logger.Error(c.Request.Context(), "Recovered from panic",
				zap.Any("panic", rec),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Stack("stack"),
			)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			appErr := domainerrors.InternalError(fmt.Errorf("panic: %v", rec))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"code": appErr.Code, "message": appErr.Message},
			})
		}()
		c.Next()
	}
}
