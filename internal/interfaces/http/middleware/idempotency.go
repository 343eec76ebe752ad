package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"complianceconnect.backend/pkg/cache"
	"complianceconnect.backend/pkg/logger"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

type storedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// IdempotencyMiddleware replays the first successful response for a
// repeated Idempotency-Key from the same caller. Requests without the
// header pass through untouched.
func IdempotencyMiddleware(store cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, _ := GetUserID(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s", userID, key)
		ctx := c.Request.Context()

		val, err := store.Get(ctx, storageKey)
		switch {
		case err == nil && val == processingMarker:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": gin.H{"code": http.StatusConflict, "message": "Request already in progress"},
			})
			return
		case err == nil:
			var prev storedResponse
			if jsonErr := json.Unmarshal([]byte(val), &prev); jsonErr == nil {
				c.Header("X-Idempotency-Hit", "true")
				c.Data(prev.Status, "application/json; charset=utf-8", []byte(prev.Body))
				c.Abort()
				return
			}
			_ = store.Del(ctx, storageKey)
		case !errors.Is(err, cache.ErrMiss):
			logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := store.SetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": gin.H{"code": http.StatusConflict, "message": "Request already in progress"},
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			payload, _ := json.Marshal(storedResponse{Status: status, Body: w.body.String()})
			_ = store.Set(ctx, storageKey, string(payload), RetentionDuration)
			return
		}
		_ = store.Del(ctx, storageKey)
	}
}
