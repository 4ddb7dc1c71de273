// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/lead-engine/internal/lock"
)

const (
	requestIDHeader = "X-Request-ID"
	userIDHeader    = "X-User-ID"
	requestIDKey    = "request_id"
)

// RequestID tags each request with the caller's X-Request-ID or a new UUID
// and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set(requestIDKey, id)
		c.Next()
	}
}

// GetRequestID returns the id set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger writes one access line per request, at error level for 5xx
// and warn for 4xx.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", GetRequestID(c)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			zap.L().Error("request completed", fields...)
		case status >= 400:
			zap.L().Warn("request completed", fields...)
		default:
			zap.L().Info("request completed", fields...)
		}
	}
}

// Recovery turns a panic into a 500 carrying the request id.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				id := GetRequestID(c)
				zap.L().Error("panic recovered",
					zap.Any("panic", r),
					zap.String("request_id", id),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":      "internal server error",
					"request_id": id,
				})
			}
		}()
		c.Next()
	}
}

// Exclusive rejects a request with 409 while the same caller already has
// one in flight for operation. The caller is X-User-ID, else the client IP.
func Exclusive(l lock.Locker, operation string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.GetHeader(userIDHeader)
		if caller == "" {
			caller = c.ClientIP()
		}
		key := lock.Key(caller, operation)
		if !l.TryAcquire(key) {
			zap.L().Warn("request already in progress",
				zap.String("caller", caller),
				zap.String("operation", operation),
				zap.String("request_id", GetRequestID(c)))
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "a " + operation + " request is already in progress",
			})
			return
		}
		defer l.Release(key)
		c.Next()
	}
}
