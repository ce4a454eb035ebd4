// Package middleware obsahuje gin middleware sdílené všemi handlery.
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDKey klíč request ID v gin kontextu.
const requestIDKey = "request_id"

// RequestID přidá každému požadavku unikátní request ID. Přebírá se
// z hlavičky X-Request-ID, pokud ji klient poslal.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}

		c.Set(requestIDKey, reqID)
		c.Header("X-Request-ID", reqID)

		c.Next()
	}
}

// GetRequestID vrátí request ID z gin kontextu.
func GetRequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if reqID, ok := c.Get(requestIDKey); ok {
		if id, ok := reqID.(string); ok {
			return id
		}
	}
	return ""
}

// RequestLogger loguje dokončené požadavky se stavem a dobou zpracování.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", GetRequestID(c),
		)
	}
}
