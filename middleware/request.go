// request.go - Request ids and access logging

package middleware // Declares the package name

import ( // Import required packages
	"go-catalog-backend/logger" // Structured logging
	"time"                      // Request latency

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Generated request ids
)

// Header and context key carrying the request id
const (
	HeaderRequestID  = "X-Request-Id"
	ContextRequestID = "request_id"
)

// RequestID reuses the caller's X-Request-Id or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(ContextRequestID, reqID)
		c.Header(HeaderRequestID, reqID)
		c.Next()
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		lat := time.Since(start)

		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"latency_ms", float64(lat.Microseconds()) / 1000.0,
			"request_id", c.GetString(ContextRequestID),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}
		if c.Writer.Status() >= 500 {
			logger.Error("http_request", fields...)
			return
		}
		logger.Info("http_request", fields...)
	}
}
