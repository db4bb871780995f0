package webhook

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID is echoed back on every response.
	HeaderRequestID = "X-Request-Id"

	requestIDKey = "request_id"
)

// RequestID assigns each request an identifier, reusing the caller's header
// when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// RequestIDFromContext returns the identifier assigned by RequestID, or
// "unknown" outside of it.
func RequestIDFromContext(c *gin.Context) string {
	if id, ok := c.Value(requestIDKey).(string); ok {
		return id
	}
	return "unknown"
}
