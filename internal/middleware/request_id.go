package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id on both request and response.
	RequestIDHeader = "X-Request-Id"
	// RequestIDKey is the gin context key for the request id.
	RequestIDKey = "request_id"
)

// RequestID assigns each request a uuid, reusing the client-supplied
// one when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}
