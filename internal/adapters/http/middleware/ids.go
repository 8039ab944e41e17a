package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quotedash/internal/platform/logging"
)

// Header names.
const (
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID tracks one user action across the dashboard and
	// the remote API; a request ID is per hop.
	HeaderCorrelationID = "X-Correlation-ID"
)

// gin context keys.
const (
	ContextKeyRequestID     = "request_id"
	ContextKeyCorrelationID = "correlation_id"
)

type enricher func(ctx context.Context, id string) context.Context

// idMiddleware takes the ID from header, or generates a UUID, echoes it
// back and stores it everywhere downstream code looks for it.
func idMiddleware(header, key string, enrich ...enricher) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(key, id)
		c.Header(header, id)

		ctx := c.Request.Context()
		for _, fn := range enrich {
			ctx = fn(ctx, id)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestID extracts or generates X-Request-ID. The ID goes on the
// response, the context logger and outbound remote API calls.
func RequestID() gin.HandlerFunc {
	return idMiddleware(HeaderRequestID, ContextKeyRequestID, logging.WithRequestID, ContextWithRequestID)
}

// CorrelationID extracts or generates X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(HeaderCorrelationID, ContextKeyCorrelationID, logging.WithCorrelationID, ContextWithCorrelationID)
}

// GetRequestID returns the request ID set by RequestID.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID set by CorrelationID.
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}
