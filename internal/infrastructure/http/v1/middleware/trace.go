package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"prepstock/internal/core/appctx"
)

const HeaderRequestID = "X-Request-ID"

// Trace middleware assigns every request an id, reusing the caller's
// X-Request-ID when present.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := appctx.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
