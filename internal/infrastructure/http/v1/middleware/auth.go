package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"prepstock/internal/core/appctx"
	"prepstock/internal/core/apperror"
	"prepstock/internal/core/id"
)

// TokenValidator validates an access token and returns the user id.
type TokenValidator interface {
	ValidateToken(tokenString string) (id.ID, error)
}

// Auth middleware validates JWT bearer tokens and populates the user id
// in the request context.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		userID, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		ctx := appctx.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("user_id", userID.String())

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
