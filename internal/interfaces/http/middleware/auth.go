package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/driftwear/storefront/internal/infrastructure/auth"
	"github.com/driftwear/storefront/internal/interfaces/http/dto"
)

const customerIDKey = "customer_id"

// OptionalAuth verifies a bearer token when one is presented and stores the
// customer identity in the context. Requests without a token proceed as
// guests; only a presented-but-invalid token is rejected.
func OptionalAuth(verifier *auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeTokenInvalid, "Malformed Authorization header"))
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeTokenInvalid, "Invalid or expired token"))
			return
		}

		c.Set(customerIDKey, claims.UserID)
		c.Next()
	}
}

// GetCustomerID returns the authenticated customer's ID, or empty for
// guests.
func GetCustomerID(c *gin.Context) string {
	return c.GetString(customerIDKey)
}
