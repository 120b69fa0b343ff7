package middleware

import (
	"net/http"
	"strings"

	"pharmacy-loan-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the session token from the auth cookie or,
// for non-browser clients, a bearer Authorization header.
func AuthMiddleware(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			// Fall back to Authorization: Bearer <token>
			authHeader := c.GetHeader("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}

		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if err := utils.ValidateSessionToken(token); err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Next()
	}
}
