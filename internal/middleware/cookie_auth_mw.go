package middleware

import (
	"errors"
	"log"
	"net/http"

	"kodask_bank/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// AuthCookieName is the HTTP-only cookie carrying the session token
	AuthCookieName = "auth_token"

	AuthUserKey = "authUser"
	AuthRoleKey = "authRole"
)

// CookieAuthMiddleware creates a middleware that authenticates requests by
// the session cookie and stores the decoded identity in the request context
func CookieAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AuthCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		identity, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				return
			}
			// Infrastructure failure (e.g. the token store is down), not a bad token
			log.Printf("Authentication error: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(AuthUserKey, identity.Username)
		c.Set(AuthRoleKey, identity.Role)

		c.Next()
	}
}
