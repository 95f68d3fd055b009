package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"probimport/internal/service"
)

const (
	ContextKeyUsername = "username"
	ContextKeyStaff    = "staff"
	ContextKeyClaims   = "claims"
)

// AuthMiddleware returns Gin middleware that validates JWT tokens and injects
// the user into the context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyStaff, claims.Staff)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireStaff rejects users without staff access to the admin site.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsStaff(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "staff access required"},
			})
			return
		}
		c.Next()
	}
}

// IsStaff reports whether the authenticated user is staff.
func IsStaff(c *gin.Context) bool {
	return c.GetBool(ContextKeyStaff)
}

// GetUsername extracts the username from the Gin context.
func GetUsername(c *gin.Context) string {
	return c.GetString(ContextKeyUsername)
}
