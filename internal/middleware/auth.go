package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/hnakamura/qa-board-api/internal/constants"
	"github.com/hnakamura/qa-board-api/internal/database"
	apierrors "github.com/hnakamura/qa-board-api/internal/errors"
	"github.com/hnakamura/qa-board-api/internal/models"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username := session.Get(constants.ContextKeyUsername)

		if username == nil {
			apierrors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		// Store username in context for easy access in handlers
		c.Set(constants.ContextKeyUsername, username)
		c.Next()
	}
}

// RequireAdmin checks that the session user holds the Admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, exists := GetUsername(c)
		if !exists {
			apierrors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().
			Where("username = ?", username).
			First(&user).Error; err != nil {
			apierrors.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		if !user.HasRole(models.RoleAdmin) {
			apierrors.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUsername retrieves the current username from context
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(constants.ContextKeyUsername)
	if !exists {
		return "", false
	}

	name, ok := username.(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
