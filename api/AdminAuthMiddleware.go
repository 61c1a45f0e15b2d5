package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zt6453928/lunatv-enhanced/config"
)

// AdminAuthMiddleware requires a valid session belonging to the owner or
// an admin.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := SessionUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "Unauthorized"})
			c.Abort()
			return
		}
		if user.Banned {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "error": "Forbidden"})
			c.Abort()
			return
		}
		if user.Role != config.RoleOwner && user.Role != config.RoleAdmin &&
			user.Username != config.OwnerUsername() {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "error": "Forbidden"})
			c.Abort()
			return
		}
		c.Set("username", user.Username)
		c.Next()
	}
}
