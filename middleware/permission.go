package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
)

// CheckAdminPermissionMiddleware aborts requests whose caller is not an admin.
func CheckAdminPermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("Role")
		if !exists || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "permission denied",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
