package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/jwt"
	"storefront/models"
)

// AuthMiddleware identifies the caller from the bearer token. An absent or
// invalid token leaves the request anonymous; blocked accounts are rejected.
func AuthMiddleware(jwtManager *jwt.Manager, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if token == "" || token == authHeader {
			c.Next()
			return
		}

		userID, role, err := jwtManager.VerifyToken(token, db)
		if err != nil {
			zap.L().Debug("token verification failed", zap.Error(err))
			c.Next()
			return
		}

		// The configured admin identity has no user row.
		if role != models.RoleAdmin {
			var user models.User
			if err := db.First(&user, "id = ?", userID).Error; err != nil {
				zap.L().Warn("token references unknown user", zap.Uint("userID", userID))
				c.Next()
				return
			}
			if user.Blocked {
				c.JSON(http.StatusForbidden, gin.H{
					"success": false,
					"message": "Your account has been blocked",
				})
				c.Abort()
				return
			}
		}

		c.Set("Token", token)
		c.Set("UserID", userID)
		c.Set("Role", role)
		c.Next()
	}
}
