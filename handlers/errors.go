package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/services"
)

// respondServiceError maps domain errors to HTTP codes at the request
// boundary: validation failures to 400, missing records to 404, everything
// else to a generic 500 with the cause logged server-side only.
func respondServiceError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrCartItemNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": err.Error(),
		})
	default:
		zap.L().Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
	}
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("UserID")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
