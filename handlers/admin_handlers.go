package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/models"
)

// GetUserListHandler lists every account for the admin panel.
func GetUserListHandler(c *gin.Context, db *gorm.DB) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		zap.L().Error("user list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
		return
	}

	userList := make([]gin.H, len(users))
	for i, user := range users {
		userList[i] = gin.H{
			"userId":  user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"blocked": user.Blocked,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   userList,
	})
}

func setUserBlocked(c *gin.Context, db *gorm.DB, blocked bool, message string) {
	userID := c.Param("id")

	var user models.User
	err := db.First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User not found",
			})
			return
		}
		zap.L().Error("user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
		return
	}

	user.Blocked = blocked
	if err := db.Save(&user).Error; err != nil {
		zap.L().Error("user block update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// BlockUserHandler blocks an account; blocked users cannot authenticate.
func BlockUserHandler(c *gin.Context, db *gorm.DB) {
	setUserBlocked(c, db, true, "User has been blocked")
}

// UnblockUserHandler lifts a block.
func UnblockUserHandler(c *gin.Context, db *gorm.DB) {
	setUserBlocked(c, db, false, "User has been unblocked")
}

type productRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Stock       uint     `json:"stock"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	OfferPct    *float64 `json:"offerPercent"`
}

// CreateProductHandler adds a catalog product and drops the list cache.
func CreateProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	var productReq productRequest
	if err := c.ShouldBindJSON(&productReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	product := models.Product{
		Name:        productReq.Name,
		Price:       decimal.NewFromFloat(productReq.Price).Round(2),
		Stock:       productReq.Stock,
		Description: productReq.Description,
		ImageURL:    productReq.ImageURL,
	}
	if productReq.OfferPct != nil {
		product.Offers = []models.Offer{{
			Percent: decimal.NewFromFloat(*productReq.OfferPct).Round(2),
			Active:  true,
		}}
	}

	if err := db.Create(&product).Error; err != nil {
		zap.L().Error("product creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
		return
	}

	InvalidateProductCache(c.Request.Context(), rdb)

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"productId": product.ID,
	})
}

// UpdateProductHandler overwrites a product's fields and drops the list cache.
func UpdateProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	productID := c.Param("productID")

	var product models.Product
	err := db.First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "product not found",
			})
			return
		}
		zap.L().Error("product lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
		return
	}

	var productReq productRequest
	if err := c.ShouldBindJSON(&productReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	product.Name = productReq.Name
	product.Price = decimal.NewFromFloat(productReq.Price).Round(2)
	product.Stock = productReq.Stock
	product.Description = productReq.Description
	product.ImageURL = productReq.ImageURL

	if err := db.Save(&product).Error; err != nil {
		zap.L().Error("product update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
		return
	}

	InvalidateProductCache(c.Request.Context(), rdb)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "product updated",
	})
}

// DeleteProductHandler removes a product and drops the list cache.
func DeleteProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	productID := c.Param("productID")

	result := db.Delete(&models.Product{}, "id = ?", productID)
	if result.Error != nil {
		zap.L().Error("product deletion failed", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "product not found",
		})
		return
	}

	InvalidateProductCache(c.Request.Context(), rdb)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "product deleted",
	})
}
