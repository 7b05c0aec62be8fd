package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/models"
)

const productCacheKey = "products"

// rebuildProductCache reloads the catalog into a Redis sorted set keyed by
// product id.
func rebuildProductCache(ctx context.Context, db *gorm.DB, rdb *redis.Client) error {
	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		return err
	}

	rdb.Del(ctx, productCacheKey)
	for _, product := range products {
		productJSON, err := json.Marshal(product)
		if err != nil {
			zap.L().Warn("product serialization failed", zap.Uint("productID", product.ID), zap.Error(err))
			continue
		}
		err = rdb.ZAdd(ctx, productCacheKey, redis.Z{
			Score:  float64(product.ID),
			Member: productJSON,
		}).Err()
		if err != nil {
			zap.L().Warn("product cache write failed", zap.Uint("productID", product.ID), zap.Error(err))
		}
	}
	return nil
}

// InvalidateProductCache drops the cached catalog; the next list request
// rebuilds it. Called by admin product writes.
func InvalidateProductCache(ctx context.Context, rdb *redis.Client) {
	if err := rdb.Del(ctx, productCacheKey).Err(); err != nil {
		zap.L().Warn("product cache invalidation failed", zap.Error(err))
	}
}

// GetProductListHandler returns a page of the catalog, served from Redis
// when possible.
func GetProductListHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	limitInt, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limitInt <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid limit",
		})
		return
	}
	if limitInt > 50 {
		limitInt = 50
	}

	offsetInt, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offsetInt < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid offset",
		})
		return
	}

	ctx := c.Request.Context()

	cached, err := rdb.ZRange(ctx, productCacheKey, int64(offsetInt), int64(offsetInt+limitInt-1)).Result()
	if err != nil || rdb.ZCard(ctx, productCacheKey).Val() == 0 {
		if err := rebuildProductCache(ctx, db, rdb); err != nil {
			zap.L().Error("product cache rebuild failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "internal server error",
			})
			return
		}
		cached, err = rdb.ZRange(ctx, productCacheKey, int64(offsetInt), int64(offsetInt+limitInt-1)).Result()
		if err != nil {
			zap.L().Error("product cache read failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "internal server error",
			})
			return
		}
	}

	productsData := make([]gin.H, 0, len(cached))
	for _, member := range cached {
		var product models.Product
		if err := json.Unmarshal([]byte(member), &product); err != nil {
			zap.L().Warn("product deserialization failed", zap.Error(err))
			continue
		}
		productsData = append(productsData, gin.H{
			"productId": product.ID,
			"name":      product.Name,
			"price":     product.Price.InexactFloat64(),
			"stock":     product.Stock,
			"imageUrl":  product.ImageURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"products":   productsData,
		"totalCount": rdb.ZCard(ctx, productCacheKey).Val(),
	})
}

// GetProductDataHandler returns one product's detail from the database.
func GetProductDataHandler(c *gin.Context, db *gorm.DB) {
	productID := c.Param("productID")

	var product models.Product
	err := db.Preload("Offers", "active = ?", true).First(&product, "id = ?", productID).Error
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

	offers := make([]gin.H, len(product.Offers))
	for i, offer := range product.Offers {
		offers[i] = gin.H{
			"percent": offer.Percent.InexactFloat64(),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": gin.H{
			"productId":   product.ID,
			"name":        product.Name,
			"price":       product.Price.InexactFloat64(),
			"stock":       product.Stock,
			"description": product.Description,
			"imageUrl":    product.ImageURL,
			"offers":      offers,
		},
	})
}
