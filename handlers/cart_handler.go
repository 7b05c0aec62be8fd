package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/services"
)

func cartItemsResponse(view *services.CartView) []gin.H {
	items := make([]gin.H, len(view.Items))
	for i, item := range view.Items {
		items[i] = gin.H{
			"productId": item.ProductID,
			"name":      item.Product.Name,
			"imageUrl":  item.Product.ImageURL,
			"quantity":  item.Quantity,
			"price":     item.Price.InexactFloat64(),
		}
	}
	return items
}

// AddToCartHandler upserts a cart entry and returns the updated cart.
func AddToCartHandler(c *gin.Context, carts *services.CartService) {
	var cartItemReq struct {
		ProductID uint `json:"productId" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&cartItemReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "authentication required",
		})
		return
	}

	_, err := carts.AddToCart(c.Request.Context(), userID, cartItemReq.ProductID, cartItemReq.Quantity)
	if err != nil {
		respondServiceError(c, err, "add to cart failed")
		return
	}

	view, err := carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "get cart after add failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "product added to cart",
		"cart":    cartItemsResponse(view),
	})
}

// GetCartHandler returns the cart entries with subtotal and discounted total.
func GetCartHandler(c *gin.Context, carts *services.CartService) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "authentication required",
		})
		return
	}

	view, err := carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "get cart failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"cart":            cartItemsResponse(view),
		"subtotal":        view.Subtotal.InexactFloat64(),
		"discountedTotal": view.DiscountedTotal.InexactFloat64(),
	})
}

// RemoveFromCartHandler deletes a cart entry; absent entries succeed.
func RemoveFromCartHandler(c *gin.Context, carts *services.CartService) {
	var removeReq struct {
		ProductID uint `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&removeReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "authentication required",
		})
		return
	}

	if err := carts.RemoveFromCart(c.Request.Context(), userID, removeReq.ProductID); err != nil {
		respondServiceError(c, err, "remove from cart failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "product removed from cart",
	})
}

// UpdateCartHandler sets the exact quantity; 0 removes the entry.
func UpdateCartHandler(c *gin.Context, carts *services.CartService) {
	var updateReq struct {
		ProductID uint `json:"productId" binding:"required"`
		Quantity  *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "authentication required",
		})
		return
	}

	err := carts.UpdateQuantity(c.Request.Context(), userID, updateReq.ProductID, *updateReq.Quantity)
	if err != nil {
		respondServiceError(c, err, "update cart quantity failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "cart updated",
	})
}

// ClearCartHandler empties the caller's cart.
func ClearCartHandler(c *gin.Context, carts *services.CartService) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "authentication required",
		})
		return
	}

	if err := carts.ClearCart(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err, "clear cart failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "cart cleared",
	})
}
