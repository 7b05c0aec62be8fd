package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/services"
)

func orderResponse(order *models.Order) gin.H {
	items := make([]gin.H, len(order.OrderItems))
	for i, item := range order.OrderItems {
		items[i] = gin.H{
			"productId": item.ProductID,
			"name":      item.Product.Name,
			"quantity":  item.Quantity,
			"price":     item.Price.InexactFloat64(),
		}
	}

	return gin.H{
		"orderId":       order.ID,
		"orderNumber":   order.OrderNumber,
		"orderTime":     order.CreatedAt,
		"status":        order.Status,
		"paid":          order.Paid,
		"total":         order.Total.InexactFloat64(),
		"name":          order.Name,
		"address":       order.Address,
		"phone":         order.Phone,
		"paymentMethod": order.PaymentMethod,
		"items":         items,
	}
}

// PlaceOrderHandler snapshots the caller's cart into an order.
func PlaceOrderHandler(c *gin.Context, orders *services.OrderService) {
	var orderReq struct {
		Name            string `json:"name" binding:"required"`
		DeliveryAddress string `json:"deliveryAddress" binding:"required"`
		Phone           string `json:"phone"`
		PaymentMethod   string `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&orderReq); err != nil {
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

	order, err := orders.PlaceOrder(c.Request.Context(), userID, services.PlaceOrderRequest{
		Name:          orderReq.Name,
		Address:       orderReq.DeliveryAddress,
		Phone:         orderReq.Phone,
		PaymentMethod: orderReq.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err, "place order failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "order placed",
		"order":   orderResponse(order),
	})
}

// UserOrderHandler returns one of the caller's orders in detail.
func UserOrderHandler(c *gin.Context, orders *services.OrderService) {
	var orderReq struct {
		OrderID uint `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&orderReq); err != nil {
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

	order, err := orders.OrderByID(c.Request.Context(), userID, orderReq.OrderID)
	if err != nil {
		respondServiceError(c, err, "get order failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   orderResponse(order),
	})
}

// UserOrdersHandler lists a user's orders, newest first. Non-admin callers
// may only read their own history.
func UserOrdersHandler(c *gin.Context, orders *services.OrderService) {
	requestedID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid user id",
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

	role, _ := c.Get("Role")
	if role != models.RoleAdmin && uint(requestedID) != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "permission denied",
		})
		return
	}

	orderList, err := orders.UserOrders(c.Request.Context(), uint(requestedID))
	if err != nil {
		respondServiceError(c, err, "get user orders failed")
		return
	}

	ordersData := make([]gin.H, len(orderList))
	for i := range orderList {
		ordersData[i] = orderResponse(&orderList[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  ordersData,
	})
}

// AllOrdersHandler is the admin view of every order across users.
func AllOrdersHandler(c *gin.Context, orders *services.OrderService) {
	orderList, err := orders.AllOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "get all orders failed")
		return
	}

	ordersData := make([]gin.H, len(orderList))
	for i := range orderList {
		ordersData[i] = orderResponse(&orderList[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  ordersData,
	})
}

// UpdateStatusHandler assigns an order status unconditionally; only values
// outside the enumeration are rejected.
func UpdateStatusHandler(c *gin.Context, orders *services.OrderService) {
	var statusReq struct {
		OrderID uint   `json:"orderId" binding:"required"`
		Status  string `json:"status" binding:"required"`
		Paid    *bool  `json:"paid"`
	}
	if err := c.ShouldBindJSON(&statusReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	err := orders.UpdateStatus(c.Request.Context(), statusReq.OrderID, statusReq.Status, statusReq.Paid)
	if err != nil {
		respondServiceError(c, err, "update order status failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "order status updated",
	})
}

// TotalPaidHandler returns the aggregate total over paid orders.
func TotalPaidHandler(c *gin.Context, orders *services.OrderService) {
	total, err := orders.TotalPaid(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "total paid failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"totalPaid": total.InexactFloat64(),
	})
}
