package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"storefront/models"
	"storefront/services"
)

// setupTestRouter wires the cart/order endpoints against an in-memory
// database, with a stub auth middleware that reads the user id from the
// X-Test-User header.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Offer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Cart{},
		&models.CartItem{},
	))

	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if header := c.GetHeader("X-Test-User"); header != "" {
			userID, err := strconv.ParseUint(header, 10, 64)
			require.NoError(t, err)
			c.Set("UserID", uint(userID))
		}
		c.Next()
	})

	router.POST("/addcart", func(c *gin.Context) {
		AddToCartHandler(c, cartService)
	})
	router.GET("/getcart", func(c *gin.Context) {
		GetCartHandler(c, cartService)
	})
	router.DELETE("/removecart", func(c *gin.Context) {
		RemoveFromCartHandler(c, cartService)
	})
	router.PUT("/updatecart", func(c *gin.Context) {
		UpdateCartHandler(c, cartService)
	})
	router.DELETE("/clearCart", func(c *gin.Context) {
		ClearCartHandler(c, cartService)
	})
	router.POST("/place", func(c *gin.Context) {
		PlaceOrderHandler(c, orderService)
	})
	router.POST("/userOrder", func(c *gin.Context) {
		UserOrderHandler(c, orderService)
	})
	router.POST("/updateStatus", func(c *gin.Context) {
		UpdateStatusHandler(c, orderService)
	})
	router.GET("/paid", func(c *gin.Context) {
		TotalPaidHandler(c, orderService)
	})

	return router, db
}

func createTestProduct(t *testing.T, db *gorm.DB, name, price string, stock uint) *models.Product {
	t.Helper()

	product := models.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

// doJSON performs a request with an optional JSON body as the given user and
// decodes the JSON response.
func doJSON(t *testing.T, router *gin.Engine, method, path string, userID uint, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-User", strconv.FormatUint(uint64(userID), 10))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	return w.Code, response
}
