package routers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"storefront/config"
	"storefront/handlers"
	"storefront/jwt"
	"storefront/middleware"
	"storefront/services"
)

func SetupRouters(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	jwtManager := jwt.NewManager(cfg.JWT.Secret)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db)

	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		c.Next()
	})
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.Use(middleware.AuthMiddleware(jwtManager, db))
	{
		// Account endpoints.
		router.POST("/signup", func(c *gin.Context) {
			handlers.SignupHandler(c, db)
		})
		router.POST("/login", func(c *gin.Context) {
			handlers.LoginHandler(c, cfg, jwtManager, db)
		})
		router.POST("/adminLogin", func(c *gin.Context) {
			handlers.AdminLoginHandler(c, cfg, jwtManager, db)
		})

		// Catalog read path.
		router.GET("/products", func(c *gin.Context) {
			handlers.GetProductListHandler(c, db, rdb)
		})
		router.GET("/products/:productID", func(c *gin.Context) {
			handlers.GetProductDataHandler(c, db)
		})

		// Admin read endpoints; the legacy storefront served these without a
		// token and the admin panel depends on that.
		router.GET("/allOrder", func(c *gin.Context) {
			handlers.AllOrdersHandler(c, orderService)
		})
		router.GET("/paid", func(c *gin.Context) {
			handlers.TotalPaidHandler(c, orderService)
		})

		// Everything below needs an authenticated user.
		loginRequired := router.Group("/")
		loginRequired.Use(middleware.CheckLoginMiddleware())
		{
			loginRequired.POST("/logout", func(c *gin.Context) {
				handlers.LogoutHandler(c, db)
			})
			loginRequired.POST("/changepassword", func(c *gin.Context) {
				handlers.ChangePasswordHandler(c, db)
			})
			loginRequired.GET("/users", func(c *gin.Context) {
				handlers.UsersHandler(c, db)
			})

			loginRequired.POST("/addcart", func(c *gin.Context) {
				handlers.AddToCartHandler(c, cartService)
			})
			loginRequired.GET("/getcart", func(c *gin.Context) {
				handlers.GetCartHandler(c, cartService)
			})
			loginRequired.DELETE("/removecart", func(c *gin.Context) {
				handlers.RemoveFromCartHandler(c, cartService)
			})
			loginRequired.PUT("/updatecart", func(c *gin.Context) {
				handlers.UpdateCartHandler(c, cartService)
			})
			loginRequired.DELETE("/clearCart", func(c *gin.Context) {
				handlers.ClearCartHandler(c, cartService)
			})

			loginRequired.POST("/place", func(c *gin.Context) {
				handlers.PlaceOrderHandler(c, orderService)
			})
			loginRequired.POST("/userOrder", func(c *gin.Context) {
				handlers.UserOrderHandler(c, orderService)
			})
			loginRequired.GET("/userOrders/:userId", func(c *gin.Context) {
				handlers.UserOrdersHandler(c, orderService)
			})
		}

		// Admin mutations.
		adminRequired := router.Group("/")
		adminRequired.Use(middleware.CheckLoginMiddleware(), middleware.CheckAdminPermissionMiddleware())
		{
			adminRequired.POST("/updateStatus", func(c *gin.Context) {
				handlers.UpdateStatusHandler(c, orderService)
			})
			adminRequired.GET("/usertotal", func(c *gin.Context) {
				handlers.GetUserListHandler(c, db)
			})
			adminRequired.PUT("/blockUser/:id", func(c *gin.Context) {
				handlers.BlockUserHandler(c, db)
			})
			adminRequired.PUT("/unblockUser/:id", func(c *gin.Context) {
				handlers.UnblockUserHandler(c, db)
			})
			adminRequired.POST("/admin/products", func(c *gin.Context) {
				handlers.CreateProductHandler(c, db, rdb)
			})
			adminRequired.PUT("/admin/products/:productID", func(c *gin.Context) {
				handlers.UpdateProductHandler(c, db, rdb)
			})
			adminRequired.DELETE("/admin/products/:productID", func(c *gin.Context) {
				handlers.DeleteProductHandler(c, db, rdb)
			})
		}
	}

	return router, nil
}
