package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jrbgold/jrb-backend/config"
	"github.com/jrbgold/jrb-backend/internal/app/controller"
	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	productController    *controller.ProductController
	cartController       *controller.CartController
	wishlistController   *controller.WishlistController
	orderController      *controller.OrderController
	rateController       *controller.RateController
	rateStreamController *controller.RateStreamController
	taxController        *controller.TaxController
	authMiddleware       *middleware.AuthMiddleware
	metricsHandler       http.Handler
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	wishlistController *controller.WishlistController,
	orderController *controller.OrderController,
	rateController *controller.RateController,
	rateStreamController *controller.RateStreamController,
	taxController *controller.TaxController,
	authMiddleware *middleware.AuthMiddleware,
	metricsHandler http.Handler,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		productController:    productController,
		cartController:       cartController,
		wishlistController:   wishlistController,
		orderController:      orderController,
		rateController:       rateController,
		rateStreamController: rateStreamController,
		taxController:        taxController,
		authMiddleware:       authMiddleware,
		metricsHandler:       metricsHandler,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": r.config.Store.Name + " API is running",
		})
	})

	if r.metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(r.metricsHandler))
	}

	router.GET("/ws/rates", r.rateStreamController.Stream)

	authenticated := r.authMiddleware.Authenticate()
	adminOnly := r.authMiddleware.RequireRole(model.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.GET("/me", authenticated, r.authController.GetMe)
			auth.POST("/logout", authenticated, r.authController.Logout)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/featured", r.productController.GetFeaturedProducts)
			products.GET("/price-list.xlsx", r.productController.DownloadPriceList)
			products.GET("/:id", r.productController.GetProductByID)
		}

		metalRates := v1.Group("/rates")
		{
			metalRates.GET("", r.rateController.GetRates)
			metalRates.GET("/history/:metal/:tier", r.rateController.GetHistory)
			metalRates.POST("/refresh", authenticated, adminOnly, r.rateController.RefreshRates)
		}

		tax := v1.Group("/tax")
		{
			tax.GET("/rates", r.taxController.GetTaxRates)
			tax.POST("/quote", r.taxController.QuoteTax)
		}

		cart := v1.Group("/cart", authenticated)
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:product_id", r.cartController.UpdateCartItem)
			cart.DELETE("/:product_id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		wishlist := v1.Group("/wishlist", authenticated)
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("", r.wishlistController.AddToWishlist)
			wishlist.DELETE("/:product_id", r.wishlistController.RemoveFromWishlist)
			wishlist.DELETE("", r.wishlistController.ClearWishlist)
			wishlist.POST("/:product_id/move-to-cart", r.wishlistController.MoveToCart)
		}

		orders := v1.Group("/orders", authenticated)
		{
			orders.POST("", r.orderController.Checkout)
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/track/:tracking_number", r.orderController.TrackOrder)
			orders.GET("/:id", r.orderController.GetOrderByID)
			orders.POST("/:id/cancel", r.orderController.CancelOrder)
		}

		admin := v1.Group("/admin", authenticated, adminOnly)
		{
			admin.POST("/price-list", r.productController.PublishPriceList)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
