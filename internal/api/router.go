package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/api/handlers"
	"github.com/activshop/storefront/internal/api/middleware"
	"github.com/activshop/storefront/internal/cart"
	"github.com/activshop/storefront/internal/catalog"
	"github.com/activshop/storefront/internal/config"
	"github.com/activshop/storefront/internal/order"
	"github.com/activshop/storefront/internal/remotelog"
	"github.com/activshop/storefront/internal/service"
)

// Deps collects everything the router serves.
type Deps struct {
	Catalog        *catalog.Catalog
	CatalogLoadErr error
	Carts          *cart.Manager
	Ledger         order.Ledger
	Checkout       *service.CheckoutService
	Remote         *remotelog.Client
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, deps Deps, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/products", handlers.HandleListProducts(deps.Catalog, deps.CatalogLoadErr, logger))

		v1.POST("/carts", handlers.HandleCreateCart(deps.Carts))
		v1.GET("/carts/:id", handlers.HandleGetCart(deps.Carts, deps.Catalog))
		v1.POST("/carts/:id/items", handlers.HandleAddItem(deps.Carts, deps.Catalog, logger))
		v1.DELETE("/carts/:id/items/:productId", handlers.HandleRemoveItem(deps.Carts, deps.Catalog, logger))
		v1.POST("/carts/:id/checkout", handlers.HandleCheckout(deps.Carts, deps.Checkout, logger))

		// Admin routes (bearer key, bcrypt-checked)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuth(cfg.Admin.APIKeyHash, logger))
		{
			adminRoutes.GET("/orders", handlers.HandleListOrders(deps.Ledger, logger))
			adminRoutes.POST("/orders/:id/status", handlers.HandleUpdateOrderStatus(deps.Checkout, logger))
			adminRoutes.GET("/orders/export", handlers.HandleExportOrders(deps.Ledger, logger))
			adminRoutes.GET("/orders/remote", handlers.HandleRemoteOrders(deps.Remote, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
