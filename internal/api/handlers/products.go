package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/catalog"
)

// HandleListProducts handles GET /v1/products
func HandleListProducts(cat *catalog.Catalog, loadErr error, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if loadErr != nil {
			// The catalog failed to load at startup; surface it as a
			// load-error state instead of an empty shop.
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": cat.Products()})
	}
}
