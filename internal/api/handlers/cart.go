package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/cart"
	"github.com/activshop/storefront/internal/catalog"
)

// AddItemRequest represents the add-to-cart payload
type AddItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
}

// HandleCreateCart handles POST /v1/carts
func HandleCreateCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := carts.New()
		c.JSON(http.StatusCreated, gin.H{"cart_id": id})
	}
}

// HandleGetCart handles GET /v1/carts/:id
func HandleGetCart(carts *cart.Manager, cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := carts.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":       store.Items(),
			"total_items": store.TotalItems(),
			"total_price": store.TotalPrice(cat),
		})
	}
}

// HandleAddItem handles POST /v1/carts/:id/items
func HandleAddItem(carts *cart.Manager, cat *catalog.Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store, ok := carts.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}
		if err := store.Add(req.ProductID); err != nil {
			logger.Error("Failed to add to cart", zap.Int("product_id", req.ProductID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":       store.Items(),
			"total_items": store.TotalItems(),
			"total_price": store.TotalPrice(cat),
		})
	}
}

// HandleRemoveItem handles DELETE /v1/carts/:id/items/:productId
func HandleRemoveItem(carts *cart.Manager, cat *catalog.Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.Atoi(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		store, ok := carts.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}
		if err := store.Remove(productID); err != nil {
			logger.Error("Failed to remove from cart", zap.Int("product_id", productID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":       store.Items(),
			"total_items": store.TotalItems(),
			"total_price": store.TotalPrice(cat),
		})
	}
}
