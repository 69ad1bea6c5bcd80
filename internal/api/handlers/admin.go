package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/domain"
	"github.com/activshop/storefront/internal/order"
	"github.com/activshop/storefront/internal/remotelog"
	"github.com/activshop/storefront/internal/service"
	"github.com/activshop/storefront/pkg/errors"
)

// UpdateStatusRequest represents the status change payload
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleListOrders handles GET /v1/admin/orders
func HandleListOrders(ledger order.Ledger, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ledger.List()
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"count":  len(orders),
		})
	}
}

// HandleUpdateOrderStatus handles POST /v1/admin/orders/:id/status
func HandleUpdateOrderStatus(svc *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		status := domain.OrderStatus(req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		orderID := c.Param("id")
		ok, err := svc.UpdateStatus(c.Request.Context(), orderID, status)
		if err != nil {
			if _, isTransition := err.(*errors.ErrInvalidStateTransition); isTransition {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to update order status", zap.String("order_id", orderID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     orderID,
			"status": status,
		})
	}
}

// HandleExportOrders handles GET /v1/admin/orders/export
func HandleExportOrders(ledger order.Ledger, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ledger.List()
		if err != nil {
			logger.Error("Failed to export orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		csv := order.ExportCSV(orders)
		if csv == "" {
			c.Status(http.StatusNoContent)
			return
		}

		c.Header("Content-Disposition", `attachment; filename="commandes_activshop.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
	}
}

// HandleRemoteOrders handles GET /v1/admin/orders/remote
func HandleRemoteOrders(remote *remotelog.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if remote == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "remote log not configured"})
			return
		}

		orders, err := remote.GetOrders(c.Request.Context())
		if err != nil {
			// The remote mirror is best effort; report the failure
			// without treating it as an internal error.
			logger.Warn("Failed to fetch remote orders", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "remote log unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"count":  len(orders),
		})
	}
}
