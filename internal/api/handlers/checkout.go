package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/cart"
	"github.com/activshop/storefront/internal/domain"
	"github.com/activshop/storefront/internal/service"
	"github.com/activshop/storefront/pkg/errors"
)

// CheckoutRequest represents the checkout submission payload
type CheckoutRequest struct {
	ClientInfo    ClientInfoPayload   `json:"clientInfo" binding:"required"`
	PlatformInfo  PlatformInfoPayload `json:"platformInfo"`
	ContactMethod string              `json:"contactMethod" binding:"required"`
	Message       string              `json:"message"`
}

type ClientInfoPayload struct {
	Nom       string `json:"nom" binding:"required"`
	Telephone string `json:"telephone" binding:"required"`
	Email     string `json:"email"`
	Adresse   string `json:"adresse"`
	Ville     string `json:"ville" binding:"required"`
}

type PlatformInfoPayload struct {
	WhatsApp  string `json:"whatsapp"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

// HandleCheckout handles POST /v1/carts/:id/checkout
func HandleCheckout(carts *cart.Manager, svc *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
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
		result, err := svc.Submit(c.Request.Context(), store, service.CheckoutRequest{
			ClientInfo: domain.ClientInfo{
				Nom:       req.ClientInfo.Nom,
				Telephone: req.ClientInfo.Telephone,
				Email:     req.ClientInfo.Email,
				Adresse:   req.ClientInfo.Adresse,
				Ville:     req.ClientInfo.Ville,
			},
			PlatformInfo: domain.PlatformInfo{
				WhatsApp:  req.PlatformInfo.WhatsApp,
				Facebook:  req.PlatformInfo.Facebook,
				Instagram: req.PlatformInfo.Instagram,
			},
			ContactMethod: domain.Channel(req.ContactMethod),
			Message:       req.Message,
		})
		if err != nil {
			if _, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to submit order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order":    result.Order,
			"dispatch": result.Dispatch,
			"flow":     result.Flow,
		})
	}
}
