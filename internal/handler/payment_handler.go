package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/httperr"
	"github.com/hustlx/backend/internal/service"
	"github.com/hustlx/backend/pkg/logger"
	"go.uber.org/zap"
)

// PaymentHandler receives the payment provider's confirmation callback.
// It is authenticated by a shared webhook secret, not a user token, and is
// the only way an order moves from pending to paid.
type PaymentHandler struct {
	orderService  *service.OrderService
	webhookSecret string
}

func NewPaymentHandler(orderService *service.OrderService, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{
		orderService:  orderService,
		webhookSecret: webhookSecret,
	}
}

type PaymentConfirmRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

func (h *PaymentHandler) Confirm(c *gin.Context) {
	secret := c.GetHeader("X-Webhook-Secret")
	if h.webhookSecret == "" ||
		subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		logger.Log.Warn("Payment webhook rejected: bad secret",
			zap.String("ip", c.ClientIP()),
		)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook secret"})
		return
	}

	var req PaymentConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.orderService.ConfirmPayment(orderID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
