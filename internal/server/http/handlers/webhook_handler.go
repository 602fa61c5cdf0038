package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memoriza/memoriza/internal/adapter/payment"
)

// WebhookHandler receives payment gateway notifications.
type WebhookHandler struct {
	facade WebhookFacade
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade) *WebhookHandler {
	return &WebhookHandler{facade: facade}
}

// Receive handles POST /api/payments/webhook. The gateway retries on
// non-2xx, so the endpoint acknowledges every delivery, including
// malformed ones.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload payment.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.Status(http.StatusOK)
		return
	}

	h.facade.ProcessPaymentWebhook(c.Request.Context(), payload)
	c.Status(http.StatusOK)
}
