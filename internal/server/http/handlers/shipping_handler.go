package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memoriza/memoriza/internal/server/http/dto"
)

// ShippingHandler serves freight estimates.
type ShippingHandler struct {
	facade ShippingFacade
}

// NewShippingHandler constructs ShippingHandler.
func NewShippingHandler(facade ShippingFacade) *ShippingHandler {
	return &ShippingHandler{facade: facade}
}

// Quote handles POST /api/shipping/quote.
func (h *ShippingHandler) Quote(c *gin.Context) {
	var req dto.ShippingQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	quote, err := h.facade.ShippingQuote(req.ZipCode, req.WeightGrams, req.Subtotal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ShippingQuoteResponse{
		Amount:       quote.Amount,
		Carrier:      quote.Carrier,
		DeliveryDays: quote.DeliveryDays,
	})
}
