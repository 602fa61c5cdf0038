package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/server/http/dto"
)

// OrderHandler manages customer-side order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/orders.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.Checkout(c.Request.Context(), CurrentUserID(c), req.AddressID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.CheckoutResponse{
		Order:         toOrderResponse(result.Order, false),
		PaymentFailed: result.PaymentFailed,
	}
	if result.InitPoint != "" {
		response.InitPoint = result.InitPoint
	}
	c.JSON(http.StatusCreated, response)
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(&o, false))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order, true))
}

// RequestRefund handles POST /api/orders/:id/refund.
func (h *OrderHandler) RequestRefund(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RequestRefund(c.Request.Context(), CurrentUserID(c), id, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toOrderResponse(order *model.Order, withHistory bool) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}

	response := dto.OrderResponse{
		ID:             order.ID,
		Status:         string(order.Status),
		Subtotal:       order.Subtotal,
		ShippingAmount: order.ShippingAmount,
		Total:          order.Total,
		Shipping: dto.ShippingAddressResponse{
			Street:     order.Shipping.Street,
			Number:     order.Shipping.Number,
			Complement: order.Shipping.Complement,
			District:   order.Shipping.District,
			City:       order.Shipping.City,
			State:      order.Shipping.State,
			ZipCode:    order.Shipping.ZipCode,
		},
		Items:        items,
		TrackingCode: order.TrackingCode,
		Carrier:      order.Carrier,
		DeliveredAt:  order.DeliveredAt,
		RefundStatus: string(order.RefundStatus),
		RefundReason: order.RefundReason,
		CreatedAt:    order.CreatedAt,
	}

	if withHistory {
		history := make([]dto.StatusChangeResponse, 0, len(order.History))
		for _, change := range order.History {
			history = append(history, dto.StatusChangeResponse{
				From:      string(change.From),
				To:        string(change.To),
				Actor:     change.Actor,
				Note:      change.Note,
				CreatedAt: change.CreatedAt,
			})
		}
		response.History = history
	}
	return response
}
