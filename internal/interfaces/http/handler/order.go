package handler

import (
	orderapp "github.com/bulky/backend/internal/application/order"
	"github.com/bulky/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// retryPaymentRequest carries the redirect URLs for a new payment session
type retryPaymentRequest struct {
	SuccessURL string `json:"success_url" binding:"required,url"`
	CancelURL  string `json:"cancel_url" binding:"required,url"`
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes. Fulfillment transitions require
// a staff role; cancellation is open because buyers may cancel their own
// pending orders (the service enforces ownership and state).
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("/checkout", h.Checkout)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.POST("/:id/confirm-payment", h.ConfirmPayment)
		orders.POST("/:id/retry-payment", h.RetryPayment)
		orders.POST("/:id/cancel", h.Cancel)

		staff := orders.Group("", middleware.RequireStaff())
		{
			staff.POST("/:id/process", h.StartProcessing)
			staff.POST("/:id/ship", h.Ship)
			staff.PUT("/:id/shipping-details", h.UpdateShippingDetails)
		}
	}
}

// Checkout places an order from the requester's cart
func (h *OrderHandler) Checkout(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	var req orderapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.Checkout(c.Request.Context(), requester, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List returns orders visible to the requester: staff see all orders,
// buyers only their own
func (h *OrderHandler) List(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.List(c.Request.Context(), requester, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single order
func (h *OrderHandler) GetByID(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.orderService.GetByID(c.Request.Context(), requester, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ConfirmPayment verifies the payment session with the gateway and
// approves the order's payment
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.orderService.ConfirmPayment(c.Request.Context(), requester, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RetryPayment opens a fresh payment session for an unpaid order
func (h *OrderHandler) RetryPayment(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req retryPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.RetryPayment(c.Request.Context(), requester, id, req.SuccessURL, req.CancelURL)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// StartProcessing moves an order into processing
func (h *OrderHandler) StartProcessing(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.orderService.StartProcessing(c.Request.Context(), requester, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Ship records carrier details and marks the order shipped
func (h *OrderHandler) Ship(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req orderapp.ShipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.Ship(c.Request.Context(), requester, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateShippingDetails corrects the delivery details on an unshipped order
func (h *OrderHandler) UpdateShippingDetails(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req orderapp.UpdateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.UpdateShippingDetails(c.Request.Context(), requester, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel cancels an order, refunding captured payments
func (h *OrderHandler) Cancel(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.orderService.Cancel(c.Request.Context(), requester, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
