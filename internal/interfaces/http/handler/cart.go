package handler

import (
	cartapp "github.com/bulky/backend/internal/application/cart"
	"github.com/gin-gonic/gin"
)

// CartHandler handles shopping cart endpoints. The cart always belongs
// to the authenticated account.
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.POST("/lines", h.Add)
		cart.POST("/lines/:id/increment", h.Increment)
		cart.POST("/lines/:id/decrement", h.Decrement)
		cart.DELETE("/lines/:id", h.Remove)
		cart.DELETE("", h.Clear)
	}
}

// Get returns the requester's cart with tier-priced totals
func (h *CartHandler) Get(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	result, err := h.cartService.Get(c.Request.Context(), requester.AccountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Add puts a product in the cart, merging with an existing line
func (h *CartHandler) Add(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	var req cartapp.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.cartService.Add(c.Request.Context(), requester.AccountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Increment raises a cart line's quantity by one
func (h *CartHandler) Increment(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	lineID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.cartService.Increment(c.Request.Context(), requester.AccountID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Decrement lowers a cart line's quantity by one, removing the line at zero
func (h *CartHandler) Decrement(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	lineID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.cartService.Decrement(c.Request.Context(), requester.AccountID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Remove deletes a cart line
func (h *CartHandler) Remove(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	lineID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.cartService.Remove(c.Request.Context(), requester.AccountID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Clear empties the requester's cart
func (h *CartHandler) Clear(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), requester.AccountID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
