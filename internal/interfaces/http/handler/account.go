package handler

import (
	identityapp "github.com/bulky/backend/internal/application/identity"
	"github.com/bulky/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles account profile and administration endpoints
type AccountHandler struct {
	BaseHandler
	accountService *identityapp.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *identityapp.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// RegisterRoutes registers account routes. Self-service lives under
// /accounts/me, administration under /accounts with admin role.
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	{
		accounts.GET("/me", h.GetProfile)
		accounts.PUT("/me", h.UpdateProfile)
		accounts.POST("/me/change-password", h.ChangePassword)

		admin := accounts.Group("", middleware.RequireAdmin())
		{
			admin.GET("", h.List)
			admin.GET("/:id", h.GetByID)
			admin.PUT("/:id/role", h.ChangeRole)
			admin.POST("/:id/unlock", h.Unlock)
		}
	}
}

// GetProfile returns the requester's own account
func (h *AccountHandler) GetProfile(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	result, err := h.accountService.GetProfile(c.Request.Context(), requester)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateProfile updates the requester's own account
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	var req identityapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.accountService.UpdateProfile(c.Request.Context(), requester, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ChangePassword changes the requester's password
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.accountService.ChangePassword(c.Request.Context(), requester, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List returns a page of accounts
func (h *AccountHandler) List(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	var filter identityapp.AccountListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.accountService.List(c.Request.Context(), requester, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single account
func (h *AccountHandler) GetByID(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.accountService.GetByID(c.Request.Context(), requester, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ChangeRole assigns a new role to an account
func (h *AccountHandler) ChangeRole(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req identityapp.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.accountService.ChangeRole(c.Request.Context(), requester, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Unlock clears a lockout so the account can sign in again
func (h *AccountHandler) Unlock(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.accountService.Unlock(c.Request.Context(), requester, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
