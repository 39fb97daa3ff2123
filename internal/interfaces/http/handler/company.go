package handler

import (
	"strconv"

	identityapp "github.com/bulky/backend/internal/application/identity"
	"github.com/bulky/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *identityapp.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *identityapp.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// RegisterRoutes registers company routes. Reads are staff, writes admin.
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	{
		staff := companies.Group("", middleware.RequireStaff())
		{
			staff.GET("", h.List)
			staff.GET("/:id", h.GetByID)
		}

		admin := companies.Group("", middleware.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

// List returns a page of companies
func (h *CompanyHandler) List(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.companyService.List(c.Request.Context(), requester, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single company
func (h *CompanyHandler) GetByID(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.companyService.GetByID(c.Request.Context(), requester, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Create registers a new company
func (h *CompanyHandler) Create(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	var req identityapp.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.companyService.Create(c.Request.Context(), requester, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update modifies a company
func (h *CompanyHandler) Update(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req identityapp.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.companyService.Update(c.Request.Context(), requester, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a company
func (h *CompanyHandler) Delete(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), requester, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
