package handler

import (
	catalogapp "github.com/bulky/backend/internal/application/catalog"
	"github.com/bulky/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes. Reads are public to
// authenticated users, writes require a staff role.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.GET("/:id", h.GetByID)

		staff := categories.Group("", middleware.RequireStaff())
		{
			staff.POST("", h.Create)
			staff.PUT("/:id", h.Update)
			staff.DELETE("/:id", h.Delete)
		}
	}
}

// List returns all categories in display order
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// GetByID returns a single category
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Create creates a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), requester, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Update updates a category
func (h *CategoryHandler) Update(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), requester, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete removes a category. Categories with products cannot be deleted.
func (h *CategoryHandler) Delete(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), requester, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
