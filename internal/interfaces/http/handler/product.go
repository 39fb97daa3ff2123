package handler

import (
	catalogapp "github.com/bulky/backend/internal/application/catalog"
	"github.com/bulky/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// maxImageSize caps product image uploads at 5MB
const maxImageSize = 5 << 20

// ProductHandler handles product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes. Reads are public to
// authenticated users, writes require a staff role.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.GetByID)

		staff := products.Group("", middleware.RequireStaff())
		{
			staff.POST("", h.Create)
			staff.PUT("/:id", h.Update)
			staff.DELETE("/:id", h.Delete)
			staff.POST("/:id/image", h.UploadImage)
			staff.DELETE("/:id/image", h.RemoveImage)
		}
	}
}

// List returns products matching the filter
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single product
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create creates a new product
func (h *ProductHandler) Create(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), requester, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update updates a product
func (h *ProductHandler) Update(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), requester, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product and its stored image
func (h *ProductHandler) Delete(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), requester, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadImage stores an image for a product, replacing any previous one
func (h *ProductHandler) UploadImage(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Image file is required")
		return
	}
	if fileHeader.Size > maxImageSize {
		h.BadRequest(c, "Image exceeds the maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	product, err := h.productService.UploadImage(
		c.Request.Context(),
		requester,
		id,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// RemoveImage clears a product's image
func (h *ProductHandler) RemoveImage(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.productService.RemoveImage(c.Request.Context(), requester, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
