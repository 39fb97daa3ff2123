package catalog

import (
	"time"

	"github.com/bulky/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Category DTOs ====================

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=30"`
	DisplayOrder int    `json:"display_order" binding:"required,min=1,max=100"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=30"`
	DisplayOrder int    `json:"display_order" binding:"required,min=1,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a category to its response representation
func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:           category.ID,
		Name:         category.Name,
		DisplayOrder: category.DisplayOrder,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
}

// ==================== Product DTOs ====================

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=200"`
	Description string          `json:"description"`
	Author      string          `json:"author" binding:"required,min=1,max=200"`
	ISBN        string          `json:"isbn" binding:"required,min=1,max=30"`
	ListPrice   decimal.Decimal `json:"list_price" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Price50     decimal.Decimal `json:"price_50" binding:"required"`
	Price100    decimal.Decimal `json:"price_100" binding:"required"`
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=200"`
	Description string          `json:"description"`
	Author      string          `json:"author" binding:"required,min=1,max=200"`
	ISBN        string          `json:"isbn" binding:"required,min=1,max=30"`
	ListPrice   decimal.Decimal `json:"list_price" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Price50     decimal.Decimal `json:"price_50" binding:"required"`
	Price100    decimal.Decimal `json:"price_100" binding:"required"`
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn"`
	ListPrice   decimal.Decimal `json:"list_price"`
	Price       decimal.Decimal `json:"price"`
	Price50     decimal.Decimal `json:"price_50"`
	Price100    decimal.Decimal `json:"price_100"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a product to its response representation
func ToProductResponse(product *catalog.Product, imageURL string) ProductResponse {
	resp := ProductResponse{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Author:      product.Author,
		ISBN:        product.ISBN,
		ListPrice:   product.ListPrice,
		Price:       product.Price,
		Price50:     product.Price50,
		Price100:    product.Price100,
		CategoryID:  product.CategoryID,
		ImageURL:    imageURL,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	if product.Category != nil {
		resp.Category = product.Category.Name
	}
	return resp
}

// ProductListResponse is a paginated list of products
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}
