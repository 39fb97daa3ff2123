package cart

import (
	"github.com/bulky/backend/internal/domain/cart"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddToCartRequest represents a request to add a product to the cart
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1,max=1000"`
}

// CartLineResponse represents one cart line in API responses
type CartLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse represents the full cart in API responses
type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

// ToCartLineResponse converts a cart line to its response representation.
// The line's product must be loaded.
func ToCartLineResponse(line *cart.CartLine) (CartLineResponse, error) {
	total, err := line.LineTotal()
	if err != nil {
		return CartLineResponse{}, err
	}
	return CartLineResponse{
		ID:        line.ID,
		ProductID: line.ProductID,
		Title:     line.Product.Title,
		Author:    line.Product.Author,
		Quantity:  line.Quantity,
		UnitPrice: line.Product.UnitPriceFor(line.Quantity),
		LineTotal: total,
	}, nil
}
