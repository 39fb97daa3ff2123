package cart

import (
	"time"

	"github.com/bulky/backend/internal/domain/catalog"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxLineQuantity caps how many units of a single product a cart may hold
const MaxLineQuantity = 1000

// CartLine represents one product entry in an account's shopping cart.
// At most one line exists per (account, product) pair; adding the same
// product again merges into the existing line.
type CartLine struct {
	shared.BaseAggregateRoot
	AccountID uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_cart_account_product,priority:1"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_cart_account_product,priority:2"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID"`
	Quantity  int              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartLine) TableName() string {
	return "cart_lines"
}

// NewCartLine creates a new cart line for an account
func NewCartLine(accountID, productID uuid.UUID, quantity int) (*CartLine, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	return &CartLine{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountID:         accountID,
		ProductID:         productID,
		Quantity:          quantity,
	}, nil
}

// BelongsTo reports whether the line is owned by the given account
func (l *CartLine) BelongsTo(accountID uuid.UUID) bool {
	return l.AccountID == accountID
}

// AddQuantity merges additional units into the line
func (l *CartLine) AddQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if l.Quantity+quantity > MaxLineQuantity {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot exceed 1000 per product")
	}
	l.Quantity += quantity
	l.UpdatedAt = time.Now()
	return nil
}

// Increment adds one unit to the line
func (l *CartLine) Increment() error {
	return l.AddQuantity(1)
}

// Decrement removes one unit from the line. Returns true when the line
// reached zero and must be removed; zero-quantity lines never persist.
func (l *CartLine) Decrement() (removed bool) {
	if l.Quantity <= 1 {
		return true
	}
	l.Quantity--
	l.UpdatedAt = time.Now()
	return false
}

// LineTotal returns unit price at the line's quantity times quantity.
// The product must be loaded.
func (l *CartLine) LineTotal() (decimal.Decimal, error) {
	if l.Product == nil {
		return decimal.Zero, shared.NewDomainError("PRODUCT_NOT_LOADED", "Cart line product is not loaded")
	}
	unitPrice := l.Product.UnitPriceFor(l.Quantity)
	return unitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))), nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if quantity > MaxLineQuantity {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot exceed 1000 per product")
	}
	return nil
}
