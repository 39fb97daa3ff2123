package catalog

import (
	"strings"
	"time"

	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bulk pricing tier thresholds. Quantities at or above a threshold are
// billed at that tier's unit price.
const (
	TierThreshold50  = 50
	TierThreshold100 = 100
)

// Product represents a book in the catalog with volume-tiered pricing.
// Price applies below 50 units, Price50 from 50 to 99, Price100 from 100 up.
type Product struct {
	shared.BaseAggregateRoot
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Author      string          `gorm:"type:varchar(200);not null"`
	ISBN        string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	ListPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Price50     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Price100    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ImageKey    string          `gorm:"type:varchar(500)"` // object storage key, empty if no image
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductPrices groups the four price fields of a product
type ProductPrices struct {
	ListPrice decimal.Decimal
	Price     decimal.Decimal
	Price50   decimal.Decimal
	Price100  decimal.Decimal
}

// NewProduct creates a new catalog product
func NewProduct(title, author, isbn string, prices ProductPrices, categoryID uuid.UUID) (*Product, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateAuthor(author); err != nil {
		return nil, err
	}
	if err := validateISBN(isbn); err != nil {
		return nil, err
	}
	if err := validatePrices(prices); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		Author:            strings.TrimSpace(author),
		ISBN:              strings.TrimSpace(isbn),
		ListPrice:         prices.ListPrice,
		Price:             prices.Price,
		Price50:           prices.Price50,
		Price100:          prices.Price100,
		CategoryID:        categoryID,
	}, nil
}

// UnitPriceFor resolves the unit price for the given quantity using the
// bulk pricing tiers. Thresholds are inclusive and the tie-break favors
// the higher tier. Pure function of (product, quantity): callers computing
// cart totals and callers freezing order line prices must agree.
func (p *Product) UnitPriceFor(quantity int) decimal.Decimal {
	switch {
	case quantity >= TierThreshold100:
		return p.Price100
	case quantity >= TierThreshold50:
		return p.Price50
	default:
		return p.Price
	}
}

// Update updates the product's descriptive fields and prices
func (p *Product) Update(title, description, author, isbn string, prices ProductPrices, categoryID uuid.UUID) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateAuthor(author); err != nil {
		return err
	}
	if err := validateISBN(isbn); err != nil {
		return err
	}
	if err := validatePrices(prices); err != nil {
		return err
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	p.Title = strings.TrimSpace(title)
	p.Description = description
	p.Author = strings.TrimSpace(author)
	p.ISBN = strings.TrimSpace(isbn)
	p.ListPrice = prices.ListPrice
	p.Price = prices.Price
	p.Price50 = prices.Price50
	p.Price100 = prices.Price100
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetDescription sets the product description
func (p *Product) SetDescription(description string) {
	p.Description = description
	p.UpdatedAt = time.Now()
}

// SetImageKey records the object storage key of the product image
func (p *Product) SetImageKey(key string) {
	p.ImageKey = key
	p.UpdatedAt = time.Now()
}

// RemoveImage clears the product image reference
func (p *Product) RemoveImage() {
	p.ImageKey = ""
	p.UpdatedAt = time.Now()
}

// HasImage returns true if an image is stored for the product
func (p *Product) HasImage() bool {
	return p.ImageKey != ""
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}

func validateAuthor(author string) error {
	author = strings.TrimSpace(author)
	if author == "" {
		return shared.NewDomainError("INVALID_AUTHOR", "Author cannot be empty")
	}
	if len(author) > 200 {
		return shared.NewDomainError("INVALID_AUTHOR", "Author cannot exceed 200 characters")
	}
	return nil
}

func validateISBN(isbn string) error {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return shared.NewDomainError("INVALID_ISBN", "ISBN cannot be empty")
	}
	if len(isbn) > 20 {
		return shared.NewDomainError("INVALID_ISBN", "ISBN cannot exceed 20 characters")
	}
	return nil
}

func validatePrices(prices ProductPrices) error {
	for _, price := range []decimal.Decimal{prices.ListPrice, prices.Price, prices.Price50, prices.Price100} {
		if price.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_PRICE", "Price must be positive")
		}
	}
	return nil
}
