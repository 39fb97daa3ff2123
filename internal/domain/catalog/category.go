package catalog

import (
	"strings"
	"time"

	"github.com/bulky/backend/internal/domain/shared"
)

// Category represents a product category used to group catalog entries
type Category struct {
	shared.BaseAggregateRoot
	Name         string `gorm:"type:varchar(30);not null;uniqueIndex"`
	DisplayOrder int    `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name string, displayOrder int) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateDisplayOrder(displayOrder); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		DisplayOrder:      displayOrder,
	}, nil
}

// Update updates the category name and display order
func (c *Category) Update(name string, displayOrder int) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	if err := validateDisplayOrder(displayOrder); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.DisplayOrder = displayOrder
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 30 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 30 characters")
	}
	return nil
}

func validateDisplayOrder(displayOrder int) error {
	if displayOrder < 1 || displayOrder > 100 {
		return shared.NewDomainError("INVALID_DISPLAY_ORDER", "Display order must be between 1 and 100")
	}
	return nil
}
