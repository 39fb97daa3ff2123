package catalog

import (
	"context"

	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByISBN(ctx context.Context, isbn string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
