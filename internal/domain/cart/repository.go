package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for cart lines
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CartLine, error)
	// FindByAccountAndProduct returns shared.ErrNotFound when no line exists
	FindByAccountAndProduct(ctx context.Context, accountID, productID uuid.UUID) (*CartLine, error)
	// FindAllByAccount loads all lines for an account with products preloaded
	FindAllByAccount(ctx context.Context, accountID uuid.UUID) ([]CartLine, error)
	Save(ctx context.Context, line *CartLine) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByAccount(ctx context.Context, accountID uuid.UUID) error
}
