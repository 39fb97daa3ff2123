package order

import (
	"context"

	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the order repository interface
type Repository interface {
	// FindByID finds an order with its lines by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindBySessionID finds an order by its payment session reference
	FindBySessionID(ctx context.Context, sessionID string) (*Order, error)

	// FindAll returns orders matching the filter with pagination
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Order], error)

	// FindAllByAccount returns an account's orders, newest first
	FindAllByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Order], error)

	// SaveCheckout persists a new order with its lines and clears the
	// account's cart in a single transaction
	SaveCheckout(ctx context.Context, order *Order) error

	// Save persists changes to an existing order
	Save(ctx context.Context, order *Order) error

	// CountByStatus returns the number of orders in the given status
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)
}
