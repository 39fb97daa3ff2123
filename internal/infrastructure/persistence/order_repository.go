package persistence

import (
	"context"
	"errors"

	"github.com/bulky/backend/internal/domain/cart"
	"github.com/bulky/backend/internal/domain/order"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements the order Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its lines by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindBySessionID finds an order by its payment session reference
func (r *GormOrderRepository) FindBySessionID(ctx context.Context, sessionID string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("session_id = ?", sessionID).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll returns orders matching the filter with pagination
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*order.Order], error) {
	return r.paginate(ctx, r.db.WithContext(ctx).Model(&order.Order{}), filter)
}

// FindAllByAccount returns an account's orders, newest first
func (r *GormOrderRepository) FindAllByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (*shared.Paginated[*order.Order], error) {
	query := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("account_id = ?", accountID)
	return r.paginate(ctx, query, filter)
}

// SaveCheckout persists a new order with its lines and clears the account's
// cart in a single transaction
func (r *GormOrderRepository) SaveCheckout(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		return tx.Delete(&cart.CartLine{}, "account_id = ?", o.AccountID).Error
	})
}

// Save persists changes to an existing order. Order lines are immutable
// after checkout and are not written back.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Omit("Lines").Save(o).Error
}

// CountByStatus returns the number of orders in the given status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status order.OrderStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) paginate(ctx context.Context, query *gorm.DB, filter shared.Filter) (*shared.Paginated[*order.Order], error) {
	query = applyOrderFilters(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "order_date")
	orderDir := ValidateSortOrder(filter.OrderDir, "DESC")

	var orders []*order.Order
	if err := query.
		Preload("Lines").
		Order(orderBy + " " + orderDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(orders, total, filter.Page, filter.Limit())
	return &result, nil
}

func applyOrderFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		}
	}
	return query
}

// Ensure GormOrderRepository implements the order Repository
var _ order.Repository = (*GormOrderRepository)(nil)
