package persistence

import (
	"context"
	"errors"

	"github.com/bulky/backend/internal/domain/cart"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartRepository implements the cart Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart line by its ID with the product preloaded
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.CartLine, error) {
	var line cart.CartLine
	if err := r.db.WithContext(ctx).
		Preload("Product").
		First(&line, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// FindByAccountAndProduct finds the account's cart line for a product
func (r *GormCartRepository) FindByAccountAndProduct(ctx context.Context, accountID, productID uuid.UUID) (*cart.CartLine, error) {
	var line cart.CartLine
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// FindAllByAccount loads all cart lines for an account with products preloaded
func (r *GormCartRepository) FindAllByAccount(ctx context.Context, accountID uuid.UUID) ([]cart.CartLine, error) {
	var lines []cart.CartLine
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category").
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// Save creates or updates a cart line
func (r *GormCartRepository) Save(ctx context.Context, line *cart.CartLine) error {
	return r.db.WithContext(ctx).Omit("Product").Save(line).Error
}

// Delete removes a cart line
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&cart.CartLine{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteAllByAccount removes every cart line belonging to an account
func (r *GormCartRepository) DeleteAllByAccount(ctx context.Context, accountID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&cart.CartLine{}, "account_id = ?", accountID).Error
}

// Ensure GormCartRepository implements the cart Repository
var _ cart.Repository = (*GormCartRepository)(nil)
