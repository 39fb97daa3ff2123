package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bulky/backend/internal/domain/identity"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by ID with the company preloaded
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	var account identity.Account
	if err := r.db.WithContext(ctx).
		Preload("Company").
		First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByEmail finds an account by its normalized email
func (r *GormAccountRepository) FindByEmail(ctx context.Context, email string) (*identity.Account, error) {
	var account identity.Account
	if err := r.db.WithContext(ctx).
		Preload("Company").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// ExistsByEmail checks whether an account with the email exists
func (r *GormAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Account{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll returns accounts matching the filter with pagination
func (r *GormAccountRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*identity.Account], error) {
	query := r.db.WithContext(ctx).Model(&identity.Account{})

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("email ILIKE ? OR name ILIKE ?", searchPattern, searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "role":
			query = query.Where("role = ?", value)
		case "company_id":
			query = query.Where("company_id = ?", value)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, AccountSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir, "DESC")

	var accounts []*identity.Account
	if err := query.
		Preload("Company").
		Order(orderBy + " " + orderDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&accounts).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(accounts, total, filter.Page, filter.Limit())
	return &result, nil
}

// Save persists an account
func (r *GormAccountRepository) Save(ctx context.Context, account *identity.Account) error {
	return r.db.WithContext(ctx).Omit("Company").Save(account).Error
}

// Delete removes an account
func (r *GormAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Account{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAccountRepository implements AccountRepository
var _ identity.AccountRepository = (*GormAccountRepository)(nil)
