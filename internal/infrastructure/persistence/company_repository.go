package persistence

import (
	"context"
	"errors"

	"github.com/bulky/backend/internal/domain/identity"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Company, error) {
	var company identity.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindAll returns companies matching the filter with pagination
func (r *GormCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*identity.Company], error) {
	query := r.db.WithContext(ctx).Model(&identity.Company{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, CompanySortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir, "ASC")

	var companies []*identity.Company
	if err := query.
		Order(orderBy + " " + orderDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&companies).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(companies, total, filter.Page, filter.Limit())
	return &result, nil
}

// Save persists a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *identity.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// Delete removes a company
func (r *GormCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Company{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ identity.CompanyRepository = (*GormCompanyRepository)(nil)
