package identity

import (
	"context"

	"github.com/bulky/backend/internal/domain/identity"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyService handles company management. Staff only.
type CompanyService struct {
	companyRepo identity.CompanyRepository
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo identity.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// List returns companies with pagination
func (s *CompanyService) List(ctx context.Context, requester identity.RequesterContext, page, pageSize int) (*CompanyListResponse, error) {
	if !requester.IsStaff() {
		return nil, shared.ErrForbidden
	}

	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	result, err := s.companyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CompanyResponse, 0, len(result.Items))
	for _, company := range result.Items {
		items = append(items, ToCompanyResponse(company))
	}

	return &CompanyListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// GetByID retrieves a company by ID
func (s *CompanyService) GetByID(ctx context.Context, requester identity.RequesterContext, id uuid.UUID) (*CompanyResponse, error) {
	if !requester.IsStaff() {
		return nil, shared.ErrForbidden
	}

	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(company)
	return &resp, nil
}

// Create creates a new company. Admin only.
func (s *CompanyService) Create(ctx context.Context, requester identity.RequesterContext, req CreateCompanyRequest) (*CompanyResponse, error) {
	if !requester.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	company, err := identity.NewCompany(req.Name, req.PhoneNumber, req.StreetAddress, req.City, req.State, req.PostalCode)
	if err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	resp := ToCompanyResponse(company)
	return &resp, nil
}

// Update updates a company. Admin only.
func (s *CompanyService) Update(ctx context.Context, requester identity.RequesterContext, id uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, error) {
	if !requester.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := company.Update(req.Name, req.PhoneNumber, req.StreetAddress, req.City, req.State, req.PostalCode); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	resp := ToCompanyResponse(company)
	return &resp, nil
}

// Delete removes a company. Admin only.
func (s *CompanyService) Delete(ctx context.Context, requester identity.RequesterContext, id uuid.UUID) error {
	if !requester.IsAdmin() {
		return shared.ErrForbidden
	}

	if _, err := s.companyRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.companyRepo.Delete(ctx, id)
}
