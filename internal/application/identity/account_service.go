package identity

import (
	"context"

	"github.com/bulky/backend/internal/domain/identity"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountService handles account profile and administration operations
type AccountService struct {
	accountRepo identity.AccountRepository
	companyRepo identity.CompanyRepository
	logger      *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo identity.AccountRepository, companyRepo identity.CompanyRepository, logger *zap.Logger) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// GetProfile returns the requester's own account
func (s *AccountService) GetProfile(ctx context.Context, requester identity.RequesterContext) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, requester.AccountID)
	if err != nil {
		return nil, err
	}
	resp := ToAccountResponse(account)
	return &resp, nil
}

// UpdateProfile updates the requester's own profile
func (s *AccountService) UpdateProfile(ctx context.Context, requester identity.RequesterContext, req UpdateProfileRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, requester.AccountID)
	if err != nil {
		return nil, err
	}

	if err := account.UpdateProfile(req.Name, req.PhoneNumber, req.StreetAddress, req.City, req.State, req.PostalCode); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	resp := ToAccountResponse(account)
	return &resp, nil
}

// ChangePassword changes the requester's own password
func (s *AccountService) ChangePassword(ctx context.Context, requester identity.RequesterContext, req ChangePasswordRequest) error {
	account, err := s.accountRepo.FindByID(ctx, requester.AccountID)
	if err != nil {
		return err
	}

	if err := account.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return s.accountRepo.Save(ctx, account)
}

// List returns accounts matching the filter. Admin only.
func (s *AccountService) List(ctx context.Context, requester identity.RequesterContext, filter AccountListFilter) (*AccountListResponse, error) {
	if !requester.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}

	page, err := s.accountRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]AccountResponse, 0, len(page.Items))
	for _, account := range page.Items {
		items = append(items, ToAccountResponse(account))
	}

	return &AccountListResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// GetByID returns an account by ID. Admin only.
func (s *AccountService) GetByID(ctx context.Context, requester identity.RequesterContext, id uuid.UUID) (*AccountResponse, error) {
	if !requester.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAccountResponse(account)
	return &resp, nil
}

// ChangeRole switches an account's role. Admin only. Switching to the
// company role requires naming the company.
func (s *AccountService) ChangeRole(ctx context.Context, requester identity.RequesterContext, id uuid.UUID, req ChangeRoleRequest) (*AccountResponse, error) {
	if !requester.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role := identity.Role(req.Role)
	if err := account.ChangeRole(role); err != nil {
		return nil, err
	}
	if role == identity.RoleCompany {
		if req.CompanyID == nil {
			return nil, shared.NewDomainError("INVALID_COMPANY_ID", "Company accounts must name their company")
		}
		if _, err := s.companyRepo.FindByID(ctx, *req.CompanyID); err != nil {
			return nil, err
		}
		if err := account.AssignCompany(*req.CompanyID); err != nil {
			return nil, err
		}
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account role changed",
		zap.String("account_id", id.String()),
		zap.String("role", req.Role))

	resp := ToAccountResponse(account)
	return &resp, nil
}

// Unlock clears an account lockout. Admin only.
func (s *AccountService) Unlock(ctx context.Context, requester identity.RequesterContext, id uuid.UUID) error {
	if !requester.IsAdmin() {
		return shared.ErrForbidden
	}

	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	account.Unlock()
	return s.accountRepo.Save(ctx, account)
}
