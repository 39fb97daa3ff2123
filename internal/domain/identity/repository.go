package identity

import (
	"context"

	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountRepository defines the account repository interface
type AccountRepository interface {
	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByEmail finds an account by its normalized email
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// ExistsByEmail checks whether an account with the email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindAll returns accounts matching the filter with pagination
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Account], error)

	// Save persists an account
	Save(ctx context.Context, account *Account) error

	// Delete removes an account
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyRepository defines the company repository interface
type CompanyRepository interface {
	// FindByID finds a company by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindAll returns companies matching the filter with pagination
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Company], error)

	// Save persists a company
	Save(ctx context.Context, company *Company) error

	// Delete removes a company
	Delete(ctx context.Context, id uuid.UUID) error
}
