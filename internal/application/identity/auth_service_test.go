package identity

import (
	"context"
	"testing"
	"time"

	"github.com/bulky/backend/internal/domain/identity"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/bulky/backend/internal/infrastructure/auth"
	"github.com/bulky/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockAccountRepository is a mock implementation of identity.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*identity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*identity.Account], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*identity.Account]), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *identity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCompanyRepository is a mock implementation of identity.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*identity.Company], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*identity.Company]), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *identity.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newAuthService(accountRepo *MockAccountRepository, companyRepo *MockCompanyRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "bulky-test",
		MaxRefreshCount:        3,
	})
	return NewAuthService(accountRepo, companyRepo, jwtService, auth.NewInMemoryTokenBlacklist(), config.AuthConfig{
		MaxLoginAttempts: 3,
		LockDuration:     15 * time.Minute,
	}, zap.NewNop())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a customer and signs them in", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		companyRepo := new(MockCompanyRepository)
		service := newAuthService(accountRepo, companyRepo)

		accountRepo.On("ExistsByEmail", ctx, "buyer@example.com").Return(false, nil)
		accountRepo.On("Save", ctx, mock.AnythingOfType("*identity.Account")).Return(nil)

		result, err := service.Register(ctx, RegisterRequest{
			Email:    "buyer@example.com",
			Password: "correct-horse",
			Name:     "Jo Buyer",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "CUSTOMER", result.Account.Role)
		assert.Equal(t, "buyer@example.com", result.Account.Email)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		companyRepo := new(MockCompanyRepository)
		service := newAuthService(accountRepo, companyRepo)

		accountRepo.On("ExistsByEmail", ctx, "buyer@example.com").Return(true, nil)

		_, err := service.Register(ctx, RegisterRequest{
			Email:    "buyer@example.com",
			Password: "correct-horse",
			Name:     "Jo Buyer",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("rejects staff self-registration", func(t *testing.T) {
		service := newAuthService(new(MockAccountRepository), new(MockCompanyRepository))

		_, err := service.Register(ctx, RegisterRequest{
			Email:    "boss@example.com",
			Password: "correct-horse",
			Name:     "Boss",
			Role:     "ADMIN",
		})
		require.Error(t, err)
	})

	t.Run("company registration links a real company", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		companyRepo := new(MockCompanyRepository)
		service := newAuthService(accountRepo, companyRepo)

		company, err := identity.NewCompany("Acme Books", "", "", "", "", "")
		require.NoError(t, err)

		accountRepo.On("ExistsByEmail", ctx, "corp@acme.com").Return(false, nil)
		companyRepo.On("FindByID", ctx, company.ID).Return(company, nil)
		accountRepo.On("Save", ctx, mock.AnythingOfType("*identity.Account")).Return(nil)

		result, err := service.Register(ctx, RegisterRequest{
			Email:     "corp@acme.com",
			Password:  "correct-horse",
			Name:      "Jo Corporate",
			Role:      "COMPANY",
			CompanyID: &company.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "COMPANY", result.Account.Role)
		require.NotNil(t, result.Account.CompanyID)
		assert.Equal(t, company.ID, *result.Account.CompanyID)
	})

	t.Run("company registration without company id fails", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		service := newAuthService(accountRepo, new(MockCompanyRepository))

		accountRepo.On("ExistsByEmail", ctx, "corp@acme.com").Return(false, nil)

		_, err := service.Register(ctx, RegisterRequest{
			Email:    "corp@acme.com",
			Password: "correct-horse",
			Name:     "Jo Corporate",
			Role:     "COMPANY",
		})
		require.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	makeAccount := func(t *testing.T) *identity.Account {
		account, err := identity.NewAccount("buyer@example.com", "correct-horse", "Jo", identity.RoleCustomer)
		require.NoError(t, err)
		return account
	}

	t.Run("valid credentials return tokens", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		service := newAuthService(accountRepo, new(MockCompanyRepository))
		account := makeAccount(t)

		accountRepo.On("FindByEmail", ctx, "buyer@example.com").Return(account, nil)
		accountRepo.On("Save", ctx, account).Return(nil)

		result, err := service.Login(ctx, LoginRequest{Email: "buyer@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		require.NotNil(t, account.LastLoginAt)
	})

	t.Run("wrong password is rejected without leaking account state", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		service := newAuthService(accountRepo, new(MockCompanyRepository))
		account := makeAccount(t)

		accountRepo.On("FindByEmail", ctx, "buyer@example.com").Return(account, nil)
		accountRepo.On("Save", ctx, account).Return(nil)

		_, err := service.Login(ctx, LoginRequest{Email: "buyer@example.com", Password: "wrong"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("unknown email yields the same error as a bad password", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		service := newAuthService(accountRepo, new(MockCompanyRepository))

		accountRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := service.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "whatever"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("repeated failures lock the account", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		service := newAuthService(accountRepo, new(MockCompanyRepository))
		account := makeAccount(t)

		accountRepo.On("FindByEmail", ctx, "buyer@example.com").Return(account, nil)
		accountRepo.On("Save", ctx, account).Return(nil)

		badLogin := LoginRequest{Email: "buyer@example.com", Password: "wrong"}
		_, _ = service.Login(ctx, badLogin)
		_, _ = service.Login(ctx, badLogin)
		_, err := service.Login(ctx, badLogin)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "locked")
		assert.True(t, account.IsLocked())

		// Even the right password is refused while locked
		_, err = service.Login(ctx, LoginRequest{Email: "buyer@example.com", Password: "correct-horse"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "locked")
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("exchanges a refresh token for a new pair", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		service := newAuthService(accountRepo, new(MockCompanyRepository))

		account, err := identity.NewAccount("buyer@example.com", "correct-horse", "Jo", identity.RoleCustomer)
		require.NoError(t, err)

		accountRepo.On("FindByEmail", ctx, "buyer@example.com").Return(account, nil)
		accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
		accountRepo.On("Save", ctx, account).Return(nil)

		login, err := service.Login(ctx, LoginRequest{Email: "buyer@example.com", Password: "correct-horse"})
		require.NoError(t, err)

		refreshed, err := service.Refresh(ctx, RefreshTokenRequest{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		service := newAuthService(new(MockAccountRepository), new(MockCompanyRepository))

		_, err := service.Refresh(ctx, RefreshTokenRequest{RefreshToken: "nope"})
		require.Error(t, err)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(MockAccountRepository)
	service := newAuthService(accountRepo, new(MockCompanyRepository))

	account, err := identity.NewAccount("buyer@example.com", "correct-horse", "Jo", identity.RoleCustomer)
	require.NoError(t, err)

	accountRepo.On("FindByEmail", ctx, "buyer@example.com").Return(account, nil)
	accountRepo.On("Save", ctx, account).Return(nil)

	login, err := service.Login(ctx, LoginRequest{Email: "buyer@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, login.AccessToken))

	// Revoked token shows up in the blacklist
	claims, err := service.jwtService.ValidateAccessToken(login.AccessToken)
	require.NoError(t, err)
	revoked, err := service.blacklist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}
