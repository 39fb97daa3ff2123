package cart

import (
	"context"
	"testing"

	"github.com/bulky/backend/internal/domain/cart"
	"github.com/bulky/backend/internal/domain/catalog"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.CartLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartLine), args.Error(1)
}

func (m *MockCartRepository) FindByAccountAndProduct(ctx context.Context, accountID, productID uuid.UUID) (*cart.CartLine, error) {
	args := m.Called(ctx, accountID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartLine), args.Error(1)
}

func (m *MockCartRepository) FindAllByAccount(ctx context.Context, accountID uuid.UUID) ([]cart.CartLine, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.CartLine), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, line *cart.CartLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteAllByAccount(ctx context.Context, accountID uuid.UUID) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByISBN(ctx context.Context, isbn string) (*catalog.Product, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("TAPL", "Pierce", "978-0262162098", catalog.ProductPrices{
		ListPrice: decimal.NewFromInt(30),
		Price:     decimal.NewFromInt(25),
		Price50:   decimal.NewFromInt(22),
		Price100:  decimal.NewFromInt(20),
	}, uuid.New())
	require.NoError(t, err)
	return product
}

func TestCartServiceAdd(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	t.Run("creates a new line for a product not in the cart", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewService(cartRepo, productRepo)
		product := testProduct(t)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		cartRepo.On("FindByAccountAndProduct", ctx, accountID, product.ID).Return(nil, shared.ErrNotFound)
		cartRepo.On("Save", ctx, mock.AnythingOfType("*cart.CartLine")).Return(nil)
		cartRepo.On("FindAllByAccount", ctx, accountID).Return([]cart.CartLine{}, nil)

		_, err := service.Add(ctx, accountID, AddToCartRequest{ProductID: product.ID, Quantity: 3})
		require.NoError(t, err)

		cartRepo.AssertCalled(t, "Save", ctx, mock.MatchedBy(func(line *cart.CartLine) bool {
			return line.AccountID == accountID && line.ProductID == product.ID && line.Quantity == 3
		}))
	})

	t.Run("merges quantity into an existing line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewService(cartRepo, productRepo)
		product := testProduct(t)

		existing, err := cart.NewCartLine(accountID, product.ID, 40)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		cartRepo.On("FindByAccountAndProduct", ctx, accountID, product.ID).Return(existing, nil)
		cartRepo.On("Save", ctx, existing).Return(nil)
		cartRepo.On("FindAllByAccount", ctx, accountID).Return([]cart.CartLine{}, nil)

		_, err = service.Add(ctx, accountID, AddToCartRequest{ProductID: product.ID, Quantity: 20})
		require.NoError(t, err)
		assert.Equal(t, 60, existing.Quantity)
	})

	t.Run("fails for unknown product", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewService(cartRepo, productRepo)
		productID := uuid.New()

		productRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

		_, err := service.Add(ctx, accountID, AddToCartRequest{ProductID: productID, Quantity: 1})
		require.Error(t, err)
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCartServiceGet(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	t.Run("applies tier pricing per line and sums the total", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewService(cartRepo, productRepo)

		product := testProduct(t)
		line, err := cart.NewCartLine(accountID, product.ID, 60)
		require.NoError(t, err)
		line.Product = product

		cartRepo.On("FindAllByAccount", ctx, accountID).Return([]cart.CartLine{*line}, nil)

		resp, err := service.Get(ctx, accountID)
		require.NoError(t, err)
		require.Len(t, resp.Lines, 1)
		// 60 units at the 50-tier price of 22
		assert.True(t, resp.Lines[0].UnitPrice.Equal(decimal.NewFromInt(22)))
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(1320)))
	})

	t.Run("empty cart yields zero total", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewService(cartRepo, productRepo)

		cartRepo.On("FindAllByAccount", ctx, accountID).Return([]cart.CartLine{}, nil)

		resp, err := service.Get(ctx, accountID)
		require.NoError(t, err)
		assert.Empty(t, resp.Lines)
		assert.True(t, resp.Total.IsZero())
	})
}

func TestCartServiceDecrement(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	t.Run("decrements a line above one unit", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewService(cartRepo, productRepo)

		line, err := cart.NewCartLine(accountID, uuid.New(), 2)
		require.NoError(t, err)

		cartRepo.On("FindByID", ctx, line.ID).Return(line, nil)
		cartRepo.On("Save", ctx, line).Return(nil)
		cartRepo.On("FindAllByAccount", ctx, accountID).Return([]cart.CartLine{}, nil)

		_, err = service.Decrement(ctx, accountID, line.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, line.Quantity)
		cartRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("removes the line when decrementing at one unit", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewService(cartRepo, productRepo)

		line, err := cart.NewCartLine(accountID, uuid.New(), 1)
		require.NoError(t, err)

		cartRepo.On("FindByID", ctx, line.ID).Return(line, nil)
		cartRepo.On("Delete", ctx, line.ID).Return(nil)
		cartRepo.On("FindAllByAccount", ctx, accountID).Return([]cart.CartLine{}, nil)

		_, err = service.Decrement(ctx, accountID, line.ID)
		require.NoError(t, err)
		cartRepo.AssertCalled(t, "Delete", ctx, line.ID)
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("refuses lines owned by other accounts", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		service := NewService(cartRepo, productRepo)

		line, err := cart.NewCartLine(uuid.New(), uuid.New(), 2)
		require.NoError(t, err)

		cartRepo.On("FindByID", ctx, line.ID).Return(line, nil)

		_, err = service.Decrement(ctx, accountID, line.ID)
		require.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestCartServiceClear(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := NewService(cartRepo, productRepo)

	cartRepo.On("DeleteAllByAccount", ctx, accountID).Return(nil)
	require.NoError(t, service.Clear(ctx, accountID))
	cartRepo.AssertExpectations(t)
}
