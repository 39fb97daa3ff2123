package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrices() ProductPrices {
	return ProductPrices{
		ListPrice: decimal.NewFromInt(30),
		Price:     decimal.NewFromInt(25),
		Price50:   decimal.NewFromInt(22),
		Price100:  decimal.NewFromInt(20),
	}
}

func TestNewProduct(t *testing.T) {
	categoryID := uuid.New()

	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("The Go Programming Language", "Donovan & Kernighan", "978-0134190440", testPrices(), categoryID)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "The Go Programming Language", product.Title)
		assert.Equal(t, "Donovan & Kernighan", product.Author)
		assert.Equal(t, "978-0134190440", product.ISBN)
		assert.Equal(t, categoryID, product.CategoryID)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(25)))
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
		assert.False(t, product.HasImage())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		product, err := NewProduct("  Title  ", " Author ", " 978-1 ", testPrices(), categoryID)
		require.NoError(t, err)
		assert.Equal(t, "Title", product.Title)
		assert.Equal(t, "Author", product.Author)
		assert.Equal(t, "978-1", product.ISBN)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewProduct("", "Author", "978-1", testPrices(), categoryID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Title cannot be empty")
	})

	t.Run("fails with empty author", func(t *testing.T) {
		_, err := NewProduct("Title", "", "978-1", testPrices(), categoryID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Author cannot be empty")
	})

	t.Run("fails with empty ISBN", func(t *testing.T) {
		_, err := NewProduct("Title", "Author", "", testPrices(), categoryID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ISBN cannot be empty")
	})

	t.Run("fails with nil category", func(t *testing.T) {
		_, err := NewProduct("Title", "Author", "978-1", testPrices(), uuid.Nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Category ID cannot be empty")
	})

	t.Run("fails with zero price", func(t *testing.T) {
		prices := testPrices()
		prices.Price50 = decimal.Zero
		_, err := NewProduct("Title", "Author", "978-1", prices, categoryID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Price must be positive")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		prices := testPrices()
		prices.Price100 = decimal.NewFromInt(-5)
		_, err := NewProduct("Title", "Author", "978-1", prices, categoryID)
		require.Error(t, err)
	})
}

func TestProductUnitPriceFor(t *testing.T) {
	product, err := NewProduct("Title", "Author", "978-1", testPrices(), uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name     string
		quantity int
		want     decimal.Decimal
	}{
		{"single unit", 1, decimal.NewFromInt(25)},
		{"just below first tier", 49, decimal.NewFromInt(25)},
		{"first tier threshold inclusive", 50, decimal.NewFromInt(22)},
		{"within first tier", 99, decimal.NewFromInt(22)},
		{"second tier threshold inclusive", 100, decimal.NewFromInt(20)},
		{"far above second tier", 5000, decimal.NewFromInt(20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := product.UnitPriceFor(tt.quantity)
			assert.True(t, got.Equal(tt.want), "want %s, got %s", tt.want, got)
		})
	}
}

func TestProductUnitPriceMonotonic(t *testing.T) {
	// With descending tier prices the resolved unit price never increases
	// as quantity grows.
	product, err := NewProduct("Title", "Author", "978-1", testPrices(), uuid.New())
	require.NoError(t, err)

	prev := product.UnitPriceFor(1)
	for q := 2; q <= 250; q++ {
		current := product.UnitPriceFor(q)
		assert.True(t, current.LessThanOrEqual(prev), "price increased at quantity %d", q)
		prev = current
	}
}

func TestProductUpdate(t *testing.T) {
	categoryID := uuid.New()
	product, err := NewProduct("Title", "Author", "978-1", testPrices(), categoryID)
	require.NoError(t, err)

	t.Run("updates fields and bumps version", func(t *testing.T) {
		newCategory := uuid.New()
		prices := testPrices()
		prices.Price = decimal.NewFromInt(27)

		err := product.Update("New Title", "desc", "New Author", "978-2", prices, newCategory)
		require.NoError(t, err)

		assert.Equal(t, "New Title", product.Title)
		assert.Equal(t, "desc", product.Description)
		assert.Equal(t, "New Author", product.Author)
		assert.Equal(t, "978-2", product.ISBN)
		assert.Equal(t, newCategory, product.CategoryID)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(27)))
		assert.Equal(t, 2, product.GetVersion())
	})

	t.Run("rejects invalid update and leaves state unchanged", func(t *testing.T) {
		before := *product
		err := product.Update("", "desc", "Author", "978-2", testPrices(), categoryID)
		require.Error(t, err)
		assert.Equal(t, before.Title, product.Title)
		assert.Equal(t, before.GetVersion(), product.GetVersion())
	})
}

func TestProductImage(t *testing.T) {
	product, err := NewProduct("Title", "Author", "978-1", testPrices(), uuid.New())
	require.NoError(t, err)

	product.SetImageKey("products/abc.png")
	assert.True(t, product.HasImage())
	assert.Equal(t, "products/abc.png", product.ImageKey)

	product.RemoveImage()
	assert.False(t, product.HasImage())
}
