package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortField(t *testing.T) {
	t.Run("accepts whitelisted columns", func(t *testing.T) {
		assert.Equal(t, "total", ValidateSortField("total", OrderSortFields, "order_date"))
		assert.Equal(t, "email", ValidateSortField(" email ", AccountSortFields, "created_at"))
	})

	t.Run("falls back on unknown columns", func(t *testing.T) {
		assert.Equal(t, "order_date", ValidateSortField("nonexistent", OrderSortFields, "order_date"))
		assert.Equal(t, "created_at", ValidateSortField("", AccountSortFields, "created_at"))
	})

	t.Run("rejects injection attempts", func(t *testing.T) {
		assert.Equal(t, "order_date", ValidateSortField("total; DROP TABLE orders", OrderSortFields, "order_date"))
		assert.Equal(t, "name", ValidateSortField("name) --", CompanySortFields, "name"))
		assert.Equal(t, "created_at", ValidateSortField("(SELECT password_hash FROM accounts)", ProductSortFields, "created_at"))
	})
}

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc", "DESC"))
	assert.Equal(t, "DESC", ValidateSortOrder("DESC", "ASC"))
	assert.Equal(t, "DESC", ValidateSortOrder("", "DESC"))
	assert.Equal(t, "ASC", ValidateSortOrder("sideways; --", "ASC"))
}
