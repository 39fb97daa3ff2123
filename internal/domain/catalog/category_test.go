package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates category with valid inputs", func(t *testing.T) {
		category, err := NewCategory("Fiction", 1)
		require.NoError(t, err)
		assert.Equal(t, "Fiction", category.Name)
		assert.Equal(t, 1, category.DisplayOrder)
		assert.NotEmpty(t, category.ID)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewCategory(strings.Repeat("x", 31), 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 30 characters")
	})

	t.Run("fails with display order out of range", func(t *testing.T) {
		_, err := NewCategory("Fiction", 0)
		require.Error(t, err)

		_, err = NewCategory("Fiction", 101)
		require.Error(t, err)
	})
}

func TestCategoryUpdate(t *testing.T) {
	category, err := NewCategory("Fiction", 1)
	require.NoError(t, err)

	err = category.Update("Science", 2)
	require.NoError(t, err)
	assert.Equal(t, "Science", category.Name)
	assert.Equal(t, 2, category.DisplayOrder)
	assert.Equal(t, 2, category.GetVersion())

	err = category.Update("", 2)
	require.Error(t, err)
	assert.Equal(t, "Science", category.Name)
}
