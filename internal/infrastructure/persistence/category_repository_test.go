package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bulky/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCategoryRepository creates a GormCategoryRepository with a mocked SQL connection
func newMockCategoryRepository(t *testing.T) (*GormCategoryRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCategoryRepository(gormDB), mock, mockDB
}

func TestGormCategoryRepository_FindByID(t *testing.T) {
	t.Run("finds existing category", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "display_order"}).
			AddRow(categoryID, "Fiction", 1)

		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(categoryID, 1).
			WillReturnRows(rows)

		category, err := repo.FindByID(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.NotNil(t, category)
		assert.Equal(t, categoryID, category.ID)
		assert.Equal(t, "Fiction", category.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing category", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(categoryID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		category, err := repo.FindByID(context.Background(), categoryID)

		assert.Error(t, err)
		assert.Nil(t, category)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCategoryRepository_FindByName(t *testing.T) {
	t.Run("finds category by name", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "display_order"}).
			AddRow(categoryID, "History", 3)

		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE name = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("History", 1).
			WillReturnRows(rows)

		category, err := repo.FindByName(context.Background(), "History")

		assert.NoError(t, err)
		assert.NotNil(t, category)
		assert.Equal(t, "History", category.Name)
		assert.Equal(t, 3, category.DisplayOrder)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for unknown name", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE name = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("Nonexistent", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		category, err := repo.FindByName(context.Background(), "Nonexistent")

		assert.Nil(t, category)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCategoryRepository_FindAll(t *testing.T) {
	t.Run("returns categories in display order", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "display_order"}).
			AddRow(uuid.New(), "Fiction", 1).
			AddRow(uuid.New(), "Science", 2)

		mock.ExpectQuery(`SELECT \* FROM "categories" ORDER BY display_order ASC, name ASC`).
			WillReturnRows(rows)

		categories, err := repo.FindAll(context.Background())

		assert.NoError(t, err)
		assert.Len(t, categories, 2)
		assert.Equal(t, "Fiction", categories[0].Name)
		assert.Equal(t, "Science", categories[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCategoryRepository_Delete(t *testing.T) {
	t.Run("deletes existing category", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		mock.ExpectExec(`DELETE FROM "categories" WHERE id = \$1`).
			WithArgs(categoryID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), categoryID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		categoryID := uuid.New()

		mock.ExpectExec(`DELETE FROM "categories" WHERE id = \$1`).
			WithArgs(categoryID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), categoryID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
