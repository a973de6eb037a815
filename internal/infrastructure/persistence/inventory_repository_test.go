package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gestion/backend/internal/domain/inventory"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newMockStockItemRepository(t *testing.T) (*GormStockItemRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormStockItemRepository(gormDB), mock, mockDB
}

func TestGormStockItemRepository_FindByArticleAndWarehouse(t *testing.T) {
	t.Run("locks the stock row", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		stockID := uuid.New()
		articleID := uuid.New()
		warehouseID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "article_id", "warehouse_id", "on_hand", "reserved", "average_cost"}).
			AddRow(stockID, 1, articleID, warehouseID, decimal.NewFromInt(25), decimal.Zero, decimal.NewFromFloat(12.5))

		mock.ExpectQuery(`SELECT \* FROM "stock_items" WHERE article_id = \$1 AND warehouse_id = \$2 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(articleID, warehouseID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByArticleAndWarehouse(context.Background(), articleID, warehouseID)

		assert.NoError(t, err)
		assert.NotNil(t, item)
		assert.Equal(t, articleID, item.ArticleID)
		assert.True(t, item.OnHand.Equal(decimal.NewFromInt(25)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error when no stock record exists", func(t *testing.T) {
		repo, mock, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		articleID := uuid.New()
		warehouseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_items" WHERE article_id = \$1 AND warehouse_id = \$2 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(articleID, warehouseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByArticleAndWarehouse(context.Background(), articleID, warehouseID)

		assert.Error(t, err)
		assert.Nil(t, item)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func newMockStockMovementRepository(t *testing.T) (*GormStockMovementRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormStockMovementRepository(gormDB), mock, mockDB
}

func TestGormStockMovementRepository_Count(t *testing.T) {
	t.Run("counts movements for an article", func(t *testing.T) {
		repo, mock, mockDB := newMockStockMovementRepository(t)
		defer mockDB.Close()

		articleID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "stock_movements" WHERE article_id = \$1`).
			WithArgs(articleID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(14))

		count, err := repo.Count(context.Background(), inventory.MovementFilter{ArticleID: &articleID})

		assert.NoError(t, err)
		assert.Equal(t, int64(14), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockItemRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements StockItemRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockStockItemRepository(t)
		defer mockDB.Close()

		var _ inventory.StockItemRepository = repo
	})
}
