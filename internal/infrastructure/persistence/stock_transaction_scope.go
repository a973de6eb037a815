package persistence

import (
	"context"

	appinv "github.com/gestion/backend/internal/application/inventory"
	"github.com/gestion/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormStockTransactionScope implements the inventory transaction scope on
// GORM transactions.
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a new GormStockTransactionScope
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. An error from fn rolls
// the transaction back.
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStockRepositories{tx: tx})
	})
}

type gormStockRepositories struct {
	tx *gorm.DB
}

// StockItems returns the stock item repository bound to the transaction
func (r *gormStockRepositories) StockItems() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// Movements returns the stock movement repository bound to the transaction
func (r *gormStockRepositories) Movements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var _ appinv.TransactionScope = (*GormStockTransactionScope)(nil)
var _ appinv.TransactionalRepositories = (*gormStockRepositories)(nil)
