package persistence

import (
	"context"

	appbilling "github.com/gestion/backend/internal/application/billing"
	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/inventory"
	"github.com/gestion/backend/internal/domain/receivable"
	"gorm.io/gorm"
)

// GormBillingTransactionScope implements the billing transaction scope on
// GORM transactions. The issue flow locks the sequence row inside it.
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. An error from fn rolls
// the transaction back.
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBillingRepositories{tx: tx})
	})
}

type gormBillingRepositories struct {
	tx *gorm.DB
}

// Invoices returns the invoice repository bound to the transaction
func (r *gormBillingRepositories) Invoices() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// Sequences returns the document sequence repository bound to the transaction
func (r *gormBillingRepositories) Sequences() billing.DocumentSequenceRepository {
	return NewGormDocumentSequenceRepository(r.tx)
}

// Documents returns the receivable document repository bound to the transaction
func (r *gormBillingRepositories) Documents() receivable.DocumentRepository {
	return NewGormDocumentRepository(r.tx)
}

// StockItems returns the stock item repository bound to the transaction
func (r *gormBillingRepositories) StockItems() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// Movements returns the stock movement repository bound to the transaction
func (r *gormBillingRepositories) Movements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var _ appbilling.TransactionScope = (*GormBillingTransactionScope)(nil)
var _ appbilling.TransactionalRepositories = (*gormBillingRepositories)(nil)
