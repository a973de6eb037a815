package billing

import (
	"context"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/inventory"
	"github.com/gestion/backend/internal/domain/receivable"
)

// TransactionScope runs the invoice issue and cancel flows atomically.
// Issuing touches the sequence row, the invoice, the kardex and the
// receivables ledger; a failure in any of them must roll everything back,
// or the gapless numbering guarantee is lost.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories the billing flows
// touch, all bound to one transaction.
type TransactionalRepositories interface {
	Invoices() billing.InvoiceRepository
	Sequences() billing.DocumentSequenceRepository
	Documents() receivable.DocumentRepository
	StockItems() inventory.StockItemRepository
	Movements() inventory.StockMovementRepository
}

// NoOpTransactionScope runs the function against plain repositories with
// no transaction. Used in tests.
type NoOpTransactionScope struct {
	invoiceRepo   billing.InvoiceRepository
	sequenceRepo  billing.DocumentSequenceRepository
	documentRepo  receivable.DocumentRepository
	stockItemRepo inventory.StockItemRepository
	movementRepo  inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	invoiceRepo billing.InvoiceRepository,
	sequenceRepo billing.DocumentSequenceRepository,
	documentRepo receivable.DocumentRepository,
	stockItemRepo inventory.StockItemRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo:   invoiceRepo,
		sequenceRepo:  sequenceRepo,
		documentRepo:  documentRepo,
		stockItemRepo: stockItemRepo,
		movementRepo:  movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Invoices returns the invoice repository
func (s *NoOpTransactionScope) Invoices() billing.InvoiceRepository { return s.invoiceRepo }

// Sequences returns the document sequence repository
func (s *NoOpTransactionScope) Sequences() billing.DocumentSequenceRepository {
	return s.sequenceRepo
}

// Documents returns the receivable document repository
func (s *NoOpTransactionScope) Documents() receivable.DocumentRepository { return s.documentRepo }

// StockItems returns the stock item repository
func (s *NoOpTransactionScope) StockItems() inventory.StockItemRepository { return s.stockItemRepo }

// Movements returns the stock movement repository
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
