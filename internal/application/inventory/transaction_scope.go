package inventory

import (
	"context"

	"github.com/gestion/backend/internal/domain/inventory"
)

// TransactionScope runs stock mutations atomically. A posting touches the
// stock item row and appends a kardex line; both must commit or neither.
type TransactionScope interface {
	// Execute runs fn inside a database transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the inventory repositories scoped to
// one transaction. The stock item row is locked on read, so two concurrent
// postings against the same article/warehouse pair serialize here.
type TransactionalRepositories interface {
	StockItems() inventory.StockItemRepository
	Movements() inventory.StockMovementRepository
}

// NoOpTransactionScope runs the function against plain repositories with
// no transaction. Used in tests.
type NoOpTransactionScope struct {
	stockItemRepo inventory.StockItemRepository
	movementRepo  inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	stockItemRepo inventory.StockItemRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockItemRepo: stockItemRepo,
		movementRepo:  movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockItems returns the stock item repository
func (s *NoOpTransactionScope) StockItems() inventory.StockItemRepository {
	return s.stockItemRepo
}

// Movements returns the stock movement repository
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
