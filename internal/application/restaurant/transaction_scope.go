package restaurant

import (
	"context"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/restaurant"
)

// TransactionScope runs floor mutations atomically: opening an order
// allocates its number, persists the order and occupies the table in one
// transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories the order flow
// touches, bound to one transaction.
type TransactionalRepositories interface {
	Orders() restaurant.OrderRepository
	Tables() restaurant.TableRepository
	Reservations() restaurant.ReservationRepository
	Sequences() billing.DocumentSequenceRepository
}

// NoOpTransactionScope runs the function against plain repositories with
// no transaction. Used in tests.
type NoOpTransactionScope struct {
	orderRepo       restaurant.OrderRepository
	tableRepo       restaurant.TableRepository
	reservationRepo restaurant.ReservationRepository
	sequenceRepo    billing.DocumentSequenceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	orderRepo restaurant.OrderRepository,
	tableRepo restaurant.TableRepository,
	reservationRepo restaurant.ReservationRepository,
	sequenceRepo billing.DocumentSequenceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:       orderRepo,
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
		sequenceRepo:    sequenceRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() restaurant.OrderRepository { return s.orderRepo }

// Tables returns the table repository
func (s *NoOpTransactionScope) Tables() restaurant.TableRepository { return s.tableRepo }

// Reservations returns the reservation repository
func (s *NoOpTransactionScope) Reservations() restaurant.ReservationRepository {
	return s.reservationRepo
}

// Sequences returns the document sequence repository
func (s *NoOpTransactionScope) Sequences() billing.DocumentSequenceRepository {
	return s.sequenceRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
