package persistence

import (
	"context"

	apprestaurant "github.com/gestion/backend/internal/application/restaurant"
	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/restaurant"
	"gorm.io/gorm"
)

// GormRestaurantTransactionScope implements the restaurant transaction
// scope on GORM transactions. Opening an order allocates its number and
// occupies the table inside it.
type GormRestaurantTransactionScope struct {
	db *gorm.DB
}

// NewGormRestaurantTransactionScope creates a new GormRestaurantTransactionScope
func NewGormRestaurantTransactionScope(db *gorm.DB) *GormRestaurantTransactionScope {
	return &GormRestaurantTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. An error from fn rolls
// the transaction back.
func (s *GormRestaurantTransactionScope) Execute(ctx context.Context, fn func(repos apprestaurant.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRestaurantRepositories{tx: tx})
	})
}

type gormRestaurantRepositories struct {
	tx *gorm.DB
}

// Orders returns the order repository bound to the transaction
func (r *gormRestaurantRepositories) Orders() restaurant.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Tables returns the table repository bound to the transaction
func (r *gormRestaurantRepositories) Tables() restaurant.TableRepository {
	return NewGormTableRepository(r.tx)
}

// Reservations returns the reservation repository bound to the transaction
func (r *gormRestaurantRepositories) Reservations() restaurant.ReservationRepository {
	return NewGormReservationRepository(r.tx)
}

// Sequences returns the document sequence repository bound to the transaction
func (r *gormRestaurantRepositories) Sequences() billing.DocumentSequenceRepository {
	return NewGormDocumentSequenceRepository(r.tx)
}

var _ apprestaurant.TransactionScope = (*GormRestaurantTransactionScope)(nil)
var _ apprestaurant.TransactionalRepositories = (*gormRestaurantRepositories)(nil)
