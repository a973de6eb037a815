package restaurant

import (
	"context"
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ZoneRepository defines persistence operations for zones
type ZoneRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Zone, error)
	FindByCode(ctx context.Context, code string) (*Zone, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Zone, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	CountTables(ctx context.Context, zoneID uuid.UUID) (int64, error)
	Save(ctx context.Context, zone *Zone) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TableRepository defines persistence operations for tables
type TableRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Table, error)
	FindByCode(ctx context.Context, code string) (*Table, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Table, error)
	FindByZone(ctx context.Context, zoneID uuid.UUID) ([]Table, error)
	FindByStatus(ctx context.Context, status TableStatus) ([]Table, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, table *Table) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReservationFilter narrows reservation queries
type ReservationFilter struct {
	shared.Filter
	TableID *uuid.UUID
	Status  *ReservationStatus
	From    *time.Time
	To      *time.Time
}

// ReservationRepository defines persistence operations for reservations
type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	FindAll(ctx context.Context, filter ReservationFilter) ([]Reservation, error)
	Count(ctx context.Context, filter ReservationFilter) (int64, error)
	FindOpenByTable(ctx context.Context, tableID uuid.UUID, around time.Time, window time.Duration) ([]Reservation, error)
	Save(ctx context.Context, reservation *Reservation) error
}

// OrderFilter narrows order queries
type OrderFilter struct {
	shared.Filter
	TableID  *uuid.UUID
	WaiterID *uuid.UUID
	Status   *OrderStatus
	From     *time.Time
	To       *time.Time
}

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]Order, error)
	Count(ctx context.Context, filter OrderFilter) (int64, error)
	FindOpenByTable(ctx context.Context, tableID uuid.UUID) (*Order, error)
	Save(ctx context.Context, order *Order) error
}
