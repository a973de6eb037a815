package restaurant

import (
	"strings"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Zone groups tables by area (salón, terraza, barra)
type Zone struct {
	shared.AuditedAggregateRoot
	Code   string
	Name   string
	Active bool
}

// NewZone creates a new active zone
func NewZone(code, name string) (*Zone, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_ZONE_CODE", "Zone code must be 1-20 characters")
	}
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_ZONE_NAME", "Zone name must be 1-100 characters")
	}

	return &Zone{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 strings.TrimSpace(name),
		Active:               true,
	}, nil
}

// Update updates the zone's name
func (z *Zone) Update(name string) error {
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_ZONE_NAME", "Zone name must be 1-100 characters")
	}

	z.Name = strings.TrimSpace(name)
	z.Touch()
	z.IncrementVersion()

	return nil
}

// Deactivate takes the zone out of service
func (z *Zone) Deactivate() {
	z.Active = false
	z.Touch()
	z.IncrementVersion()
}

// Activate puts the zone back in service
func (z *Zone) Activate() {
	z.Active = true
	z.Touch()
	z.IncrementVersion()
}

// TableStatus represents the floor status of a table
type TableStatus string

const (
	TableStatusAvailable    TableStatus = "available"
	TableStatusOccupied     TableStatus = "occupied"
	TableStatusReserved     TableStatus = "reserved"
	TableStatusOutOfService TableStatus = "out_of_service"
)

// Table represents one physical table on the floor. Its status moves with
// the orders and reservations attached to it.
type Table struct {
	shared.AuditedAggregateRoot
	Code           string
	ZoneID         uuid.UUID
	Capacity       int
	Status         TableStatus
	CurrentOrderID *uuid.UUID
}

// NewTable creates a new available table in a zone
func NewTable(code string, zoneID uuid.UUID, capacity int) (*Table, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_TABLE_CODE", "Table code must be 1-20 characters")
	}
	if zoneID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ZONE", "Zone ID cannot be empty")
	}
	if capacity < 1 || capacity > 50 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Table capacity must be between 1 and 50")
	}

	return &Table{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		ZoneID:               zoneID,
		Capacity:             capacity,
		Status:               TableStatusAvailable,
	}, nil
}

// Update changes the table's zone and capacity
func (t *Table) Update(zoneID uuid.UUID, capacity int) error {
	if zoneID == uuid.Nil {
		return shared.NewDomainError("INVALID_ZONE", "Zone ID cannot be empty")
	}
	if capacity < 1 || capacity > 50 {
		return shared.NewDomainError("INVALID_CAPACITY", "Table capacity must be between 1 and 50")
	}

	t.ZoneID = zoneID
	t.Capacity = capacity
	t.Touch()
	t.IncrementVersion()

	return nil
}

// Occupy seats guests at the table and links the open order
func (t *Table) Occupy(orderID uuid.UUID) error {
	switch t.Status {
	case TableStatusOccupied:
		return shared.NewDomainError("TABLE_OCCUPIED", "Table already has an open order")
	case TableStatusOutOfService:
		return shared.NewDomainError("TABLE_OUT_OF_SERVICE", "Table is out of service")
	}
	if orderID == uuid.Nil {
		return shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}

	t.Status = TableStatusOccupied
	t.CurrentOrderID = &orderID
	t.Touch()
	t.IncrementVersion()

	return nil
}

// Free releases the table when its order closes or is cancelled
func (t *Table) Free() error {
	if t.Status != TableStatusOccupied && t.Status != TableStatusReserved {
		return shared.NewDomainError("TABLE_NOT_BUSY", "Table is not occupied or reserved")
	}

	t.Status = TableStatusAvailable
	t.CurrentOrderID = nil
	t.Touch()
	t.IncrementVersion()

	return nil
}

// Hold marks the table reserved ahead of a confirmed reservation
func (t *Table) Hold() error {
	if t.Status != TableStatusAvailable {
		return shared.NewDomainError("TABLE_NOT_AVAILABLE", "Only available tables can be held")
	}

	t.Status = TableStatusReserved
	t.Touch()
	t.IncrementVersion()

	return nil
}

// TakeOutOfService removes the table from the floor
func (t *Table) TakeOutOfService() error {
	if t.Status == TableStatusOccupied {
		return shared.NewDomainError("TABLE_OCCUPIED", "Close the open order before taking the table out of service")
	}

	t.Status = TableStatusOutOfService
	t.CurrentOrderID = nil
	t.Touch()
	t.IncrementVersion()

	return nil
}

// ReturnToService makes the table available again
func (t *Table) ReturnToService() error {
	if t.Status != TableStatusOutOfService {
		return shared.NewDomainError("TABLE_IN_SERVICE", "Table is not out of service")
	}

	t.Status = TableStatusAvailable
	t.Touch()
	t.IncrementVersion()

	return nil
}
