package inventory

import (
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType classifies kardex entries
type MovementType string

const (
	MovementTypeEntry      MovementType = "entry"      // Purchases, production
	MovementTypeExit       MovementType = "exit"       // Sales, consumption
	MovementTypeAdjustment MovementType = "adjustment" // Physical count corrections
	MovementTypeTransfer   MovementType = "transfer"   // Between warehouses
)

// StockMovement is one immutable kardex line. Movements are never updated
// or deleted; corrections are new adjustment movements.
type StockMovement struct {
	shared.BaseEntity
	ArticleID     uuid.UUID
	WarehouseID   uuid.UUID
	Type          MovementType
	Quantity      decimal.Decimal // Signed: positive for entries, negative for exits
	UnitCost      valueobject.Money
	BalanceAfter  decimal.Decimal // On-hand quantity after posting
	Reference     string          // Document that caused the movement (invoice number, etc.)
	ReferenceID   *uuid.UUID
	ReferenceType string // "invoice", "order", "count", "transfer"
	Notes         string
	PostedBy      *uuid.UUID
	PostedAt      time.Time
}

// NewStockMovement creates a kardex line for a posted stock change
func NewStockMovement(articleID, warehouseID uuid.UUID, movementType MovementType, quantity decimal.Decimal, unitCost valueobject.Money, balanceAfter decimal.Decimal) (*StockMovement, error) {
	if articleID == uuid.Nil || warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MOVEMENT", "Article and warehouse are required")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}
	switch movementType {
	case MovementTypeEntry:
		if quantity.IsNegative() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Entry quantity must be positive")
		}
	case MovementTypeExit:
		if quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Exit quantity must be negative")
		}
	case MovementTypeAdjustment, MovementTypeTransfer:
	default:
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown movement type")
	}

	return &StockMovement{
		BaseEntity:   shared.NewBaseEntity(),
		ArticleID:    articleID,
		WarehouseID:  warehouseID,
		Type:         movementType,
		Quantity:     quantity,
		UnitCost:     unitCost,
		BalanceAfter: balanceAfter,
		PostedAt:     time.Now(),
	}, nil
}

// WithReference attaches the originating document to the movement
func (m *StockMovement) WithReference(refType, reference string, refID *uuid.UUID) *StockMovement {
	m.ReferenceType = refType
	m.Reference = reference
	m.ReferenceID = refID
	return m
}

// WithPostedBy records the user who posted the movement
func (m *StockMovement) WithPostedBy(userID uuid.UUID) *StockMovement {
	m.PostedBy = &userID
	return m
}

// WithNotes attaches free-form notes
func (m *StockMovement) WithNotes(notes string) *StockMovement {
	m.Notes = notes
	return m
}
