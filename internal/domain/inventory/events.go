package inventory

import (
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the inventory context
const (
	EventTypeStockMovementPosted = "inventory.movement.posted"
	EventTypeStockBelowMinimum   = "inventory.stock.below_minimum"
)

// StockMovementPostedEvent is emitted after a kardex line is posted
type StockMovementPostedEvent struct {
	shared.BaseDomainEvent
	ArticleID    uuid.UUID       `json:"article_id"`
	WarehouseID  uuid.UUID       `json:"warehouse_id"`
	MovementType MovementType    `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// NewStockMovementPostedEvent creates a new StockMovementPostedEvent
func NewStockMovementPostedEvent(m *StockMovement) *StockMovementPostedEvent {
	return &StockMovementPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMovementPosted, "StockMovement", m.ID),
		ArticleID:       m.ArticleID,
		WarehouseID:     m.WarehouseID,
		MovementType:    m.Type,
		Quantity:        m.Quantity,
		BalanceAfter:    m.BalanceAfter,
	}
}

// StockBelowMinimumEvent is emitted when available stock crosses under the
// article's reorder threshold
type StockBelowMinimumEvent struct {
	shared.BaseDomainEvent
	ArticleID   uuid.UUID       `json:"article_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Available   decimal.Decimal `json:"available"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// NewStockBelowMinimumEvent creates a new StockBelowMinimumEvent
func NewStockBelowMinimumEvent(item *StockItem, minStock decimal.Decimal) *StockBelowMinimumEvent {
	return &StockBelowMinimumEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowMinimum, "StockItem", item.ID),
		ArticleID:       item.ArticleID,
		WarehouseID:     item.WarehouseID,
		Available:       item.Available(),
		MinStock:        minStock,
	}
}
