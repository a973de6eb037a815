package models

import (
	"time"

	"github.com/gestion/backend/internal/domain/inventory"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WarehouseModel is the persistence model for the Warehouse domain entity.
type WarehouseModel struct {
	AuditedAggregateModel
	Code      string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string `gorm:"type:varchar(200);not null"`
	Address   string `gorm:"type:text"`
	Active    bool   `gorm:"not null;default:true"`
	IsDefault bool   `gorm:"column:is_default;not null;default:false"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the persistence model to a domain Warehouse entity.
func (m *WarehouseModel) ToDomain() *inventory.Warehouse {
	w := &inventory.Warehouse{
		Code:    m.Code,
		Name:    m.Name,
		Address: m.Address,
		Active:  m.Active,
		Default: m.IsDefault,
	}
	m.PopulateAuditedAggregateRoot(&w.AuditedAggregateRoot)
	return w
}

// FromDomain populates the persistence model from a domain Warehouse entity.
func (m *WarehouseModel) FromDomain(w *inventory.Warehouse) {
	m.FromDomainAuditedAggregateRoot(w.AuditedAggregateRoot)
	m.Code = w.Code
	m.Name = w.Name
	m.Address = w.Address
	m.Active = w.Active
	m.IsDefault = w.Default
}

// WarehouseModelFromDomain creates a new persistence model from a domain Warehouse entity.
func WarehouseModelFromDomain(w *inventory.Warehouse) *WarehouseModel {
	m := &WarehouseModel{}
	m.FromDomain(w)
	return m
}

// StockItemModel is the persistence model for stock records.
// One row per article per warehouse.
type StockItemModel struct {
	AggregateModel
	ArticleID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_article_warehouse"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_article_warehouse"`
	OnHand      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Reserved    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AverageCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockItemModel) TableName() string {
	return "stock_items"
}

// ToDomain converts the persistence model to a domain StockItem entity.
func (m *StockItemModel) ToDomain() *inventory.StockItem {
	item := &inventory.StockItem{
		ArticleID:   m.ArticleID,
		WarehouseID: m.WarehouseID,
		OnHand:      m.OnHand,
		Reserved:    m.Reserved,
		AverageCost: valueobject.NewMoneyVES(m.AverageCost),
	}
	m.PopulateAggregateRoot(&item.BaseAggregateRoot)
	return item
}

// FromDomain populates the persistence model from a domain StockItem entity.
func (m *StockItemModel) FromDomain(s *inventory.StockItem) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.ArticleID = s.ArticleID
	m.WarehouseID = s.WarehouseID
	m.OnHand = s.OnHand
	m.Reserved = s.Reserved
	m.AverageCost = s.AverageCost.Amount()
}

// StockItemModelFromDomain creates a new persistence model from a domain StockItem entity.
func StockItemModelFromDomain(s *inventory.StockItem) *StockItemModel {
	m := &StockItemModel{}
	m.FromDomain(s)
	return m
}

// StockMovementModel is the persistence model for kardex lines.
// Movements are append-only.
type StockMovementModel struct {
	BaseModel
	ArticleID     uuid.UUID              `gorm:"type:uuid;not null;index:idx_movements_article_posted"`
	WarehouseID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	Type          inventory.MovementType `gorm:"type:varchar(20);not null"`
	Quantity      decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	UnitCost      decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	BalanceAfter  decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Reference     string                 `gorm:"type:varchar(100);index"`
	ReferenceID   *uuid.UUID             `gorm:"type:uuid;index"`
	ReferenceType string                 `gorm:"type:varchar(30)"`
	Notes         string                 `gorm:"type:text"`
	PostedBy      *uuid.UUID             `gorm:"type:uuid"`
	PostedAt      time.Time              `gorm:"not null;index:idx_movements_article_posted"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the persistence model to a domain StockMovement entity.
func (m *StockMovementModel) ToDomain() *inventory.StockMovement {
	return &inventory.StockMovement{
		BaseEntity:    m.BaseModel.ToDomain(),
		ArticleID:     m.ArticleID,
		WarehouseID:   m.WarehouseID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitCost:      valueobject.NewMoneyVES(m.UnitCost),
		BalanceAfter:  m.BalanceAfter,
		Reference:     m.Reference,
		ReferenceID:   m.ReferenceID,
		ReferenceType: m.ReferenceType,
		Notes:         m.Notes,
		PostedBy:      m.PostedBy,
		PostedAt:      m.PostedAt,
	}
}

// FromDomain populates the persistence model from a domain StockMovement entity.
func (m *StockMovementModel) FromDomain(mov *inventory.StockMovement) {
	m.FromDomainBaseEntity(mov.BaseEntity)
	m.ArticleID = mov.ArticleID
	m.WarehouseID = mov.WarehouseID
	m.Type = mov.Type
	m.Quantity = mov.Quantity
	m.UnitCost = mov.UnitCost.Amount()
	m.BalanceAfter = mov.BalanceAfter
	m.Reference = mov.Reference
	m.ReferenceID = mov.ReferenceID
	m.ReferenceType = mov.ReferenceType
	m.Notes = mov.Notes
	m.PostedBy = mov.PostedBy
	m.PostedAt = mov.PostedAt
}

// StockMovementModelFromDomain creates a new persistence model from a domain StockMovement entity.
func StockMovementModelFromDomain(mov *inventory.StockMovement) *StockMovementModel {
	m := &StockMovementModel{}
	m.FromDomain(mov)
	return m
}
