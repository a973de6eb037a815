package models

import (
	"time"

	"github.com/gestion/backend/internal/domain/restaurant"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ZoneModel is the persistence model for dining zones.
type ZoneModel struct {
	AuditedAggregateModel
	Code   string `gorm:"type:varchar(30);not null;uniqueIndex"`
	Name   string `gorm:"type:varchar(100);not null"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ZoneModel) TableName() string {
	return "zones"
}

// ToDomain converts the persistence model to a domain Zone entity.
func (m *ZoneModel) ToDomain() *restaurant.Zone {
	z := &restaurant.Zone{
		Code:   m.Code,
		Name:   m.Name,
		Active: m.Active,
	}
	m.PopulateAuditedAggregateRoot(&z.AuditedAggregateRoot)
	return z
}

// FromDomain populates the persistence model from a domain Zone entity.
func (m *ZoneModel) FromDomain(z *restaurant.Zone) {
	m.FromDomainAuditedAggregateRoot(z.AuditedAggregateRoot)
	m.Code = z.Code
	m.Name = z.Name
	m.Active = z.Active
}

// ZoneModelFromDomain creates a new persistence model from a domain Zone entity.
func ZoneModelFromDomain(z *restaurant.Zone) *ZoneModel {
	m := &ZoneModel{}
	m.FromDomain(z)
	return m
}

// TableModel is the persistence model for dining tables.
type TableModel struct {
	AuditedAggregateModel
	Code           string                 `gorm:"type:varchar(30);not null;uniqueIndex"`
	ZoneID         uuid.UUID              `gorm:"type:uuid;not null;index"`
	Capacity       int                    `gorm:"not null"`
	Status         restaurant.TableStatus `gorm:"type:varchar(20);not null;default:'available';index"`
	CurrentOrderID *uuid.UUID             `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (TableModel) TableName() string {
	return "tables"
}

// ToDomain converts the persistence model to a domain Table entity.
func (m *TableModel) ToDomain() *restaurant.Table {
	t := &restaurant.Table{
		Code:           m.Code,
		ZoneID:         m.ZoneID,
		Capacity:       m.Capacity,
		Status:         m.Status,
		CurrentOrderID: m.CurrentOrderID,
	}
	m.PopulateAuditedAggregateRoot(&t.AuditedAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain Table entity.
func (m *TableModel) FromDomain(t *restaurant.Table) {
	m.FromDomainAuditedAggregateRoot(t.AuditedAggregateRoot)
	m.Code = t.Code
	m.ZoneID = t.ZoneID
	m.Capacity = t.Capacity
	m.Status = t.Status
	m.CurrentOrderID = t.CurrentOrderID
}

// TableModelFromDomain creates a new persistence model from a domain Table entity.
func TableModelFromDomain(t *restaurant.Table) *TableModel {
	m := &TableModel{}
	m.FromDomain(t)
	return m
}

// ReservationModel is the persistence model for reservations.
type ReservationModel struct {
	AuditedAggregateModel
	TableID     uuid.UUID                    `gorm:"type:uuid;not null;index"`
	CustomerID  *uuid.UUID                   `gorm:"type:uuid;index"`
	GuestName   string                       `gorm:"type:varchar(200);not null"`
	GuestPhone  string                       `gorm:"type:varchar(50)"`
	PartySize   int                          `gorm:"not null"`
	ReservedFor time.Time                    `gorm:"not null;index"`
	Status      restaurant.ReservationStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes       string                       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReservationModel) TableName() string {
	return "reservations"
}

// ToDomain converts the persistence model to a domain Reservation entity.
func (m *ReservationModel) ToDomain() *restaurant.Reservation {
	r := &restaurant.Reservation{
		TableID:     m.TableID,
		CustomerID:  m.CustomerID,
		GuestName:   m.GuestName,
		GuestPhone:  m.GuestPhone,
		PartySize:   m.PartySize,
		ReservedFor: m.ReservedFor,
		Status:      m.Status,
		Notes:       m.Notes,
	}
	m.PopulateAuditedAggregateRoot(&r.AuditedAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain Reservation entity.
func (m *ReservationModel) FromDomain(r *restaurant.Reservation) {
	m.FromDomainAuditedAggregateRoot(r.AuditedAggregateRoot)
	m.TableID = r.TableID
	m.CustomerID = r.CustomerID
	m.GuestName = r.GuestName
	m.GuestPhone = r.GuestPhone
	m.PartySize = r.PartySize
	m.ReservedFor = r.ReservedFor
	m.Status = r.Status
	m.Notes = r.Notes
}

// ReservationModelFromDomain creates a new persistence model from a domain Reservation entity.
func ReservationModelFromDomain(r *restaurant.Reservation) *ReservationModel {
	m := &ReservationModel{}
	m.FromDomain(r)
	return m
}

// OrderModel is the persistence model for restaurant orders.
type OrderModel struct {
	AuditedAggregateModel
	Number    string                 `gorm:"type:varchar(30);not null;uniqueIndex"`
	TableID   *uuid.UUID             `gorm:"type:uuid;index"`
	WaiterID  uuid.UUID              `gorm:"type:uuid;not null;index"`
	Status    restaurant.OrderStatus `gorm:"type:varchar(20);not null;default:'open';index"`
	Guests    int                    `gorm:"not null;default:1"`
	Currency  string                 `gorm:"type:varchar(10);not null;default:'VES'"`
	OpenedAt  time.Time              `gorm:"not null;index"`
	ClosedAt  *time.Time
	InvoiceID *uuid.UUID       `gorm:"type:uuid;index"`
	Notes     string           `gorm:"type:text"`
	Items     []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *restaurant.Order {
	currency := valueobject.Currency(m.Currency)
	items := make([]restaurant.OrderItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = it.ToDomain(currency)
	}

	o := &restaurant.Order{
		Number:    m.Number,
		TableID:   m.TableID,
		WaiterID:  m.WaiterID,
		Status:    m.Status,
		Guests:    m.Guests,
		Currency:  currency,
		Items:     items,
		OpenedAt:  m.OpenedAt,
		ClosedAt:  m.ClosedAt,
		InvoiceID: m.InvoiceID,
		Notes:     m.Notes,
	}
	m.PopulateAuditedAggregateRoot(&o.AuditedAggregateRoot)
	return o
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *restaurant.Order) {
	m.FromDomainAuditedAggregateRoot(o.AuditedAggregateRoot)
	m.Number = o.Number
	m.TableID = o.TableID
	m.WaiterID = o.WaiterID
	m.Status = o.Status
	m.Guests = o.Guests
	m.Currency = string(o.Currency)
	m.OpenedAt = o.OpenedAt
	m.ClosedAt = o.ClosedAt
	m.InvoiceID = o.InvoiceID
	m.Notes = o.Notes

	m.Items = make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		m.Items[i].FromDomain(it)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *restaurant.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for order lines.
type OrderItemModel struct {
	ID        uuid.UUID                  `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID                  `gorm:"type:uuid;not null;index"`
	ArticleID uuid.UUID                  `gorm:"type:uuid;not null"`
	Code      string                     `gorm:"type:varchar(50);not null"`
	Name      string                     `gorm:"type:varchar(200);not null"`
	Quantity  decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	UnitPrice decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Notes     string                     `gorm:"type:varchar(300)"`
	Status    restaurant.OrderItemStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	AddedAt   time.Time                  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain(currency valueobject.Currency) restaurant.OrderItem {
	return restaurant.OrderItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		ArticleID: m.ArticleID,
		Code:      m.Code,
		Name:      m.Name,
		Quantity:  m.Quantity,
		UnitPrice: money(m.UnitPrice, currency),
		Notes:     m.Notes,
		Status:    m.Status,
		AddedAt:   m.AddedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderItem.
func (m *OrderItemModel) FromDomain(it restaurant.OrderItem) {
	m.ID = it.ID
	m.OrderID = it.OrderID
	m.ArticleID = it.ArticleID
	m.Code = it.Code
	m.Name = it.Name
	m.Quantity = it.Quantity
	m.UnitPrice = it.UnitPrice.Amount()
	m.Notes = it.Notes
	m.Status = it.Status
	m.AddedAt = it.AddedAt
}
