package models

import (
	"time"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ArticleModel is the persistence model for the Article domain entity.
type ArticleModel struct {
	AuditedAggregateModel
	Code             string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Barcode          string                `gorm:"type:varchar(100);index"`
	Name             string                `gorm:"type:varchar(200);not null"`
	Description      string                `gorm:"type:text"`
	Type             catalog.ArticleType   `gorm:"type:varchar(20);not null"`
	Status           catalog.ArticleStatus `gorm:"type:varchar(20);not null;default:'active'"`
	ClassificationID *uuid.UUID            `gorm:"type:uuid;index"`
	UnitCode         string                `gorm:"type:varchar(20);not null"`
	BasePrice        decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Cost             decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate          decimal.Decimal       `gorm:"type:decimal(8,4);not null;default:0"`
	TrackStock       bool                  `gorm:"not null;default:false"`
	MinStock         decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Components       []KitComponentModel   `gorm:"foreignKey:KitID"`
}

// TableName returns the table name for GORM
func (ArticleModel) TableName() string {
	return "articles"
}

// ToDomain converts the persistence model to a domain Article entity.
func (m *ArticleModel) ToDomain() *catalog.Article {
	components := make([]catalog.KitComponent, len(m.Components))
	for i, c := range m.Components {
		components[i] = c.ToDomain()
	}

	article := &catalog.Article{
		Code:             m.Code,
		Barcode:          m.Barcode,
		Name:             m.Name,
		Description:      m.Description,
		Type:             m.Type,
		Status:           m.Status,
		ClassificationID: m.ClassificationID,
		UnitCode:         m.UnitCode,
		BasePrice:        valueobject.NewMoneyVES(m.BasePrice),
		Cost:             valueobject.NewMoneyVES(m.Cost),
		TaxRate:          m.TaxRate,
		TrackStock:       m.TrackStock,
		MinStock:         m.MinStock,
		Components:       components,
	}
	m.PopulateAuditedAggregateRoot(&article.AuditedAggregateRoot)
	return article
}

// FromDomain populates the persistence model from a domain Article entity.
func (m *ArticleModel) FromDomain(a *catalog.Article) {
	m.FromDomainAuditedAggregateRoot(a.AuditedAggregateRoot)
	m.Code = a.Code
	m.Barcode = a.Barcode
	m.Name = a.Name
	m.Description = a.Description
	m.Type = a.Type
	m.Status = a.Status
	m.ClassificationID = a.ClassificationID
	m.UnitCode = a.UnitCode
	m.BasePrice = a.BasePrice.Amount()
	m.Cost = a.Cost.Amount()
	m.TaxRate = a.TaxRate
	m.TrackStock = a.TrackStock
	m.MinStock = a.MinStock

	m.Components = make([]KitComponentModel, len(a.Components))
	for i, c := range a.Components {
		m.Components[i].FromDomain(c)
	}
}

// ArticleModelFromDomain creates a new persistence model from a domain Article entity.
func ArticleModelFromDomain(a *catalog.Article) *ArticleModel {
	m := &ArticleModel{}
	m.FromDomain(a)
	return m
}

// KitComponentModel is the persistence model for kit components.
type KitComponentModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	KitID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ComponentID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (KitComponentModel) TableName() string {
	return "kit_components"
}

// ToDomain converts the persistence model to a domain KitComponent.
func (m *KitComponentModel) ToDomain() catalog.KitComponent {
	return catalog.KitComponent{
		ID:          m.ID,
		KitID:       m.KitID,
		ComponentID: m.ComponentID,
		Quantity:    m.Quantity,
	}
}

// FromDomain populates the persistence model from a domain KitComponent.
func (m *KitComponentModel) FromDomain(c catalog.KitComponent) {
	m.ID = c.ID
	m.KitID = c.KitID
	m.ComponentID = c.ComponentID
	m.Quantity = c.Quantity
}

// UnitModel is the persistence model for units of measure.
type UnitModel struct {
	AuditedAggregateModel
	Code   string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name   string `gorm:"type:varchar(100);not null"`
	Symbol string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit entity.
func (m *UnitModel) ToDomain() *catalog.Unit {
	unit := &catalog.Unit{
		Code:   m.Code,
		Name:   m.Name,
		Symbol: m.Symbol,
	}
	m.PopulateAuditedAggregateRoot(&unit.AuditedAggregateRoot)
	return unit
}

// FromDomain populates the persistence model from a domain Unit entity.
func (m *UnitModel) FromDomain(u *catalog.Unit) {
	m.FromDomainAuditedAggregateRoot(u.AuditedAggregateRoot)
	m.Code = u.Code
	m.Name = u.Name
	m.Symbol = u.Symbol
}

// UnitModelFromDomain creates a new persistence model from a domain Unit entity.
func UnitModelFromDomain(u *catalog.Unit) *UnitModel {
	m := &UnitModel{}
	m.FromDomain(u)
	return m
}

// ClassificationModel is the persistence model for article classifications.
type ClassificationModel struct {
	AuditedAggregateModel
	Code     string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string     `gorm:"type:varchar(200);not null"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ClassificationModel) TableName() string {
	return "classifications"
}

// ToDomain converts the persistence model to a domain Classification entity.
func (m *ClassificationModel) ToDomain() *catalog.Classification {
	c := &catalog.Classification{
		Code:     m.Code,
		Name:     m.Name,
		ParentID: m.ParentID,
	}
	m.PopulateAuditedAggregateRoot(&c.AuditedAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Classification entity.
func (m *ClassificationModel) FromDomain(c *catalog.Classification) {
	m.FromDomainAuditedAggregateRoot(c.AuditedAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.ParentID = c.ParentID
}

// ClassificationModelFromDomain creates a new persistence model from a domain Classification entity.
func ClassificationModelFromDomain(c *catalog.Classification) *ClassificationModel {
	m := &ClassificationModel{}
	m.FromDomain(c)
	return m
}

// PriceListModel is the persistence model for price lists.
type PriceListModel struct {
	AuditedAggregateModel
	Code      string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string               `gorm:"type:varchar(200);not null"`
	Currency  string               `gorm:"type:varchar(10);not null;default:'VES'"`
	ValidFrom *time.Time           `gorm:"index"`
	ValidTo   *time.Time           `gorm:"index"`
	Active    bool                 `gorm:"not null;default:true"`
	Items     []PriceListItemModel `gorm:"foreignKey:PriceListID"`
}

// TableName returns the table name for GORM
func (PriceListModel) TableName() string {
	return "price_lists"
}

// ToDomain converts the persistence model to a domain PriceList entity.
func (m *PriceListModel) ToDomain() *catalog.PriceList {
	currency := valueobject.Currency(m.Currency)
	items := make([]catalog.PriceListItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = catalog.PriceListItem{
			ID:          it.ID,
			PriceListID: it.PriceListID,
			ArticleID:   it.ArticleID,
			Price:       money(it.Price, currency),
		}
	}

	pl := &catalog.PriceList{
		Code:      m.Code,
		Name:      m.Name,
		Currency:  currency,
		ValidFrom: m.ValidFrom,
		ValidTo:   m.ValidTo,
		Active:    m.Active,
		Items:     items,
	}
	m.PopulateAuditedAggregateRoot(&pl.AuditedAggregateRoot)
	return pl
}

// FromDomain populates the persistence model from a domain PriceList entity.
func (m *PriceListModel) FromDomain(p *catalog.PriceList) {
	m.FromDomainAuditedAggregateRoot(p.AuditedAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.Currency = string(p.Currency)
	m.ValidFrom = p.ValidFrom
	m.ValidTo = p.ValidTo
	m.Active = p.Active

	m.Items = make([]PriceListItemModel, len(p.Items))
	for i, it := range p.Items {
		m.Items[i] = PriceListItemModel{
			ID:          it.ID,
			PriceListID: it.PriceListID,
			ArticleID:   it.ArticleID,
			Price:       it.Price.Amount(),
		}
	}
}

// PriceListModelFromDomain creates a new persistence model from a domain PriceList entity.
func PriceListModelFromDomain(p *catalog.PriceList) *PriceListModel {
	m := &PriceListModel{}
	m.FromDomain(p)
	return m
}

// PriceListItemModel is the persistence model for price list lines.
type PriceListItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	PriceListID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ArticleID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PriceListItemModel) TableName() string {
	return "price_list_items"
}
