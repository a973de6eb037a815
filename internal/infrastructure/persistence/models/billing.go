package models

import (
	"time"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice domain entity.
type InvoiceModel struct {
	AuditedAggregateModel
	Number        string                `gorm:"type:varchar(30);uniqueIndex:idx_invoices_number,where:number <> ''"`
	CustomerID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Currency      string                `gorm:"type:varchar(10);not null;default:'VES'"`
	ExchangeRate  decimal.Decimal       `gorm:"type:decimal(18,6);not null;default:1"`
	IssuedAt      *time.Time            `gorm:"index"`
	DueDate       *time.Time            `gorm:"index"`
	PaymentTermID *uuid.UUID            `gorm:"type:uuid"`
	OrderID       *uuid.UUID            `gorm:"type:uuid;index"`
	WarehouseID   uuid.UUID             `gorm:"type:uuid;not null"`
	Subtotal      decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountTotal decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	TaxTotal      decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Total         decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Notes         string                `gorm:"type:text"`
	Items         []InvoiceItemModel    `gorm:"foreignKey:InvoiceID"`
	Payments      []InvoicePaymentModel `gorm:"foreignKey:InvoiceID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	currency := valueobject.Currency(m.Currency)

	items := make([]billing.InvoiceItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = it.ToDomain(currency)
	}
	payments := make([]billing.InvoicePayment, len(m.Payments))
	for i, p := range m.Payments {
		payments[i] = p.ToDomain(currency)
	}

	inv := &billing.Invoice{
		Number:        m.Number,
		CustomerID:    m.CustomerID,
		Status:        m.Status,
		Currency:      currency,
		ExchangeRate:  m.ExchangeRate,
		IssuedAt:      m.IssuedAt,
		DueDate:       m.DueDate,
		PaymentTermID: m.PaymentTermID,
		OrderID:       m.OrderID,
		WarehouseID:   m.WarehouseID,
		Items:         items,
		Payments:      payments,
		Subtotal:      money(m.Subtotal, currency),
		DiscountTotal: money(m.DiscountTotal, currency),
		TaxTotal:      money(m.TaxTotal, currency),
		Total:         money(m.Total, currency),
		Notes:         m.Notes,
	}
	m.PopulateAuditedAggregateRoot(&inv.AuditedAggregateRoot)
	return inv
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAuditedAggregateRoot(inv.AuditedAggregateRoot)
	m.Number = inv.Number
	m.CustomerID = inv.CustomerID
	m.Status = inv.Status
	m.Currency = string(inv.Currency)
	m.ExchangeRate = inv.ExchangeRate
	m.IssuedAt = inv.IssuedAt
	m.DueDate = inv.DueDate
	m.PaymentTermID = inv.PaymentTermID
	m.OrderID = inv.OrderID
	m.WarehouseID = inv.WarehouseID
	m.Subtotal = inv.Subtotal.Amount()
	m.DiscountTotal = inv.DiscountTotal.Amount()
	m.TaxTotal = inv.TaxTotal.Amount()
	m.Total = inv.Total.Amount()
	m.Notes = inv.Notes

	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, it := range inv.Items {
		m.Items[i].FromDomain(it)
	}
	m.Payments = make([]InvoicePaymentModel, len(inv.Payments))
	for i, p := range inv.Payments {
		m.Payments[i].FromDomain(p)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is the persistence model for invoice lines.
type InvoiceItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ArticleID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Code            string          `gorm:"type:varchar(50);not null"`
	Description     string          `gorm:"type:varchar(300);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	TaxRate         decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	LineSubtotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTax         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem.
func (m *InvoiceItemModel) ToDomain(currency valueobject.Currency) billing.InvoiceItem {
	return billing.InvoiceItem{
		ID:              m.ID,
		InvoiceID:       m.InvoiceID,
		ArticleID:       m.ArticleID,
		Code:            m.Code,
		Description:     m.Description,
		Quantity:        m.Quantity,
		UnitPrice:       money(m.UnitPrice, currency),
		DiscountPercent: m.DiscountPercent,
		TaxRate:         m.TaxRate,
		LineSubtotal:    money(m.LineSubtotal, currency),
		LineTax:         money(m.LineTax, currency),
		LineTotal:       money(m.LineTotal, currency),
	}
}

// FromDomain populates the persistence model from a domain InvoiceItem.
func (m *InvoiceItemModel) FromDomain(it billing.InvoiceItem) {
	m.ID = it.ID
	m.InvoiceID = it.InvoiceID
	m.ArticleID = it.ArticleID
	m.Code = it.Code
	m.Description = it.Description
	m.Quantity = it.Quantity
	m.UnitPrice = it.UnitPrice.Amount()
	m.DiscountPercent = it.DiscountPercent
	m.TaxRate = it.TaxRate
	m.LineSubtotal = it.LineSubtotal.Amount()
	m.LineTax = it.LineTax.Amount()
	m.LineTotal = it.LineTotal.Amount()
}

// InvoicePaymentModel is the persistence model for registered payments.
type InvoicePaymentModel struct {
	ID         uuid.UUID             `gorm:"type:uuid;primary_key"`
	InvoiceID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	Method     billing.PaymentMethod `gorm:"type:varchar(20);not null"`
	Amount     decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Reference  string                `gorm:"type:varchar(100)"`
	ReceivedAt time.Time             `gorm:"not null"`
	ReceivedBy *uuid.UUID            `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (InvoicePaymentModel) TableName() string {
	return "invoice_payments"
}

// ToDomain converts the persistence model to a domain InvoicePayment.
func (m *InvoicePaymentModel) ToDomain(currency valueobject.Currency) billing.InvoicePayment {
	return billing.InvoicePayment{
		ID:         m.ID,
		InvoiceID:  m.InvoiceID,
		Method:     m.Method,
		Amount:     money(m.Amount, currency),
		Reference:  m.Reference,
		ReceivedAt: m.ReceivedAt,
		ReceivedBy: m.ReceivedBy,
	}
}

// FromDomain populates the persistence model from a domain InvoicePayment.
func (m *InvoicePaymentModel) FromDomain(p billing.InvoicePayment) {
	m.ID = p.ID
	m.InvoiceID = p.InvoiceID
	m.Method = p.Method
	m.Amount = p.Amount.Amount()
	m.Reference = p.Reference
	m.ReceivedAt = p.ReceivedAt
	m.ReceivedBy = p.ReceivedBy
}

// PaymentTermModel is the persistence model for payment terms.
type PaymentTermModel struct {
	AuditedAggregateModel
	Code   string `gorm:"type:varchar(30);not null;uniqueIndex"`
	Name   string `gorm:"type:varchar(100);not null"`
	Days   int    `gorm:"not null;default:0"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PaymentTermModel) TableName() string {
	return "payment_terms"
}

// ToDomain converts the persistence model to a domain PaymentTerm entity.
func (m *PaymentTermModel) ToDomain() *billing.PaymentTerm {
	term := &billing.PaymentTerm{
		Code:   m.Code,
		Name:   m.Name,
		Days:   m.Days,
		Active: m.Active,
	}
	m.PopulateAuditedAggregateRoot(&term.AuditedAggregateRoot)
	return term
}

// FromDomain populates the persistence model from a domain PaymentTerm entity.
func (m *PaymentTermModel) FromDomain(t *billing.PaymentTerm) {
	m.FromDomainAuditedAggregateRoot(t.AuditedAggregateRoot)
	m.Code = t.Code
	m.Name = t.Name
	m.Days = t.Days
	m.Active = t.Active
}

// PaymentTermModelFromDomain creates a new persistence model from a domain PaymentTerm entity.
func PaymentTermModelFromDomain(t *billing.PaymentTerm) *PaymentTermModel {
	m := &PaymentTermModel{}
	m.FromDomain(t)
	return m
}

// ExchangeRateModel is the persistence model for exchange rates.
type ExchangeRateModel struct {
	BaseModel
	Currency    string          `gorm:"type:varchar(10);not null;index:idx_rates_currency_effective"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	EffectiveAt time.Time       `gorm:"not null;index:idx_rates_currency_effective"`
	Source      string          `gorm:"type:varchar(30);not null;default:'manual'"`
}

// TableName returns the table name for GORM
func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

// ToDomain converts the persistence model to a domain ExchangeRate entity.
func (m *ExchangeRateModel) ToDomain() *billing.ExchangeRate {
	return &billing.ExchangeRate{
		BaseEntity:  m.BaseModel.ToDomain(),
		Currency:    valueobject.Currency(m.Currency),
		Rate:        m.Rate,
		EffectiveAt: m.EffectiveAt,
		Source:      m.Source,
	}
}

// FromDomain populates the persistence model from a domain ExchangeRate entity.
func (m *ExchangeRateModel) FromDomain(r *billing.ExchangeRate) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Currency = string(r.Currency)
	m.Rate = r.Rate
	m.EffectiveAt = r.EffectiveAt
	m.Source = r.Source
}

// ExchangeRateModelFromDomain creates a new persistence model from a domain ExchangeRate entity.
func ExchangeRateModelFromDomain(r *billing.ExchangeRate) *ExchangeRateModel {
	m := &ExchangeRateModel{}
	m.FromDomain(r)
	return m
}

// DocumentSequenceModel is the persistence model for consecutive numbering.
type DocumentSequenceModel struct {
	AggregateModel
	Kind       billing.DocumentKind `gorm:"type:varchar(20);not null;uniqueIndex"`
	Prefix     string               `gorm:"type:varchar(10);not null"`
	NextNumber int64                `gorm:"not null;default:1"`
	Padding    int                  `gorm:"not null;default:6"`
}

// TableName returns the table name for GORM
func (DocumentSequenceModel) TableName() string {
	return "document_sequences"
}

// ToDomain converts the persistence model to a domain DocumentSequence entity.
func (m *DocumentSequenceModel) ToDomain() *billing.DocumentSequence {
	seq := &billing.DocumentSequence{
		Kind:       m.Kind,
		Prefix:     m.Prefix,
		NextNumber: m.NextNumber,
		Padding:    m.Padding,
	}
	m.PopulateAggregateRoot(&seq.BaseAggregateRoot)
	return seq
}

// FromDomain populates the persistence model from a domain DocumentSequence entity.
func (m *DocumentSequenceModel) FromDomain(s *billing.DocumentSequence) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Kind = s.Kind
	m.Prefix = s.Prefix
	m.NextNumber = s.NextNumber
	m.Padding = s.Padding
}

// DocumentSequenceModelFromDomain creates a new persistence model from a domain DocumentSequence entity.
func DocumentSequenceModelFromDomain(s *billing.DocumentSequence) *DocumentSequenceModel {
	m := &DocumentSequenceModel{}
	m.FromDomain(s)
	return m
}
