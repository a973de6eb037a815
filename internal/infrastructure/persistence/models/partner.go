package models

import (
	"github.com/gestion/backend/internal/domain/partner"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	AuditedAggregateModel
	Code          string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string                 `gorm:"type:varchar(200);not null"`
	Type          partner.CustomerType   `gorm:"type:varchar(20);not null"`
	Status        partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	TaxID         string                 `gorm:"type:varchar(20);index"`
	Email         string                 `gorm:"type:varchar(200)"`
	Phone         string                 `gorm:"type:varchar(50)"`
	Address       string                 `gorm:"type:text"`
	City          string                 `gorm:"type:varchar(100)"`
	CreditLimit   decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentTermID *uuid.UUID             `gorm:"type:uuid;index"`
	PriceListID   *uuid.UUID             `gorm:"type:uuid;index"`
	Notes         string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	c := &partner.Customer{
		Code:          m.Code,
		Name:          m.Name,
		Type:          m.Type,
		Status:        m.Status,
		TaxID:         m.TaxID,
		Email:         m.Email,
		Phone:         m.Phone,
		Address:       m.Address,
		City:          m.City,
		CreditLimit:   valueobject.NewMoneyVES(m.CreditLimit),
		PaymentTermID: m.PaymentTermID,
		PriceListID:   m.PriceListID,
		Notes:         m.Notes,
	}
	m.PopulateAuditedAggregateRoot(&c.AuditedAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAuditedAggregateRoot(c.AuditedAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Type = c.Type
	m.Status = c.Status
	m.TaxID = c.TaxID
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.City = c.City
	m.CreditLimit = c.CreditLimit.Amount()
	m.PaymentTermID = c.PaymentTermID
	m.PriceListID = c.PriceListID
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
