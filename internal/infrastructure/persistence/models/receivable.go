package models

import (
	"time"

	"github.com/gestion/backend/internal/domain/receivable"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerDocumentModel is the persistence model for receivable documents.
// Applications live in a JSONB column so the aggregate is loaded whole.
type CustomerDocumentModel struct {
	AuditedAggregateModel
	Type         receivable.DocumentType   `gorm:"type:varchar(20);not null"`
	Number       string                    `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	InvoiceID    *uuid.UUID                `gorm:"type:uuid;index"`
	Currency     string                    `gorm:"type:varchar(10);not null;default:'VES'"`
	Amount       decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	Status       receivable.DocumentStatus `gorm:"type:varchar(20);not null;default:'open';index"`
	IssuedAt     time.Time                 `gorm:"not null;index"`
	DueDate      *time.Time                `gorm:"index"`
	Applications receivable.ApplicationList `gorm:"type:jsonb;not null;default:'[]'"`
	Notes        string                    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerDocumentModel) TableName() string {
	return "customer_documents"
}

// ToDomain converts the persistence model to a domain CustomerDocument entity.
func (m *CustomerDocumentModel) ToDomain() *receivable.CustomerDocument {
	doc := &receivable.CustomerDocument{
		Type:         m.Type,
		Number:       m.Number,
		CustomerID:   m.CustomerID,
		InvoiceID:    m.InvoiceID,
		Currency:     valueobject.Currency(m.Currency),
		Amount:       m.Amount,
		Status:       m.Status,
		IssuedAt:     m.IssuedAt,
		DueDate:      m.DueDate,
		Applications: m.Applications,
		Notes:        m.Notes,
	}
	m.PopulateAuditedAggregateRoot(&doc.AuditedAggregateRoot)
	return doc
}

// FromDomain populates the persistence model from a domain CustomerDocument entity.
func (m *CustomerDocumentModel) FromDomain(d *receivable.CustomerDocument) {
	m.FromDomainAuditedAggregateRoot(d.AuditedAggregateRoot)
	m.Type = d.Type
	m.Number = d.Number
	m.CustomerID = d.CustomerID
	m.InvoiceID = d.InvoiceID
	m.Currency = string(d.Currency)
	m.Amount = d.Amount
	m.Status = d.Status
	m.IssuedAt = d.IssuedAt
	m.DueDate = d.DueDate
	m.Applications = d.Applications
	m.Notes = d.Notes
}

// CustomerDocumentModelFromDomain creates a new persistence model from a domain CustomerDocument entity.
func CustomerDocumentModelFromDomain(d *receivable.CustomerDocument) *CustomerDocumentModel {
	m := &CustomerDocumentModel{}
	m.FromDomain(d)
	return m
}

// CollectionLogModel is the persistence model for collection contacts.
type CollectionLogModel struct {
	BaseModel
	CustomerID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	DocumentID   *uuid.UUID                `gorm:"type:uuid;index"`
	Channel      receivable.ContactChannel `gorm:"type:varchar(20);not null"`
	Summary      string                    `gorm:"type:text;not null"`
	Promise      string                    `gorm:"type:text"`
	PromisedAt   *time.Time
	NextActionAt *time.Time `gorm:"index"`
	ContactedBy  *uuid.UUID `gorm:"type:uuid"`
	ContactedAt  time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CollectionLogModel) TableName() string {
	return "collection_logs"
}

// ToDomain converts the persistence model to a domain CollectionLog entity.
func (m *CollectionLogModel) ToDomain() *receivable.CollectionLog {
	return &receivable.CollectionLog{
		BaseEntity:   m.BaseModel.ToDomain(),
		CustomerID:   m.CustomerID,
		DocumentID:   m.DocumentID,
		Channel:      m.Channel,
		Summary:      m.Summary,
		Promise:      m.Promise,
		PromisedAt:   m.PromisedAt,
		NextActionAt: m.NextActionAt,
		ContactedBy:  m.ContactedBy,
		ContactedAt:  m.ContactedAt,
	}
}

// FromDomain populates the persistence model from a domain CollectionLog entity.
func (m *CollectionLogModel) FromDomain(l *receivable.CollectionLog) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.CustomerID = l.CustomerID
	m.DocumentID = l.DocumentID
	m.Channel = l.Channel
	m.Summary = l.Summary
	m.Promise = l.Promise
	m.PromisedAt = l.PromisedAt
	m.NextActionAt = l.NextActionAt
	m.ContactedBy = l.ContactedBy
	m.ContactedAt = l.ContactedAt
}

// CollectionLogModelFromDomain creates a new persistence model from a domain CollectionLog entity.
func CollectionLogModelFromDomain(l *receivable.CollectionLog) *CollectionLogModel {
	m := &CollectionLogModel{}
	m.FromDomain(l)
	return m
}

// DisputeModel is the persistence model for disputes.
type DisputeModel struct {
	AuditedAggregateModel
	DocumentID  uuid.UUID                `gorm:"type:uuid;not null;index"`
	CustomerID  uuid.UUID                `gorm:"type:uuid;not null;index"`
	Status      receivable.DisputeStatus `gorm:"type:varchar(20);not null;default:'open';index"`
	Reason      string                   `gorm:"type:text;not null"`
	Resolution  string                   `gorm:"type:text"`
	ResolvedAt  *time.Time
	ResolvedBy  *uuid.UUID               `gorm:"type:uuid"`
	Attachments []DisputeAttachmentModel `gorm:"foreignKey:DisputeID"`
}

// TableName returns the table name for GORM
func (DisputeModel) TableName() string {
	return "disputes"
}

// ToDomain converts the persistence model to a domain Dispute entity.
func (m *DisputeModel) ToDomain() *receivable.Dispute {
	attachments := make([]receivable.DisputeAttachment, len(m.Attachments))
	for i, a := range m.Attachments {
		attachments[i] = a.ToDomain()
	}

	d := &receivable.Dispute{
		DocumentID:  m.DocumentID,
		CustomerID:  m.CustomerID,
		Status:      m.Status,
		Reason:      m.Reason,
		Resolution:  m.Resolution,
		ResolvedAt:  m.ResolvedAt,
		ResolvedBy:  m.ResolvedBy,
		Attachments: attachments,
	}
	m.PopulateAuditedAggregateRoot(&d.AuditedAggregateRoot)
	return d
}

// FromDomain populates the persistence model from a domain Dispute entity.
func (m *DisputeModel) FromDomain(d *receivable.Dispute) {
	m.FromDomainAuditedAggregateRoot(d.AuditedAggregateRoot)
	m.DocumentID = d.DocumentID
	m.CustomerID = d.CustomerID
	m.Status = d.Status
	m.Reason = d.Reason
	m.Resolution = d.Resolution
	m.ResolvedAt = d.ResolvedAt
	m.ResolvedBy = d.ResolvedBy

	m.Attachments = make([]DisputeAttachmentModel, len(d.Attachments))
	for i, a := range d.Attachments {
		m.Attachments[i].FromDomain(a)
	}
}

// DisputeModelFromDomain creates a new persistence model from a domain Dispute entity.
func DisputeModelFromDomain(d *receivable.Dispute) *DisputeModel {
	m := &DisputeModel{}
	m.FromDomain(d)
	return m
}

// DisputeAttachmentModel is the persistence model for dispute attachments.
type DisputeAttachmentModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	DisputeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	FileName   string     `gorm:"type:varchar(255);not null"`
	StorageKey string     `gorm:"type:varchar(500);not null"`
	Size       int64      `gorm:"not null;default:0"`
	UploadedAt time.Time  `gorm:"not null"`
	UploadedBy *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (DisputeAttachmentModel) TableName() string {
	return "dispute_attachments"
}

// ToDomain converts the persistence model to a domain DisputeAttachment.
func (m *DisputeAttachmentModel) ToDomain() receivable.DisputeAttachment {
	return receivable.DisputeAttachment{
		ID:         m.ID,
		DisputeID:  m.DisputeID,
		FileName:   m.FileName,
		StorageKey: m.StorageKey,
		Size:       m.Size,
		UploadedAt: m.UploadedAt,
		UploadedBy: m.UploadedBy,
	}
}

// FromDomain populates the persistence model from a domain DisputeAttachment.
func (m *DisputeAttachmentModel) FromDomain(a receivable.DisputeAttachment) {
	m.ID = a.ID
	m.DisputeID = a.DisputeID
	m.FileName = a.FileName
	m.StorageKey = a.StorageKey
	m.Size = a.Size
	m.UploadedAt = a.UploadedAt
	m.UploadedBy = a.UploadedBy
}
