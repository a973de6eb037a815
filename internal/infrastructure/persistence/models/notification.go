package models

import (
	"time"

	"github.com/gestion/backend/internal/domain/notification"
	"github.com/google/uuid"
)

// ChannelModel is the persistence model for notification channels.
type ChannelModel struct {
	AuditedAggregateModel
	Code       string                     `gorm:"type:varchar(30);not null;uniqueIndex"`
	Name       string                     `gorm:"type:varchar(100);not null"`
	Kind       notification.ChannelKind   `gorm:"type:varchar(20);not null"`
	Target     string                     `gorm:"type:varchar(500);not null"`
	Secret     string                     `gorm:"type:varchar(255)"`
	EventTypes notification.EventTypeList `gorm:"type:jsonb;not null;default:'[]'"`
	Active     bool                       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ChannelModel) TableName() string {
	return "notification_channels"
}

// ToDomain converts the persistence model to a domain Channel entity.
func (m *ChannelModel) ToDomain() *notification.Channel {
	c := &notification.Channel{
		Code:       m.Code,
		Name:       m.Name,
		Kind:       m.Kind,
		Target:     m.Target,
		Secret:     m.Secret,
		EventTypes: m.EventTypes,
		Active:     m.Active,
	}
	m.PopulateAuditedAggregateRoot(&c.AuditedAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Channel entity.
func (m *ChannelModel) FromDomain(c *notification.Channel) {
	m.FromDomainAuditedAggregateRoot(c.AuditedAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Kind = c.Kind
	m.Target = c.Target
	m.Secret = c.Secret
	m.EventTypes = c.EventTypes
	m.Active = c.Active
}

// ChannelModelFromDomain creates a new persistence model from a domain Channel entity.
func ChannelModelFromDomain(c *notification.Channel) *ChannelModel {
	m := &ChannelModel{}
	m.FromDomain(c)
	return m
}

// DeliveryLogModel is the persistence model for delivery logs.
type DeliveryLogModel struct {
	BaseModel
	ChannelID uuid.UUID                   `gorm:"type:uuid;not null;index"`
	EventType string                      `gorm:"type:varchar(100);not null;index"`
	Payload   string                      `gorm:"type:jsonb;not null;default:'{}'"`
	Status    notification.DeliveryStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Attempts  int                         `gorm:"not null;default:0"`
	LastError string                      `gorm:"type:text"`
	SentAt    *time.Time
}

// TableName returns the table name for GORM
func (DeliveryLogModel) TableName() string {
	return "notification_deliveries"
}

// ToDomain converts the persistence model to a domain DeliveryLog entity.
func (m *DeliveryLogModel) ToDomain() *notification.DeliveryLog {
	return &notification.DeliveryLog{
		BaseEntity: m.BaseModel.ToDomain(),
		ChannelID:  m.ChannelID,
		EventType:  m.EventType,
		Payload:    m.Payload,
		Status:     m.Status,
		Attempts:   m.Attempts,
		LastError:  m.LastError,
		SentAt:     m.SentAt,
	}
}

// FromDomain populates the persistence model from a domain DeliveryLog entity.
func (m *DeliveryLogModel) FromDomain(l *notification.DeliveryLog) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.ChannelID = l.ChannelID
	m.EventType = l.EventType
	m.Payload = l.Payload
	m.Status = l.Status
	m.Attempts = l.Attempts
	m.LastError = l.LastError
	m.SentAt = l.SentAt
}

// DeliveryLogModelFromDomain creates a new persistence model from a domain DeliveryLog entity.
func DeliveryLogModelFromDomain(l *notification.DeliveryLog) *DeliveryLogModel {
	m := &DeliveryLogModel{}
	m.FromDomain(l)
	return m
}
