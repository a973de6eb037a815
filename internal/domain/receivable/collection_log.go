package receivable

import (
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactChannel is how the customer was reached
type ContactChannel string

const (
	ContactChannelPhone    ContactChannel = "phone"
	ContactChannelEmail    ContactChannel = "email"
	ContactChannelWhatsapp ContactChannel = "whatsapp"
	ContactChannelVisit    ContactChannel = "visit"
)

// CollectionLog records one collection contact with a customer about an
// outstanding document
type CollectionLog struct {
	shared.BaseEntity
	CustomerID   uuid.UUID
	DocumentID   *uuid.UUID // Optional: contact about a specific document
	Channel      ContactChannel
	Summary      string
	Promise      string     // What the customer committed to, if anything
	PromisedAt   *time.Time // Promised payment date
	NextActionAt *time.Time
	ContactedBy  *uuid.UUID
	ContactedAt  time.Time
}

// NewCollectionLog records a collection contact
func NewCollectionLog(customerID uuid.UUID, channel ContactChannel, summary string, contactedBy *uuid.UUID) (*CollectionLog, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	switch channel {
	case ContactChannelPhone, ContactChannelEmail, ContactChannelWhatsapp, ContactChannelVisit:
	default:
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Unknown contact channel")
	}
	if summary == "" {
		return nil, shared.NewDomainError("SUMMARY_REQUIRED", "Contact summary cannot be empty")
	}

	return &CollectionLog{
		BaseEntity:  shared.NewBaseEntity(),
		CustomerID:  customerID,
		Channel:     channel,
		Summary:     summary,
		ContactedBy: contactedBy,
		ContactedAt: time.Now(),
	}, nil
}

// ForDocument ties the contact to a specific document
func (c *CollectionLog) ForDocument(documentID uuid.UUID) *CollectionLog {
	c.DocumentID = &documentID
	return c
}

// WithPromise records a payment promise made during the contact
func (c *CollectionLog) WithPromise(promise string, promisedAt *time.Time) *CollectionLog {
	c.Promise = promise
	c.PromisedAt = promisedAt
	return c
}

// WithNextAction schedules a follow-up
func (c *CollectionLog) WithNextAction(at time.Time) *CollectionLog {
	c.NextActionAt = &at
	return c
}
