package receivable

import (
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the receivable context
const (
	EventTypeDocumentCreated     = "receivable.document.created"
	EventTypeDocumentSettled     = "receivable.document.settled"
	EventTypeDocumentCancelled   = "receivable.document.cancelled"
	EventTypeDocumentOverdue     = "receivable.document.overdue"
	EventTypeApplicationRecorded = "receivable.application.recorded"
	EventTypeApplicationReversed = "receivable.application.reversed"
	EventTypeDisputeOpened       = "receivable.dispute.opened"
	EventTypeDisputeResolved     = "receivable.dispute.resolved"
)

// DocumentCreatedEvent is emitted when a receivable document is created
type DocumentCreatedEvent struct {
	shared.BaseDomainEvent
	Number     string          `json:"number"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// NewDocumentCreatedEvent creates a new DocumentCreatedEvent
func NewDocumentCreatedEvent(d *CustomerDocument) *DocumentCreatedEvent {
	return &DocumentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentCreated, "CustomerDocument", d.ID),
		Number:          d.Number,
		CustomerID:      d.CustomerID,
		Amount:          d.Amount,
	}
}

// DocumentSettledEvent is emitted when the balance reaches zero
type DocumentSettledEvent struct {
	shared.BaseDomainEvent
	Number     string    `json:"number"`
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewDocumentSettledEvent creates a new DocumentSettledEvent
func NewDocumentSettledEvent(d *CustomerDocument) *DocumentSettledEvent {
	return &DocumentSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentSettled, "CustomerDocument", d.ID),
		Number:          d.Number,
		CustomerID:      d.CustomerID,
	}
}

// DocumentCancelledEvent is emitted when a document is voided
type DocumentCancelledEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Reason string `json:"reason"`
}

// NewDocumentCancelledEvent creates a new DocumentCancelledEvent
func NewDocumentCancelledEvent(d *CustomerDocument, reason string) *DocumentCancelledEvent {
	return &DocumentCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentCancelled, "CustomerDocument", d.ID),
		Number:          d.Number,
		Reason:          reason,
	}
}

// DocumentOverdueEvent is emitted by the overdue sweep when a document
// passes its due date
type DocumentOverdueEvent struct {
	shared.BaseDomainEvent
	Number      string          `json:"number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Balance     decimal.Decimal `json:"balance"`
	DaysOverdue int             `json:"days_overdue"`
}

// NewDocumentOverdueEvent creates a new DocumentOverdueEvent
func NewDocumentOverdueEvent(d *CustomerDocument) *DocumentOverdueEvent {
	return &DocumentOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentOverdue, "CustomerDocument", d.ID),
		Number:          d.Number,
		CustomerID:      d.CustomerID,
		Balance:         d.Balance(),
		DaysOverdue:     d.DaysOverdue(),
	}
}

// ApplicationRecordedEvent is emitted when a payment or credit note is
// applied against a document
type ApplicationRecordedEvent struct {
	shared.BaseDomainEvent
	Number          string          `json:"number"`
	ApplicationID   uuid.UUID       `json:"application_id"`
	ApplicationType ApplicationType `json:"application_type"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"`
}

// NewApplicationRecordedEvent creates a new ApplicationRecordedEvent
func NewApplicationRecordedEvent(d *CustomerDocument, app *Application) *ApplicationRecordedEvent {
	return &ApplicationRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationRecorded, "CustomerDocument", d.ID),
		Number:          d.Number,
		ApplicationID:   app.ID,
		ApplicationType: app.Type,
		Amount:          app.Amount,
		Balance:         d.Balance(),
	}
}

// ApplicationReversedEvent is emitted when an application is undone
type ApplicationReversedEvent struct {
	shared.BaseDomainEvent
	Number        string          `json:"number"`
	ApplicationID uuid.UUID       `json:"application_id"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason"`
}

// NewApplicationReversedEvent creates a new ApplicationReversedEvent
func NewApplicationReversedEvent(d *CustomerDocument, app *Application) *ApplicationReversedEvent {
	return &ApplicationReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationReversed, "CustomerDocument", d.ID),
		Number:          d.Number,
		ApplicationID:   app.ID,
		Amount:          app.Amount,
		Reason:          app.ReversalReason,
	}
}

// DisputeOpenedEvent is emitted when a dispute is opened
type DisputeOpenedEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID `json:"document_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Reason     string    `json:"reason"`
}

// NewDisputeOpenedEvent creates a new DisputeOpenedEvent
func NewDisputeOpenedEvent(d *Dispute) *DisputeOpenedEvent {
	return &DisputeOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDisputeOpened, "Dispute", d.ID),
		DocumentID:      d.DocumentID,
		CustomerID:      d.CustomerID,
		Reason:          d.Reason,
	}
}

// DisputeResolvedEvent is emitted when a dispute closes
type DisputeResolvedEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID     `json:"document_id"`
	Status     DisputeStatus `json:"status"`
	Resolution string        `json:"resolution"`
}

// NewDisputeResolvedEvent creates a new DisputeResolvedEvent
func NewDisputeResolvedEvent(d *Dispute) *DisputeResolvedEvent {
	return &DisputeResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDisputeResolved, "Dispute", d.ID),
		DocumentID:      d.DocumentID,
		Status:          d.Status,
		Resolution:      d.Resolution,
	}
}
