package billing

import (
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the billing context
const (
	EventTypeInvoiceIssued    = "billing.invoice.issued"
	EventTypeInvoicePaid      = "billing.invoice.paid"
	EventTypeInvoiceCancelled = "billing.invoice.cancelled"
)

// InvoiceIssuedEvent is emitted when a draft invoice gets its number
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	Number     string    `json:"number"`
	CustomerID uuid.UUID `json:"customer_id"`
	Total      string    `json:"total"`
	Credit     string    `json:"credit"`
}

// NewInvoiceIssuedEvent creates a new InvoiceIssuedEvent
func NewInvoiceIssuedEvent(inv *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceIssued, "Invoice", inv.ID),
		Number:          inv.Number,
		CustomerID:      inv.CustomerID,
		Total:           inv.Total.String(),
		Credit:          inv.CreditTotal().String(),
	}
}

// InvoicePaidEvent is emitted when the balance reaches zero
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	Number     string    `json:"number"`
	CustomerID uuid.UUID `json:"customer_id"`
	Total      string    `json:"total"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, "Invoice", inv.ID),
		Number:          inv.Number,
		CustomerID:      inv.CustomerID,
		Total:           inv.Total.String(),
	}
}

// InvoiceCancelledEvent is emitted when an issued invoice is voided
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	Number     string    `json:"number"`
	CustomerID uuid.UUID `json:"customer_id"`
	Reason     string    `json:"reason"`
}

// NewInvoiceCancelledEvent creates a new InvoiceCancelledEvent
func NewInvoiceCancelledEvent(inv *Invoice, reason string) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCancelled, "Invoice", inv.ID),
		Number:          inv.Number,
		CustomerID:      inv.CustomerID,
		Reason:          reason,
	}
}
