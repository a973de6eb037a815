package partner

import (
	"github.com/gestion/backend/internal/domain/shared"
)

// Event types for the partner context
const (
	EventTypeCustomerCreated       = "partner.customer.created"
	EventTypeCustomerCreditChanged = "partner.customer.credit_changed"
	EventTypeCustomerBlocked       = "partner.customer.blocked"
)

// CustomerCreatedEvent is emitted when a customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, "Customer", c.ID),
		Code:            c.Code,
		Name:            c.Name,
	}
}

// CustomerCreditChangedEvent is emitted when credit terms change
type CustomerCreditChangedEvent struct {
	shared.BaseDomainEvent
	Code        string `json:"code"`
	CreditLimit string `json:"credit_limit"`
}

// NewCustomerCreditChangedEvent creates a new CustomerCreditChangedEvent
func NewCustomerCreditChangedEvent(c *Customer) *CustomerCreditChangedEvent {
	return &CustomerCreditChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreditChanged, "Customer", c.ID),
		Code:            c.Code,
		CreditLimit:     c.CreditLimit.String(),
	}
}

// CustomerBlockedEvent is emitted when a customer's credit is suspended
type CustomerBlockedEvent struct {
	shared.BaseDomainEvent
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// NewCustomerBlockedEvent creates a new CustomerBlockedEvent
func NewCustomerBlockedEvent(c *Customer, reason string) *CustomerBlockedEvent {
	return &CustomerBlockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerBlocked, "Customer", c.ID),
		Code:            c.Code,
		Reason:          reason,
	}
}
