package restaurant

import (
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the restaurant context
const (
	EventTypeOrderOpened          = "restaurant.order.opened"
	EventTypeOrderClosed          = "restaurant.order.closed"
	EventTypeOrderCancelled       = "restaurant.order.cancelled"
	EventTypeReservationConfirmed = "restaurant.reservation.confirmed"
)

// OrderOpenedEvent is emitted when an order opens
type OrderOpenedEvent struct {
	shared.BaseDomainEvent
	Number   string     `json:"number"`
	TableID  *uuid.UUID `json:"table_id,omitempty"`
	WaiterID uuid.UUID  `json:"waiter_id"`
}

// NewOrderOpenedEvent creates a new OrderOpenedEvent
func NewOrderOpenedEvent(o *Order) *OrderOpenedEvent {
	return &OrderOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderOpened, "Order", o.ID),
		Number:          o.Number,
		TableID:         o.TableID,
		WaiterID:        o.WaiterID,
	}
}

// OrderClosedEvent is emitted when an order is billed
type OrderClosedEvent struct {
	shared.BaseDomainEvent
	Number    string     `json:"number"`
	TableID   *uuid.UUID `json:"table_id,omitempty"`
	InvoiceID *uuid.UUID `json:"invoice_id,omitempty"`
	Total     string     `json:"total"`
}

// NewOrderClosedEvent creates a new OrderClosedEvent
func NewOrderClosedEvent(o *Order) *OrderClosedEvent {
	return &OrderClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderClosed, "Order", o.ID),
		Number:          o.Number,
		TableID:         o.TableID,
		InvoiceID:       o.InvoiceID,
		Total:           o.Total().String(),
	}
}

// OrderCancelledEvent is emitted when an open order is voided
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Reason string `json:"reason"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, "Order", o.ID),
		Number:          o.Number,
		Reason:          reason,
	}
}

// ReservationConfirmedEvent is emitted when a reservation is confirmed
type ReservationConfirmedEvent struct {
	shared.BaseDomainEvent
	TableID     uuid.UUID `json:"table_id"`
	GuestName   string    `json:"guest_name"`
	PartySize   int       `json:"party_size"`
	ReservedFor time.Time `json:"reserved_for"`
}

// NewReservationConfirmedEvent creates a new ReservationConfirmedEvent
func NewReservationConfirmedEvent(r *Reservation) *ReservationConfirmedEvent {
	return &ReservationConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReservationConfirmed, "Reservation", r.ID),
		TableID:         r.TableID,
		GuestName:       r.GuestName,
		PartySize:       r.PartySize,
		ReservedFor:     r.ReservedFor,
	}
}
