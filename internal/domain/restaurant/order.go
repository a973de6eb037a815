package restaurant

import (
	"strings"
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle of a restaurant order
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusClosed    OrderStatus = "closed" // Sent to billing
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItemStatus tracks the kitchen state of one order line
type OrderItemStatus string

const (
	OrderItemStatusPending   OrderItemStatus = "pending"
	OrderItemStatusPreparing OrderItemStatus = "preparing"
	OrderItemStatusServed    OrderItemStatus = "served"
	OrderItemStatusCancelled OrderItemStatus = "cancelled"
)

// OrderItem is one line of an order
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ArticleID uuid.UUID
	Code      string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice valueobject.Money
	Notes     string // Kitchen notes ("sin cebolla")
	Status    OrderItemStatus
	AddedAt   time.Time
}

// LineTotal returns the line amount for active items
func (i *OrderItem) LineTotal() valueobject.Money {
	if i.Status == OrderItemStatusCancelled {
		return valueobject.Zero(i.UnitPrice.Currency())
	}
	return i.UnitPrice.Multiply(i.Quantity)
}

// Order is the aggregate root for table service. It accumulates items
// while open and is settled by the invoice created when it closes.
type Order struct {
	shared.AuditedAggregateRoot
	Number    string
	TableID   *uuid.UUID // Nil for takeaway orders
	WaiterID  uuid.UUID
	Status    OrderStatus
	Guests    int
	Currency  valueobject.Currency
	Items     []OrderItem
	OpenedAt  time.Time
	ClosedAt  *time.Time
	InvoiceID *uuid.UUID // Set when billing settles the order
	Notes     string
}

// NewOrder opens an order for a table or for takeaway (nil tableID)
func NewOrder(number string, tableID *uuid.UUID, waiterID uuid.UUID, guests int, currency valueobject.Currency) (*Order, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Order number cannot be empty")
	}
	if waiterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAITER", "Waiter ID cannot be empty")
	}
	if guests < 0 || guests > 50 {
		return nil, shared.NewDomainError("INVALID_GUESTS", "Guest count must be between 0 and 50")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is not supported")
	}

	order := &Order{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Number:               number,
		TableID:              tableID,
		WaiterID:             waiterID,
		Status:               OrderStatusOpen,
		Guests:               guests,
		Currency:             currency,
		Items:                make([]OrderItem, 0),
		OpenedAt:             time.Now(),
	}

	order.AddDomainEvent(NewOrderOpenedEvent(order))

	return order, nil
}

// AddItem appends a line to an open order
func (o *Order) AddItem(articleID uuid.UUID, code, name string, quantity decimal.Decimal, unitPrice valueobject.Money, notes string) error {
	if o.Status != OrderStatusOpen {
		return shared.NewDomainError("ORDER_NOT_OPEN", "Items can only be added to open orders")
	}
	if articleID == uuid.Nil {
		return shared.NewDomainError("INVALID_ARTICLE", "Article ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitPrice.Currency() != o.Currency {
		return shared.NewDomainError("CURRENCY_MISMATCH", "Item price currency must match the order currency")
	}

	o.Items = append(o.Items, OrderItem{
		ID:        uuid.New(),
		OrderID:   o.ID,
		ArticleID: articleID,
		Code:      code,
		Name:      strings.TrimSpace(name),
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Notes:     notes,
		Status:    OrderItemStatusPending,
		AddedAt:   time.Now(),
	})
	o.Touch()
	o.IncrementVersion()

	return nil
}

// CancelItem voids a line that has not been served yet
func (o *Order) CancelItem(itemID uuid.UUID) error {
	if o.Status != OrderStatusOpen {
		return shared.NewDomainError("ORDER_NOT_OPEN", "Items can only be cancelled on open orders")
	}

	for i := range o.Items {
		if o.Items[i].ID == itemID {
			if o.Items[i].Status == OrderItemStatusServed {
				return shared.NewDomainError("ITEM_SERVED", "Served items cannot be cancelled")
			}
			if o.Items[i].Status == OrderItemStatusCancelled {
				return shared.NewDomainError("ITEM_CANCELLED", "Item is already cancelled")
			}
			o.Items[i].Status = OrderItemStatusCancelled
			o.Touch()
			o.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// MarkItemStatus advances a line through the kitchen workflow
func (o *Order) MarkItemStatus(itemID uuid.UUID, status OrderItemStatus) error {
	if o.Status != OrderStatusOpen {
		return shared.NewDomainError("ORDER_NOT_OPEN", "Order is not open")
	}
	switch status {
	case OrderItemStatusPreparing, OrderItemStatusServed:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Item can only move to preparing or served")
	}

	for i := range o.Items {
		if o.Items[i].ID == itemID {
			if o.Items[i].Status == OrderItemStatusCancelled {
				return shared.NewDomainError("ITEM_CANCELLED", "Cancelled items cannot change status")
			}
			o.Items[i].Status = status
			o.Touch()
			o.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// ActiveItems returns the lines that will be billed
func (o *Order) ActiveItems() []OrderItem {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		if item.Status != OrderItemStatusCancelled {
			items = append(items, item)
		}
	}
	return items
}

// Total sums the active lines
func (o *Order) Total() valueobject.Money {
	total := valueobject.Zero(o.Currency)
	for _, item := range o.Items {
		total, _ = total.Add(item.LineTotal())
	}
	return total
}

// Close settles the order and records the invoice that billed it
func (o *Order) Close(invoiceID uuid.UUID) error {
	if o.Status != OrderStatusOpen {
		return shared.NewDomainError("ORDER_NOT_OPEN", "Only open orders can be closed")
	}
	if len(o.ActiveItems()) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order has no billable items")
	}
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}

	now := time.Now()
	o.Status = OrderStatusClosed
	o.ClosedAt = &now
	o.InvoiceID = &invoiceID
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderClosedEvent(o))

	return nil
}

// Cancel voids an open order
func (o *Order) Cancel(reason string) error {
	if o.Status != OrderStatusOpen {
		return shared.NewDomainError("ORDER_NOT_OPEN", "Only open orders can be cancelled")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.ClosedAt = &now
	if reason != "" {
		o.Notes = reason
	}
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCancelledEvent(o, reason))

	return nil
}
