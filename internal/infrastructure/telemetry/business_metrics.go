package telemetry

import (
	"context"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/inventory"
	"github.com/gestion/backend/internal/domain/receivable"
	"github.com/gestion/backend/internal/domain/restaurant"
	"github.com/gestion/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics subscribes to the domain event bus and turns business
// events into instruments: invoices issued and paid, receivable
// applications, kardex movements and open-order table occupancy.
type BusinessMetrics struct {
	invoicesIssued  *Counter
	invoicesPaid    *Counter
	paymentsApplied *Counter
	stockMovements  *Counter
	openOrders      *UpDownCounter
}

// NewBusinessMetrics creates the instruments on the given meter
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	invoicesIssued, err := NewCounter(meter, "billing.invoices.issued", "Invoices issued", "{invoice}")
	if err != nil {
		return nil, err
	}
	invoicesPaid, err := NewCounter(meter, "billing.invoices.paid", "Invoices fully paid", "{invoice}")
	if err != nil {
		return nil, err
	}
	paymentsApplied, err := NewCounter(meter, "receivable.applications.recorded", "Payments and credit notes applied to receivable documents", "{application}")
	if err != nil {
		return nil, err
	}
	stockMovements, err := NewCounter(meter, "inventory.movements.posted", "Kardex movements posted", "{movement}")
	if err != nil {
		return nil, err
	}
	openOrders, err := NewUpDownCounter(meter, "restaurant.orders.open", "Restaurant orders currently open", "{order}")
	if err != nil {
		return nil, err
	}

	return &BusinessMetrics{
		invoicesIssued:  invoicesIssued,
		invoicesPaid:    invoicesPaid,
		paymentsApplied: paymentsApplied,
		stockMovements:  stockMovements,
		openOrders:      openOrders,
	}, nil
}

// EventTypes implements shared.EventHandler
func (m *BusinessMetrics) EventTypes() []string {
	return []string{
		billing.EventTypeInvoiceIssued,
		billing.EventTypeInvoicePaid,
		receivable.EventTypeApplicationRecorded,
		inventory.EventTypeStockMovementPosted,
		restaurant.EventTypeOrderOpened,
		restaurant.EventTypeOrderClosed,
		restaurant.EventTypeOrderCancelled,
	}
}

// Handle implements shared.EventHandler. Recording never fails.
func (m *BusinessMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *billing.InvoiceIssuedEvent:
		m.invoicesIssued.Inc(ctx)
	case *billing.InvoicePaidEvent:
		m.invoicesPaid.Inc(ctx)
	case *receivable.ApplicationRecordedEvent:
		m.paymentsApplied.Inc(ctx, AttrApplicationType.String(string(e.ApplicationType)))
	case *inventory.StockMovementPostedEvent:
		m.stockMovements.Inc(ctx,
			AttrMovementType.String(string(e.MovementType)),
			AttrWarehouseID.String(e.WarehouseID.String()),
		)
	case *restaurant.OrderOpenedEvent:
		m.openOrders.Add(ctx, 1)
	case *restaurant.OrderClosedEvent:
		m.openOrders.Add(ctx, -1)
	case *restaurant.OrderCancelledEvent:
		m.openOrders.Add(ctx, -1)
	}
	return nil
}

var _ shared.EventHandler = (*BusinessMetrics)(nil)
