package restaurant

import (
	"testing"

	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ves(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(amount, valueobject.VES)
	require.NoError(t, err)
	return m
}

func newOpenOrder(t *testing.T) *Order {
	t.Helper()
	tableID := uuid.New()
	order, err := NewOrder("PED-000001", &tableID, uuid.New(), 4, valueobject.VES)
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("opens table order", func(t *testing.T) {
		tableID := uuid.New()
		order, err := NewOrder("PED-000001", &tableID, uuid.New(), 2, valueobject.VES)
		require.NoError(t, err)
		assert.Equal(t, OrderStatusOpen, order.Status)
		assert.Len(t, order.GetDomainEvents(), 1)
	})

	t.Run("takeaway order has no table", func(t *testing.T) {
		order, err := NewOrder("PED-000002", nil, uuid.New(), 0, valueobject.VES)
		require.NoError(t, err)
		assert.Nil(t, order.TableID)
	})

	t.Run("waiter required", func(t *testing.T) {
		_, err := NewOrder("PED-000003", nil, uuid.Nil, 0, valueobject.VES)
		assert.Error(t, err)
	})
}

func TestOrder_Items(t *testing.T) {
	order := newOpenOrder(t)

	require.NoError(t, order.AddItem(uuid.New(), "PARRILLA", "Parrilla mixta", decimal.NewFromInt(1), ves(t, "450"), "término medio"))
	require.NoError(t, order.AddItem(uuid.New(), "REF-330", "Refresco", decimal.NewFromInt(2), ves(t, "25"), ""))

	assert.True(t, order.Total().Equals(ves(t, "500")))

	t.Run("cancelled item excluded from total", func(t *testing.T) {
		itemID := order.Items[1].ID
		require.NoError(t, order.CancelItem(itemID))
		assert.True(t, order.Total().Equals(ves(t, "450")))
		assert.Len(t, order.ActiveItems(), 1)
		assert.Error(t, order.CancelItem(itemID))
	})

	t.Run("served item cannot be cancelled", func(t *testing.T) {
		itemID := order.Items[0].ID
		require.NoError(t, order.MarkItemStatus(itemID, OrderItemStatusPreparing))
		require.NoError(t, order.MarkItemStatus(itemID, OrderItemStatusServed))
		assert.Error(t, order.CancelItem(itemID))
	})

	t.Run("currency mismatch rejected", func(t *testing.T) {
		usd, err := valueobject.NewMoneyFromString("5", valueobject.USD)
		require.NoError(t, err)
		assert.Error(t, order.AddItem(uuid.New(), "X", "x", decimal.NewFromInt(1), usd, ""))
	})
}

func TestOrder_CloseAndCancel(t *testing.T) {
	t.Run("empty order cannot close", func(t *testing.T) {
		order := newOpenOrder(t)
		assert.Error(t, order.Close(uuid.New()))
	})

	t.Run("close links the invoice", func(t *testing.T) {
		order := newOpenOrder(t)
		require.NoError(t, order.AddItem(uuid.New(), "A", "a", decimal.NewFromInt(1), ves(t, "100"), ""))

		invoiceID := uuid.New()
		require.NoError(t, order.Close(invoiceID))
		assert.Equal(t, OrderStatusClosed, order.Status)
		assert.Equal(t, invoiceID, *order.InvoiceID)
		assert.NotNil(t, order.ClosedAt)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderClosed, events[0].EventType())

		assert.Error(t, order.AddItem(uuid.New(), "B", "b", decimal.NewFromInt(1), ves(t, "10"), ""))
		assert.Error(t, order.Close(uuid.New()))
	})

	t.Run("cancel voids an open order", func(t *testing.T) {
		order := newOpenOrder(t)
		require.NoError(t, order.Cancel("mesa se retiró"))
		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.Error(t, order.Cancel("otra vez"))
	})
}

func TestTable_Lifecycle(t *testing.T) {
	table, err := NewTable("m-05", uuid.New(), 4)
	require.NoError(t, err)
	assert.Equal(t, "M-05", table.Code)
	assert.Equal(t, TableStatusAvailable, table.Status)

	orderID := uuid.New()
	require.NoError(t, table.Occupy(orderID))
	assert.Equal(t, TableStatusOccupied, table.Status)
	assert.Equal(t, orderID, *table.CurrentOrderID)

	t.Run("occupied table rejects second order", func(t *testing.T) {
		assert.Error(t, table.Occupy(uuid.New()))
	})

	t.Run("occupied table cannot go out of service", func(t *testing.T) {
		assert.Error(t, table.TakeOutOfService())
	})

	require.NoError(t, table.Free())
	assert.Nil(t, table.CurrentOrderID)

	require.NoError(t, table.Hold())
	assert.Equal(t, TableStatusReserved, table.Status)
	require.NoError(t, table.Free())

	require.NoError(t, table.TakeOutOfService())
	assert.Error(t, table.Occupy(uuid.New()))
	require.NoError(t, table.ReturnToService())
	assert.Equal(t, TableStatusAvailable, table.Status)
}
