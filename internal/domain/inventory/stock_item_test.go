package inventory

import (
	"errors"
	"testing"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T) *StockItem {
	t.Helper()
	item, err := NewStockItem(uuid.New(), uuid.New())
	require.NoError(t, err)
	return item
}

func cost(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(amount, valueobject.VES)
	require.NoError(t, err)
	return m
}

func TestStockItem_Receive(t *testing.T) {
	item := newTestItem(t)

	require.NoError(t, item.Receive(decimal.NewFromInt(10), cost(t, "5")))
	assert.True(t, item.OnHand.Equal(decimal.NewFromInt(10)))
	assert.True(t, item.AverageCost.Amount().Equal(decimal.NewFromInt(5)))

	t.Run("weighted average cost", func(t *testing.T) {
		// 10 @ 5 + 10 @ 7 => 20 @ 6
		require.NoError(t, item.Receive(decimal.NewFromInt(10), cost(t, "7")))
		assert.True(t, item.OnHand.Equal(decimal.NewFromInt(20)))
		assert.True(t, item.AverageCost.Amount().Equal(decimal.NewFromInt(6)), "got %s", item.AverageCost)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		assert.Error(t, item.Receive(decimal.Zero, cost(t, "1")))
		assert.Error(t, item.Receive(decimal.NewFromInt(-3), cost(t, "1")))
	})
}

func TestStockItem_Issue(t *testing.T) {
	item := newTestItem(t)
	require.NoError(t, item.Receive(decimal.NewFromInt(8), cost(t, "10")))

	require.NoError(t, item.Issue(decimal.NewFromInt(5)))
	assert.True(t, item.OnHand.Equal(decimal.NewFromInt(3)))

	t.Run("stock never goes negative", func(t *testing.T) {
		err := item.Issue(decimal.NewFromInt(4))
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
		assert.True(t, item.OnHand.Equal(decimal.NewFromInt(3)))
	})
}

func TestStockItem_Reservations(t *testing.T) {
	item := newTestItem(t)
	require.NoError(t, item.Receive(decimal.NewFromInt(10), cost(t, "2")))

	require.NoError(t, item.Reserve(decimal.NewFromInt(6)))
	assert.True(t, item.Available().Equal(decimal.NewFromInt(4)))

	t.Run("issue limited to available", func(t *testing.T) {
		err := item.Issue(decimal.NewFromInt(5))
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	})

	t.Run("reserve limited to available", func(t *testing.T) {
		err := item.Reserve(decimal.NewFromInt(5))
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	})

	t.Run("release frees stock", func(t *testing.T) {
		require.NoError(t, item.Release(decimal.NewFromInt(6)))
		assert.True(t, item.Available().Equal(decimal.NewFromInt(10)))
		assert.Error(t, item.Release(decimal.NewFromInt(1)))
	})
}

func TestStockItem_AdjustTo(t *testing.T) {
	item := newTestItem(t)
	require.NoError(t, item.Receive(decimal.NewFromInt(12), cost(t, "3")))

	diff, err := item.AdjustTo(decimal.NewFromInt(9))
	require.NoError(t, err)
	assert.True(t, diff.Equal(decimal.NewFromInt(-3)))
	assert.True(t, item.OnHand.Equal(decimal.NewFromInt(9)))

	diff, err = item.AdjustTo(decimal.NewFromInt(15))
	require.NoError(t, err)
	assert.True(t, diff.Equal(decimal.NewFromInt(6)))

	_, err = item.AdjustTo(decimal.NewFromInt(-1))
	assert.Error(t, err)

	t.Run("count below reserved fails", func(t *testing.T) {
		require.NoError(t, item.Reserve(decimal.NewFromInt(10)))
		_, err := item.AdjustTo(decimal.NewFromInt(5))
		assert.Error(t, err)
	})
}

func TestStockItem_IsBelowMinimum(t *testing.T) {
	item := newTestItem(t)
	require.NoError(t, item.Receive(decimal.NewFromInt(5), cost(t, "1")))

	assert.False(t, item.IsBelowMinimum(decimal.Zero))
	assert.False(t, item.IsBelowMinimum(decimal.NewFromInt(5)))
	assert.True(t, item.IsBelowMinimum(decimal.NewFromInt(6)))
}

func TestNewStockMovement(t *testing.T) {
	articleID := uuid.New()
	warehouseID := uuid.New()

	t.Run("entry must be positive", func(t *testing.T) {
		_, err := NewStockMovement(articleID, warehouseID, MovementTypeEntry, decimal.NewFromInt(-1), cost(t, "1"), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("exit must be negative", func(t *testing.T) {
		_, err := NewStockMovement(articleID, warehouseID, MovementTypeExit, decimal.NewFromInt(1), cost(t, "1"), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		_, err := NewStockMovement(articleID, warehouseID, MovementTypeAdjustment, decimal.Zero, cost(t, "1"), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("records reference and poster", func(t *testing.T) {
		userID := uuid.New()
		refID := uuid.New()
		m, err := NewStockMovement(articleID, warehouseID, MovementTypeExit, decimal.NewFromInt(-2), cost(t, "4"), decimal.NewFromInt(8))
		require.NoError(t, err)

		m.WithReference("invoice", "FAC-000123", &refID).WithPostedBy(userID).WithNotes("venta mostrador")
		assert.Equal(t, "FAC-000123", m.Reference)
		assert.Equal(t, userID, *m.PostedBy)
	})
}
