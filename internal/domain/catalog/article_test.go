package catalog

import (
	"testing"

	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(amount, valueobject.VES)
	require.NoError(t, err)
	return m
}

func TestNewArticle(t *testing.T) {
	t.Run("creates product article tracking stock", func(t *testing.T) {
		a, err := NewArticle("harina-01", "Harina de maíz 1kg", ArticleTypeProduct, "UND", mustMoney(t, "35.50"))
		require.NoError(t, err)

		assert.Equal(t, "HARINA-01", a.Code)
		assert.Equal(t, ArticleStatusActive, a.Status)
		assert.True(t, a.TrackStock)
		assert.True(t, a.IsSellable())
		assert.Len(t, a.GetDomainEvents(), 1)
	})

	t.Run("service articles do not track stock", func(t *testing.T) {
		a, err := NewArticle("DELIVERY", "Servicio de entrega", ArticleTypeService, "UND", mustMoney(t, "10"))
		require.NoError(t, err)
		assert.False(t, a.TrackStock)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		neg := mustMoney(t, "-1")
		_, err := NewArticle("X", "X", ArticleTypeProduct, "UND", neg)
		assert.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewArticle("X", "X", ArticleType("combo"), "UND", mustMoney(t, "1"))
		assert.Error(t, err)
	})
}

func TestArticle_SetBasePrice(t *testing.T) {
	a, err := NewArticle("REF-330", "Refresco 330ml", ArticleTypeProduct, "UND", mustMoney(t, "20"))
	require.NoError(t, err)
	a.ClearDomainEvents()

	require.NoError(t, a.SetBasePrice(mustMoney(t, "25")))
	assert.True(t, a.BasePrice.Equals(mustMoney(t, "25")))

	events := a.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeArticlePriceChanged, events[0].EventType())

	assert.Error(t, a.SetBasePrice(mustMoney(t, "-5")))
}

func TestArticle_TaxAndStockSettings(t *testing.T) {
	a, err := NewArticle("CERV-01", "Cerveza nacional", ArticleTypeProduct, "UND", mustMoney(t, "40"))
	require.NoError(t, err)

	require.NoError(t, a.SetTaxRate(decimal.NewFromInt(16)))
	assert.Error(t, a.SetTaxRate(decimal.NewFromInt(120)))

	require.NoError(t, a.SetMinStock(decimal.NewFromInt(24)))
	assert.Error(t, a.SetMinStock(decimal.NewFromInt(-1)))

	svc, err := NewArticle("SVC", "Servicio", ArticleTypeService, "UND", mustMoney(t, "1"))
	require.NoError(t, err)
	assert.Error(t, svc.SetMinStock(decimal.NewFromInt(5)))
}

func TestArticle_KitComponents(t *testing.T) {
	kit, err := NewArticle("COMBO-1", "Combo desayuno", ArticleTypeKit, "UND", mustMoney(t, "80"))
	require.NoError(t, err)

	componentID := uuid.New()

	t.Run("empty kit is not sellable", func(t *testing.T) {
		assert.False(t, kit.IsSellable())
	})

	t.Run("add component", func(t *testing.T) {
		require.NoError(t, kit.AddComponent(componentID, decimal.NewFromInt(2)))
		assert.Len(t, kit.Components, 1)
		assert.True(t, kit.IsSellable())
	})

	t.Run("duplicate component fails", func(t *testing.T) {
		assert.Error(t, kit.AddComponent(componentID, decimal.NewFromInt(1)))
	})

	t.Run("self-reference fails", func(t *testing.T) {
		assert.Error(t, kit.AddComponent(kit.ID, decimal.NewFromInt(1)))
	})

	t.Run("zero quantity fails", func(t *testing.T) {
		assert.Error(t, kit.AddComponent(uuid.New(), decimal.Zero))
	})

	t.Run("remove component", func(t *testing.T) {
		require.NoError(t, kit.RemoveComponent(componentID))
		assert.Empty(t, kit.Components)
		assert.Error(t, kit.RemoveComponent(componentID))
	})

	t.Run("non-kit rejects components", func(t *testing.T) {
		prod, err := NewArticle("P1", "Producto", ArticleTypeProduct, "UND", mustMoney(t, "1"))
		require.NoError(t, err)
		assert.Error(t, prod.AddComponent(uuid.New(), decimal.NewFromInt(1)))
	})
}

func TestArticle_Lifecycle(t *testing.T) {
	a, err := NewArticle("OLD-01", "Producto viejo", ArticleTypeProduct, "UND", mustMoney(t, "5"))
	require.NoError(t, err)

	require.NoError(t, a.Discontinue())
	assert.False(t, a.IsSellable())
	assert.Error(t, a.Discontinue())

	require.NoError(t, a.Reactivate())
	assert.True(t, a.IsSellable())
	assert.Error(t, a.Reactivate())
}
