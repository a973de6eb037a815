package partner

import (
	"testing"

	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates active customer", func(t *testing.T) {
		c, err := NewCustomer("cli-001", "Distribuidora El Sol C.A.", CustomerTypeCompany)
		require.NoError(t, err)
		assert.Equal(t, "CLI-001", c.Code)
		assert.Equal(t, CustomerStatusActive, c.Status)
		assert.False(t, c.HasCredit())
		assert.Len(t, c.GetDomainEvents(), 1)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewCustomer("CLI-002", "Alguien", CustomerType("government"))
		assert.Error(t, err)
	})
}

func TestCustomer_SetTaxID(t *testing.T) {
	c, err := NewCustomer("CLI-003", "Panadería La Espiga", CustomerTypeCompany)
	require.NoError(t, err)

	require.NoError(t, c.SetTaxID("j-12345678-9"))
	assert.Equal(t, "J-12345678-9", c.TaxID)

	require.NoError(t, c.SetTaxID("V12345678"))
	assert.Error(t, c.SetTaxID("not-a-rif"))
}

func TestCustomer_CreditTerms(t *testing.T) {
	c, err := NewCustomer("CLI-004", "Cliente Crédito", CustomerTypeCompany)
	require.NoError(t, err)

	limit, err := valueobject.NewMoney(decimal.NewFromInt(5000), valueobject.VES)
	require.NoError(t, err)
	termID := uuid.New()

	require.NoError(t, c.SetCreditTerms(limit, &termID))
	assert.True(t, c.HasCredit())
	assert.Equal(t, termID, *c.PaymentTermID)

	neg := limit.Negate()
	assert.Error(t, c.SetCreditTerms(neg, nil))
}

func TestCustomer_BlockAndLifecycle(t *testing.T) {
	c, err := NewCustomer("CLI-005", "Cliente Moroso", CustomerTypeIndividual)
	require.NoError(t, err)

	limit, _ := valueobject.NewMoney(decimal.NewFromInt(1000), valueobject.VES)
	require.NoError(t, c.SetCreditTerms(limit, nil))

	require.NoError(t, c.Block("saldo vencido mayor a 90 días"))
	assert.Equal(t, CustomerStatusBlocked, c.Status)
	assert.False(t, c.HasCredit())
	assert.Error(t, c.Block("again"))

	require.NoError(t, c.Unblock())
	assert.True(t, c.HasCredit())
	assert.Error(t, c.Unblock())

	require.NoError(t, c.Deactivate())
	assert.False(t, c.IsActive())
	require.NoError(t, c.Activate())
	assert.True(t, c.IsActive())
}
