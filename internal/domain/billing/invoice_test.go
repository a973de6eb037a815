package billing

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

func newDraft(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewDraftInvoice(uuid.New(), uuid.New(), valueobject.VES)
	require.NoError(t, err)
	return inv
}

func TestInvoice_AddItem(t *testing.T) {
	inv := newDraft(t)

	// 2 x 100, 10% discount, 16% tax => subtotal 180, tax 28.8, total 208.8
	err := inv.AddItem(uuid.New(), "ART-1", "Artículo uno", decimal.NewFromInt(2), ves(t, "100"), decimal.NewFromInt(10), decimal.NewFromInt(16))
	require.NoError(t, err)

	assert.True(t, inv.Subtotal.Equals(ves(t, "180")), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.DiscountTotal.Equals(ves(t, "20")), "discount %s", inv.DiscountTotal)
	assert.True(t, inv.TaxTotal.Equals(ves(t, "28.8")), "tax %s", inv.TaxTotal)
	assert.True(t, inv.Total.Equals(ves(t, "208.8")), "total %s", inv.Total)

	t.Run("currency mismatch rejected", func(t *testing.T) {
		usd, err := valueobject.NewMoneyFromString("5", valueobject.USD)
		require.NoError(t, err)
		assert.Error(t, inv.AddItem(uuid.New(), "X", "x", decimal.NewFromInt(1), usd, decimal.Zero, decimal.Zero))
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		assert.Error(t, inv.AddItem(uuid.New(), "X", "x", decimal.Zero, ves(t, "1"), decimal.Zero, decimal.Zero))
	})
}

func TestInvoice_ItemMutations(t *testing.T) {
	inv := newDraft(t)
	require.NoError(t, inv.AddItem(uuid.New(), "A", "a", decimal.NewFromInt(1), ves(t, "50"), decimal.Zero, decimal.Zero))
	itemID := inv.Items[0].ID

	require.NoError(t, inv.UpdateItemQuantity(itemID, decimal.NewFromInt(3)))
	assert.True(t, inv.Total.Equals(ves(t, "150")))

	require.NoError(t, inv.RemoveItem(itemID))
	assert.Empty(t, inv.Items)
	assert.True(t, inv.Total.IsZero())

	assert.Error(t, inv.RemoveItem(itemID))
}

func TestInvoice_Issue(t *testing.T) {
	t.Run("empty draft cannot be issued", func(t *testing.T) {
		inv := newDraft(t)
		assert.Error(t, inv.Issue("FAC-000001", nil, decimal.NewFromInt(1)))
	})

	t.Run("cash issue has no due date", func(t *testing.T) {
		inv := newDraft(t)
		require.NoError(t, inv.AddItem(uuid.New(), "A", "a", decimal.NewFromInt(1), ves(t, "10"), decimal.Zero, decimal.Zero))

		require.NoError(t, inv.Issue("FAC-000001", nil, decimal.NewFromInt(1)))
		assert.Equal(t, InvoiceStatusIssued, inv.Status)
		assert.Equal(t, "FAC-000001", inv.Number)
		assert.Nil(t, inv.DueDate)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceIssued, events[0].EventType())
	})

	t.Run("credit issue sets due date end of day", func(t *testing.T) {
		inv := newDraft(t)
		require.NoError(t, inv.AddItem(uuid.New(), "A", "a", decimal.NewFromInt(1), ves(t, "10"), decimal.Zero, decimal.Zero))

		term, err := NewPaymentTerm("CRED30", "Crédito 30 días", 30)
		require.NoError(t, err)

		require.NoError(t, inv.Issue("FAC-000002", term, decimal.NewFromInt(1)))
		require.NotNil(t, inv.DueDate)

		expected := term.DueDateFrom(*inv.IssuedAt)
		assert.Equal(t, expected, *inv.DueDate)
		assert.Equal(t, 23, inv.DueDate.Hour())
		assert.Equal(t, 59, inv.DueDate.Minute())
	})

	t.Run("items frozen after issue", func(t *testing.T) {
		inv := newDraft(t)
		require.NoError(t, inv.AddItem(uuid.New(), "A", "a", decimal.NewFromInt(1), ves(t, "10"), decimal.Zero, decimal.Zero))
		require.NoError(t, inv.Issue("FAC-000003", nil, decimal.NewFromInt(1)))

		assert.Error(t, inv.AddItem(uuid.New(), "B", "b", decimal.NewFromInt(1), ves(t, "5"), decimal.Zero, decimal.Zero))
		assert.Error(t, inv.Issue("FAC-000004", nil, decimal.NewFromInt(1)))
	})
}

func TestInvoice_Payments(t *testing.T) {
	inv := newDraft(t)
	require.NoError(t, inv.AddItem(uuid.New(), "A", "a", decimal.NewFromInt(1), ves(t, "100"), decimal.Zero, decimal.Zero))

	t.Run("draft rejects payments", func(t *testing.T) {
		assert.Error(t, inv.RegisterPayment(PaymentMethodCash, ves(t, "100"), "", nil))
	})

	require.NoError(t, inv.Issue("FAC-000010", nil, decimal.NewFromInt(1)))
	inv.ClearDomainEvents()

	t.Run("partial payment keeps invoice issued", func(t *testing.T) {
		require.NoError(t, inv.RegisterPayment(PaymentMethodCash, ves(t, "60"), "", nil))
		assert.Equal(t, InvoiceStatusIssued, inv.Status)
		assert.True(t, inv.Balance().Equals(ves(t, "40")))
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		assert.Error(t, inv.RegisterPayment(PaymentMethodCard, ves(t, "50"), "V-1234", nil))
	})

	t.Run("full payment settles the invoice", func(t *testing.T) {
		require.NoError(t, inv.RegisterPayment(PaymentMethodMobile, ves(t, "40"), "0412-555", nil))
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.True(t, inv.Balance().IsZero())

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoicePaid, events[0].EventType())
	})

	t.Run("credit total tracked separately", func(t *testing.T) {
		inv2 := newDraft(t)
		require.NoError(t, inv2.AddItem(uuid.New(), "A", "a", decimal.NewFromInt(1), ves(t, "200"), decimal.Zero, decimal.Zero))
		require.NoError(t, inv2.Issue("FAC-000011", nil, decimal.NewFromInt(1)))

		require.NoError(t, inv2.RegisterPayment(PaymentMethodCash, ves(t, "50"), "", nil))
		require.NoError(t, inv2.RegisterPayment(PaymentMethodCredit, ves(t, "150"), "", nil))
		assert.True(t, inv2.CreditTotal().Equals(ves(t, "150")))
		assert.True(t, inv2.CollectedTotal().Equals(ves(t, "50")))
	})

	t.Run("credit portion keeps the invoice issued", func(t *testing.T) {
		inv3 := newDraft(t)
		require.NoError(t, inv3.AddItem(uuid.New(), "A", "a", decimal.NewFromInt(1), ves(t, "200"), decimal.Zero, decimal.Zero))
		require.NoError(t, inv3.Issue("FAC-000012", nil, decimal.NewFromInt(1)))
		inv3.ClearDomainEvents()

		require.NoError(t, inv3.RegisterPayment(PaymentMethodCredit, ves(t, "200"), "", nil))
		assert.Equal(t, InvoiceStatusIssued, inv3.Status)
		assert.True(t, inv3.Balance().Equals(ves(t, "200")))
		assert.Empty(t, inv3.GetDomainEvents())
	})
}

func TestInvoice_SettleAndReopen(t *testing.T) {
	issuedOnCredit := func(t *testing.T) *Invoice {
		t.Helper()
		inv := newDraft(t)
		require.NoError(t, inv.AddItem(uuid.New(), "A", "a", decimal.NewFromInt(1), ves(t, "100"), decimal.Zero, decimal.Zero))
		require.NoError(t, inv.Issue("FAC-000030", nil, decimal.NewFromInt(1)))
		require.NoError(t, inv.RegisterPayment(PaymentMethodCredit, ves(t, "100"), "", nil))
		inv.ClearDomainEvents()
		return inv
	}

	t.Run("settle moves issued to paid", func(t *testing.T) {
		inv := issuedOnCredit(t)
		require.NoError(t, inv.Settle())
		assert.Equal(t, InvoiceStatusPaid, inv.Status)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoicePaid, events[0].EventType())

		assert.Error(t, inv.Settle())
	})

	t.Run("reopen returns paid to issued", func(t *testing.T) {
		inv := issuedOnCredit(t)
		require.NoError(t, inv.Settle())
		require.NoError(t, inv.Reopen())
		assert.Equal(t, InvoiceStatusIssued, inv.Status)

		assert.Error(t, inv.Reopen())
	})
}

func TestInvoice_Cancel(t *testing.T) {
	t.Run("draft cancels without event", func(t *testing.T) {
		inv := newDraft(t)
		require.NoError(t, inv.Cancel("error de carga"))
		assert.Equal(t, InvoiceStatusCancelled, inv.Status)
		assert.Empty(t, inv.GetDomainEvents())
	})

	t.Run("issued cancels with event", func(t *testing.T) {
		inv := newDraft(t)
		require.NoError(t, inv.AddItem(uuid.New(), "A", "a", decimal.NewFromInt(1), ves(t, "10"), decimal.Zero, decimal.Zero))
		require.NoError(t, inv.Issue("FAC-000020", nil, decimal.NewFromInt(1)))
		inv.ClearDomainEvents()

		require.NoError(t, inv.Cancel("cliente desistió"))
		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceCancelled, events[0].EventType())
	})

	t.Run("paid invoice cannot be cancelled", func(t *testing.T) {
		inv := newDraft(t)
		require.NoError(t, inv.AddItem(uuid.New(), "A", "a", decimal.NewFromInt(1), ves(t, "10"), decimal.Zero, decimal.Zero))
		require.NoError(t, inv.Issue("FAC-000021", nil, decimal.NewFromInt(1)))
		require.NoError(t, inv.RegisterPayment(PaymentMethodCash, ves(t, "10"), "", nil))

		assert.Error(t, inv.Cancel("tarde"))
	})
}
