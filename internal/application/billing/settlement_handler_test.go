package billing

import (
	"context"
	"testing"
	"time"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/receivable"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type settlementFixture struct {
	handler     *SettlementHandler
	invoiceRepo *fakeInvoiceRepo
	docRepo     *fakeDocumentRepo
	publisher   *MockEventPublisher
	invoice     *billing.Invoice
	document    *receivable.CustomerDocument
}

// newSettlementFixture issues an invoice fully on credit and links the
// receivable document that carries its balance.
func newSettlementFixture(t *testing.T) *settlementFixture {
	t.Helper()

	invoice, err := billing.NewDraftInvoice(uuid.New(), uuid.New(), valueobject.VES)
	require.NoError(t, err)
	price, err := valueobject.NewMoney(decimal.NewFromInt(100), valueobject.VES)
	require.NoError(t, err)
	require.NoError(t, invoice.AddItem(uuid.New(), "ART-1", "Artículo uno", decimal.NewFromInt(1), price, decimal.Zero, decimal.Zero))

	term, err := billing.NewPaymentTerm("CRED15", "Crédito 15 días", 15)
	require.NoError(t, err)
	require.NoError(t, invoice.Issue("FAC-000900", term, decimal.NewFromInt(1)))
	require.NoError(t, invoice.RegisterPayment(billing.PaymentMethodCredit, price, "", nil))
	require.Equal(t, billing.InvoiceStatusIssued, invoice.Status)
	invoice.ClearDomainEvents()

	document, err := receivable.NewCustomerDocument(
		receivable.DocumentTypeInvoice,
		invoice.Number,
		invoice.CustomerID,
		invoice.Currency,
		decimal.NewFromInt(100),
		*invoice.IssuedAt,
		invoice.DueDate,
	)
	require.NoError(t, err)
	document.LinkInvoice(invoice.ID)
	document.ClearDomainEvents()

	f := &settlementFixture{
		invoiceRepo: newFakeInvoiceRepo(),
		docRepo:     newFakeDocumentRepo(),
		publisher:   &MockEventPublisher{},
		invoice:     invoice,
		document:    document,
	}
	require.NoError(t, f.invoiceRepo.Save(context.Background(), invoice))
	require.NoError(t, f.docRepo.Save(context.Background(), document))
	f.handler = NewSettlementHandler(f.invoiceRepo, f.docRepo, f.publisher, zap.NewNop())
	return f
}

// handleAll feeds the document's pending events through the handler the
// way the bus would dispatch them.
func (f *settlementFixture) handleAll(t *testing.T) {
	t.Helper()
	for _, e := range f.document.GetDomainEvents() {
		require.NoError(t, f.handler.Handle(context.Background(), e))
	}
	f.document.ClearDomainEvents()
}

func TestSettlementHandler(t *testing.T) {
	t.Run("document settlement marks the invoice paid", func(t *testing.T) {
		f := newSettlementFixture(t)

		_, err := f.document.Apply(receivable.ApplicationTypePayment, decimal.NewFromInt(100), "REC-000900", nil, nil)
		require.NoError(t, err)
		require.Equal(t, receivable.DocumentStatusSettled, f.document.Status)
		f.handleAll(t)

		invoice, err := f.invoiceRepo.FindByID(context.Background(), f.invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusPaid, invoice.Status)
		assert.Len(t, f.publisher.GetEventsByType(billing.EventTypeInvoicePaid), 1)
	})

	t.Run("settlement reversal reopens the invoice", func(t *testing.T) {
		f := newSettlementFixture(t)

		app, err := f.document.Apply(receivable.ApplicationTypePayment, decimal.NewFromInt(100), "REC-000901", nil, nil)
		require.NoError(t, err)
		f.handleAll(t)

		require.NoError(t, f.document.ReverseApplication(app.ID, "pago devuelto por el banco", nil))
		f.handleAll(t)

		invoice, err := f.invoiceRepo.FindByID(context.Background(), f.invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusIssued, invoice.Status)
	})

	t.Run("documents without an invoice are ignored", func(t *testing.T) {
		f := newSettlementFixture(t)

		manual, err := receivable.NewCustomerDocument(
			receivable.DocumentTypeDebitNote,
			"ND-000900",
			uuid.New(),
			valueobject.VES,
			decimal.NewFromInt(50),
			time.Now(),
			nil,
		)
		require.NoError(t, err)
		manual.ClearDomainEvents()
		require.NoError(t, f.docRepo.Save(context.Background(), manual))

		_, err = manual.Apply(receivable.ApplicationTypePayment, decimal.NewFromInt(50), "REC-000902", nil, nil)
		require.NoError(t, err)
		for _, e := range manual.GetDomainEvents() {
			require.NoError(t, f.handler.Handle(context.Background(), e))
		}

		invoice, err := f.invoiceRepo.FindByID(context.Background(), f.invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusIssued, invoice.Status)
	})

	t.Run("unknown aggregates are skipped", func(t *testing.T) {
		f := newSettlementFixture(t)
		event := shared.NewBaseDomainEvent(receivable.EventTypeDocumentSettled, "CustomerDocument", uuid.New())
		require.NoError(t, f.handler.Handle(context.Background(), &event))
	})
}
