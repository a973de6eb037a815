package receivable

import (
	"errors"
	"testing"
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenDocument(t *testing.T, amount int64) *CustomerDocument {
	t.Helper()
	doc, err := NewCustomerDocument(DocumentTypeInvoice, "FAC-000100", uuid.New(), valueobject.VES, decimal.NewFromInt(amount), time.Now(), nil)
	require.NoError(t, err)
	doc.ClearDomainEvents()
	return doc
}

func TestNewCustomerDocument(t *testing.T) {
	t.Run("creates open document", func(t *testing.T) {
		due := time.Now().Add(30 * 24 * time.Hour)
		doc, err := NewCustomerDocument(DocumentTypeInvoice, "FAC-000001", uuid.New(), valueobject.VES, decimal.NewFromInt(500), time.Now(), &due)
		require.NoError(t, err)

		assert.Equal(t, DocumentStatusOpen, doc.Status)
		assert.True(t, doc.Balance().Equal(decimal.NewFromInt(500)))
		assert.True(t, doc.IsOutstanding())
		assert.False(t, doc.IsOverdue())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewCustomerDocument(DocumentTypeInvoice, "FAC-000002", uuid.New(), valueobject.VES, decimal.Zero, time.Now(), nil)
		assert.Error(t, err)
	})

	t.Run("rejects due date before issue", func(t *testing.T) {
		past := time.Now().Add(-24 * time.Hour)
		_, err := NewCustomerDocument(DocumentTypeInvoice, "FAC-000003", uuid.New(), valueobject.VES, decimal.NewFromInt(100), time.Now(), &past)
		assert.Error(t, err)
	})
}

func TestCustomerDocument_Apply(t *testing.T) {
	doc := newOpenDocument(t, 1000)

	t.Run("partial application", func(t *testing.T) {
		app, err := doc.Apply(ApplicationTypePayment, decimal.NewFromInt(400), "REC-001", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, ApplicationStatusActive, app.Status)
		assert.Equal(t, DocumentStatusPartial, doc.Status)
		assert.True(t, doc.Balance().Equal(decimal.NewFromInt(600)))
	})

	t.Run("overapplication rejected", func(t *testing.T) {
		_, err := doc.Apply(ApplicationTypePayment, decimal.NewFromInt(700), "REC-002", nil, nil)
		assert.Error(t, err)
	})

	t.Run("settling application closes the document", func(t *testing.T) {
		doc.ClearDomainEvents()
		_, err := doc.Apply(ApplicationTypeCreditNote, decimal.NewFromInt(600), "NC-001", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, DocumentStatusSettled, doc.Status)
		assert.True(t, doc.Balance().IsZero())

		types := make([]string, 0)
		for _, e := range doc.GetDomainEvents() {
			types = append(types, e.EventType())
		}
		assert.Contains(t, types, EventTypeApplicationRecorded)
		assert.Contains(t, types, EventTypeDocumentSettled)
	})

	t.Run("settled document rejects further applications", func(t *testing.T) {
		_, err := doc.Apply(ApplicationTypePayment, decimal.NewFromInt(1), "REC-003", nil, nil)
		assert.Error(t, err)
	})
}

func TestCustomerDocument_UseCredit(t *testing.T) {
	newCreditNote := func(t *testing.T, amount int64) *CustomerDocument {
		t.Helper()
		note, err := NewCustomerDocument(DocumentTypeCreditNote, "NC-000100", uuid.New(), valueobject.VES, decimal.NewFromInt(amount), time.Now(), nil)
		require.NoError(t, err)
		note.ClearDomainEvents()
		return note
	}

	t.Run("consumption reduces the note balance", func(t *testing.T) {
		note := newCreditNote(t, 100)
		targetID := uuid.New()

		require.NoError(t, note.UseCredit(uuid.New(), decimal.NewFromInt(40), "FAC-000300", &targetID, nil))
		assert.Equal(t, DocumentStatusPartial, note.Status)
		assert.True(t, note.Balance().Equal(decimal.NewFromInt(60)))
	})

	t.Run("exhausted note rejects further use", func(t *testing.T) {
		note := newCreditNote(t, 100)
		targetID := uuid.New()

		require.NoError(t, note.UseCredit(uuid.New(), decimal.NewFromInt(100), "FAC-000301", &targetID, nil))
		assert.Equal(t, DocumentStatusSettled, note.Status)

		err := note.UseCredit(uuid.New(), decimal.NewFromInt(1), "FAC-000302", &targetID, nil)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CREDIT_EXHAUSTED", domainErr.Code)
	})

	t.Run("use beyond balance rejected", func(t *testing.T) {
		note := newCreditNote(t, 100)
		targetID := uuid.New()
		assert.Error(t, note.UseCredit(uuid.New(), decimal.NewFromInt(101), "FAC-000303", &targetID, nil))
	})

	t.Run("only credit notes carry credit", func(t *testing.T) {
		doc := newOpenDocument(t, 100)
		targetID := uuid.New()
		assert.Error(t, doc.UseCredit(uuid.New(), decimal.NewFromInt(10), "FAC-000304", &targetID, nil))
	})

	t.Run("reversal by shared application ID restores the note", func(t *testing.T) {
		note := newCreditNote(t, 100)
		targetID := uuid.New()
		appID := uuid.New()

		require.NoError(t, note.UseCredit(appID, decimal.NewFromInt(100), "FAC-000305", &targetID, nil))
		require.NoError(t, note.ReverseApplication(appID, "aplicada a la factura equivocada", nil))
		assert.Equal(t, DocumentStatusOpen, note.Status)
		assert.True(t, note.Balance().Equal(decimal.NewFromInt(100)))
	})
}

func TestCustomerDocument_ReverseApplication(t *testing.T) {
	doc := newOpenDocument(t, 500)

	app, err := doc.Apply(ApplicationTypePayment, decimal.NewFromInt(500), "REC-010", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DocumentStatusSettled, doc.Status)

	t.Run("reversal requires a reason", func(t *testing.T) {
		assert.Error(t, doc.ReverseApplication(app.ID, "", nil))
	})

	t.Run("reversal restores the balance and status", func(t *testing.T) {
		require.NoError(t, doc.ReverseApplication(app.ID, "pago aplicado al cliente equivocado", nil))
		assert.Equal(t, DocumentStatusOpen, doc.Status)
		assert.True(t, doc.Balance().Equal(decimal.NewFromInt(500)))

		// History keeps the reversed application
		require.Len(t, doc.Applications, 1)
		assert.Equal(t, ApplicationStatusReversed, doc.Applications[0].Status)
		assert.NotNil(t, doc.Applications[0].ReversedAt)
	})

	t.Run("double reversal rejected", func(t *testing.T) {
		assert.Error(t, doc.ReverseApplication(app.ID, "de nuevo", nil))
	})

	t.Run("unknown application rejected", func(t *testing.T) {
		assert.Error(t, doc.ReverseApplication(uuid.New(), "no existe", nil))
	})
}

func TestCustomerDocument_Cancel(t *testing.T) {
	t.Run("cancel blocked while applications are active", func(t *testing.T) {
		doc := newOpenDocument(t, 300)
		app, err := doc.Apply(ApplicationTypePayment, decimal.NewFromInt(100), "REC-020", nil, nil)
		require.NoError(t, err)

		err = doc.Cancel("anulación")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrHasApplications))

		// After reversing every application the cancel goes through
		require.NoError(t, doc.ReverseApplication(app.ID, "para anular el documento", nil))
		require.NoError(t, doc.Cancel("anulación"))
		assert.Equal(t, DocumentStatusCancelled, doc.Status)
		assert.False(t, doc.IsOutstanding())
	})

	t.Run("double cancel rejected", func(t *testing.T) {
		doc := newOpenDocument(t, 100)
		require.NoError(t, doc.Cancel(""))
		assert.Error(t, doc.Cancel(""))
	})

	t.Run("cancelled document rejects applications", func(t *testing.T) {
		doc := newOpenDocument(t, 100)
		require.NoError(t, doc.Cancel(""))
		_, err := doc.Apply(ApplicationTypePayment, decimal.NewFromInt(10), "REC-021", nil, nil)
		assert.Error(t, err)
	})
}

func TestCustomerDocument_Overdue(t *testing.T) {
	customerID := uuid.New()
	issued := time.Now().Add(-40 * 24 * time.Hour)
	due := issued.Add(10 * 24 * time.Hour)

	doc, err := NewCustomerDocument(DocumentTypeInvoice, "FAC-000200", customerID, valueobject.VES, decimal.NewFromInt(250), issued, &due)
	require.NoError(t, err)

	assert.True(t, doc.IsOverdue())
	assert.InDelta(t, 30, doc.DaysOverdue(), 1)

	t.Run("settled document is not overdue", func(t *testing.T) {
		_, err := doc.Apply(ApplicationTypePayment, decimal.NewFromInt(250), "REC-030", nil, nil)
		require.NoError(t, err)
		assert.False(t, doc.IsOverdue())
		assert.Equal(t, 0, doc.DaysOverdue())
	})
}

func TestCustomerDocument_Dispute(t *testing.T) {
	doc := newOpenDocument(t, 800)

	require.NoError(t, doc.MarkDisputed())
	assert.Equal(t, DocumentStatusDisputed, doc.Status)
	assert.True(t, doc.IsOutstanding())

	t.Run("disputed document rejects applications", func(t *testing.T) {
		_, err := doc.Apply(ApplicationTypePayment, decimal.NewFromInt(100), "REC-040", nil, nil)
		assert.Error(t, err)
	})

	t.Run("clearing restores computed status", func(t *testing.T) {
		require.NoError(t, doc.ClearDispute())
		assert.Equal(t, DocumentStatusOpen, doc.Status)
	})

	t.Run("settled document cannot be disputed", func(t *testing.T) {
		_, err := doc.Apply(ApplicationTypePayment, decimal.NewFromInt(800), "REC-041", nil, nil)
		require.NoError(t, err)
		assert.Error(t, doc.MarkDisputed())
	})
}
