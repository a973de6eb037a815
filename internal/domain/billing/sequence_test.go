package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentSequence_AllocateNext(t *testing.T) {
	seq, err := NewDocumentSequence(DocumentKindInvoice, "fac", 6)
	require.NoError(t, err)
	assert.Equal(t, "FAC", seq.Prefix)

	assert.Equal(t, "FAC-000001", seq.Peek())
	assert.Equal(t, "FAC-000001", seq.AllocateNext())
	assert.Equal(t, "FAC-000002", seq.AllocateNext())
	assert.Equal(t, int64(3), seq.NextNumber)

	t.Run("invalid padding rejected", func(t *testing.T) {
		_, err := NewDocumentSequence(DocumentKindInvoice, "FAC", 0)
		assert.Error(t, err)
		_, err = NewDocumentSequence(DocumentKindInvoice, "FAC", 13)
		assert.Error(t, err)
	})
}

func TestPaymentTerm_DueDateFrom(t *testing.T) {
	term, err := NewPaymentTerm("CRED15", "Crédito 15 días", 15)
	require.NoError(t, err)

	issued := time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local)
	due := term.DueDateFrom(issued)

	assert.Equal(t, 2026, due.Year())
	assert.Equal(t, time.March, due.Month())
	assert.Equal(t, 25, due.Day())
	assert.Equal(t, 23, due.Hour())
	assert.Equal(t, 59, due.Minute())
	assert.Equal(t, 59, due.Second())

	t.Run("cash term due same day", func(t *testing.T) {
		cash, err := NewPaymentTerm("CONTADO", "Contado", 0)
		require.NoError(t, err)
		assert.True(t, cash.IsCash())
		assert.Equal(t, 10, cash.DueDateFrom(issued).Day())
	})

	t.Run("negative days rejected", func(t *testing.T) {
		_, err := NewPaymentTerm("BAD", "Bad", -1)
		assert.Error(t, err)
	})
}
