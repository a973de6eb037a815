package receivable

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispute_Lifecycle(t *testing.T) {
	dispute, err := NewDispute(uuid.New(), uuid.New(), "monto facturado no coincide con lo entregado")
	require.NoError(t, err)
	assert.True(t, dispute.IsOpen())

	t.Run("reason required", func(t *testing.T) {
		_, err := NewDispute(uuid.New(), uuid.New(), "")
		assert.Error(t, err)
	})

	t.Run("attachments on open dispute", func(t *testing.T) {
		userID := uuid.New()
		require.NoError(t, dispute.AddAttachment("nota-entrega.pdf", "disputes/2026/08/nota-entrega.pdf", 48211, &userID))
		require.Len(t, dispute.Attachments, 1)
		assert.Error(t, dispute.AddAttachment("", "", 0, nil))
	})

	t.Run("resolution requires a note", func(t *testing.T) {
		assert.Error(t, dispute.Resolve(DisputeStatusAccepted, "", nil))
		assert.Error(t, dispute.Resolve(DisputeStatusOpen, "abierto no vale", nil))
	})

	t.Run("resolve closes the dispute", func(t *testing.T) {
		require.NoError(t, dispute.Resolve(DisputeStatusAccepted, "se emite nota de crédito por la diferencia", nil))
		assert.False(t, dispute.IsOpen())
		assert.NotNil(t, dispute.ResolvedAt)

		assert.Error(t, dispute.Resolve(DisputeStatusRejected, "otra vez", nil))
		assert.Error(t, dispute.AddAttachment("x.pdf", "k", 1, nil))
	})
}

func TestCollectionLog(t *testing.T) {
	customerID := uuid.New()

	log, err := NewCollectionLog(customerID, ContactChannelPhone, "cliente promete pagar el viernes", nil)
	require.NoError(t, err)
	assert.Equal(t, customerID, log.CustomerID)

	t.Run("summary required", func(t *testing.T) {
		_, err := NewCollectionLog(customerID, ContactChannelEmail, "", nil)
		assert.Error(t, err)
	})

	t.Run("unknown channel rejected", func(t *testing.T) {
		_, err := NewCollectionLog(customerID, ContactChannel("fax"), "hola", nil)
		assert.Error(t, err)
	})
}
