package notification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChannel(t *testing.T) {
	t.Run("email channel", func(t *testing.T) {
		c, err := NewChannel("Cobranzas", "Alertas de cobranza", ChannelKindEmail, "cobranzas@negocio.com")
		require.NoError(t, err)
		assert.Equal(t, "cobranzas", c.Code)
		assert.True(t, c.Active)
	})

	t.Run("webhook channel requires http url", func(t *testing.T) {
		_, err := NewChannel("hook", "Hook", ChannelKindWebhook, "ftp://example.com")
		assert.Error(t, err)

		c, err := NewChannel("hook", "Hook", ChannelKindWebhook, "https://example.com/events")
		require.NoError(t, err)
		require.NoError(t, c.SetSecret("s3cret"))
	})

	t.Run("email channel rejects secret", func(t *testing.T) {
		c, err := NewChannel("mail", "Mail", ChannelKindEmail, "a@b.com")
		require.NoError(t, err)
		assert.Error(t, c.SetSecret("x"))
	})

	t.Run("bad email rejected", func(t *testing.T) {
		_, err := NewChannel("mail", "Mail", ChannelKindEmail, "not-an-email")
		assert.Error(t, err)
	})
}

func TestChannel_Subscriptions(t *testing.T) {
	c, err := NewChannel("ops", "Operaciones", ChannelKindWebhook, "https://ops.example.com/hook")
	require.NoError(t, err)

	require.NoError(t, c.Subscribe("billing.invoice.issued"))
	require.NoError(t, c.Subscribe("billing.invoice.issued")) // idempotent
	require.NoError(t, c.Subscribe("inventory.stock.below_minimum"))
	assert.Len(t, c.EventTypes, 2)

	assert.True(t, c.WantsEvent("billing.invoice.issued"))
	assert.False(t, c.WantsEvent("receivable.document.overdue"))

	c.Deactivate()
	assert.False(t, c.WantsEvent("billing.invoice.issued"))
	c.Activate()

	require.NoError(t, c.Unsubscribe("billing.invoice.issued"))
	assert.False(t, c.WantsEvent("billing.invoice.issued"))
	assert.Error(t, c.Unsubscribe("billing.invoice.issued"))
}

func TestDeliveryLog_Attempts(t *testing.T) {
	log, err := NewDeliveryLog(uuid.New(), "billing.invoice.issued", `{"number":"FAC-000001"}`)
	require.NoError(t, err)
	assert.True(t, log.CanRetry())

	log.MarkFailed("connection refused")
	assert.Equal(t, DeliveryStatusPending, log.Status)
	assert.True(t, log.CanRetry())

	log.MarkFailed("connection refused")
	log.MarkFailed("connection refused")
	assert.Equal(t, DeliveryStatusFailed, log.Status)
	assert.False(t, log.CanRetry())

	t.Run("successful delivery", func(t *testing.T) {
		log2, err := NewDeliveryLog(uuid.New(), "x.y", "{}")
		require.NoError(t, err)
		log2.MarkSent()
		assert.Equal(t, DeliveryStatusSent, log2.Status)
		assert.NotNil(t, log2.SentAt)
		assert.False(t, log2.CanRetry())
	})
}
