package notify

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/gestion/backend/internal/domain/notification"
	"github.com/gestion/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEmailSender(t *testing.T) *SMTPEmailSender {
	t.Helper()
	sender, err := NewSMTPEmailSender(&config.NotifyConfig{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     2525,
		SMTPUser:     "mailer",
		SMTPPassword: "pass",
		FromAddress:  "noreply@example.com",
	}, zap.NewNop())
	require.NoError(t, err)
	return sender
}

func TestNewSMTPEmailSender_Validation(t *testing.T) {
	t.Run("requires config", func(t *testing.T) {
		_, err := NewSMTPEmailSender(nil, zap.NewNop())
		require.Error(t, err)
	})

	t.Run("requires host", func(t *testing.T) {
		_, err := NewSMTPEmailSender(&config.NotifyConfig{FromAddress: "a@b.c"}, zap.NewNop())
		require.Error(t, err)
	})

	t.Run("requires from address", func(t *testing.T) {
		_, err := NewSMTPEmailSender(&config.NotifyConfig{SMTPHost: "smtp.example.com"}, zap.NewNop())
		require.Error(t, err)
	})

	t.Run("defaults port to 587", func(t *testing.T) {
		sender, err := NewSMTPEmailSender(&config.NotifyConfig{
			SMTPHost:    "smtp.example.com",
			FromAddress: "noreply@example.com",
		}, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 587, sender.port)
	})
}

func TestSMTPEmailSender_Send(t *testing.T) {
	sender := newEmailSender(t)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	sender.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	channel, err := notification.NewChannel("ops-mail", "Ops Mail", notification.ChannelKindEmail, "ops@example.com")
	require.NoError(t, err)

	err = sender.Send(context.Background(), channel, "document.overdue", "FAC-000042 is overdue")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"ops@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Document Overdue")
	assert.Contains(t, string(gotMsg), "FAC-000042 is overdue")
}

func TestSubjectFor(t *testing.T) {
	assert.Equal(t, "Receivable Document Overdue", subjectFor("receivable.document.overdue"))
	assert.Equal(t, "Billing Invoice Issued", subjectFor("billing.invoice.issued"))
	assert.Equal(t, "Restaurant Order No Show", subjectFor("restaurant.order.no_show"))
}

func TestSMTPEmailSender_Send_TransportError(t *testing.T) {
	sender := newEmailSender(t)
	sender.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("connection refused")
	}

	channel, err := notification.NewChannel("ops-mail", "Ops Mail", notification.ChannelKindEmail, "ops@example.com")
	require.NoError(t, err)

	err = sender.Send(context.Background(), channel, "invoice.issued", "{}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSMTPEmailSender_Send_RejectsWebhookChannel(t *testing.T) {
	sender := newEmailSender(t)
	channel, err := notification.NewChannel("hook", "Hook", notification.ChannelKindWebhook, "https://example.com/hook")
	require.NoError(t, err)

	err = sender.Send(context.Background(), channel, "invoice.issued", "{}")
	require.Error(t, err)
}
