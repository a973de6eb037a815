package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gestion/backend/internal/domain/notification"
	"github.com/gestion/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWebhookChannel(t *testing.T, target, secret string) *notification.Channel {
	t.Helper()
	channel, err := notification.NewChannel("ops-hook", "Ops Webhook", notification.ChannelKindWebhook, target)
	require.NoError(t, err)
	if secret != "" {
		require.NoError(t, channel.SetSecret(secret))
	}
	return channel
}

func TestWebhookSender_Send(t *testing.T) {
	var gotBody []byte
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewWebhookSender(&config.NotifyConfig{WebhookTimeout: 5 * time.Second}, zap.NewNop())
	channel := newWebhookChannel(t, server.URL, "topsecret")

	err := sender.Send(context.Background(), channel, "document.overdue", `{"number":"FAC-000042"}`)
	require.NoError(t, err)

	assert.Equal(t, `{"number":"FAC-000042"}`, string(gotBody))
	assert.Equal(t, "document.overdue", gotHeaders.Get("X-Event-Type"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))

	timestamp := gotHeaders.Get("X-Timestamp")
	require.NotEmpty(t, timestamp)
	signature := gotHeaders.Get("X-Signature-SHA256")
	require.NotEmpty(t, signature)
	assert.True(t, VerifySignature("topsecret", timestamp, gotBody, signature))
}

func TestWebhookSender_Send_NoSecretSkipsSignature(t *testing.T) {
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sender := NewWebhookSender(nil, zap.NewNop())
	channel := newWebhookChannel(t, server.URL, "")

	err := sender.Send(context.Background(), channel, "invoice.issued", `{}`)
	require.NoError(t, err)
	assert.Empty(t, gotHeaders.Get("X-Signature-SHA256"))
}

func TestWebhookSender_Send_Non2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sender := NewWebhookSender(nil, zap.NewNop())
	channel := newWebhookChannel(t, server.URL, "")

	err := sender.Send(context.Background(), channel, "invoice.issued", `{}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestWebhookSender_Send_RejectsEmailChannel(t *testing.T) {
	sender := NewWebhookSender(nil, zap.NewNop())
	channel, err := notification.NewChannel("mail", "Mail", notification.ChannelKindEmail, "ops@example.com")
	require.NoError(t, err)

	err = sender.Send(context.Background(), channel, "invoice.issued", `{}`)
	require.Error(t, err)
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"a":1}`)
	signature := SignPayload("secret", "1700000000", body)

	assert.True(t, VerifySignature("secret", "1700000000", body, signature))
	assert.False(t, VerifySignature("wrong", "1700000000", body, signature))
	assert.False(t, VerifySignature("secret", "1700000001", body, signature))
	assert.False(t, VerifySignature("secret", "1700000000", []byte(`{"a":2}`), signature))
}
