package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gestion/backend/internal/domain/notification"
	"github.com/gestion/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	defaultWebhookTimeout  = 10 * time.Second
	maxWebhookResponseSize = 64 * 1024

	signatureHeader = "X-Signature-SHA256"
	timestampHeader = "X-Timestamp"
	eventTypeHeader = "X-Event-Type"
)

// WebhookSender posts event payloads to a channel's webhook URL,
// signing each request with the channel secret.
type WebhookSender struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewWebhookSender creates a webhook sender from configuration
func NewWebhookSender(cfg *config.NotifyConfig, logger *zap.Logger) *WebhookSender {
	timeout := defaultWebhookTimeout
	if cfg != nil && cfg.WebhookTimeout > 0 {
		timeout = cfg.WebhookTimeout
	}
	return &WebhookSender{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Send posts the payload to the channel target. When the channel has a
// secret, the body and timestamp are signed with HMAC-SHA256 so the
// receiver can verify origin and reject replays.
func (s *WebhookSender) Send(ctx context.Context, channel *notification.Channel, eventType, payload string) error {
	if channel.Kind != notification.ChannelKindWebhook {
		return fmt.Errorf("channel %s is not a webhook channel", channel.Code)
	}

	body := []byte(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, channel.Target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(eventTypeHeader, eventType)
	req.Header.Set(timestampHeader, timestamp)
	if channel.Secret != "" {
		req.Header.Set(signatureHeader, SignPayload(channel.Secret, timestamp, body))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook to %s: %w", channel.Target, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxWebhookResponseSize))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}

	s.logger.Debug("webhook delivered",
		zap.String("channel", channel.Code),
		zap.String("event_type", eventType),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}

// SignPayload computes the hex HMAC-SHA256 of "timestamp.body"
func SignPayload(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a received signature against the expected one
func VerifySignature(secret, timestamp string, body []byte, signature string) bool {
	expected := SignPayload(secret, timestamp, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
