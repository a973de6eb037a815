package notify

import (
	"context"
	"fmt"

	notificationapp "github.com/gestion/backend/internal/application/notification"
	"github.com/gestion/backend/internal/domain/notification"
)

var _ notificationapp.ChannelSender = (*Dispatcher)(nil)

// Dispatcher routes a delivery to the sender matching the channel kind
type Dispatcher struct {
	email   *SMTPEmailSender
	webhook *WebhookSender
}

// NewDispatcher creates a dispatcher. The email sender may be nil when
// SMTP is not configured; email deliveries then fail with an error that
// ends up in the delivery log.
func NewDispatcher(email *SMTPEmailSender, webhook *WebhookSender) *Dispatcher {
	return &Dispatcher{email: email, webhook: webhook}
}

func (d *Dispatcher) Send(ctx context.Context, channel *notification.Channel, eventType, payload string) error {
	switch channel.Kind {
	case notification.ChannelKindEmail:
		if d.email == nil {
			return fmt.Errorf("email delivery is not configured")
		}
		return d.email.Send(ctx, channel, eventType, payload)
	case notification.ChannelKindWebhook:
		return d.webhook.Send(ctx, channel, eventType, payload)
	default:
		return fmt.Errorf("unsupported channel kind %q", channel.Kind)
	}
}
