package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/inventory"
	"github.com/gestion/backend/internal/domain/notification"
	"github.com/gestion/backend/internal/domain/receivable"
	"github.com/gestion/backend/internal/domain/restaurant"
	"github.com/gestion/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// relayedEventTypes are the business events channels can subscribe to
var relayedEventTypes = []string{
	billing.EventTypeInvoiceIssued,
	inventory.EventTypeStockBelowMinimum,
	receivable.EventTypeDocumentOverdue,
	restaurant.EventTypeReservationConfirmed,
}

// EventRelay listens on the event bus and fans each event out to the
// channels subscribed to its type. Every delivery attempt is recorded;
// a failure marks the log entry and moves on to the next channel.
type EventRelay struct {
	channelRepo notification.ChannelRepository
	logRepo     notification.DeliveryLogRepository
	sender      ChannelSender
	logger      *zap.Logger
}

// NewEventRelay creates a new EventRelay
func NewEventRelay(
	channelRepo notification.ChannelRepository,
	logRepo notification.DeliveryLogRepository,
	sender ChannelSender,
	logger *zap.Logger,
) *EventRelay {
	return &EventRelay{
		channelRepo: channelRepo,
		logRepo:     logRepo,
		sender:      sender,
		logger:      logger,
	}
}

// EventTypes implements shared.EventHandler
func (r *EventRelay) EventTypes() []string {
	return relayedEventTypes
}

// Handle implements shared.EventHandler. Delivery failures never fail
// the handler; they are recorded on the delivery log instead.
func (r *EventRelay) Handle(ctx context.Context, event shared.DomainEvent) error {
	channels, err := r.channelRepo.FindActiveForEvent(ctx, event.EventType())
	if err != nil {
		return fmt.Errorf("failed to resolve channels for %s: %w", event.EventType(), err)
	}
	if len(channels) == 0 {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.EventType(), err)
	}

	for i := range channels {
		channel := &channels[i]
		if !channel.WantsEvent(event.EventType()) {
			continue
		}
		r.deliver(ctx, channel, event.EventType(), string(payload))
	}
	return nil
}

func (r *EventRelay) deliver(ctx context.Context, channel *notification.Channel, eventType, payload string) {
	log, err := notification.NewDeliveryLog(channel.ID, eventType, payload)
	if err != nil {
		r.logger.Error("failed to create delivery log",
			zap.String("channel", channel.Code),
			zap.Error(err))
		return
	}

	if err := r.sender.Send(ctx, channel, eventType, payload); err != nil {
		log.MarkFailed(err.Error())
		r.logger.Warn("notification delivery failed",
			zap.String("channel", channel.Code),
			zap.String("event_type", eventType),
			zap.Error(err))
	} else {
		log.MarkSent()
	}

	if err := r.logRepo.Save(ctx, log); err != nil {
		r.logger.Error("failed to save delivery log",
			zap.String("channel", channel.Code),
			zap.Error(err))
	}
}

var _ shared.EventHandler = (*EventRelay)(nil)
