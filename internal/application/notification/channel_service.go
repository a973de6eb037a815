package notification

import (
	"context"

	"github.com/gestion/backend/internal/domain/notification"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChannelSender delivers one event payload to a channel. Implemented by
// the notify dispatcher; faked in tests.
type ChannelSender interface {
	Send(ctx context.Context, channel *notification.Channel, eventType, payload string) error
}

// ChannelService manages notification channels and their subscriptions
type ChannelService struct {
	channelRepo notification.ChannelRepository
	logRepo     notification.DeliveryLogRepository
	logger      *zap.Logger
}

// NewChannelService creates a new ChannelService
func NewChannelService(
	channelRepo notification.ChannelRepository,
	logRepo notification.DeliveryLogRepository,
	logger *zap.Logger,
) *ChannelService {
	return &ChannelService{channelRepo: channelRepo, logRepo: logRepo, logger: logger}
}

// Create registers a channel and its initial subscriptions
func (s *ChannelService) Create(ctx context.Context, req CreateChannelRequest) (*ChannelResponse, error) {
	exists, err := s.channelRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	channel, err := notification.NewChannel(req.Code, req.Name, notification.ChannelKind(req.Kind), req.Target)
	if err != nil {
		return nil, err
	}
	if req.Secret != "" {
		if err := channel.SetSecret(req.Secret); err != nil {
			return nil, err
		}
	}
	for _, eventType := range req.EventTypes {
		if err := channel.Subscribe(eventType); err != nil {
			return nil, err
		}
	}

	if err := s.channelRepo.Save(ctx, channel); err != nil {
		return nil, err
	}

	s.logger.Info("notification channel created",
		zap.String("code", channel.Code),
		zap.String("kind", string(channel.Kind)))

	response := ToChannelResponse(channel)
	return &response, nil
}

// GetByID retrieves a channel by its ID
func (s *ChannelService) GetByID(ctx context.Context, id uuid.UUID) (*ChannelResponse, error) {
	channel, err := s.channelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToChannelResponse(channel)
	return &response, nil
}

// List retrieves all channels
func (s *ChannelService) List(ctx context.Context) ([]ChannelResponse, error) {
	channels, err := s.channelRepo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 100, OrderBy: "code", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}
	return ToChannelResponses(channels), nil
}

// Update changes a channel's name and target
func (s *ChannelService) Update(ctx context.Context, id uuid.UUID, req UpdateChannelRequest) (*ChannelResponse, error) {
	channel, err := s.channelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := channel.Update(req.Name, req.Target); err != nil {
		return nil, err
	}

	if err := s.channelRepo.Save(ctx, channel); err != nil {
		return nil, err
	}

	response := ToChannelResponse(channel)
	return &response, nil
}

// Subscribe adds an event type to the channel
func (s *ChannelService) Subscribe(ctx context.Context, id uuid.UUID, req SubscriptionRequest) (*ChannelResponse, error) {
	return s.mutate(ctx, id, func(c *notification.Channel) error {
		return c.Subscribe(req.EventType)
	})
}

// Unsubscribe removes an event type from the channel
func (s *ChannelService) Unsubscribe(ctx context.Context, id uuid.UUID, req SubscriptionRequest) (*ChannelResponse, error) {
	return s.mutate(ctx, id, func(c *notification.Channel) error {
		return c.Unsubscribe(req.EventType)
	})
}

// Activate resumes deliveries to the channel
func (s *ChannelService) Activate(ctx context.Context, id uuid.UUID) (*ChannelResponse, error) {
	return s.mutate(ctx, id, func(c *notification.Channel) error {
		c.Activate()
		return nil
	})
}

// Deactivate stops deliveries to the channel
func (s *ChannelService) Deactivate(ctx context.Context, id uuid.UUID) (*ChannelResponse, error) {
	return s.mutate(ctx, id, func(c *notification.Channel) error {
		c.Deactivate()
		return nil
	})
}

// Delete removes a channel. Its delivery history stays.
func (s *ChannelService) Delete(ctx context.Context, id uuid.UUID) error {
	channel, err := s.channelRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.channelRepo.Delete(ctx, channel.ID)
}

// Deliveries lists the delivery log of one channel, newest first
func (s *ChannelService) Deliveries(ctx context.Context, channelID uuid.UUID, page, pageSize int) ([]DeliveryLogResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if _, err := s.channelRepo.FindByID(ctx, channelID); err != nil {
		return nil, err
	}

	logs, err := s.logRepo.FindByChannel(ctx, channelID, shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	})
	if err != nil {
		return nil, err
	}
	return ToDeliveryLogResponses(logs), nil
}

func (s *ChannelService) mutate(ctx context.Context, id uuid.UUID, fn func(*notification.Channel) error) (*ChannelResponse, error) {
	channel, err := s.channelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(channel); err != nil {
		return nil, err
	}
	if err := s.channelRepo.Save(ctx, channel); err != nil {
		return nil, err
	}
	response := ToChannelResponse(channel)
	return &response, nil
}
