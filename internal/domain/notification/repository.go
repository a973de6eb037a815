package notification

import (
	"context"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ChannelRepository defines persistence operations for channels
type ChannelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Channel, error)
	FindByCode(ctx context.Context, code string) (*Channel, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Channel, error)
	FindActiveForEvent(ctx context.Context, eventType string) ([]Channel, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, channel *Channel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DeliveryLogRepository defines persistence operations for delivery logs
type DeliveryLogRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryLog, error)
	FindByChannel(ctx context.Context, channelID uuid.UUID, filter shared.Filter) ([]DeliveryLog, error)
	FindRetryable(ctx context.Context, limit int) ([]DeliveryLog, error)
	Save(ctx context.Context, log *DeliveryLog) error
}
