package notification

import (
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryStatus tracks one delivery attempt chain
type DeliveryStatus string

const (
	DeliveryStatusPending DeliveryStatus = "pending"
	DeliveryStatusSent    DeliveryStatus = "sent"
	DeliveryStatusFailed  DeliveryStatus = "failed"
)

// Delivery retries stop after this many attempts
const MaxDeliveryAttempts = 3

// DeliveryLog records the delivery of one event to one channel
type DeliveryLog struct {
	shared.BaseEntity
	ChannelID uuid.UUID
	EventType string
	Payload   string // JSON payload as sent
	Status    DeliveryStatus
	Attempts  int
	LastError string
	SentAt    *time.Time
}

// NewDeliveryLog creates a pending delivery record
func NewDeliveryLog(channelID uuid.UUID, eventType, payload string) (*DeliveryLog, error) {
	if channelID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Channel ID cannot be empty")
	}
	if eventType == "" {
		return nil, shared.NewDomainError("INVALID_EVENT_TYPE", "Event type cannot be empty")
	}

	return &DeliveryLog{
		BaseEntity: shared.NewBaseEntity(),
		ChannelID:  channelID,
		EventType:  eventType,
		Payload:    payload,
		Status:     DeliveryStatusPending,
	}, nil
}

// MarkSent records a successful delivery
func (d *DeliveryLog) MarkSent() {
	now := time.Now()
	d.Status = DeliveryStatusSent
	d.Attempts++
	d.SentAt = &now
	d.LastError = ""
	d.Touch()
}

// MarkFailed records a failed attempt; the delivery stays pending until
// the attempt limit is reached
func (d *DeliveryLog) MarkFailed(errMsg string) {
	d.Attempts++
	d.LastError = errMsg
	if d.Attempts >= MaxDeliveryAttempts {
		d.Status = DeliveryStatusFailed
	}
	d.Touch()
}

// CanRetry returns true if another attempt is allowed
func (d *DeliveryLog) CanRetry() bool {
	return d.Status == DeliveryStatusPending && d.Attempts < MaxDeliveryAttempts
}
