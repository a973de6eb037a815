package notification

import (
	"time"

	"github.com/gestion/backend/internal/domain/notification"
	"github.com/google/uuid"
)

// CreateChannelRequest registers a new notification channel
type CreateChannelRequest struct {
	Code       string   `json:"code" binding:"required"`
	Name       string   `json:"name" binding:"required"`
	Kind       string   `json:"kind" binding:"required,oneof=email webhook"`
	Target     string   `json:"target" binding:"required"`
	Secret     string   `json:"secret"`
	EventTypes []string `json:"event_types"`
}

// UpdateChannelRequest changes a channel's name and target
type UpdateChannelRequest struct {
	Name   string `json:"name" binding:"required"`
	Target string `json:"target" binding:"required"`
}

// SubscriptionRequest adds or removes one event type
type SubscriptionRequest struct {
	EventType string `json:"event_type" binding:"required"`
}

// ChannelResponse is the channel representation returned to clients.
// The secret never leaves the server.
type ChannelResponse struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Kind       string    `json:"kind"`
	Target     string    `json:"target"`
	EventTypes []string  `json:"event_types"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToChannelResponse converts a domain channel
func ToChannelResponse(c *notification.Channel) ChannelResponse {
	return ChannelResponse{
		ID:         c.ID,
		Code:       c.Code,
		Name:       c.Name,
		Kind:       string(c.Kind),
		Target:     c.Target,
		EventTypes: append([]string{}, c.EventTypes...),
		Active:     c.Active,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToChannelResponses converts a slice of domain channels
func ToChannelResponses(channels []notification.Channel) []ChannelResponse {
	responses := make([]ChannelResponse, 0, len(channels))
	for i := range channels {
		responses = append(responses, ToChannelResponse(&channels[i]))
	}
	return responses
}

// DeliveryLogResponse is one delivery record
type DeliveryLogResponse struct {
	ID        uuid.UUID  `json:"id"`
	ChannelID uuid.UUID  `json:"channel_id"`
	EventType string     `json:"event_type"`
	Payload   string     `json:"payload"`
	Status    string     `json:"status"`
	Attempts  int        `json:"attempts"`
	LastError string     `json:"last_error,omitempty"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToDeliveryLogResponse converts a domain delivery log
func ToDeliveryLogResponse(d *notification.DeliveryLog) DeliveryLogResponse {
	return DeliveryLogResponse{
		ID:        d.ID,
		ChannelID: d.ChannelID,
		EventType: d.EventType,
		Payload:   d.Payload,
		Status:    string(d.Status),
		Attempts:  d.Attempts,
		LastError: d.LastError,
		SentAt:    d.SentAt,
		CreatedAt: d.CreatedAt,
	}
}

// ToDeliveryLogResponses converts a slice of delivery logs
func ToDeliveryLogResponses(logs []notification.DeliveryLog) []DeliveryLogResponse {
	responses := make([]DeliveryLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, ToDeliveryLogResponse(&logs[i]))
	}
	return responses
}
