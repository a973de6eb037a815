package notification

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/gestion/backend/internal/domain/shared"
)

// ChannelKind identifies the delivery mechanism
type ChannelKind string

const (
	ChannelKindEmail   ChannelKind = "email"
	ChannelKindWebhook ChannelKind = "webhook"
)

// EventTypeList is the set of event types a channel subscribes to,
// stored as JSONB
type EventTypeList []string

// Value implements driver.Valuer for JSONB storage
func (l EventTypeList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval
func (l *EventTypeList) Scan(value interface{}) error {
	if value == nil {
		*l = EventTypeList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan EventTypeList: unsupported type")
	}

	if len(bytes) == 0 {
		*l = EventTypeList{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Contains returns true if the list includes the event type
func (l EventTypeList) Contains(eventType string) bool {
	for _, e := range l {
		if e == eventType {
			return true
		}
	}
	return false
}

// Channel is a configured notification target: an email recipient or a
// webhook endpoint subscribed to a set of business events
type Channel struct {
	shared.AuditedAggregateRoot
	Code       string
	Name       string
	Kind       ChannelKind
	Target     string // Email address or webhook URL
	Secret     string // HMAC secret for webhook signatures
	EventTypes EventTypeList
	Active     bool
}

// NewChannel creates an active notification channel
func NewChannel(code, name string, kind ChannelKind, target string) (*Channel, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || len(code) > 30 {
		return nil, shared.NewDomainError("INVALID_CHANNEL_CODE", "Channel code must be 1-30 characters")
	}
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_CHANNEL_NAME", "Channel name must be 1-100 characters")
	}
	if err := validateTarget(kind, target); err != nil {
		return nil, err
	}

	return &Channel{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 strings.TrimSpace(name),
		Kind:                 kind,
		Target:               strings.TrimSpace(target),
		EventTypes:           EventTypeList{},
		Active:               true,
	}, nil
}

// Update changes the channel's name and target
func (c *Channel) Update(name, target string) error {
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_CHANNEL_NAME", "Channel name must be 1-100 characters")
	}
	if err := validateTarget(c.Kind, target); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Target = strings.TrimSpace(target)
	c.Touch()
	c.IncrementVersion()

	return nil
}

// SetSecret sets the HMAC secret used to sign webhook payloads
func (c *Channel) SetSecret(secret string) error {
	if c.Kind != ChannelKindWebhook {
		return shared.NewDomainError("NOT_A_WEBHOOK", "Only webhook channels carry a secret")
	}

	c.Secret = secret
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Subscribe adds an event type to the channel's subscriptions
func (c *Channel) Subscribe(eventType string) error {
	if eventType == "" {
		return shared.NewDomainError("INVALID_EVENT_TYPE", "Event type cannot be empty")
	}
	if c.EventTypes.Contains(eventType) {
		return nil
	}

	c.EventTypes = append(c.EventTypes, eventType)
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Unsubscribe removes an event type from the channel's subscriptions
func (c *Channel) Unsubscribe(eventType string) error {
	for i, e := range c.EventTypes {
		if e == eventType {
			c.EventTypes = append(c.EventTypes[:i], c.EventTypes[i+1:]...)
			c.Touch()
			c.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("NOT_SUBSCRIBED", "Channel is not subscribed to this event type")
}

// WantsEvent returns true if the channel should receive the event
func (c *Channel) WantsEvent(eventType string) bool {
	return c.Active && c.EventTypes.Contains(eventType)
}

// Deactivate stops deliveries to the channel
func (c *Channel) Deactivate() {
	c.Active = false
	c.Touch()
	c.IncrementVersion()
}

// Activate resumes deliveries
func (c *Channel) Activate() {
	c.Active = true
	c.Touch()
	c.IncrementVersion()
}

func validateTarget(kind ChannelKind, target string) error {
	target = strings.TrimSpace(target)
	switch kind {
	case ChannelKindEmail:
		if target == "" || !strings.Contains(target, "@") {
			return shared.NewDomainError("INVALID_TARGET", "Email channels require a valid address")
		}
	case ChannelKindWebhook:
		u, err := url.Parse(target)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return shared.NewDomainError("INVALID_TARGET", "Webhook channels require an http(s) URL")
		}
	default:
		return shared.NewDomainError("INVALID_CHANNEL_KIND", "Channel kind must be email or webhook")
	}
	return nil
}
