// Package notify delivers notification payloads to their channel
// targets: SMTP mailboxes and signed webhooks.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/gestion/backend/internal/domain/notification"
	"github.com/gestion/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// subjectFor turns a dotted event type into a readable subject line,
// e.g. "receivable.document.overdue" becomes "Receivable Document Overdue".
func subjectFor(eventType string) string {
	words := strings.ReplaceAll(strings.ReplaceAll(eventType, ".", " "), "_", " ")
	return cases.Title(language.English).String(words)
}

// SMTPEmailSender delivers event payloads as plain-text email
type SMTPEmailSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger

	// send is swappable for tests
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPEmailSender creates an email sender from configuration
func NewSMTPEmailSender(cfg *config.NotifyConfig, logger *zap.Logger) (*SMTPEmailSender, error) {
	if cfg == nil {
		return nil, errors.New("notify configuration is required")
	}
	if cfg.SMTPHost == "" {
		return nil, errors.New("SMTP host is required")
	}
	if cfg.FromAddress == "" {
		return nil, errors.New("from address is required")
	}

	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}

	return &SMTPEmailSender{
		host:     cfg.SMTPHost,
		port:     port,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.FromAddress,
		logger:   logger,
		send:     smtp.SendMail,
	}, nil
}

// Send delivers the payload to the channel's email target. The event
// type, title-cased, becomes the subject line.
func (s *SMTPEmailSender) Send(ctx context.Context, channel *notification.Channel, eventType, payload string) error {
	if channel.Kind != notification.ChannelKindEmail {
		return fmt.Errorf("channel %s is not an email channel", channel.Code)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	msg.WriteString("From: " + s.from + "\r\n")
	msg.WriteString("To: " + channel.Target + "\r\n")
	msg.WriteString("Subject: " + subjectFor(eventType) + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(payload)
	msg.WriteString("\r\n")

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := s.send(addr, auth, s.from, []string{channel.Target}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", channel.Target, err)
	}

	s.logger.Debug("email delivered",
		zap.String("channel", channel.Code),
		zap.String("event_type", eventType),
	)
	return nil
}
