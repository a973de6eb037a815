package billing

import (
	"strings"
	"time"

	"github.com/gestion/backend/internal/domain/shared"
)

// PaymentTerm defines when a credit sale becomes due (e.g. "Contado",
// "Crédito 30 días"). Due dates are computed from the issue date and
// normalized to the end of the day.
type PaymentTerm struct {
	shared.AuditedAggregateRoot
	Code   string
	Name   string
	Days   int // 0 means due immediately (cash)
	Active bool
}

// NewPaymentTerm creates a new active payment term
func NewPaymentTerm(code, name string, days int) (*PaymentTerm, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_TERM_CODE", "Payment term code must be 1-20 characters")
	}
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_TERM_NAME", "Payment term name must be 1-100 characters")
	}
	if days < 0 || days > 365 {
		return nil, shared.NewDomainError("INVALID_TERM_DAYS", "Payment term days must be between 0 and 365")
	}

	return &PaymentTerm{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 strings.TrimSpace(name),
		Days:                 days,
		Active:               true,
	}, nil
}

// Update updates the payment term's name and days
func (p *PaymentTerm) Update(name string, days int) error {
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_TERM_NAME", "Payment term name must be 1-100 characters")
	}
	if days < 0 || days > 365 {
		return shared.NewDomainError("INVALID_TERM_DAYS", "Payment term days must be between 0 and 365")
	}

	p.Name = strings.TrimSpace(name)
	p.Days = days
	p.Touch()
	p.IncrementVersion()

	return nil
}

// DueDateFrom computes the due date for a document issued at the given time.
// The due date falls at 23:59:59 local time of the final day.
func (p *PaymentTerm) DueDateFrom(issuedAt time.Time) time.Time {
	day := issuedAt.AddDate(0, 0, p.Days)
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())
}

// IsCash returns true for immediate-payment terms
func (p *PaymentTerm) IsCash() bool {
	return p.Days == 0
}

// Deactivate takes the term out of use for new documents
func (p *PaymentTerm) Deactivate() {
	p.Active = false
	p.Touch()
	p.IncrementVersion()
}

// Activate puts the term back in use
func (p *PaymentTerm) Activate() {
	p.Active = true
	p.Touch()
	p.IncrementVersion()
}
