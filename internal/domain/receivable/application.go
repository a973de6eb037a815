package receivable

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApplicationType classifies what was applied against a document
type ApplicationType string

const (
	ApplicationTypePayment    ApplicationType = "payment"
	ApplicationTypeCreditNote ApplicationType = "credit_note"
)

// ApplicationStatus tracks whether an application still counts
type ApplicationStatus string

const (
	ApplicationStatusActive   ApplicationStatus = "active"
	ApplicationStatusReversed ApplicationStatus = "reversed"
)

// Application is one payment or credit note applied against a customer
// document. Applications are embedded in the document row as JSONB and
// are never deleted; a mistaken application is reversed, keeping the
// full history.
type Application struct {
	ID             uuid.UUID         `json:"id"`
	Type           ApplicationType   `json:"type"`
	Amount         decimal.Decimal   `json:"amount"`
	Reference      string            `json:"reference"` // Receipt number, credit note number
	SourceID       *uuid.UUID        `json:"source_id,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	Status         ApplicationStatus `json:"status"`
	AppliedAt      time.Time         `json:"applied_at"`
	AppliedBy      *uuid.UUID        `json:"applied_by,omitempty"`
	ReversedAt     *time.Time        `json:"reversed_at,omitempty"`
	ReversedBy     *uuid.UUID        `json:"reversed_by,omitempty"`
	ReversalReason string            `json:"reversal_reason,omitempty"`
}

// IsActive returns true if the application still reduces the balance
func (a *Application) IsActive() bool {
	return a.Status == ApplicationStatusActive
}

// ApplicationList is stored as a JSONB column on the document
type ApplicationList []Application

// Value implements driver.Valuer for JSONB storage
func (l ApplicationList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval
func (l *ApplicationList) Scan(value interface{}) error {
	if value == nil {
		*l = ApplicationList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ApplicationList: unsupported type")
	}

	if len(bytes) == 0 {
		*l = ApplicationList{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// ActiveTotal sums the amounts of active applications
func (l ApplicationList) ActiveTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range l {
		if a.IsActive() {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// HasActive returns true if any application is still active
func (l ApplicationList) HasActive() bool {
	for _, a := range l {
		if a.IsActive() {
			return true
		}
	}
	return false
}

// Find returns the application with the given ID
func (l ApplicationList) Find(id uuid.UUID) (*Application, bool) {
	for i := range l {
		if l[i].ID == id {
			return &l[i], true
		}
	}
	return nil, false
}
