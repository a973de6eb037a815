package billing

import (
	"context"
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// InvoiceFilter narrows invoice queries
type InvoiceFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	Status     *InvoiceStatus
	From       *time.Time
	To         *time.Time
}

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentSequenceRepository defines persistence operations for sequences.
// FindForUpdate must lock the sequence row for the enclosing transaction.
type DocumentSequenceRepository interface {
	FindByKind(ctx context.Context, kind DocumentKind) (*DocumentSequence, error)
	FindForUpdate(ctx context.Context, kind DocumentKind) (*DocumentSequence, error)
	Save(ctx context.Context, sequence *DocumentSequence) error
}

// PaymentTermRepository defines persistence operations for payment terms
type PaymentTermRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentTerm, error)
	FindByCode(ctx context.Context, code string) (*PaymentTerm, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PaymentTerm, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, term *PaymentTerm) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExchangeRateRepository defines persistence operations for exchange rates
type ExchangeRateRepository interface {
	FindLatest(ctx context.Context, currency valueobject.Currency) (*ExchangeRate, error)
	FindAt(ctx context.Context, currency valueobject.Currency, at time.Time) (*ExchangeRate, error)
	FindHistory(ctx context.Context, currency valueobject.Currency, filter shared.Filter) ([]ExchangeRate, error)
	Save(ctx context.Context, rate *ExchangeRate) error
}
