package receivable

import (
	"context"
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentFilter narrows receivable document queries
type DocumentFilter struct {
	shared.Filter
	CustomerID  *uuid.UUID
	Type        *DocumentType
	Status      *DocumentStatus
	OverdueOnly bool
	From        *time.Time
	To          *time.Time
}

// DocumentRepository defines persistence operations for receivable documents
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerDocument, error)
	FindByNumber(ctx context.Context, number string) (*CustomerDocument, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*CustomerDocument, error)
	FindAll(ctx context.Context, filter DocumentFilter) ([]CustomerDocument, error)
	Count(ctx context.Context, filter DocumentFilter) (int64, error)
	FindOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) ([]CustomerDocument, error)
	FindOutstanding(ctx context.Context) ([]CustomerDocument, error)
	FindNewlyOverdue(ctx context.Context, since time.Time) ([]CustomerDocument, error)
	Save(ctx context.Context, document *CustomerDocument) error
}

// CollectionLogRepository defines persistence operations for collection logs
type CollectionLogRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CollectionLog, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]CollectionLog, error)
	FindByDocument(ctx context.Context, documentID uuid.UUID) ([]CollectionLog, error)
	FindPendingActions(ctx context.Context, before time.Time) ([]CollectionLog, error)
	Save(ctx context.Context, log *CollectionLog) error
}

// DisputeRepository defines persistence operations for disputes
type DisputeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Dispute, error)
	FindByDocument(ctx context.Context, documentID uuid.UUID) ([]Dispute, error)
	FindOpenByDocument(ctx context.Context, documentID uuid.UUID) (*Dispute, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Dispute, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, dispute *Dispute) error
}
