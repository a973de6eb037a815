package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/receivable"
	"github.com/gestion/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SettlementHandler keeps invoices in step with their receivables. A
// credit invoice stays issued until its receivable document is fully
// collected; when the document settles the invoice moves to paid, and
// when a settlement is reversed the invoice reopens.
type SettlementHandler struct {
	invoiceRepo  billing.InvoiceRepository
	documentRepo receivable.DocumentRepository
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(
	invoiceRepo billing.InvoiceRepository,
	documentRepo receivable.DocumentRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *SettlementHandler {
	return &SettlementHandler{
		invoiceRepo:  invoiceRepo,
		documentRepo: documentRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// EventTypes implements shared.EventHandler
func (h *SettlementHandler) EventTypes() []string {
	return []string{
		receivable.EventTypeDocumentSettled,
		receivable.EventTypeApplicationReversed,
	}
}

// Handle implements shared.EventHandler. Documents without a source
// invoice, such as manual debit notes, are ignored.
func (h *SettlementHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	document, err := h.documentRepo.FindByID(ctx, event.AggregateID())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load document %s: %w", event.AggregateID(), err)
	}
	if document.InvoiceID == nil {
		return nil
	}

	invoice, err := h.invoiceRepo.FindByID(ctx, *document.InvoiceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load invoice %s: %w", *document.InvoiceID, err)
	}

	switch event.EventType() {
	case receivable.EventTypeDocumentSettled:
		if invoice.Status != billing.InvoiceStatusIssued || document.Status != receivable.DocumentStatusSettled {
			return nil
		}
		if err := invoice.Settle(); err != nil {
			return err
		}
	case receivable.EventTypeApplicationReversed:
		if invoice.Status != billing.InvoiceStatusPaid || !document.IsOutstanding() {
			return nil
		}
		if err := invoice.Reopen(); err != nil {
			return err
		}
	default:
		return nil
	}

	if err := h.invoiceRepo.Save(ctx, invoice); err != nil {
		return fmt.Errorf("failed to save invoice %s: %w", invoice.Number, err)
	}

	events := invoice.GetDomainEvents()
	invoice.ClearDomainEvents()
	if h.eventBus != nil && len(events) > 0 {
		if err := h.eventBus.Publish(ctx, events...); err != nil {
			h.logger.Error("failed to publish settlement events", zap.Error(err))
		}
	}

	h.logger.Info("invoice settlement updated",
		zap.String("number", invoice.Number),
		zap.String("status", string(invoice.Status)),
	)

	return nil
}

var _ shared.EventHandler = (*SettlementHandler)(nil)
