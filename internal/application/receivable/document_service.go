package receivable

import (
	"context"
	"errors"
	"time"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/partner"
	"github.com/gestion/backend/internal/domain/receivable"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	debitNotePrefix  = "ND"
	creditNotePrefix = "NC"
	receiptPrefix    = "REC"
	notePadding      = 6
)

// DocumentService manages the receivables ledger: manual notes,
// applications and the aging report. Invoice documents are opened by the
// billing context; this service only reads them.
type DocumentService struct {
	txScope      TransactionScope
	documentRepo receivable.DocumentRepository
	customerRepo partner.CustomerRepository
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	txScope TransactionScope,
	documentRepo receivable.DocumentRepository,
	customerRepo partner.CustomerRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		txScope:      txScope,
		documentRepo: documentRepo,
		customerRepo: customerRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// CreateNote opens a manual debit or credit note. The note number comes
// from its own consecutive series, allocated in the same transaction
// that persists the note.
func (s *DocumentService) CreateNote(ctx context.Context, req CreateNoteRequest) (*DocumentResponse, error) {
	docType := receivable.DocumentType(req.Type)
	var kind billing.DocumentKind
	var prefix string
	switch docType {
	case receivable.DocumentTypeDebitNote:
		kind, prefix = billing.DocumentKindDebitNote, debitNotePrefix
	case receivable.DocumentTypeCreditNote:
		kind, prefix = billing.DocumentKindCreditNote, creditNotePrefix
	default:
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Only debit and credit notes can be created manually")
	}

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.Status == partner.CustomerStatusInactive {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Customer is inactive")
	}

	currency := valueobject.DefaultCurrency
	if req.Currency != "" {
		currency = valueobject.Currency(req.Currency)
	}

	var document *receivable.CustomerDocument
	var events []shared.DomainEvent
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sequence, err := s.lockSequence(ctx, repos, kind, prefix)
		if err != nil {
			return err
		}
		number := sequence.AllocateNext()
		if err := repos.Sequences().Save(ctx, sequence); err != nil {
			return err
		}

		document, err = receivable.NewCustomerDocument(docType, number, customer.ID, currency, req.Amount, time.Now(), req.DueDate)
		if err != nil {
			return err
		}
		if req.Notes != "" {
			document.Notes = req.Notes
		}
		if err := repos.Documents().Save(ctx, document); err != nil {
			return err
		}
		events = document.GetDomainEvents()
		document.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	s.logger.Info("receivable note created",
		zap.String("number", document.Number),
		zap.String("type", string(document.Type)),
		zap.String("customer_id", customer.ID.String()))

	response := ToDocumentResponse(document)
	return &response, nil
}

// GetByID retrieves a document by its ID
func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	document, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(document)
	return &response, nil
}

// GetByNumber retrieves a document by its consecutive number
func (s *DocumentService) GetByNumber(ctx context.Context, number string) (*DocumentResponse, error) {
	document, err := s.documentRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(document)
	return &response, nil
}

// List retrieves documents with filtering and pagination
func (s *DocumentService) List(ctx context.Context, filter DocumentListFilter) ([]DocumentResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := receivable.DocumentFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "issued_at",
			OrderDir: "desc",
			Search:   filter.Search,
		},
		CustomerID:  filter.CustomerID,
		OverdueOnly: filter.OverdueOnly,
		From:        filter.From,
		To:          filter.To,
	}
	if filter.Type != "" {
		docType := receivable.DocumentType(filter.Type)
		domainFilter.Type = &docType
	}
	if filter.Status != "" {
		status := receivable.DocumentStatus(filter.Status)
		domainFilter.Status = &status
	}

	documents, err := s.documentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.documentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDocumentResponses(documents), total, nil
}

// Apply records a payment or credit note application against a
// document. A credit note application consumes the source note's
// balance in the same transaction, so the note can never be applied
// past its own balance. Payments without a reference get a receipt
// number from its consecutive series.
func (s *DocumentService) Apply(ctx context.Context, documentID uuid.UUID, req ApplyRequest) (*DocumentResponse, error) {
	appType := receivable.ApplicationType(req.Type)

	var document *receivable.CustomerDocument
	var events []shared.DomainEvent
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		document, err = repos.Documents().FindByID(ctx, documentID)
		if err != nil {
			return err
		}

		reference := req.Reference
		var creditNote *receivable.CustomerDocument
		switch appType {
		case receivable.ApplicationTypeCreditNote:
			if req.SourceID == nil {
				return shared.NewDomainError("SOURCE_REQUIRED", "Credit note applications require the source note")
			}
			if *req.SourceID == documentID || document.Type == receivable.DocumentTypeCreditNote {
				return shared.NewDomainError("INVALID_TARGET", "Credit can only be applied to invoices and debit notes")
			}
			creditNote, err = repos.Documents().FindByID(ctx, *req.SourceID)
			if err != nil {
				return err
			}
			if reference == "" {
				reference = creditNote.Number
			}
		case receivable.ApplicationTypePayment:
			if reference == "" {
				sequence, err := s.lockSequence(ctx, repos, billing.DocumentKindReceipt, receiptPrefix)
				if err != nil {
					return err
				}
				reference = sequence.AllocateNext()
				if err := repos.Sequences().Save(ctx, sequence); err != nil {
					return err
				}
			}
		}

		app, err := document.Apply(appType, req.Amount, reference, req.SourceID, req.AppliedBy)
		if err != nil {
			return err
		}

		if creditNote != nil {
			if err := creditNote.UseCredit(app.ID, req.Amount, document.Number, &document.ID, req.AppliedBy); err != nil {
				return err
			}
			if err := repos.Documents().Save(ctx, creditNote); err != nil {
				return err
			}
			events = append(events, creditNote.GetDomainEvents()...)
			creditNote.ClearDomainEvents()
		}

		if err := repos.Documents().Save(ctx, document); err != nil {
			return err
		}
		events = append(events, document.GetDomainEvents()...)
		document.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	s.logger.Info("application recorded",
		zap.String("number", document.Number),
		zap.String("type", req.Type),
		zap.String("amount", req.Amount.String()),
		zap.String("balance", document.Balance().String()))

	response := ToDocumentResponse(document)
	return &response, nil
}

// ReverseApplication undoes an application, restoring the balance. When
// the application consumed a credit note, the note's mirrored entry is
// reversed in the same transaction.
func (s *DocumentService) ReverseApplication(ctx context.Context, documentID, applicationID uuid.UUID, req ReverseApplicationRequest) (*DocumentResponse, error) {
	var document *receivable.CustomerDocument
	var events []shared.DomainEvent
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		document, err = repos.Documents().FindByID(ctx, documentID)
		if err != nil {
			return err
		}

		app, ok := document.Applications.Find(applicationID)
		if !ok {
			return shared.NewDomainError("APPLICATION_NOT_FOUND", "Application not found on this document")
		}
		noteID := app.SourceID
		fromNote := app.Type == receivable.ApplicationTypeCreditNote

		if err := document.ReverseApplication(applicationID, req.Reason, req.ReversedBy); err != nil {
			return err
		}

		if fromNote && noteID != nil {
			creditNote, err := repos.Documents().FindByID(ctx, *noteID)
			if err != nil {
				return err
			}
			if err := creditNote.ReverseApplication(applicationID, req.Reason, req.ReversedBy); err != nil {
				return err
			}
			if err := repos.Documents().Save(ctx, creditNote); err != nil {
				return err
			}
			events = append(events, creditNote.GetDomainEvents()...)
			creditNote.ClearDomainEvents()
		}

		if err := repos.Documents().Save(ctx, document); err != nil {
			return err
		}
		events = append(events, document.GetDomainEvents()...)
		document.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToDocumentResponse(document)
	return &response, nil
}

// Cancel voids a document. Documents with active applications cannot be
// cancelled until every application is reversed.
func (s *DocumentService) Cancel(ctx context.Context, documentID uuid.UUID, req CancelDocumentRequest) (*DocumentResponse, error) {
	document, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if err := document.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.documentRepo.Save(ctx, document); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, document.GetDomainEvents())
	document.ClearDomainEvents()

	s.logger.Info("receivable document cancelled", zap.String("number", document.Number))

	response := ToDocumentResponse(document)
	return &response, nil
}

// Statement builds a customer's outstanding position
func (s *DocumentService) Statement(ctx context.Context, customerID uuid.UUID) (*StatementResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	documents, err := s.documentRepo.FindOutstandingByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	overdue := decimal.Zero
	for i := range documents {
		doc := &documents[i]
		balance := doc.Balance()
		if doc.Type == receivable.DocumentTypeCreditNote {
			balance = balance.Neg()
		}
		total = total.Add(balance)
		if doc.IsOverdue() {
			overdue = overdue.Add(balance)
		}
	}

	return &StatementResponse{
		CustomerID:   customerID,
		Documents:    ToDocumentResponses(documents),
		Total:        total,
		OverdueTotal: overdue,
	}, nil
}

// AgingReport classifies every outstanding balance by days overdue
func (s *DocumentService) AgingReport(ctx context.Context) (*AgingReportResponse, error) {
	documents, err := s.documentRepo.FindOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string)
	for i := range documents {
		customerID := documents[i].CustomerID
		if _, ok := names[customerID]; ok {
			continue
		}
		customer, err := s.customerRepo.FindByID(ctx, customerID)
		if err != nil {
			s.logger.Warn("aging report: customer lookup failed",
				zap.String("customer_id", customerID.String()), zap.Error(err))
			names[customerID] = ""
			continue
		}
		names[customerID] = customer.Name
	}

	report := receivable.BuildAgingReport(documents, names)
	response := ToAgingReportResponse(report)
	return &response, nil
}

func (s *DocumentService) lockSequence(ctx context.Context, repos TransactionalRepositories, kind billing.DocumentKind, prefix string) (*billing.DocumentSequence, error) {
	sequence, err := repos.Sequences().FindForUpdate(ctx, kind)
	if err == nil {
		return sequence, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return billing.NewDocumentSequence(kind, prefix, notePadding)
}

func (s *DocumentService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}
