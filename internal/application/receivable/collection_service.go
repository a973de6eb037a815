package receivable

import (
	"context"
	"time"

	"github.com/gestion/backend/internal/domain/partner"
	"github.com/gestion/backend/internal/domain/receivable"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CollectionService records collection contacts and surfaces pending
// follow-ups for the collections team.
type CollectionService struct {
	logRepo      receivable.CollectionLogRepository
	documentRepo receivable.DocumentRepository
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCollectionService creates a new CollectionService
func NewCollectionService(
	logRepo receivable.CollectionLogRepository,
	documentRepo receivable.DocumentRepository,
	customerRepo partner.CustomerRepository,
	logger *zap.Logger,
) *CollectionService {
	return &CollectionService{
		logRepo:      logRepo,
		documentRepo: documentRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// LogContact records one collection contact with a customer
func (s *CollectionService) LogContact(ctx context.Context, req LogContactRequest) (*CollectionLogResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	log, err := receivable.NewCollectionLog(req.CustomerID, receivable.ContactChannel(req.Channel), req.Summary, req.ContactedBy)
	if err != nil {
		return nil, err
	}

	if req.DocumentID != nil {
		document, err := s.documentRepo.FindByID(ctx, *req.DocumentID)
		if err != nil {
			return nil, err
		}
		if document.CustomerID != req.CustomerID {
			return nil, shared.NewDomainError("DOCUMENT_MISMATCH", "Document does not belong to the customer")
		}
		log.ForDocument(document.ID)
	}
	if req.Promise != "" {
		log.WithPromise(req.Promise, req.PromisedAt)
	}
	if req.NextActionAt != nil {
		log.WithNextAction(*req.NextActionAt)
	}

	if err := s.logRepo.Save(ctx, log); err != nil {
		return nil, err
	}

	s.logger.Info("collection contact logged",
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("channel", req.Channel))

	response := ToCollectionLogResponse(log)
	return &response, nil
}

// ListByCustomer retrieves a customer's contact history
func (s *CollectionService) ListByCustomer(ctx context.Context, customerID uuid.UUID, page, pageSize int) ([]CollectionLogResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	logs, err := s.logRepo.FindByCustomer(ctx, customerID, shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  "contacted_at",
		OrderDir: "desc",
	})
	if err != nil {
		return nil, err
	}
	return ToCollectionLogResponses(logs), nil
}

// ListByDocument retrieves all contacts about a specific document
func (s *CollectionService) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]CollectionLogResponse, error) {
	logs, err := s.logRepo.FindByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return ToCollectionLogResponses(logs), nil
}

// PendingActions returns contacts whose scheduled follow-up is due
func (s *CollectionService) PendingActions(ctx context.Context, before time.Time) ([]CollectionLogResponse, error) {
	if before.IsZero() {
		before = time.Now()
	}
	logs, err := s.logRepo.FindPendingActions(ctx, before)
	if err != nil {
		return nil, err
	}
	return ToCollectionLogResponses(logs), nil
}
