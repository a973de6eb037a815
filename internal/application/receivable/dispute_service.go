package receivable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gestion/backend/internal/domain/receivable"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const attachmentURLTTL = 15 * time.Minute

// DisputeService handles customer disputes over receivable documents.
// Opening a dispute pauses collection on the document until it resolves.
type DisputeService struct {
	disputeRepo  receivable.DisputeRepository
	documentRepo receivable.DocumentRepository
	storage      AttachmentStorage
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewDisputeService creates a new DisputeService
func NewDisputeService(
	disputeRepo receivable.DisputeRepository,
	documentRepo receivable.DocumentRepository,
	storage AttachmentStorage,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *DisputeService {
	return &DisputeService{
		disputeRepo:  disputeRepo,
		documentRepo: documentRepo,
		storage:      storage,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Open starts a dispute on a document and pauses its collection
func (s *DisputeService) Open(ctx context.Context, req OpenDisputeRequest) (*DisputeResponse, error) {
	document, err := s.documentRepo.FindByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	existing, err := s.disputeRepo.FindOpenByDocument(ctx, document.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DISPUTE_EXISTS", "Document already has an open dispute")
	}

	if err := document.MarkDisputed(); err != nil {
		return nil, err
	}

	dispute, err := receivable.NewDispute(document.ID, document.CustomerID, req.Reason)
	if err != nil {
		return nil, err
	}

	if err := s.documentRepo.Save(ctx, document); err != nil {
		return nil, err
	}
	if err := s.disputeRepo.Save(ctx, dispute); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, dispute.GetDomainEvents())
	dispute.ClearDomainEvents()

	s.logger.Info("dispute opened",
		zap.String("document_number", document.Number),
		zap.String("dispute_id", dispute.ID.String()))

	response := ToDisputeResponse(dispute)
	return &response, nil
}

// GetByID retrieves a dispute
func (s *DisputeService) GetByID(ctx context.Context, id uuid.UUID) (*DisputeResponse, error) {
	dispute, err := s.disputeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToDisputeResponse(dispute)
	return &response, nil
}

// ListByDocument retrieves every dispute raised on a document
func (s *DisputeService) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]DisputeResponse, error) {
	disputes, err := s.disputeRepo.FindByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return ToDisputeResponses(disputes), nil
}

// List retrieves disputes with pagination
func (s *DisputeService) List(ctx context.Context, page, pageSize int) ([]DisputeResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	filter := shared.Filter{Page: page, PageSize: pageSize, OrderBy: "created_at", OrderDir: "desc"}
	disputes, err := s.disputeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.disputeRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToDisputeResponses(disputes), total, nil
}

// Resolve closes the dispute and resumes collection on the document. An
// accepted dispute is normally followed by a manual credit note.
func (s *DisputeService) Resolve(ctx context.Context, disputeID uuid.UUID, req ResolveDisputeRequest) (*DisputeResponse, error) {
	dispute, err := s.disputeRepo.FindByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}

	status := receivable.DisputeStatusRejected
	if req.Accept {
		status = receivable.DisputeStatusAccepted
	}
	if err := dispute.Resolve(status, req.Resolution, req.ResolvedBy); err != nil {
		return nil, err
	}

	document, err := s.documentRepo.FindByID(ctx, dispute.DocumentID)
	if err != nil {
		return nil, err
	}
	if err := document.ClearDispute(); err != nil {
		return nil, err
	}

	if err := s.disputeRepo.Save(ctx, dispute); err != nil {
		return nil, err
	}
	if err := s.documentRepo.Save(ctx, document); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, dispute.GetDomainEvents())
	dispute.ClearDomainEvents()

	s.logger.Info("dispute resolved",
		zap.String("dispute_id", dispute.ID.String()),
		zap.String("status", string(dispute.Status)))

	response := ToDisputeResponse(dispute)
	return &response, nil
}

// AddAttachment uploads a supporting file and links it to the dispute
func (s *DisputeService) AddAttachment(ctx context.Context, disputeID uuid.UUID, req AddAttachmentRequest) (*DisputeResponse, error) {
	dispute, err := s.disputeRepo.FindByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if !dispute.IsOpen() {
		return nil, shared.NewDomainError("DISPUTE_CLOSED", "Attachments can only be added to open disputes")
	}
	if len(req.Data) == 0 {
		return nil, shared.NewDomainError("EMPTY_FILE", "Attachment file is empty")
	}

	key := fmt.Sprintf("disputes/%s/%s-%s", dispute.ID, uuid.New(), req.FileName)
	if err := s.storage.Upload(ctx, key, req.Data, req.ContentType); err != nil {
		return nil, err
	}

	if err := dispute.AddAttachment(req.FileName, key, int64(len(req.Data)), req.UploadedBy); err != nil {
		// Undo the orphaned upload
		if delErr := s.storage.DeleteObject(ctx, key); delErr != nil {
			s.logger.Warn("failed to delete orphaned attachment", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	if err := s.disputeRepo.Save(ctx, dispute); err != nil {
		return nil, err
	}

	response := ToDisputeResponse(dispute)
	return &response, nil
}

// GetAttachmentURL returns a short-lived download link for an attachment
func (s *DisputeService) GetAttachmentURL(ctx context.Context, disputeID, attachmentID uuid.UUID) (*AttachmentURLResponse, error) {
	dispute, err := s.disputeRepo.FindByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}

	for _, attachment := range dispute.Attachments {
		if attachment.ID != attachmentID {
			continue
		}
		url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, attachment.StorageKey, attachmentURLTTL)
		if err != nil {
			return nil, err
		}
		return &AttachmentURLResponse{URL: url, ExpiresAt: expiresAt}, nil
	}

	return nil, shared.NewDomainError("ATTACHMENT_NOT_FOUND", "Attachment not found on this dispute")
}

func (s *DisputeService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}
