package receivable

import (
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DisputeStatus represents the lifecycle of a dispute
type DisputeStatus string

const (
	DisputeStatusOpen     DisputeStatus = "open"
	DisputeStatusAccepted DisputeStatus = "accepted" // Customer was right, credit note follows
	DisputeStatusRejected DisputeStatus = "rejected" // Collection resumes
)

// DisputeAttachment references a supporting file kept in object storage
type DisputeAttachment struct {
	ID         uuid.UUID
	DisputeID  uuid.UUID
	FileName   string
	StorageKey string // Object storage key
	Size       int64
	UploadedAt time.Time
	UploadedBy *uuid.UUID
}

// Dispute is a customer's formal disagreement with a receivable document.
// An open dispute pauses collection on the document.
type Dispute struct {
	shared.AuditedAggregateRoot
	DocumentID  uuid.UUID
	CustomerID  uuid.UUID
	Status      DisputeStatus
	Reason      string
	Resolution  string
	ResolvedAt  *time.Time
	ResolvedBy  *uuid.UUID
	Attachments []DisputeAttachment
}

// NewDispute opens a dispute on a document
func NewDispute(documentID, customerID uuid.UUID, reason string) (*Dispute, error) {
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Document ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if reason == "" {
		return nil, shared.NewDomainError("REASON_REQUIRED", "A dispute reason is required")
	}

	dispute := &Dispute{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		DocumentID:           documentID,
		CustomerID:           customerID,
		Status:               DisputeStatusOpen,
		Reason:               reason,
		Attachments:          make([]DisputeAttachment, 0),
	}

	dispute.AddDomainEvent(NewDisputeOpenedEvent(dispute))

	return dispute, nil
}

// AddAttachment links an uploaded file to the dispute
func (d *Dispute) AddAttachment(fileName, storageKey string, size int64, uploadedBy *uuid.UUID) error {
	if d.Status != DisputeStatusOpen {
		return shared.NewDomainError("DISPUTE_CLOSED", "Attachments can only be added to open disputes")
	}
	if fileName == "" || storageKey == "" {
		return shared.NewDomainError("INVALID_ATTACHMENT", "File name and storage key are required")
	}

	d.Attachments = append(d.Attachments, DisputeAttachment{
		ID:         uuid.New(),
		DisputeID:  d.ID,
		FileName:   fileName,
		StorageKey: storageKey,
		Size:       size,
		UploadedAt: time.Now(),
		UploadedBy: uploadedBy,
	})
	d.Touch()
	d.IncrementVersion()

	return nil
}

// Resolve closes the dispute as accepted or rejected
func (d *Dispute) Resolve(status DisputeStatus, resolution string, resolvedBy *uuid.UUID) error {
	if d.Status != DisputeStatusOpen {
		return shared.NewDomainError("DISPUTE_CLOSED", "Dispute is already resolved")
	}
	if status != DisputeStatusAccepted && status != DisputeStatusRejected {
		return shared.NewDomainError("INVALID_RESOLUTION", "Resolution must accept or reject the dispute")
	}
	if resolution == "" {
		return shared.NewDomainError("RESOLUTION_REQUIRED", "A resolution note is required")
	}

	now := time.Now()
	d.Status = status
	d.Resolution = resolution
	d.ResolvedAt = &now
	d.ResolvedBy = resolvedBy
	d.Touch()
	d.IncrementVersion()

	d.AddDomainEvent(NewDisputeResolvedEvent(d))

	return nil
}

// IsOpen returns true while the dispute is unresolved
func (d *Dispute) IsOpen() bool {
	return d.Status == DisputeStatusOpen
}
