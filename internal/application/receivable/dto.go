package receivable

import (
	"time"

	"github.com/gestion/backend/internal/domain/receivable"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateNoteRequest opens a manual debit or credit note against a customer
type CreateNoteRequest struct {
	Type       string          `json:"type" binding:"required"`
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	Currency   string          `json:"currency"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	DueDate    *time.Time      `json:"due_date"`
	Notes      string          `json:"notes"`
}

// ApplyRequest applies a payment or credit note against a document
type ApplyRequest struct {
	Type      string          `json:"type" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference"`
	SourceID  *uuid.UUID      `json:"source_id"`
	AppliedBy *uuid.UUID      `json:"-"`
}

// ReverseApplicationRequest undoes an application
type ReverseApplicationRequest struct {
	Reason     string     `json:"reason" binding:"required"`
	ReversedBy *uuid.UUID `json:"-"`
}

// CancelDocumentRequest voids a document
type CancelDocumentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DocumentListFilter contains filtering options for document listing
type DocumentListFilter struct {
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	Search      string     `form:"search"`
	CustomerID  *uuid.UUID `form:"customer_id"`
	Type        string     `form:"type"`
	Status      string     `form:"status"`
	OverdueOnly bool       `form:"overdue_only"`
	From        *time.Time `form:"from" time_format:"2006-01-02"`
	To          *time.Time `form:"to" time_format:"2006-01-02"`
}

// ApplicationResponse is one application on a document
type ApplicationResponse struct {
	ID             uuid.UUID       `json:"id"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Reference      string          `json:"reference,omitempty"`
	SourceID       *uuid.UUID      `json:"source_id,omitempty"`
	Status         string          `json:"status"`
	AppliedAt      time.Time       `json:"applied_at"`
	AppliedBy      *uuid.UUID      `json:"applied_by,omitempty"`
	ReversedAt     *time.Time      `json:"reversed_at,omitempty"`
	ReversalReason string          `json:"reversal_reason,omitempty"`
}

// DocumentResponse is the full receivable document representation
type DocumentResponse struct {
	ID           uuid.UUID             `json:"id"`
	Type         string                `json:"type"`
	Number       string                `json:"number"`
	CustomerID   uuid.UUID             `json:"customer_id"`
	InvoiceID    *uuid.UUID            `json:"invoice_id,omitempty"`
	Currency     string                `json:"currency"`
	Amount       decimal.Decimal       `json:"amount"`
	Balance      decimal.Decimal       `json:"balance"`
	Status       string                `json:"status"`
	IssuedAt     time.Time             `json:"issued_at"`
	DueDate      *time.Time            `json:"due_date,omitempty"`
	DaysOverdue  int                   `json:"days_overdue"`
	Applications []ApplicationResponse `json:"applications"`
	Notes        string                `json:"notes,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// ToDocumentResponse converts a domain document to its response form
func ToDocumentResponse(d *receivable.CustomerDocument) DocumentResponse {
	applications := make([]ApplicationResponse, 0, len(d.Applications))
	for _, app := range d.Applications {
		applications = append(applications, ApplicationResponse{
			ID:             app.ID,
			Type:           string(app.Type),
			Amount:         app.Amount,
			Reference:      app.Reference,
			SourceID:       app.SourceID,
			Status:         string(app.Status),
			AppliedAt:      app.AppliedAt,
			AppliedBy:      app.AppliedBy,
			ReversedAt:     app.ReversedAt,
			ReversalReason: app.ReversalReason,
		})
	}

	return DocumentResponse{
		ID:           d.ID,
		Type:         string(d.Type),
		Number:       d.Number,
		CustomerID:   d.CustomerID,
		InvoiceID:    d.InvoiceID,
		Currency:     string(d.Currency),
		Amount:       d.Amount,
		Balance:      d.Balance(),
		Status:       string(d.Status),
		IssuedAt:     d.IssuedAt,
		DueDate:      d.DueDate,
		DaysOverdue:  d.DaysOverdue(),
		Applications: applications,
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDocumentResponses converts a slice of documents
func ToDocumentResponses(documents []receivable.CustomerDocument) []DocumentResponse {
	responses := make([]DocumentResponse, 0, len(documents))
	for i := range documents {
		responses = append(responses, ToDocumentResponse(&documents[i]))
	}
	return responses
}

// StatementResponse summarizes a customer's outstanding position
type StatementResponse struct {
	CustomerID   uuid.UUID          `json:"customer_id"`
	Documents    []DocumentResponse `json:"documents"`
	Total        decimal.Decimal    `json:"total"`
	OverdueTotal decimal.Decimal    `json:"overdue_total"`
}

// AgingLineResponse is one customer's row in the aging report
type AgingLineResponse struct {
	CustomerID   uuid.UUID                  `json:"customer_id"`
	CustomerName string                     `json:"customer_name"`
	Buckets      map[string]decimal.Decimal `json:"buckets"`
	Total        decimal.Decimal            `json:"total"`
}

// AgingReportResponse is the full aging report
type AgingReportResponse struct {
	GeneratedAt   time.Time                  `json:"generated_at"`
	Lines         []AgingLineResponse        `json:"lines"`
	Totals        map[string]decimal.Decimal `json:"totals"`
	Total         decimal.Decimal            `json:"total"`
	DisputedTotal decimal.Decimal            `json:"disputed_total"`
	DisputedCount int                        `json:"disputed_count"`
}

// ToAgingReportResponse converts a domain aging report
func ToAgingReportResponse(report *receivable.AgingReport) AgingReportResponse {
	lines := make([]AgingLineResponse, 0, len(report.Lines))
	for _, line := range report.Lines {
		buckets := make(map[string]decimal.Decimal, len(line.Buckets))
		for b, amount := range line.Buckets {
			buckets[string(b)] = amount
		}
		lines = append(lines, AgingLineResponse{
			CustomerID:   line.CustomerID,
			CustomerName: line.CustomerName,
			Buckets:      buckets,
			Total:        line.Total,
		})
	}

	totals := make(map[string]decimal.Decimal, len(report.Totals))
	for b, amount := range report.Totals {
		totals[string(b)] = amount
	}

	return AgingReportResponse{
		GeneratedAt:   time.Now(),
		Lines:         lines,
		Totals:        totals,
		Total:         report.Total,
		DisputedTotal: report.DisputedTotal,
		DisputedCount: report.DisputedCount,
	}
}

// LogContactRequest records a collection contact
type LogContactRequest struct {
	CustomerID   uuid.UUID  `json:"customer_id" binding:"required"`
	DocumentID   *uuid.UUID `json:"document_id"`
	Channel      string     `json:"channel" binding:"required"`
	Summary      string     `json:"summary" binding:"required"`
	Promise      string     `json:"promise"`
	PromisedAt   *time.Time `json:"promised_at"`
	NextActionAt *time.Time `json:"next_action_at"`
	ContactedBy  *uuid.UUID `json:"-"`
}

// CollectionLogResponse is one recorded contact
type CollectionLogResponse struct {
	ID           uuid.UUID  `json:"id"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	DocumentID   *uuid.UUID `json:"document_id,omitempty"`
	Channel      string     `json:"channel"`
	Summary      string     `json:"summary"`
	Promise      string     `json:"promise,omitempty"`
	PromisedAt   *time.Time `json:"promised_at,omitempty"`
	NextActionAt *time.Time `json:"next_action_at,omitempty"`
	ContactedBy  *uuid.UUID `json:"contacted_by,omitempty"`
	ContactedAt  time.Time  `json:"contacted_at"`
}

// ToCollectionLogResponse converts a domain collection log
func ToCollectionLogResponse(l *receivable.CollectionLog) CollectionLogResponse {
	return CollectionLogResponse{
		ID:           l.ID,
		CustomerID:   l.CustomerID,
		DocumentID:   l.DocumentID,
		Channel:      string(l.Channel),
		Summary:      l.Summary,
		Promise:      l.Promise,
		PromisedAt:   l.PromisedAt,
		NextActionAt: l.NextActionAt,
		ContactedBy:  l.ContactedBy,
		ContactedAt:  l.ContactedAt,
	}
}

// ToCollectionLogResponses converts a slice of collection logs
func ToCollectionLogResponses(logs []receivable.CollectionLog) []CollectionLogResponse {
	responses := make([]CollectionLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, ToCollectionLogResponse(&logs[i]))
	}
	return responses
}

// OpenDisputeRequest opens a dispute on a document
type OpenDisputeRequest struct {
	DocumentID uuid.UUID `json:"document_id" binding:"required"`
	Reason     string    `json:"reason" binding:"required"`
}

// ResolveDisputeRequest closes a dispute
type ResolveDisputeRequest struct {
	Accept     bool       `json:"accept"`
	Resolution string     `json:"resolution" binding:"required"`
	ResolvedBy *uuid.UUID `json:"-"`
}

// AddAttachmentRequest uploads a supporting file to a dispute
type AddAttachmentRequest struct {
	FileName    string     `json:"file_name" binding:"required"`
	ContentType string     `json:"content_type"`
	Data        []byte     `json:"-"`
	UploadedBy  *uuid.UUID `json:"-"`
}

// AttachmentResponse is one dispute attachment
type AttachmentResponse struct {
	ID         uuid.UUID  `json:"id"`
	FileName   string     `json:"file_name"`
	Size       int64      `json:"size"`
	UploadedAt time.Time  `json:"uploaded_at"`
	UploadedBy *uuid.UUID `json:"uploaded_by,omitempty"`
}

// AttachmentURLResponse carries a presigned download link
type AttachmentURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DisputeResponse is the full dispute representation
type DisputeResponse struct {
	ID          uuid.UUID            `json:"id"`
	DocumentID  uuid.UUID            `json:"document_id"`
	CustomerID  uuid.UUID            `json:"customer_id"`
	Status      string               `json:"status"`
	Reason      string               `json:"reason"`
	Resolution  string               `json:"resolution,omitempty"`
	ResolvedAt  *time.Time           `json:"resolved_at,omitempty"`
	ResolvedBy  *uuid.UUID           `json:"resolved_by,omitempty"`
	Attachments []AttachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToDisputeResponse converts a domain dispute to its response form
func ToDisputeResponse(d *receivable.Dispute) DisputeResponse {
	attachments := make([]AttachmentResponse, 0, len(d.Attachments))
	for _, a := range d.Attachments {
		attachments = append(attachments, AttachmentResponse{
			ID:         a.ID,
			FileName:   a.FileName,
			Size:       a.Size,
			UploadedAt: a.UploadedAt,
			UploadedBy: a.UploadedBy,
		})
	}

	return DisputeResponse{
		ID:          d.ID,
		DocumentID:  d.DocumentID,
		CustomerID:  d.CustomerID,
		Status:      string(d.Status),
		Reason:      d.Reason,
		Resolution:  d.Resolution,
		ResolvedAt:  d.ResolvedAt,
		ResolvedBy:  d.ResolvedBy,
		Attachments: attachments,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDisputeResponses converts a slice of disputes
func ToDisputeResponses(disputes []receivable.Dispute) []DisputeResponse {
	responses := make([]DisputeResponse, 0, len(disputes))
	for i := range disputes {
		responses = append(responses, ToDisputeResponse(&disputes[i]))
	}
	return responses
}
