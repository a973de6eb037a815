package receivable

import (
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentType classifies receivable documents
type DocumentType string

const (
	DocumentTypeInvoice    DocumentType = "invoice"
	DocumentTypeDebitNote  DocumentType = "debit_note"
	DocumentTypeCreditNote DocumentType = "credit_note"
)

// DocumentStatus represents the collection status of a document
type DocumentStatus string

const (
	DocumentStatusOpen      DocumentStatus = "open"    // Nothing applied yet
	DocumentStatusPartial   DocumentStatus = "partial" // Partially applied
	DocumentStatusSettled   DocumentStatus = "settled" // Fully applied
	DocumentStatusCancelled DocumentStatus = "cancelled"
	DocumentStatusDisputed  DocumentStatus = "disputed" // Collection paused
)

// CustomerDocument is the aggregate root of the receivables ledger: one
// row per document owed by a customer. Payments and credit notes are
// applied against it and the balance is always Amount minus active
// applications.
type CustomerDocument struct {
	shared.AuditedAggregateRoot
	Type         DocumentType
	Number       string // Consecutive number of the source document
	CustomerID   uuid.UUID
	InvoiceID    *uuid.UUID // Source invoice, when the document came from billing
	Currency     valueobject.Currency
	Amount       decimal.Decimal // Original document amount, always positive
	Status       DocumentStatus
	IssuedAt     time.Time
	DueDate      *time.Time
	Applications ApplicationList
	Notes        string
}

// NewCustomerDocument creates an open receivable document
func NewCustomerDocument(docType DocumentType, number string, customerID uuid.UUID, currency valueobject.Currency, amount decimal.Decimal, issuedAt time.Time, dueDate *time.Time) (*CustomerDocument, error) {
	switch docType {
	case DocumentTypeInvoice, DocumentTypeDebitNote, DocumentTypeCreditNote:
	default:
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Unknown receivable document type")
	}
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is not supported")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Document amount must be positive")
	}
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}
	if dueDate != nil && dueDate.Before(issuedAt) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede the issue date")
	}

	doc := &CustomerDocument{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Type:                 docType,
		Number:               number,
		CustomerID:           customerID,
		Currency:             currency,
		Amount:               amount,
		Status:               DocumentStatusOpen,
		IssuedAt:             issuedAt,
		DueDate:              dueDate,
		Applications:         ApplicationList{},
	}

	doc.AddDomainEvent(NewDocumentCreatedEvent(doc))

	return doc, nil
}

// LinkInvoice records the billing invoice that originated the document
func (d *CustomerDocument) LinkInvoice(invoiceID uuid.UUID) {
	d.InvoiceID = &invoiceID
}

// Balance returns the amount still owed
func (d *CustomerDocument) Balance() decimal.Decimal {
	return d.Amount.Sub(d.Applications.ActiveTotal())
}

// Apply records a payment or credit note against the document and
// returns the new application. The applied amount can never exceed the
// outstanding balance.
func (d *CustomerDocument) Apply(appType ApplicationType, amount decimal.Decimal, reference string, sourceID, appliedBy *uuid.UUID) (*Application, error) {
	switch d.Status {
	case DocumentStatusCancelled:
		return nil, shared.NewDomainError("DOCUMENT_CANCELLED", "Cannot apply to a cancelled document")
	case DocumentStatusSettled:
		return nil, shared.NewDomainError("DOCUMENT_SETTLED", "Document is already settled")
	case DocumentStatusDisputed:
		return nil, shared.NewDomainError("DOCUMENT_DISPUTED", "Document is under dispute")
	}
	switch appType {
	case ApplicationTypePayment, ApplicationTypeCreditNote:
	default:
		return nil, shared.NewDomainError("INVALID_APPLICATION_TYPE", "Unknown application type")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Applied amount must be positive")
	}
	if amount.GreaterThan(d.Balance()) {
		return nil, shared.NewDomainError("OVERAPPLICATION", "Applied amount exceeds the document balance")
	}

	app := Application{
		ID:        uuid.New(),
		Type:      appType,
		Amount:    amount,
		Reference: reference,
		SourceID:  sourceID,
		Status:    ApplicationStatusActive,
		AppliedAt: time.Now(),
		AppliedBy: appliedBy,
	}
	d.Applications = append(d.Applications, app)

	d.refreshStatus()
	d.Touch()
	d.IncrementVersion()

	d.AddDomainEvent(NewApplicationRecordedEvent(d, &app))

	if d.Status == DocumentStatusSettled {
		d.AddDomainEvent(NewDocumentSettledEvent(d))
	}

	return &app, nil
}

// UseCredit consumes part of a credit note's balance when the note is
// applied against another document. The consumption is recorded on the
// note under the same application ID as the entry on the target, so one
// reversal restores both sides.
func (d *CustomerDocument) UseCredit(applicationID uuid.UUID, amount decimal.Decimal, targetNumber string, targetID, appliedBy *uuid.UUID) error {
	if d.Type != DocumentTypeCreditNote {
		return shared.NewDomainError("NOT_CREDIT_NOTE", "Only credit notes can be used as credit")
	}
	switch d.Status {
	case DocumentStatusCancelled:
		return shared.NewDomainError("DOCUMENT_CANCELLED", "Credit note is cancelled")
	case DocumentStatusSettled:
		return shared.NewDomainError("CREDIT_EXHAUSTED", "Credit note has no balance left")
	case DocumentStatusDisputed:
		return shared.NewDomainError("DOCUMENT_DISPUTED", "Credit note is under dispute")
	}
	if applicationID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPLICATION", "Application ID cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Applied amount must be positive")
	}
	if amount.GreaterThan(d.Balance()) {
		return shared.NewDomainError("CREDIT_EXHAUSTED", "Applied amount exceeds the credit note balance")
	}

	app := Application{
		ID:        applicationID,
		Type:      ApplicationTypeCreditNote,
		Amount:    amount,
		Reference: targetNumber,
		SourceID:  targetID,
		Status:    ApplicationStatusActive,
		AppliedAt: time.Now(),
		AppliedBy: appliedBy,
	}
	d.Applications = append(d.Applications, app)

	d.refreshStatus()
	d.Touch()
	d.IncrementVersion()

	d.AddDomainEvent(NewApplicationRecordedEvent(d, &app))

	if d.Status == DocumentStatusSettled {
		d.AddDomainEvent(NewDocumentSettledEvent(d))
	}

	return nil
}

// ReverseApplication undoes an application, restoring the balance. The
// application stays in the history marked as reversed.
func (d *CustomerDocument) ReverseApplication(applicationID uuid.UUID, reason string, reversedBy *uuid.UUID) error {
	if d.Status == DocumentStatusCancelled {
		return shared.NewDomainError("DOCUMENT_CANCELLED", "Cannot reverse on a cancelled document")
	}
	if reason == "" {
		return shared.NewDomainError("REASON_REQUIRED", "A reversal reason is required")
	}

	app, ok := d.Applications.Find(applicationID)
	if !ok {
		return shared.NewDomainError("APPLICATION_NOT_FOUND", "Application not found on this document")
	}
	if !app.IsActive() {
		return shared.NewDomainError("ALREADY_REVERSED", "Application is already reversed")
	}

	now := time.Now()
	app.Status = ApplicationStatusReversed
	app.ReversedAt = &now
	app.ReversedBy = reversedBy
	app.ReversalReason = reason

	d.refreshStatus()
	d.Touch()
	d.IncrementVersion()

	d.AddDomainEvent(NewApplicationReversedEvent(d, app))

	return nil
}

// Cancel voids the document. A document with active applications cannot
// be cancelled; the applications must be reversed first.
func (d *CustomerDocument) Cancel(reason string) error {
	if d.Status == DocumentStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Document is already cancelled")
	}
	if d.Applications.HasActive() {
		return shared.ErrHasApplications
	}

	d.Status = DocumentStatusCancelled
	if reason != "" {
		d.Notes = reason
	}
	d.Touch()
	d.IncrementVersion()

	d.AddDomainEvent(NewDocumentCancelledEvent(d, reason))

	return nil
}

// MarkDisputed pauses collection while a dispute is open
func (d *CustomerDocument) MarkDisputed() error {
	switch d.Status {
	case DocumentStatusCancelled, DocumentStatusSettled:
		return shared.NewDomainError("INVALID_STATE", "Only outstanding documents can be disputed")
	case DocumentStatusDisputed:
		return shared.NewDomainError("ALREADY_DISPUTED", "Document is already disputed")
	}

	d.Status = DocumentStatusDisputed
	d.Touch()
	d.IncrementVersion()

	return nil
}

// ClearDispute resumes collection after a dispute closes
func (d *CustomerDocument) ClearDispute() error {
	if d.Status != DocumentStatusDisputed {
		return shared.NewDomainError("NOT_DISPUTED", "Document is not under dispute")
	}

	d.refreshStatus()
	d.Touch()
	d.IncrementVersion()

	return nil
}

// IsOutstanding returns true while money is still owed
func (d *CustomerDocument) IsOutstanding() bool {
	switch d.Status {
	case DocumentStatusOpen, DocumentStatusPartial, DocumentStatusDisputed:
		return true
	}
	return false
}

// IsOverdue returns true for outstanding documents past their due date
func (d *CustomerDocument) IsOverdue() bool {
	return d.IsOutstanding() && d.DueDate != nil && time.Now().After(*d.DueDate)
}

// DaysOverdue returns how many whole days the document is past due
func (d *CustomerDocument) DaysOverdue() int {
	if !d.IsOverdue() {
		return 0
	}
	return int(time.Since(*d.DueDate).Hours() / 24)
}

func (d *CustomerDocument) refreshStatus() {
	balance := d.Balance()
	switch {
	case balance.IsZero():
		d.Status = DocumentStatusSettled
	case balance.Equal(d.Amount):
		d.Status = DocumentStatusOpen
	default:
		d.Status = DocumentStatusPartial
	}
}
