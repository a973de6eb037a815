package billing

import (
	"fmt"
	"strings"

	"github.com/gestion/backend/internal/domain/shared"
)

// DocumentKind identifies the document series a sequence numbers
type DocumentKind string

const (
	DocumentKindInvoice    DocumentKind = "invoice"
	DocumentKindCreditNote DocumentKind = "credit_note"
	DocumentKindDebitNote  DocumentKind = "debit_note"
	DocumentKindOrder      DocumentKind = "order"
	DocumentKindReceipt    DocumentKind = "receipt"
)

// DocumentSequence issues gapless consecutive numbers for one document
// series. AllocateNext must run inside the same database transaction that
// persists the numbered document, with the row locked, so numbers are
// never skipped or duplicated.
type DocumentSequence struct {
	shared.BaseAggregateRoot
	Kind       DocumentKind
	Prefix     string // e.g. "FAC", "NC"
	NextNumber int64
	Padding    int // Digits the numeric part is padded to
}

// NewDocumentSequence creates a sequence starting at 1
func NewDocumentSequence(kind DocumentKind, prefix string, padding int) (*DocumentSequence, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" || len(prefix) > 10 {
		return nil, shared.NewDomainError("INVALID_PREFIX", "Sequence prefix must be 1-10 characters")
	}
	if padding < 1 || padding > 12 {
		return nil, shared.NewDomainError("INVALID_PADDING", "Sequence padding must be between 1 and 12")
	}

	return &DocumentSequence{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Prefix:            prefix,
		NextNumber:        1,
		Padding:           padding,
	}, nil
}

// AllocateNext returns the next formatted number and advances the counter
func (s *DocumentSequence) AllocateNext() string {
	number := fmt.Sprintf("%s-%0*d", s.Prefix, s.Padding, s.NextNumber)
	s.NextNumber++
	s.Touch()
	s.IncrementVersion()
	return number
}

// Peek returns the number the next allocation would produce
func (s *DocumentSequence) Peek() string {
	return fmt.Sprintf("%s-%0*d", s.Prefix, s.Padding, s.NextNumber)
}
