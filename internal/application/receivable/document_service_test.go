package receivable

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/partner"
	"github.com/gestion/backend/internal/domain/receivable"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByTaxID(ctx context.Context, taxID string) (*partner.Customer, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher collects published domain events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// fakeDocumentRepo keeps receivable documents in memory
type fakeDocumentRepo struct {
	mu        sync.Mutex
	documents map[uuid.UUID]*receivable.CustomerDocument
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{documents: make(map[uuid.UUID]*receivable.CustomerDocument)}
}

func (r *fakeDocumentRepo) FindByID(_ context.Context, id uuid.UUID) (*receivable.CustomerDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.documents[id]; ok {
		return doc, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeDocumentRepo) FindByNumber(_ context.Context, number string) (*receivable.CustomerDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doc := range r.documents {
		if doc.Number == number {
			return doc, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeDocumentRepo) FindByInvoiceID(_ context.Context, invoiceID uuid.UUID) (*receivable.CustomerDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doc := range r.documents {
		if doc.InvoiceID != nil && *doc.InvoiceID == invoiceID {
			return doc, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeDocumentRepo) FindAll(_ context.Context, _ receivable.DocumentFilter) ([]receivable.CustomerDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]receivable.CustomerDocument, 0, len(r.documents))
	for _, doc := range r.documents {
		result = append(result, *doc)
	}
	return result, nil
}

func (r *fakeDocumentRepo) Count(_ context.Context, _ receivable.DocumentFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.documents)), nil
}

func (r *fakeDocumentRepo) FindOutstandingByCustomer(_ context.Context, customerID uuid.UUID) ([]receivable.CustomerDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]receivable.CustomerDocument, 0)
	for _, doc := range r.documents {
		if doc.CustomerID == customerID && doc.IsOutstanding() {
			result = append(result, *doc)
		}
	}
	return result, nil
}

func (r *fakeDocumentRepo) FindOutstanding(_ context.Context) ([]receivable.CustomerDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]receivable.CustomerDocument, 0)
	for _, doc := range r.documents {
		if doc.IsOutstanding() {
			result = append(result, *doc)
		}
	}
	return result, nil
}

func (r *fakeDocumentRepo) FindNewlyOverdue(_ context.Context, since time.Time) ([]receivable.CustomerDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]receivable.CustomerDocument, 0)
	for _, doc := range r.documents {
		if doc.IsOverdue() && doc.DueDate.After(since) {
			result = append(result, *doc)
		}
	}
	return result, nil
}

func (r *fakeDocumentRepo) Save(_ context.Context, document *receivable.CustomerDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents[document.ID] = document
	return nil
}

// fakeSequenceRepo holds one sequence per kind
type fakeSequenceRepo struct {
	mu        sync.Mutex
	sequences map[billing.DocumentKind]*billing.DocumentSequence
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{sequences: make(map[billing.DocumentKind]*billing.DocumentSequence)}
}

func (r *fakeSequenceRepo) FindByKind(_ context.Context, kind billing.DocumentKind) (*billing.DocumentSequence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq, ok := r.sequences[kind]; ok {
		return seq, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSequenceRepo) FindForUpdate(ctx context.Context, kind billing.DocumentKind) (*billing.DocumentSequence, error) {
	return r.FindByKind(ctx, kind)
}

func (r *fakeSequenceRepo) Save(_ context.Context, sequence *billing.DocumentSequence) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sequences[sequence.Kind] = sequence
	return nil
}

// fakeCollectionLogRepo keeps collection logs in memory
type fakeCollectionLogRepo struct {
	mu   sync.Mutex
	logs map[uuid.UUID]*receivable.CollectionLog
}

func newFakeCollectionLogRepo() *fakeCollectionLogRepo {
	return &fakeCollectionLogRepo{logs: make(map[uuid.UUID]*receivable.CollectionLog)}
}

func (r *fakeCollectionLogRepo) FindByID(_ context.Context, id uuid.UUID) (*receivable.CollectionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log, ok := r.logs[id]; ok {
		return log, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCollectionLogRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, _ shared.Filter) ([]receivable.CollectionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]receivable.CollectionLog, 0)
	for _, log := range r.logs {
		if log.CustomerID == customerID {
			result = append(result, *log)
		}
	}
	return result, nil
}

func (r *fakeCollectionLogRepo) FindByDocument(_ context.Context, documentID uuid.UUID) ([]receivable.CollectionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]receivable.CollectionLog, 0)
	for _, log := range r.logs {
		if log.DocumentID != nil && *log.DocumentID == documentID {
			result = append(result, *log)
		}
	}
	return result, nil
}

func (r *fakeCollectionLogRepo) FindPendingActions(_ context.Context, before time.Time) ([]receivable.CollectionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]receivable.CollectionLog, 0)
	for _, log := range r.logs {
		if log.NextActionAt != nil && log.NextActionAt.Before(before) {
			result = append(result, *log)
		}
	}
	return result, nil
}

func (r *fakeCollectionLogRepo) Save(_ context.Context, log *receivable.CollectionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[log.ID] = log
	return nil
}

// fakeDisputeRepo keeps disputes in memory
type fakeDisputeRepo struct {
	mu       sync.Mutex
	disputes map[uuid.UUID]*receivable.Dispute
}

func newFakeDisputeRepo() *fakeDisputeRepo {
	return &fakeDisputeRepo{disputes: make(map[uuid.UUID]*receivable.Dispute)}
}

func (r *fakeDisputeRepo) FindByID(_ context.Context, id uuid.UUID) (*receivable.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dispute, ok := r.disputes[id]; ok {
		return dispute, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeDisputeRepo) FindByDocument(_ context.Context, documentID uuid.UUID) ([]receivable.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]receivable.Dispute, 0)
	for _, dispute := range r.disputes {
		if dispute.DocumentID == documentID {
			result = append(result, *dispute)
		}
	}
	return result, nil
}

func (r *fakeDisputeRepo) FindOpenByDocument(_ context.Context, documentID uuid.UUID) (*receivable.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dispute := range r.disputes {
		if dispute.DocumentID == documentID && dispute.IsOpen() {
			return dispute, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeDisputeRepo) FindAll(_ context.Context, _ shared.Filter) ([]receivable.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]receivable.Dispute, 0, len(r.disputes))
	for _, dispute := range r.disputes {
		result = append(result, *dispute)
	}
	return result, nil
}

func (r *fakeDisputeRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.disputes)), nil
}

func (r *fakeDisputeRepo) Save(_ context.Context, dispute *receivable.Dispute) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disputes[dispute.ID] = dispute
	return nil
}

// stubStorage keeps uploaded objects in memory
type stubStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: make(map[string][]byte)}
}

func (s *stubStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *stubStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return "", time.Time{}, shared.ErrNotFound
	}
	return fmt.Sprintf("https://files.local/%s", key), time.Now().Add(expiresIn), nil
}

func (s *stubStorage) DeleteObject(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *stubStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

type receivableFixture struct {
	documentSvc   *DocumentService
	collectionSvc *CollectionService
	disputeSvc    *DisputeService
	documentRepo  *fakeDocumentRepo
	sequenceRepo  *fakeSequenceRepo
	logRepo       *fakeCollectionLogRepo
	disputeRepo   *fakeDisputeRepo
	storage       *stubStorage
	customerRepo  *MockCustomerRepository
	publisher     *MockEventPublisher
	customer      *partner.Customer
}

func newReceivableFixture(t *testing.T) *receivableFixture {
	t.Helper()

	customer, err := partner.NewCustomer("CLI-001", "Panadería La Espiga", partner.CustomerTypeCompany)
	require.NoError(t, err)

	f := &receivableFixture{
		documentRepo: newFakeDocumentRepo(),
		sequenceRepo: newFakeSequenceRepo(),
		logRepo:      newFakeCollectionLogRepo(),
		disputeRepo:  newFakeDisputeRepo(),
		storage:      newStubStorage(),
		customerRepo: new(MockCustomerRepository),
		publisher:    &MockEventPublisher{},
		customer:     customer,
	}

	logger := zap.NewNop()
	txScope := NewNoOpTransactionScope(f.documentRepo, f.sequenceRepo)
	f.documentSvc = NewDocumentService(txScope, f.documentRepo, f.customerRepo, f.publisher, logger)
	f.collectionSvc = NewCollectionService(f.logRepo, f.documentRepo, f.customerRepo, logger)
	f.disputeSvc = NewDisputeService(f.disputeRepo, f.documentRepo, f.storage, f.publisher, logger)

	return f
}

// document seeds an open invoice document directly into the repository
func (f *receivableFixture) document(t *testing.T, number string, amount int64, dueInDays int) *receivable.CustomerDocument {
	t.Helper()

	issuedAt := time.Now().Add(-200 * 24 * time.Hour)
	due := time.Now().Add(time.Duration(dueInDays) * 24 * time.Hour)
	doc, err := receivable.NewCustomerDocument(
		receivable.DocumentTypeInvoice, number, f.customer.ID,
		valueobject.DefaultCurrency, decimal.NewFromInt(amount), issuedAt, &due)
	require.NoError(t, err)
	doc.ClearDomainEvents()
	require.NoError(t, f.documentRepo.Save(context.Background(), doc))
	return doc
}

func TestDocumentService_CreateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("debit notes are numbered consecutively", func(t *testing.T) {
		f := newReceivableFixture(t)
		f.customerRepo.On("FindByID", ctx, f.customer.ID).Return(f.customer, nil)

		first, err := f.documentSvc.CreateNote(ctx, CreateNoteRequest{
			Type:       string(receivable.DocumentTypeDebitNote),
			CustomerID: f.customer.ID,
			Amount:     decimal.NewFromInt(500),
		})
		require.NoError(t, err)
		assert.Equal(t, "ND-000001", first.Number)

		second, err := f.documentSvc.CreateNote(ctx, CreateNoteRequest{
			Type:       string(receivable.DocumentTypeDebitNote),
			CustomerID: f.customer.ID,
			Amount:     decimal.NewFromInt(250),
		})
		require.NoError(t, err)
		assert.Equal(t, "ND-000002", second.Number)

		assert.Len(t, f.publisher.GetEventsByType(receivable.EventTypeDocumentCreated), 2)
	})

	t.Run("credit notes use their own series", func(t *testing.T) {
		f := newReceivableFixture(t)
		f.customerRepo.On("FindByID", ctx, f.customer.ID).Return(f.customer, nil)

		_, err := f.documentSvc.CreateNote(ctx, CreateNoteRequest{
			Type:       string(receivable.DocumentTypeDebitNote),
			CustomerID: f.customer.ID,
			Amount:     decimal.NewFromInt(500),
		})
		require.NoError(t, err)

		credit, err := f.documentSvc.CreateNote(ctx, CreateNoteRequest{
			Type:       string(receivable.DocumentTypeCreditNote),
			CustomerID: f.customer.ID,
			Amount:     decimal.NewFromInt(120),
		})
		require.NoError(t, err)
		assert.Equal(t, "NC-000001", credit.Number)
	})

	t.Run("invoices cannot be created manually", func(t *testing.T) {
		f := newReceivableFixture(t)

		_, err := f.documentSvc.CreateNote(ctx, CreateNoteRequest{
			Type:       string(receivable.DocumentTypeInvoice),
			CustomerID: f.customer.ID,
			Amount:     decimal.NewFromInt(500),
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DOCUMENT_TYPE", domainErr.Code)
	})

	t.Run("inactive customer is rejected", func(t *testing.T) {
		f := newReceivableFixture(t)
		require.NoError(t, f.customer.Deactivate())
		f.customerRepo.On("FindByID", ctx, f.customer.ID).Return(f.customer, nil)

		_, err := f.documentSvc.CreateNote(ctx, CreateNoteRequest{
			Type:       string(receivable.DocumentTypeDebitNote),
			CustomerID: f.customer.ID,
			Amount:     decimal.NewFromInt(500),
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CUSTOMER_INACTIVE", domainErr.Code)
	})
}

func TestDocumentService_Applications(t *testing.T) {
	ctx := context.Background()

	t.Run("partial application leaves document partial", func(t *testing.T) {
		f := newReceivableFixture(t)
		doc := f.document(t, "FAC-000001", 1000, 30)

		resp, err := f.documentSvc.Apply(ctx, doc.ID, ApplyRequest{
			Type:      string(receivable.ApplicationTypePayment),
			Amount:    decimal.NewFromInt(400),
			Reference: "TRF-7781",
		})
		require.NoError(t, err)
		assert.Equal(t, string(receivable.DocumentStatusPartial), resp.Status)
		assert.True(t, resp.Balance.Equal(decimal.NewFromInt(600)))
	})

	t.Run("full application settles the document", func(t *testing.T) {
		f := newReceivableFixture(t)
		doc := f.document(t, "FAC-000001", 1000, 30)

		resp, err := f.documentSvc.Apply(ctx, doc.ID, ApplyRequest{
			Type:   string(receivable.ApplicationTypePayment),
			Amount: decimal.NewFromInt(1000),
		})
		require.NoError(t, err)
		assert.Equal(t, string(receivable.DocumentStatusSettled), resp.Status)
		assert.Len(t, f.publisher.GetEventsByType(receivable.EventTypeDocumentSettled), 1)
	})

	t.Run("overapplication is rejected", func(t *testing.T) {
		f := newReceivableFixture(t)
		doc := f.document(t, "FAC-000001", 1000, 30)

		_, err := f.documentSvc.Apply(ctx, doc.ID, ApplyRequest{
			Type:   string(receivable.ApplicationTypePayment),
			Amount: decimal.NewFromInt(1200),
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERAPPLICATION", domainErr.Code)
	})

	t.Run("reversal restores the balance", func(t *testing.T) {
		f := newReceivableFixture(t)
		doc := f.document(t, "FAC-000001", 1000, 30)

		resp, err := f.documentSvc.Apply(ctx, doc.ID, ApplyRequest{
			Type:   string(receivable.ApplicationTypePayment),
			Amount: decimal.NewFromInt(1000),
		})
		require.NoError(t, err)
		require.Equal(t, string(receivable.DocumentStatusSettled), resp.Status)

		resp, err = f.documentSvc.ReverseApplication(ctx, doc.ID, resp.Applications[0].ID, ReverseApplicationRequest{
			Reason: "cheque devuelto",
		})
		require.NoError(t, err)
		assert.Equal(t, string(receivable.DocumentStatusOpen), resp.Status)
		assert.True(t, resp.Balance.Equal(decimal.NewFromInt(1000)))
		assert.Len(t, f.publisher.GetEventsByType(receivable.EventTypeApplicationReversed), 1)
	})

	t.Run("cancel is blocked while applications are active", func(t *testing.T) {
		f := newReceivableFixture(t)
		doc := f.document(t, "FAC-000001", 1000, 30)

		resp, err := f.documentSvc.Apply(ctx, doc.ID, ApplyRequest{
			Type:   string(receivable.ApplicationTypePayment),
			Amount: decimal.NewFromInt(400),
		})
		require.NoError(t, err)

		_, err = f.documentSvc.Cancel(ctx, doc.ID, CancelDocumentRequest{Reason: "duplicado"})
		require.ErrorIs(t, err, shared.ErrHasApplications)

		// After reversing the application the cancel goes through
		_, err = f.documentSvc.ReverseApplication(ctx, doc.ID, resp.Applications[0].ID, ReverseApplicationRequest{
			Reason: "anulación",
		})
		require.NoError(t, err)

		cancelled, err := f.documentSvc.Cancel(ctx, doc.ID, CancelDocumentRequest{Reason: "duplicado"})
		require.NoError(t, err)
		assert.Equal(t, string(receivable.DocumentStatusCancelled), cancelled.Status)
	})
}

// creditNote seeds an open credit note directly into the repository
func (f *receivableFixture) creditNote(t *testing.T, number string, amount int64) *receivable.CustomerDocument {
	t.Helper()

	note, err := receivable.NewCustomerDocument(
		receivable.DocumentTypeCreditNote, number, f.customer.ID,
		valueobject.DefaultCurrency, decimal.NewFromInt(amount), time.Now(), nil)
	require.NoError(t, err)
	note.ClearDomainEvents()
	require.NoError(t, f.documentRepo.Save(context.Background(), note))
	return note
}

func TestDocumentService_CreditNoteApplications(t *testing.T) {
	ctx := context.Background()

	t.Run("application consumes the note balance", func(t *testing.T) {
		f := newReceivableFixture(t)
		doc := f.document(t, "FAC-000001", 1000, 30)
		note := f.creditNote(t, "NC-000001", 300)

		resp, err := f.documentSvc.Apply(ctx, doc.ID, ApplyRequest{
			Type:     string(receivable.ApplicationTypeCreditNote),
			Amount:   decimal.NewFromInt(300),
			SourceID: &note.ID,
		})
		require.NoError(t, err)
		assert.True(t, resp.Balance.Equal(decimal.NewFromInt(700)))
		require.Len(t, resp.Applications, 1)
		assert.Equal(t, "NC-000001", resp.Applications[0].Reference)

		used, err := f.documentSvc.GetByID(ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, string(receivable.DocumentStatusSettled), used.Status)
		assert.True(t, used.Balance.IsZero())
	})

	t.Run("note cannot be applied past its balance", func(t *testing.T) {
		f := newReceivableFixture(t)
		first := f.document(t, "FAC-000001", 1000, 30)
		second := f.document(t, "FAC-000002", 1000, 30)
		note := f.creditNote(t, "NC-000001", 100)

		_, err := f.documentSvc.Apply(ctx, first.ID, ApplyRequest{
			Type:     string(receivable.ApplicationTypeCreditNote),
			Amount:   decimal.NewFromInt(100),
			SourceID: &note.ID,
		})
		require.NoError(t, err)

		_, err = f.documentSvc.Apply(ctx, second.ID, ApplyRequest{
			Type:     string(receivable.ApplicationTypeCreditNote),
			Amount:   decimal.NewFromInt(100),
			SourceID: &note.ID,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CREDIT_EXHAUSTED", domainErr.Code)
	})

	t.Run("source note is required", func(t *testing.T) {
		f := newReceivableFixture(t)
		doc := f.document(t, "FAC-000001", 1000, 30)

		_, err := f.documentSvc.Apply(ctx, doc.ID, ApplyRequest{
			Type:   string(receivable.ApplicationTypeCreditNote),
			Amount: decimal.NewFromInt(100),
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SOURCE_REQUIRED", domainErr.Code)
	})

	t.Run("credit cannot target another credit note", func(t *testing.T) {
		f := newReceivableFixture(t)
		note := f.creditNote(t, "NC-000001", 300)
		other := f.creditNote(t, "NC-000002", 200)

		_, err := f.documentSvc.Apply(ctx, note.ID, ApplyRequest{
			Type:     string(receivable.ApplicationTypeCreditNote),
			Amount:   decimal.NewFromInt(100),
			SourceID: &other.ID,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TARGET", domainErr.Code)
	})

	t.Run("reversal restores both documents", func(t *testing.T) {
		f := newReceivableFixture(t)
		doc := f.document(t, "FAC-000001", 1000, 30)
		note := f.creditNote(t, "NC-000001", 300)

		resp, err := f.documentSvc.Apply(ctx, doc.ID, ApplyRequest{
			Type:     string(receivable.ApplicationTypeCreditNote),
			Amount:   decimal.NewFromInt(300),
			SourceID: &note.ID,
		})
		require.NoError(t, err)

		resp, err = f.documentSvc.ReverseApplication(ctx, doc.ID, resp.Applications[0].ID, ReverseApplicationRequest{
			Reason: "nota aplicada a la factura equivocada",
		})
		require.NoError(t, err)
		assert.True(t, resp.Balance.Equal(decimal.NewFromInt(1000)))

		restored, err := f.documentSvc.GetByID(ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, string(receivable.DocumentStatusOpen), restored.Status)
		assert.True(t, restored.Balance.Equal(decimal.NewFromInt(300)))
	})
}

func TestDocumentService_ReceiptNumbers(t *testing.T) {
	ctx := context.Background()
	f := newReceivableFixture(t)
	doc := f.document(t, "FAC-000001", 1000, 30)

	resp, err := f.documentSvc.Apply(ctx, doc.ID, ApplyRequest{
		Type:   string(receivable.ApplicationTypePayment),
		Amount: decimal.NewFromInt(400),
	})
	require.NoError(t, err)
	require.Len(t, resp.Applications, 1)
	assert.Equal(t, "REC-000001", resp.Applications[0].Reference)

	resp, err = f.documentSvc.Apply(ctx, doc.ID, ApplyRequest{
		Type:   string(receivable.ApplicationTypePayment),
		Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Len(t, resp.Applications, 2)
	assert.Equal(t, "REC-000002", resp.Applications[1].Reference)

	t.Run("explicit reference is kept", func(t *testing.T) {
		resp, err := f.documentSvc.Apply(ctx, doc.ID, ApplyRequest{
			Type:      string(receivable.ApplicationTypePayment),
			Amount:    decimal.NewFromInt(100),
			Reference: "TRF-7781",
		})
		require.NoError(t, err)
		assert.Equal(t, "TRF-7781", resp.Applications[2].Reference)
	})
}

func TestDocumentService_Statement(t *testing.T) {
	ctx := context.Background()
	f := newReceivableFixture(t)
	f.customerRepo.On("FindByID", ctx, f.customer.ID).Return(f.customer, nil)

	f.document(t, "FAC-000001", 1000, 30)
	overdueDoc := f.document(t, "FAC-000002", 500, -10)

	// A credit note reduces the net position
	credit, err := receivable.NewCustomerDocument(
		receivable.DocumentTypeCreditNote, "NC-000001", f.customer.ID,
		valueobject.DefaultCurrency, decimal.NewFromInt(200), time.Now(), nil)
	require.NoError(t, err)
	credit.ClearDomainEvents()
	require.NoError(t, f.documentRepo.Save(ctx, credit))

	statement, err := f.documentSvc.Statement(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Len(t, statement.Documents, 3)
	assert.True(t, statement.Total.Equal(decimal.NewFromInt(1300)), "got %s", statement.Total)
	assert.True(t, statement.OverdueTotal.Equal(decimal.NewFromInt(500)))
	assert.True(t, overdueDoc.IsOverdue())
}

func TestDocumentService_AgingReport(t *testing.T) {
	ctx := context.Background()
	f := newReceivableFixture(t)
	f.customerRepo.On("FindByID", ctx, f.customer.ID).Return(f.customer, nil)

	f.document(t, "FAC-000001", 1000, 30)  // not yet due
	f.document(t, "FAC-000002", 500, -45)  // 45 days overdue
	f.document(t, "FAC-000003", 300, -100) // over 90 days

	report, err := f.documentSvc.AgingReport(ctx)
	require.NoError(t, err)
	require.Len(t, report.Lines, 1)

	line := report.Lines[0]
	assert.Equal(t, "Panadería La Espiga", line.CustomerName)
	assert.True(t, line.Buckets[string(receivable.BucketCurrent)].Equal(decimal.NewFromInt(1000)))
	assert.True(t, line.Buckets[string(receivable.Bucket31To60)].Equal(decimal.NewFromInt(500)))
	assert.True(t, line.Buckets[string(receivable.BucketOver90)].Equal(decimal.NewFromInt(300)))
	assert.True(t, line.Total.Equal(decimal.NewFromInt(1800)))
	assert.True(t, report.Total.Equal(decimal.NewFromInt(1800)))
}

func TestCollectionService_LogContact(t *testing.T) {
	ctx := context.Background()

	t.Run("records a contact with promise and follow-up", func(t *testing.T) {
		f := newReceivableFixture(t)
		f.customerRepo.On("FindByID", ctx, f.customer.ID).Return(f.customer, nil)
		doc := f.document(t, "FAC-000001", 1000, -5)

		promisedAt := time.Now().Add(7 * 24 * time.Hour)
		nextAction := time.Now().Add(3 * 24 * time.Hour)
		resp, err := f.collectionSvc.LogContact(ctx, LogContactRequest{
			CustomerID:   f.customer.ID,
			DocumentID:   &doc.ID,
			Channel:      string(receivable.ContactChannelPhone),
			Summary:      "Cliente confirma pago la próxima semana",
			Promise:      "Transferencia por el total",
			PromisedAt:   &promisedAt,
			NextActionAt: &nextAction,
		})
		require.NoError(t, err)
		assert.Equal(t, "Transferencia por el total", resp.Promise)
		require.NotNil(t, resp.DocumentID)
		assert.Equal(t, doc.ID, *resp.DocumentID)

		pending, err := f.collectionSvc.PendingActions(ctx, time.Now().Add(4*24*time.Hour))
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})

	t.Run("rejects a document of another customer", func(t *testing.T) {
		f := newReceivableFixture(t)
		f.customerRepo.On("FindByID", ctx, mock.Anything).Return(f.customer, nil)
		doc := f.document(t, "FAC-000001", 1000, 30)

		other, err := partner.NewCustomer("CLI-002", "Bodegón El Trigal", partner.CustomerTypeCompany)
		require.NoError(t, err)
		f.customerRepo.On("FindByID", ctx, other.ID).Return(other, nil)

		doc.CustomerID = other.ID
		require.NoError(t, f.documentRepo.Save(ctx, doc))

		_, err = f.collectionSvc.LogContact(ctx, LogContactRequest{
			CustomerID: f.customer.ID,
			DocumentID: &doc.ID,
			Channel:    string(receivable.ContactChannelEmail),
			Summary:    "Recordatorio enviado",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DOCUMENT_MISMATCH", domainErr.Code)
	})
}

func TestDisputeService(t *testing.T) {
	ctx := context.Background()

	t.Run("open dispute pauses collection", func(t *testing.T) {
		f := newReceivableFixture(t)
		doc := f.document(t, "FAC-000001", 1000, 30)

		dispute, err := f.disputeSvc.Open(ctx, OpenDisputeRequest{
			DocumentID: doc.ID,
			Reason:     "Mercancía no recibida",
		})
		require.NoError(t, err)
		assert.Equal(t, string(receivable.DisputeStatusOpen), dispute.Status)

		// Applications are blocked while the dispute is open
		_, err = f.documentSvc.Apply(ctx, doc.ID, ApplyRequest{
			Type:   string(receivable.ApplicationTypePayment),
			Amount: decimal.NewFromInt(100),
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DOCUMENT_DISPUTED", domainErr.Code)

		assert.Len(t, f.publisher.GetEventsByType(receivable.EventTypeDisputeOpened), 1)
	})

	t.Run("second open dispute on the same document is rejected", func(t *testing.T) {
		f := newReceivableFixture(t)
		doc := f.document(t, "FAC-000001", 1000, 30)

		_, err := f.disputeSvc.Open(ctx, OpenDisputeRequest{DocumentID: doc.ID, Reason: "Precio incorrecto"})
		require.NoError(t, err)

		_, err = f.disputeSvc.Open(ctx, OpenDisputeRequest{DocumentID: doc.ID, Reason: "Otra queja"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DISPUTE_EXISTS", domainErr.Code)
	})

	t.Run("rejecting a dispute resumes collection", func(t *testing.T) {
		f := newReceivableFixture(t)
		doc := f.document(t, "FAC-000001", 1000, 30)

		dispute, err := f.disputeSvc.Open(ctx, OpenDisputeRequest{DocumentID: doc.ID, Reason: "Precio incorrecto"})
		require.NoError(t, err)

		resolved, err := f.disputeSvc.Resolve(ctx, dispute.ID, ResolveDisputeRequest{
			Accept:     false,
			Resolution: "Precio acordado en la orden de compra",
		})
		require.NoError(t, err)
		assert.Equal(t, string(receivable.DisputeStatusRejected), resolved.Status)

		_, err = f.documentSvc.Apply(ctx, doc.ID, ApplyRequest{
			Type:   string(receivable.ApplicationTypePayment),
			Amount: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
	})

	t.Run("attachments upload to storage and resolve to a URL", func(t *testing.T) {
		f := newReceivableFixture(t)
		doc := f.document(t, "FAC-000001", 1000, 30)

		dispute, err := f.disputeSvc.Open(ctx, OpenDisputeRequest{DocumentID: doc.ID, Reason: "Mercancía dañada"})
		require.NoError(t, err)

		withFile, err := f.disputeSvc.AddAttachment(ctx, dispute.ID, AddAttachmentRequest{
			FileName:    "foto-caja.jpg",
			ContentType: "image/jpeg",
			Data:        []byte("jpeg-bytes"),
		})
		require.NoError(t, err)
		require.Len(t, withFile.Attachments, 1)
		assert.Equal(t, "foto-caja.jpg", withFile.Attachments[0].FileName)
		assert.Equal(t, int64(len("jpeg-bytes")), withFile.Attachments[0].Size)

		url, err := f.disputeSvc.GetAttachmentURL(ctx, dispute.ID, withFile.Attachments[0].ID)
		require.NoError(t, err)
		assert.Contains(t, url.URL, "disputes/")
		assert.True(t, url.ExpiresAt.After(time.Now()))
	})

	t.Run("attachments are rejected after resolution", func(t *testing.T) {
		f := newReceivableFixture(t)
		doc := f.document(t, "FAC-000001", 1000, 30)

		dispute, err := f.disputeSvc.Open(ctx, OpenDisputeRequest{DocumentID: doc.ID, Reason: "Mercancía dañada"})
		require.NoError(t, err)
		_, err = f.disputeSvc.Resolve(ctx, dispute.ID, ResolveDisputeRequest{Accept: true, Resolution: "Se emite nota de crédito"})
		require.NoError(t, err)

		_, err = f.disputeSvc.AddAttachment(ctx, dispute.ID, AddAttachmentRequest{
			FileName: "tarde.pdf",
			Data:     []byte("pdf"),
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DISPUTE_CLOSED", domainErr.Code)
	})
}

func TestOverdueSweep_RunOnce(t *testing.T) {
	ctx := context.Background()
	f := newReceivableFixture(t)

	f.document(t, "FAC-000001", 1000, -5)
	f.document(t, "FAC-000002", 500, 30)

	sweep := NewOverdueSweep(time.Hour, f.documentRepo, f.publisher, zap.NewNop())
	sweep.RunOnce(ctx)

	events := f.publisher.GetEventsByType(receivable.EventTypeDocumentOverdue)
	require.Len(t, events, 1)
	overdue, ok := events[0].(*receivable.DocumentOverdueEvent)
	require.True(t, ok)
	assert.Equal(t, "FAC-000001", overdue.Number)
	assert.True(t, overdue.Balance.Equal(decimal.NewFromInt(1000)))
}
