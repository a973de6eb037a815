package billing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/inventory"
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

// MockArticleRepository is a mock implementation of catalog.ArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Article), args.Error(1)
}

func (m *MockArticleRepository) FindByCode(ctx context.Context, code string) (*catalog.Article, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Article), args.Error(1)
}

func (m *MockArticleRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Article, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Article), args.Error(1)
}

func (m *MockArticleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Article, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Article), args.Error(1)
}

func (m *MockArticleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Article, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Article), args.Error(1)
}

func (m *MockArticleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArticleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockArticleRepository) Save(ctx context.Context, article *catalog.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeInvoiceRepo keeps invoices in memory
type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[uuid.UUID]*billing.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*billing.Invoice)}
}

func (r *fakeInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.invoices[id]; ok {
		return inv, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeInvoiceRepo) FindByNumber(_ context.Context, number string) (*billing.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.Number == number {
			return inv, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeInvoiceRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*billing.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.OrderID != nil && *inv.OrderID == orderID {
			return inv, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeInvoiceRepo) FindAll(_ context.Context, _ billing.InvoiceFilter) ([]billing.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]billing.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		result = append(result, *inv)
	}
	return result, nil
}

func (r *fakeInvoiceRepo) Count(_ context.Context, _ billing.InvoiceFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.invoices)), nil
}

func (r *fakeInvoiceRepo) Save(_ context.Context, invoice *billing.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.invoices, id)
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

func (r *fakeDocumentRepo) FindNewlyOverdue(_ context.Context, _ time.Time) ([]receivable.CustomerDocument, error) {
	return nil, nil
}

func (r *fakeDocumentRepo) Save(_ context.Context, document *receivable.CustomerDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents[document.ID] = document
	return nil
}

// fakeStockItemRepo keeps stock items in memory
type fakeStockItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*inventory.StockItem
}

func newFakeStockItemRepo() *fakeStockItemRepo {
	return &fakeStockItemRepo{items: make(map[uuid.UUID]*inventory.StockItem)}
}

func (r *fakeStockItemRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[id]; ok {
		return item, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStockItemRepo) FindByArticleAndWarehouse(_ context.Context, articleID, warehouseID uuid.UUID) (*inventory.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ArticleID == articleID && item.WarehouseID == warehouseID {
			return item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStockItemRepo) FindByArticle(_ context.Context, articleID uuid.UUID) ([]inventory.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]inventory.StockItem, 0)
	for _, item := range r.items {
		if item.ArticleID == articleID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *fakeStockItemRepo) FindByWarehouse(_ context.Context, warehouseID uuid.UUID, _ shared.Filter) ([]inventory.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]inventory.StockItem, 0)
	for _, item := range r.items {
		if item.WarehouseID == warehouseID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *fakeStockItemRepo) CountByWarehouse(_ context.Context, warehouseID uuid.UUID, _ shared.Filter) (int64, error) {
	items, _ := r.FindByWarehouse(context.Background(), warehouseID, shared.Filter{})
	return int64(len(items)), nil
}

func (r *fakeStockItemRepo) Save(_ context.Context, item *inventory.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

// fakeMovementRepo keeps kardex lines in memory
type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []inventory.StockMovement
}

func (r *fakeMovementRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.movements {
		if r.movements[i].ID == id {
			return &r.movements[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeMovementRepo) FindAll(_ context.Context, _ inventory.MovementFilter) ([]inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]inventory.StockMovement, len(r.movements))
	copy(result, r.movements)
	return result, nil
}

func (r *fakeMovementRepo) Count(_ context.Context, _ inventory.MovementFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.movements)), nil
}

func (r *fakeMovementRepo) Save(_ context.Context, movement *inventory.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, *movement)
	return nil
}

// fakeTermRepo holds payment terms in memory
type fakeTermRepo struct {
	mu    sync.Mutex
	terms map[uuid.UUID]*billing.PaymentTerm
}

func newFakeTermRepo() *fakeTermRepo {
	return &fakeTermRepo{terms: make(map[uuid.UUID]*billing.PaymentTerm)}
}

func (r *fakeTermRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.PaymentTerm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if term, ok := r.terms[id]; ok {
		return term, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTermRepo) FindByCode(_ context.Context, code string) (*billing.PaymentTerm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, term := range r.terms {
		if term.Code == code {
			return term, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTermRepo) FindAll(_ context.Context, _ shared.Filter) ([]billing.PaymentTerm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]billing.PaymentTerm, 0, len(r.terms))
	for _, term := range r.terms {
		result = append(result, *term)
	}
	return result, nil
}

func (r *fakeTermRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := r.FindByCode(ctx, code)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeTermRepo) Save(_ context.Context, term *billing.PaymentTerm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terms[term.ID] = term
	return nil
}

func (r *fakeTermRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.terms, id)
	return nil
}

// fakeRateRepo holds exchange rates in memory
type fakeRateRepo struct {
	mu    sync.Mutex
	rates []billing.ExchangeRate
}

func (r *fakeRateRepo) FindLatest(_ context.Context, currency valueobject.Currency) (*billing.ExchangeRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *billing.ExchangeRate
	for i := range r.rates {
		if r.rates[i].Currency != currency {
			continue
		}
		if latest == nil || r.rates[i].EffectiveAt.After(latest.EffectiveAt) {
			latest = &r.rates[i]
		}
	}
	if latest == nil {
		return nil, shared.ErrNotFound
	}
	return latest, nil
}

func (r *fakeRateRepo) FindAt(ctx context.Context, currency valueobject.Currency, _ time.Time) (*billing.ExchangeRate, error) {
	return r.FindLatest(ctx, currency)
}

func (r *fakeRateRepo) FindHistory(_ context.Context, currency valueobject.Currency, _ shared.Filter) ([]billing.ExchangeRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]billing.ExchangeRate, 0)
	for _, rate := range r.rates {
		if rate.Currency == currency {
			result = append(result, rate)
		}
	}
	return result, nil
}

func (r *fakeRateRepo) Save(_ context.Context, rate *billing.ExchangeRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates = append(r.rates, *rate)
	return nil
}

// MockWarehouseRepository is a mock implementation of inventory.WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindByCode(ctx context.Context, code string) (*inventory.Warehouse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Warehouse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindDefault(ctx context.Context) (*inventory.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, warehouse *inventory.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
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

type invoiceFixture struct {
	service      *InvoiceService
	invoiceRepo  *fakeInvoiceRepo
	sequenceRepo *fakeSequenceRepo
	documentRepo *fakeDocumentRepo
	stockRepo    *fakeStockItemRepo
	movementRepo *fakeMovementRepo
	termRepo     *fakeTermRepo
	rateRepo     *fakeRateRepo
	customerRepo *MockCustomerRepository
	articleRepo  *MockArticleRepository
	wareRepo     *MockWarehouseRepository
	publisher    *MockEventPublisher
	customer     *partner.Customer
	article      *catalog.Article
	warehouse    *inventory.Warehouse
	creditTerm   *billing.PaymentTerm
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	customer, err := partner.NewCustomer("CLI-001", "Panadería La Espiga", partner.CustomerTypeCompany)
	require.NoError(t, err)
	limit, err := valueobject.NewMoney(decimal.NewFromInt(10000), valueobject.DefaultCurrency)
	require.NoError(t, err)
	require.NoError(t, customer.SetCreditTerms(limit, nil))

	article, err := catalog.NewArticle("HARINA", "Harina de maíz", catalog.ArticleTypeProduct, "KG", valueobject.NewMoneyVES(decimal.NewFromInt(100)))
	require.NoError(t, err)
	require.NoError(t, article.SetTaxRate(decimal.NewFromInt(16)))

	warehouse, err := inventory.NewWarehouse("MAIN", "Depósito principal")
	require.NoError(t, err)

	creditTerm, err := billing.NewPaymentTerm("CRED30", "Crédito 30 días", 30)
	require.NoError(t, err)

	f := &invoiceFixture{
		invoiceRepo:  newFakeInvoiceRepo(),
		sequenceRepo: newFakeSequenceRepo(),
		documentRepo: newFakeDocumentRepo(),
		stockRepo:    newFakeStockItemRepo(),
		movementRepo: &fakeMovementRepo{},
		termRepo:     newFakeTermRepo(),
		rateRepo:     &fakeRateRepo{},
		customerRepo: new(MockCustomerRepository),
		articleRepo:  new(MockArticleRepository),
		wareRepo:     new(MockWarehouseRepository),
		publisher:    &MockEventPublisher{},
		customer:     customer,
		article:      article,
		warehouse:    warehouse,
		creditTerm:   creditTerm,
	}
	require.NoError(t, f.termRepo.Save(context.Background(), creditTerm))

	f.service = NewInvoiceService(
		NewNoOpTransactionScope(f.invoiceRepo, f.sequenceRepo, f.documentRepo, f.stockRepo, f.movementRepo),
		f.invoiceRepo,
		f.sequenceRepo,
		f.termRepo,
		f.rateRepo,
		f.customerRepo,
		f.articleRepo,
		f.wareRepo,
		f.documentRepo,
		nil,
		f.publisher,
		zap.NewNop(),
	)

	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.articleRepo.On("FindByID", mock.Anything, article.ID).Return(article, nil)
	f.wareRepo.On("FindByID", mock.Anything, warehouse.ID).Return(warehouse, nil)

	return f
}

// stock seeds the warehouse with on-hand quantity at the given cost
func (f *invoiceFixture) stock(t *testing.T, quantity, unitCost int64) {
	t.Helper()
	item, err := inventory.NewStockItem(f.article.ID, f.warehouse.ID)
	require.NoError(t, err)
	cost, err := valueobject.NewMoney(decimal.NewFromInt(unitCost), valueobject.DefaultCurrency)
	require.NoError(t, err)
	require.NoError(t, item.Receive(decimal.NewFromInt(quantity), cost))
	require.NoError(t, f.stockRepo.Save(context.Background(), item))
}

// draft creates a draft with one line of the fixture article
func (f *invoiceFixture) draft(t *testing.T, quantity int64) uuid.UUID {
	t.Helper()
	resp, err := f.service.Create(context.Background(), CreateInvoiceRequest{
		CustomerID:  f.customer.ID,
		WarehouseID: &f.warehouse.ID,
	})
	require.NoError(t, err)

	_, err = f.service.AddItem(context.Background(), resp.ID, AddItemRequest{
		ArticleID: f.article.ID,
		Quantity:  decimal.NewFromInt(quantity),
	})
	require.NoError(t, err)

	return resp.ID
}

func TestInvoiceService_Issue(t *testing.T) {
	t.Run("assigns consecutive numbers and consumes stock", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.stock(t, 100, 60)

		// 2 KG at 100 + 16% IVA = 232
		invoiceID := f.draft(t, 2)
		resp, err := f.service.Issue(context.Background(), invoiceID, IssueInvoiceRequest{
			Payments: []PaymentInput{{Method: "cash", Amount: decimal.NewFromInt(232)}},
		})
		require.NoError(t, err)

		assert.Equal(t, "FAC-000001", resp.Number)
		assert.Equal(t, "paid", resp.Status)
		assert.True(t, resp.Balance.IsZero())

		secondID := f.draft(t, 1)
		second, err := f.service.Issue(context.Background(), secondID, IssueInvoiceRequest{
			Payments: []PaymentInput{{Method: "cash", Amount: decimal.NewFromInt(116)}},
		})
		require.NoError(t, err)
		assert.Equal(t, "FAC-000002", second.Number)

		item, err := f.stockRepo.FindByArticleAndWarehouse(context.Background(), f.article.ID, f.warehouse.ID)
		require.NoError(t, err)
		assert.True(t, item.OnHand.Equal(decimal.NewFromInt(97)))

		issued := f.publisher.GetEventsByType(billing.EventTypeInvoiceIssued)
		assert.Len(t, issued, 2)
	})

	t.Run("credit sale stays issued until the receivable is collected", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.stock(t, 100, 60)

		invoiceID := f.draft(t, 2)
		resp, err := f.service.Issue(context.Background(), invoiceID, IssueInvoiceRequest{
			PaymentTermID: &f.creditTerm.ID,
			Payments:      []PaymentInput{{Method: "credit", Amount: decimal.NewFromInt(232)}},
		})
		require.NoError(t, err)

		assert.Equal(t, "issued", resp.Status)
		assert.True(t, resp.Balance.Equal(decimal.NewFromInt(232)))
		assert.Empty(t, f.publisher.GetEventsByType(billing.EventTypeInvoicePaid))
	})

	t.Run("issue emits an alert when stock falls under the minimum", func(t *testing.T) {
		f := newInvoiceFixture(t)
		require.NoError(t, f.article.SetMinStock(decimal.NewFromInt(99)))
		f.stock(t, 100, 60)

		invoiceID := f.draft(t, 2)
		_, err := f.service.Issue(context.Background(), invoiceID, IssueInvoiceRequest{
			Payments: []PaymentInput{{Method: "cash", Amount: decimal.NewFromInt(232)}},
		})
		require.NoError(t, err)

		alerts := f.publisher.GetEventsByType(inventory.EventTypeStockBelowMinimum)
		require.Len(t, alerts, 1)
		alert, ok := alerts[0].(*inventory.StockBelowMinimumEvent)
		require.True(t, ok)
		assert.True(t, alert.MinStock.Equal(decimal.NewFromInt(99)))
	})

	t.Run("credit portion opens a receivable with the term due date", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.stock(t, 100, 60)

		invoiceID := f.draft(t, 2)
		resp, err := f.service.Issue(context.Background(), invoiceID, IssueInvoiceRequest{
			PaymentTermID: &f.creditTerm.ID,
			Payments: []PaymentInput{
				{Method: "cash", Amount: decimal.NewFromInt(100)},
				{Method: "credit", Amount: decimal.NewFromInt(132)},
			},
		})
		require.NoError(t, err)

		document, err := f.documentRepo.FindByInvoiceID(context.Background(), resp.ID)
		require.NoError(t, err)
		assert.Equal(t, resp.Number, document.Number)
		assert.True(t, document.Amount.Equal(decimal.NewFromInt(132)))
		require.NotNil(t, document.DueDate)
		assert.Equal(t, resp.DueDate.Unix(), document.DueDate.Unix())

		// Due date lands 30 days out at end of day
		expectedDay := time.Now().AddDate(0, 0, 30)
		assert.Equal(t, expectedDay.Day(), document.DueDate.Day())
		assert.Equal(t, 23, document.DueDate.Hour())
	})

	t.Run("rejects payments that do not cover the total", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.stock(t, 100, 60)

		invoiceID := f.draft(t, 2)
		_, err := f.service.Issue(context.Background(), invoiceID, IssueInvoiceRequest{
			Payments: []PaymentInput{{Method: "cash", Amount: decimal.NewFromInt(100)}},
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PAYMENT_MISMATCH", domainErr.Code)
	})

	t.Run("rejects credit beyond the customer limit", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.stock(t, 1000, 60)

		invoiceID := f.draft(t, 100) // total 11600 > limit 10000
		_, err := f.service.Issue(context.Background(), invoiceID, IssueInvoiceRequest{
			PaymentTermID: &f.creditTerm.ID,
			Payments:      []PaymentInput{{Method: "credit", Amount: decimal.NewFromInt(11600)}},
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CREDIT_LIMIT_EXCEEDED", domainErr.Code)
	})

	t.Run("rejects credit on a cash term", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.stock(t, 100, 60)

		invoiceID := f.draft(t, 1)
		_, err := f.service.Issue(context.Background(), invoiceID, IssueInvoiceRequest{
			Payments: []PaymentInput{{Method: "credit", Amount: decimal.NewFromInt(116)}},
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TERM_REQUIRED", domainErr.Code)
	})

	t.Run("insufficient stock aborts the issue", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.stock(t, 1, 60)

		invoiceID := f.draft(t, 5)
		_, err := f.service.Issue(context.Background(), invoiceID, IssueInvoiceRequest{
			Payments: []PaymentInput{{Method: "cash", Amount: decimal.NewFromInt(580)}},
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})
}

func TestInvoiceService_Cancel(t *testing.T) {
	t.Run("restores stock and cancels the receivable", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.stock(t, 100, 60)

		invoiceID := f.draft(t, 2)
		resp, err := f.service.Issue(context.Background(), invoiceID, IssueInvoiceRequest{
			PaymentTermID: &f.creditTerm.ID,
			Payments:      []PaymentInput{{Method: "credit", Amount: decimal.NewFromInt(232)}},
		})
		require.NoError(t, err)

		_, err = f.service.Cancel(context.Background(), resp.ID, CancelInvoiceRequest{Reason: "pedido duplicado"})
		require.NoError(t, err)

		item, err := f.stockRepo.FindByArticleAndWarehouse(context.Background(), f.article.ID, f.warehouse.ID)
		require.NoError(t, err)
		assert.True(t, item.OnHand.Equal(decimal.NewFromInt(100)))

		document, err := f.documentRepo.FindByInvoiceID(context.Background(), resp.ID)
		require.NoError(t, err)
		assert.Equal(t, receivable.DocumentStatusCancelled, document.Status)
	})

	t.Run("blocked while the receivable has active applications", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.stock(t, 100, 60)

		invoiceID := f.draft(t, 2)
		resp, err := f.service.Issue(context.Background(), invoiceID, IssueInvoiceRequest{
			PaymentTermID: &f.creditTerm.ID,
			Payments:      []PaymentInput{{Method: "credit", Amount: decimal.NewFromInt(232)}},
		})
		require.NoError(t, err)

		document, err := f.documentRepo.FindByInvoiceID(context.Background(), resp.ID)
		require.NoError(t, err)
		_, err = document.Apply(receivable.ApplicationTypePayment, decimal.NewFromInt(50), "REC-001", nil, nil)
		require.NoError(t, err)

		_, err = f.service.Cancel(context.Background(), resp.ID, CancelInvoiceRequest{Reason: "anular"})
		assert.ErrorIs(t, err, shared.ErrHasApplications)

		invoice, err := f.invoiceRepo.FindByID(context.Background(), resp.ID)
		require.NoError(t, err)
		assert.NotEqual(t, billing.InvoiceStatusCancelled, invoice.Status)
	})

	t.Run("paid invoices cannot be cancelled", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.stock(t, 100, 60)

		invoiceID := f.draft(t, 1)
		resp, err := f.service.Issue(context.Background(), invoiceID, IssueInvoiceRequest{
			Payments: []PaymentInput{{Method: "cash", Amount: decimal.NewFromInt(116)}},
		})
		require.NoError(t, err)

		_, err = f.service.Cancel(context.Background(), resp.ID, CancelInvoiceRequest{Reason: "anular"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVOICE_PAID", domainErr.Code)
	})
}

func TestInvoiceService_RegisterPayment(t *testing.T) {
	f := newInvoiceFixture(t)
	f.stock(t, 100, 60)

	invoiceID := f.draft(t, 2)
	resp, err := f.service.Issue(context.Background(), invoiceID, IssueInvoiceRequest{
		PaymentTermID: &f.creditTerm.ID,
		Payments: []PaymentInput{
			{Method: "cash", Amount: decimal.NewFromInt(132)},
			{Method: "credit", Amount: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "issued", resp.Status)
	assert.True(t, resp.Balance.Equal(decimal.NewFromInt(100)))

	// Credit cannot be granted after issue
	_, err = f.service.RegisterPayment(context.Background(), resp.ID, RegisterPaymentRequest{
		Method: "credit",
		Amount: decimal.NewFromInt(10),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CREDIT_AT_ISSUE_ONLY", domainErr.Code)

	// Collecting the credit portion settles the invoice and its receivable
	paid, err := f.service.RegisterPayment(context.Background(), resp.ID, RegisterPaymentRequest{
		Method:    "transfer",
		Amount:    decimal.NewFromInt(100),
		Reference: "TRF-5501",
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	assert.True(t, paid.Balance.IsZero())

	document, err := f.documentRepo.FindByInvoiceID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, receivable.DocumentStatusSettled, document.Status)
	assert.True(t, document.Balance().IsZero())

	assert.Len(t, f.publisher.GetEventsByType(billing.EventTypeInvoicePaid), 1)
	assert.Len(t, f.publisher.GetEventsByType(receivable.EventTypeDocumentSettled), 1)
}

func TestInvoiceService_NextNumber(t *testing.T) {
	f := newInvoiceFixture(t)
	f.stock(t, 100, 60)

	number, err := f.service.NextNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "FAC-000001", number)

	invoiceID := f.draft(t, 1)
	_, err = f.service.Issue(context.Background(), invoiceID, IssueInvoiceRequest{
		Payments: []PaymentInput{{Method: "cash", Amount: decimal.NewFromInt(116)}},
	})
	require.NoError(t, err)

	number, err = f.service.NextNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "FAC-000002", number)
}
