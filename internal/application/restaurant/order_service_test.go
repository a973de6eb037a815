package restaurant

import (
	"context"
	"sync"
	"testing"
	"time"

	billingapp "github.com/gestion/backend/internal/application/billing"
	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/inventory"
	"github.com/gestion/backend/internal/domain/restaurant"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

// fakeOrderRepo keeps orders in memory
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*restaurant.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*restaurant.Order)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*restaurant.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order, ok := r.orders[id]; ok {
		return order, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByNumber(_ context.Context, number string) (*restaurant.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.Number == number {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindAll(_ context.Context, _ restaurant.OrderFilter) ([]restaurant.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]restaurant.Order, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, *order)
	}
	return result, nil
}

func (r *fakeOrderRepo) Count(_ context.Context, _ restaurant.OrderFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) FindOpenByTable(_ context.Context, tableID uuid.UUID) (*restaurant.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.TableID != nil && *order.TableID == tableID && order.Status == restaurant.OrderStatusOpen {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) Save(_ context.Context, order *restaurant.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return nil
}

// fakeTableRepo keeps tables in memory
type fakeTableRepo struct {
	mu     sync.Mutex
	tables map[uuid.UUID]*restaurant.Table
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: make(map[uuid.UUID]*restaurant.Table)}
}

func (r *fakeTableRepo) FindByID(_ context.Context, id uuid.UUID) (*restaurant.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if table, ok := r.tables[id]; ok {
		return table, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTableRepo) FindByCode(_ context.Context, code string) (*restaurant.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, table := range r.tables {
		if table.Code == code {
			return table, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTableRepo) FindAll(_ context.Context, _ shared.Filter) ([]restaurant.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]restaurant.Table, 0, len(r.tables))
	for _, table := range r.tables {
		result = append(result, *table)
	}
	return result, nil
}

func (r *fakeTableRepo) FindByZone(_ context.Context, zoneID uuid.UUID) ([]restaurant.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]restaurant.Table, 0)
	for _, table := range r.tables {
		if table.ZoneID == zoneID {
			result = append(result, *table)
		}
	}
	return result, nil
}

func (r *fakeTableRepo) FindByStatus(_ context.Context, status restaurant.TableStatus) ([]restaurant.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]restaurant.Table, 0)
	for _, table := range r.tables {
		if table.Status == status {
			result = append(result, *table)
		}
	}
	return result, nil
}

func (r *fakeTableRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, table := range r.tables {
		if table.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTableRepo) Save(_ context.Context, table *restaurant.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[table.ID] = table
	return nil
}

func (r *fakeTableRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tables, id)
	return nil
}

// fakeReservationRepo keeps reservations in memory
type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]*restaurant.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[uuid.UUID]*restaurant.Reservation)}
}

func (r *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*restaurant.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reservation, ok := r.reservations[id]; ok {
		return reservation, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeReservationRepo) FindAll(_ context.Context, _ restaurant.ReservationFilter) ([]restaurant.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]restaurant.Reservation, 0, len(r.reservations))
	for _, reservation := range r.reservations {
		result = append(result, *reservation)
	}
	return result, nil
}

func (r *fakeReservationRepo) Count(_ context.Context, _ restaurant.ReservationFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.reservations)), nil
}

func (r *fakeReservationRepo) FindOpenByTable(_ context.Context, tableID uuid.UUID, around time.Time, window time.Duration) ([]restaurant.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]restaurant.Reservation, 0)
	for _, reservation := range r.reservations {
		if reservation.TableID != tableID || !reservation.IsOpen() {
			continue
		}
		diff := reservation.ReservedFor.Sub(around)
		if diff < 0 {
			diff = -diff
		}
		if diff < window {
			result = append(result, *reservation)
		}
	}
	return result, nil
}

func (r *fakeReservationRepo) Save(_ context.Context, reservation *restaurant.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reservations[reservation.ID] = reservation
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

// fakeStock tracks reserved quantities per article
type fakeStock struct {
	mu       sync.Mutex
	reserved map[uuid.UUID]decimal.Decimal
}

func newFakeStock() *fakeStock {
	return &fakeStock{reserved: make(map[uuid.UUID]decimal.Decimal)}
}

func (s *fakeStock) Reserve(_ context.Context, articleID, _ uuid.UUID, quantity decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reserved[articleID] = s.reserved[articleID].Add(quantity)
	return nil
}

func (s *fakeStock) Release(_ context.Context, articleID, _ uuid.UUID, quantity decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reserved[articleID] = s.reserved[articleID].Sub(quantity)
	return nil
}

func (s *fakeStock) reservedFor(articleID uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserved[articleID]
}

// fakeBilling records the invoice built for a closed order
type fakeBilling struct {
	mu        sync.Mutex
	invoiceID uuid.UUID
	items     []billingapp.AddItemRequest
	issued    bool
	discarded bool
	issueErr  error
}

func newFakeBilling() *fakeBilling {
	return &fakeBilling{invoiceID: uuid.New()}
}

func (b *fakeBilling) Create(_ context.Context, _ billingapp.CreateInvoiceRequest) (*billingapp.InvoiceResponse, error) {
	return &billingapp.InvoiceResponse{ID: b.invoiceID, Status: "draft"}, nil
}

func (b *fakeBilling) AddItem(_ context.Context, _ uuid.UUID, req billingapp.AddItemRequest) (*billingapp.InvoiceResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, req)
	return &billingapp.InvoiceResponse{ID: b.invoiceID, Status: "draft"}, nil
}

func (b *fakeBilling) Issue(_ context.Context, _ uuid.UUID, _ billingapp.IssueInvoiceRequest) (*billingapp.InvoiceResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.issueErr != nil {
		return nil, b.issueErr
	}
	b.issued = true
	return &billingapp.InvoiceResponse{ID: b.invoiceID, Number: "FAC-000001", Status: "issued"}, nil
}

func (b *fakeBilling) DeleteDraft(_ context.Context, _ uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.discarded = true
	return nil
}

// stubPrices resolves every article to a fixed price
type stubPrices struct {
	price valueobject.Money
}

func (p *stubPrices) ResolvePrice(_ context.Context, _ uuid.UUID, _ time.Time) (valueobject.Money, error) {
	return p.price, nil
}

type floorFixture struct {
	orderSvc        *OrderService
	reservationSvc  *ReservationService
	orderRepo       *fakeOrderRepo
	tableRepo       *fakeTableRepo
	reservationRepo *fakeReservationRepo
	sequenceRepo    *fakeSequenceRepo
	stock           *fakeStock
	billing         *fakeBilling
	articleRepo     *MockArticleRepository
	warehouseRepo   *MockWarehouseRepository
	publisher       *MockEventPublisher
	zone            *restaurant.Zone
	table           *restaurant.Table
	article         *catalog.Article
	warehouse       *inventory.Warehouse
	waiterID        uuid.UUID
}

func newFloorFixture(t *testing.T) *floorFixture {
	t.Helper()

	zone, err := restaurant.NewZone("SALON", "Salón principal")
	require.NoError(t, err)
	table, err := restaurant.NewTable("M1", zone.ID, 4)
	require.NoError(t, err)
	article, err := catalog.NewArticle("AREPA", "Arepa reina pepiada", catalog.ArticleTypeProduct, "UN", valueobject.NewMoneyVES(decimal.NewFromInt(50)))
	require.NoError(t, err)
	warehouse, err := inventory.NewWarehouse("MAIN", "Depósito principal")
	require.NoError(t, err)
	warehouse.MarkDefault()

	f := &floorFixture{
		orderRepo:       newFakeOrderRepo(),
		tableRepo:       newFakeTableRepo(),
		reservationRepo: newFakeReservationRepo(),
		sequenceRepo:    newFakeSequenceRepo(),
		stock:           newFakeStock(),
		billing:         newFakeBilling(),
		articleRepo:     new(MockArticleRepository),
		warehouseRepo:   new(MockWarehouseRepository),
		publisher:       &MockEventPublisher{},
		zone:            zone,
		table:           table,
		article:         article,
		warehouse:       warehouse,
		waiterID:        uuid.New(),
	}
	require.NoError(t, f.tableRepo.Save(context.Background(), table))

	logger := zap.NewNop()
	txScope := NewNoOpTransactionScope(f.orderRepo, f.tableRepo, f.reservationRepo, f.sequenceRepo)
	prices := &stubPrices{price: valueobject.NewMoneyVES(decimal.NewFromInt(50))}
	f.orderSvc = NewOrderService(txScope, f.orderRepo, f.tableRepo, f.reservationRepo,
		f.articleRepo, f.warehouseRepo, prices, f.stock, f.billing, f.publisher, logger)
	f.reservationSvc = NewReservationService(f.reservationRepo, f.tableRepo, f.publisher, logger)

	return f
}

func (f *floorFixture) open(t *testing.T) *OrderResponse {
	t.Helper()
	order, err := f.orderSvc.Open(context.Background(), OpenOrderRequest{
		TableID:  &f.table.ID,
		Guests:   2,
		WaiterID: f.waiterID,
	})
	require.NoError(t, err)
	return order
}

func (f *floorFixture) addItem(t *testing.T, orderID uuid.UUID, qty int64) *OrderResponse {
	t.Helper()
	f.articleRepo.On("FindByID", mock.Anything, f.article.ID).Return(f.article, nil)
	f.warehouseRepo.On("FindDefault", mock.Anything).Return(f.warehouse, nil)
	order, err := f.orderSvc.AddItem(context.Background(), orderID, AddOrderItemRequest{
		ArticleID: f.article.ID,
		Quantity:  decimal.NewFromInt(qty),
		ActedBy:   f.waiterID,
	})
	require.NoError(t, err)
	return order
}

func TestOrderService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("numbers orders consecutively and occupies the table", func(t *testing.T) {
		f := newFloorFixture(t)

		order := f.open(t)
		assert.Equal(t, "PED-000001", order.Number)
		assert.Equal(t, string(restaurant.OrderStatusOpen), order.Status)

		table, err := f.tableRepo.FindByID(ctx, f.table.ID)
		require.NoError(t, err)
		assert.Equal(t, restaurant.TableStatusOccupied, table.Status)
		require.NotNil(t, table.CurrentOrderID)
		assert.Equal(t, order.ID, *table.CurrentOrderID)

		assert.Len(t, f.publisher.GetEventsByType(restaurant.EventTypeOrderOpened), 1)
	})

	t.Run("rejects a second order on an occupied table", func(t *testing.T) {
		f := newFloorFixture(t)
		f.open(t)

		_, err := f.orderSvc.Open(ctx, OpenOrderRequest{
			TableID:  &f.table.ID,
			Guests:   2,
			WaiterID: f.waiterID,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TABLE_OCCUPIED", domainErr.Code)
	})

	t.Run("seats the reservation when given", func(t *testing.T) {
		f := newFloorFixture(t)

		reservation, err := restaurant.NewReservation(f.table.ID, "María Pérez", "0414-5551234", 2, time.Now().Add(time.Hour))
		require.NoError(t, err)
		require.NoError(t, f.reservationRepo.Save(ctx, reservation))

		_, err = f.orderSvc.Open(ctx, OpenOrderRequest{
			TableID:       &f.table.ID,
			ReservationID: &reservation.ID,
			Guests:        2,
			WaiterID:      f.waiterID,
		})
		require.NoError(t, err)

		seated, err := f.reservationRepo.FindByID(ctx, reservation.ID)
		require.NoError(t, err)
		assert.Equal(t, restaurant.ReservationStatusSeated, seated.Status)
	})

	t.Run("rejects a reservation for another table", func(t *testing.T) {
		f := newFloorFixture(t)

		other, err := restaurant.NewTable("M2", f.zone.ID, 4)
		require.NoError(t, err)
		require.NoError(t, f.tableRepo.Save(ctx, other))

		reservation, err := restaurant.NewReservation(other.ID, "María Pérez", "", 2, time.Now().Add(time.Hour))
		require.NoError(t, err)
		require.NoError(t, f.reservationRepo.Save(ctx, reservation))

		_, err = f.orderSvc.Open(ctx, OpenOrderRequest{
			TableID:       &f.table.ID,
			ReservationID: &reservation.ID,
			Guests:        2,
			WaiterID:      f.waiterID,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "RESERVATION_MISMATCH", domainErr.Code)
	})
}

func TestOrderService_Items(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots the article and reserves stock", func(t *testing.T) {
		f := newFloorFixture(t)
		order := f.open(t)

		updated := f.addItem(t, order.ID, 3)
		require.Len(t, updated.Items, 1)
		assert.Equal(t, "AREPA", updated.Items[0].Code)
		assert.True(t, updated.Items[0].UnitPrice.Equal(decimal.NewFromInt(50)))
		assert.True(t, updated.Total.Equal(decimal.NewFromInt(150)))
		assert.True(t, f.stock.reservedFor(f.article.ID).Equal(decimal.NewFromInt(3)))
	})

	t.Run("another waiter cannot touch the order", func(t *testing.T) {
		f := newFloorFixture(t)
		order := f.open(t)
		f.articleRepo.On("FindByID", mock.Anything, f.article.ID).Return(f.article, nil)
		f.warehouseRepo.On("FindDefault", mock.Anything).Return(f.warehouse, nil)

		_, err := f.orderSvc.AddItem(ctx, order.ID, AddOrderItemRequest{
			ArticleID: f.article.ID,
			Quantity:  decimal.NewFromInt(1),
			ActedBy:   uuid.New(),
		})
		require.ErrorIs(t, err, shared.ErrForbidden)

		// A manager can
		_, err = f.orderSvc.AddItem(ctx, order.ID, AddOrderItemRequest{
			ArticleID: f.article.ID,
			Quantity:  decimal.NewFromInt(1),
			ActedBy:   uuid.New(),
			CanManage: true,
		})
		require.NoError(t, err)
	})

	t.Run("cancelling an item releases its reservation", func(t *testing.T) {
		f := newFloorFixture(t)
		order := f.open(t)
		updated := f.addItem(t, order.ID, 3)

		_, err := f.orderSvc.CancelItem(ctx, order.ID, updated.Items[0].ID, OrderItemActionRequest{ActedBy: f.waiterID})
		require.NoError(t, err)
		assert.True(t, f.stock.reservedFor(f.article.ID).IsZero())
	})

	t.Run("served items cannot be cancelled", func(t *testing.T) {
		f := newFloorFixture(t)
		order := f.open(t)
		updated := f.addItem(t, order.ID, 1)

		_, err := f.orderSvc.MarkItemServed(ctx, order.ID, updated.Items[0].ID, OrderItemActionRequest{ActedBy: f.waiterID})
		require.NoError(t, err)

		_, err = f.orderSvc.CancelItem(ctx, order.ID, updated.Items[0].ID, OrderItemActionRequest{ActedBy: f.waiterID})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ITEM_SERVED", domainErr.Code)
	})
}

func TestOrderService_Close(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	t.Run("bills the order and frees the table", func(t *testing.T) {
		f := newFloorFixture(t)
		order := f.open(t)
		f.addItem(t, order.ID, 2)

		closed, err := f.orderSvc.Close(ctx, order.ID, CloseOrderRequest{
			CustomerID: customerID,
			Payments:   []billingapp.PaymentInput{{Method: "cash", Amount: decimal.NewFromInt(100)}},
			ActedBy:    f.waiterID,
		})
		require.NoError(t, err)
		assert.Equal(t, string(restaurant.OrderStatusClosed), closed.Status)
		require.NotNil(t, closed.InvoiceID)
		assert.Equal(t, f.billing.invoiceID, *closed.InvoiceID)

		// Reservation released so billing could consume the stock
		assert.True(t, f.stock.reservedFor(f.article.ID).IsZero())
		assert.True(t, f.billing.issued)
		require.Len(t, f.billing.items, 1)
		assert.True(t, f.billing.items[0].Quantity.Equal(decimal.NewFromInt(2)))
		require.NotNil(t, f.billing.items[0].UnitPrice)
		assert.True(t, f.billing.items[0].UnitPrice.Equal(decimal.NewFromInt(50)))

		table, err := f.tableRepo.FindByID(ctx, f.table.ID)
		require.NoError(t, err)
		assert.Equal(t, restaurant.TableStatusAvailable, table.Status)

		assert.Len(t, f.publisher.GetEventsByType(restaurant.EventTypeOrderClosed), 1)
	})

	t.Run("failed billing leaves the order open and re-reserves stock", func(t *testing.T) {
		f := newFloorFixture(t)
		order := f.open(t)
		f.addItem(t, order.ID, 2)
		f.billing.issueErr = shared.NewDomainError("PAYMENT_MISMATCH", "Payments must cover the invoice total")

		_, err := f.orderSvc.Close(ctx, order.ID, CloseOrderRequest{
			CustomerID: customerID,
			ActedBy:    f.waiterID,
		})
		require.Error(t, err)
		assert.True(t, f.billing.discarded)
		assert.True(t, f.stock.reservedFor(f.article.ID).Equal(decimal.NewFromInt(2)))

		stored, err := f.orderRepo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, restaurant.OrderStatusOpen, stored.Status)
	})

	t.Run("empty order cannot be closed", func(t *testing.T) {
		f := newFloorFixture(t)
		order := f.open(t)

		_, err := f.orderSvc.Close(ctx, order.ID, CloseOrderRequest{
			CustomerID: customerID,
			ActedBy:    f.waiterID,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_ORDER", domainErr.Code)
	})
}

func TestOrderService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newFloorFixture(t)
	order := f.open(t)
	f.addItem(t, order.ID, 2)

	cancelled, err := f.orderSvc.Cancel(ctx, order.ID, CancelOrderRequest{
		Reason:  "Cliente se retiró",
		ActedBy: f.waiterID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(restaurant.OrderStatusCancelled), cancelled.Status)
	assert.True(t, f.stock.reservedFor(f.article.ID).IsZero())

	table, err := f.tableRepo.FindByID(ctx, f.table.ID)
	require.NoError(t, err)
	assert.Equal(t, restaurant.TableStatusAvailable, table.Status)
}

func TestReservationService(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects overlapping reservations", func(t *testing.T) {
		f := newFloorFixture(t)
		at := time.Now().Add(24 * time.Hour)

		_, err := f.reservationSvc.Create(ctx, CreateReservationRequest{
			TableID:     f.table.ID,
			GuestName:   "María Pérez",
			PartySize:   2,
			ReservedFor: at,
		})
		require.NoError(t, err)

		_, err = f.reservationSvc.Create(ctx, CreateReservationRequest{
			TableID:     f.table.ID,
			GuestName:   "José Rondón",
			PartySize:   2,
			ReservedFor: at.Add(30 * time.Minute),
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TABLE_ALREADY_RESERVED", domainErr.Code)

		// Far enough apart is fine
		_, err = f.reservationSvc.Create(ctx, CreateReservationRequest{
			TableID:     f.table.ID,
			GuestName:   "José Rondón",
			PartySize:   2,
			ReservedFor: at.Add(5 * time.Hour),
		})
		require.NoError(t, err)
	})

	t.Run("rejects a party larger than the table", func(t *testing.T) {
		f := newFloorFixture(t)

		_, err := f.reservationSvc.Create(ctx, CreateReservationRequest{
			TableID:     f.table.ID,
			GuestName:   "Grupo grande",
			PartySize:   8,
			ReservedFor: time.Now().Add(24 * time.Hour),
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PARTY_TOO_LARGE", domainErr.Code)
	})

	t.Run("confirming an imminent reservation holds the table", func(t *testing.T) {
		f := newFloorFixture(t)

		created, err := f.reservationSvc.Create(ctx, CreateReservationRequest{
			TableID:     f.table.ID,
			GuestName:   "María Pérez",
			PartySize:   2,
			ReservedFor: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		confirmed, err := f.reservationSvc.Confirm(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, string(restaurant.ReservationStatusConfirmed), confirmed.Status)

		table, err := f.tableRepo.FindByID(ctx, f.table.ID)
		require.NoError(t, err)
		assert.Equal(t, restaurant.TableStatusReserved, table.Status)

		assert.Len(t, f.publisher.GetEventsByType(restaurant.EventTypeReservationConfirmed), 1)

		// Cancelling releases the hold
		_, err = f.reservationSvc.Cancel(ctx, created.ID, "Cliente llamó")
		require.NoError(t, err)
		table, err = f.tableRepo.FindByID(ctx, f.table.ID)
		require.NoError(t, err)
		assert.Equal(t, restaurant.TableStatusAvailable, table.Status)
	})
}
