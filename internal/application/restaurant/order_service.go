package restaurant

import (
	"context"
	"errors"
	"fmt"
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
	"go.uber.org/zap"
)

const (
	orderPrefix        = "PED"
	orderNumberPadding = 6
)

// PriceResolver resolves the selling price of an article at a point in
// time, honoring active price lists.
type PriceResolver interface {
	ResolvePrice(ctx context.Context, articleID uuid.UUID, at time.Time) (valueobject.Money, error)
}

// StockReserver holds stock aside for open orders so the floor cannot
// sell the same plate twice.
type StockReserver interface {
	Reserve(ctx context.Context, articleID, warehouseID uuid.UUID, quantity decimal.Decimal) error
	Release(ctx context.Context, articleID, warehouseID uuid.UUID, quantity decimal.Decimal) error
}

// InvoiceIssuer is the billing surface the floor needs to settle an
// order. Implemented by the billing invoice service.
type InvoiceIssuer interface {
	Create(ctx context.Context, req billingapp.CreateInvoiceRequest) (*billingapp.InvoiceResponse, error)
	AddItem(ctx context.Context, invoiceID uuid.UUID, req billingapp.AddItemRequest) (*billingapp.InvoiceResponse, error)
	Issue(ctx context.Context, invoiceID uuid.UUID, req billingapp.IssueInvoiceRequest) (*billingapp.InvoiceResponse, error)
	DeleteDraft(ctx context.Context, invoiceID uuid.UUID) error
}

// OrderService runs table service: open orders, kitchen workflow and
// settlement through billing.
type OrderService struct {
	txScope         TransactionScope
	orderRepo       restaurant.OrderRepository
	tableRepo       restaurant.TableRepository
	reservationRepo restaurant.ReservationRepository
	articleRepo     catalog.ArticleRepository
	warehouseRepo   inventory.WarehouseRepository
	prices          PriceResolver
	stock           StockReserver
	billing         InvoiceIssuer
	eventBus        shared.EventPublisher
	logger          *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txScope TransactionScope,
	orderRepo restaurant.OrderRepository,
	tableRepo restaurant.TableRepository,
	reservationRepo restaurant.ReservationRepository,
	articleRepo catalog.ArticleRepository,
	warehouseRepo inventory.WarehouseRepository,
	prices PriceResolver,
	stock StockReserver,
	billing InvoiceIssuer,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		txScope:         txScope,
		orderRepo:       orderRepo,
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
		articleRepo:     articleRepo,
		warehouseRepo:   warehouseRepo,
		prices:          prices,
		stock:           stock,
		billing:         billing,
		eventBus:        eventBus,
		logger:          logger,
	}
}

// Open opens an order on a table, seating its reservation if one is
// given. The order number, the order row and the table status change in
// one transaction.
func (s *OrderService) Open(ctx context.Context, req OpenOrderRequest) (*OrderResponse, error) {
	currency := valueobject.DefaultCurrency
	if req.Currency != "" {
		currency = valueobject.Currency(req.Currency)
	}

	var reservation *restaurant.Reservation
	if req.ReservationID != nil {
		var err error
		reservation, err = s.reservationRepo.FindByID(ctx, *req.ReservationID)
		if err != nil {
			return nil, err
		}
		if req.TableID == nil || reservation.TableID != *req.TableID {
			return nil, shared.NewDomainError("RESERVATION_MISMATCH", "Reservation is for a different table")
		}
	}

	var order *restaurant.Order
	var events []shared.DomainEvent
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sequence, err := s.lockSequence(ctx, repos)
		if err != nil {
			return err
		}
		number := sequence.AllocateNext()
		if err := repos.Sequences().Save(ctx, sequence); err != nil {
			return err
		}

		order, err = restaurant.NewOrder(number, req.TableID, req.WaiterID, req.Guests, currency)
		if err != nil {
			return err
		}
		if req.Notes != "" {
			order.Notes = req.Notes
		}

		if req.TableID != nil {
			table, err := repos.Tables().FindByID(ctx, *req.TableID)
			if err != nil {
				return err
			}
			if existing, err := repos.Orders().FindOpenByTable(ctx, table.ID); err == nil && existing != nil {
				return shared.NewDomainError("TABLE_OCCUPIED", "Table already has an open order")
			} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if table.Status == restaurant.TableStatusReserved {
				// The held table is released into this order
				if err := table.Free(); err != nil {
					return err
				}
			}
			if err := table.Occupy(order.ID); err != nil {
				return err
			}
			if err := repos.Tables().Save(ctx, table); err != nil {
				return err
			}
		}

		if reservation != nil {
			if err := reservation.Seat(); err != nil {
				return err
			}
			if err := repos.Reservations().Save(ctx, reservation); err != nil {
				return err
			}
		}

		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		events = order.GetDomainEvents()
		order.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	s.logger.Info("order opened",
		zap.String("number", order.Number),
		zap.String("waiter_id", order.WaiterID.String()))

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := restaurant.OrderFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "opened_at",
			OrderDir: "desc",
		},
		TableID:  filter.TableID,
		WaiterID: filter.WaiterID,
		From:     filter.From,
		To:       filter.To,
	}
	if filter.Status != "" {
		status := restaurant.OrderStatus(filter.Status)
		domainFilter.Status = &status
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// AddItem appends a line to an open order, snapshotting the article and
// its current price and reserving tracked stock
func (s *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, req AddOrderItemRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(order, req.ActedBy, req.CanManage); err != nil {
		return nil, err
	}

	article, err := s.articleRepo.FindByID(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	if !article.IsSellable() {
		return nil, shared.NewDomainError("ARTICLE_INACTIVE", "Article is not for sale")
	}

	price, err := s.prices.ResolvePrice(ctx, article.ID, time.Now())
	if err != nil {
		return nil, err
	}

	if s.needsReservation(article) {
		warehouseID, err := s.defaultWarehouse(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.stock.Reserve(ctx, article.ID, warehouseID, req.Quantity); err != nil {
			return nil, err
		}
	}

	if err := order.AddItem(article.ID, article.Code, article.Name, req.Quantity, price, req.Notes); err != nil {
		if s.needsReservation(article) {
			s.releaseQuietly(ctx, article, req.Quantity)
		}
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// CancelItem voids a line that has not been served and releases its
// reserved stock
func (s *OrderService) CancelItem(ctx context.Context, orderID, itemID uuid.UUID, req OrderItemActionRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(order, req.ActedBy, req.CanManage); err != nil {
		return nil, err
	}

	var cancelled *restaurant.OrderItem
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			cancelled = &order.Items[i]
		}
	}

	if err := order.CancelItem(itemID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if cancelled != nil {
		s.releaseItemQuietly(ctx, cancelled.ArticleID, cancelled.Quantity)
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// MarkItemPreparing sends a line to the kitchen
func (s *OrderService) MarkItemPreparing(ctx context.Context, orderID, itemID uuid.UUID, req OrderItemActionRequest) (*OrderResponse, error) {
	return s.markItem(ctx, orderID, itemID, restaurant.OrderItemStatusPreparing, req)
}

// MarkItemServed marks a line as served to the table
func (s *OrderService) MarkItemServed(ctx context.Context, orderID, itemID uuid.UUID, req OrderItemActionRequest) (*OrderResponse, error) {
	return s.markItem(ctx, orderID, itemID, restaurant.OrderItemStatusServed, req)
}

func (s *OrderService) markItem(ctx context.Context, orderID, itemID uuid.UUID, status restaurant.OrderItemStatus, req OrderItemActionRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(order, req.ActedBy, req.CanManage); err != nil {
		return nil, err
	}

	if err := order.MarkItemStatus(itemID, status); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Close settles the order: the reserved stock is released, billing
// issues the invoice (consuming the stock), and the order closes and
// frees its table.
func (s *OrderService) Close(ctx context.Context, orderID uuid.UUID, req CloseOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(order, req.ActedBy, req.CanManage); err != nil {
		return nil, err
	}
	if order.Status != restaurant.OrderStatusOpen {
		return nil, shared.NewDomainError("ORDER_NOT_OPEN", "Only open orders can be closed")
	}

	items := order.ActiveItems()
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order has no billable items")
	}

	if err := s.releaseReservations(ctx, items); err != nil {
		return nil, err
	}

	invoice, err := s.buildInvoice(ctx, order, items, req)
	if err != nil {
		s.reserveBack(ctx, items)
		return nil, err
	}

	var events []shared.DomainEvent
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := order.Close(invoice.ID); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		return s.freeTable(ctx, repos, order)
	})
	if err != nil {
		return nil, err
	}
	events = append(events, order.GetDomainEvents()...)
	order.ClearDomainEvents()

	s.publishEvents(ctx, events)
	s.logger.Info("order closed",
		zap.String("number", order.Number),
		zap.String("invoice_number", invoice.Number))

	response := ToOrderResponse(order)
	return &response, nil
}

// Cancel voids an open order, releasing its reserved stock and table
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(order, req.ActedBy, req.CanManage); err != nil {
		return nil, err
	}

	items := order.ActiveItems()

	var events []shared.DomainEvent
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := order.Cancel(req.Reason); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		return s.freeTable(ctx, repos, order)
	})
	if err != nil {
		return nil, err
	}
	events = append(events, order.GetDomainEvents()...)
	order.ClearDomainEvents()

	if err := s.releaseReservations(ctx, items); err != nil {
		s.logger.Warn("failed to release reservations for cancelled order",
			zap.String("number", order.Number), zap.Error(err))
	}

	s.publishEvents(ctx, events)
	s.logger.Info("order cancelled", zap.String("number", order.Number))

	response := ToOrderResponse(order)
	return &response, nil
}

// buildInvoice drafts, fills and issues the billing invoice for the order
func (s *OrderService) buildInvoice(ctx context.Context, order *restaurant.Order, items []restaurant.OrderItem, req CloseOrderRequest) (*billingapp.InvoiceResponse, error) {
	invoice, err := s.billing.Create(ctx, billingapp.CreateInvoiceRequest{
		CustomerID:  req.CustomerID,
		WarehouseID: req.WarehouseID,
		Currency:    string(order.Currency),
		OrderID:     &order.ID,
		Notes:       fmt.Sprintf("Pedido %s", order.Number),
	})
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		unitPrice := item.UnitPrice.Amount()
		if _, err := s.billing.AddItem(ctx, invoice.ID, billingapp.AddItemRequest{
			ArticleID: item.ArticleID,
			Quantity:  item.Quantity,
			UnitPrice: &unitPrice,
		}); err != nil {
			s.discardDraft(ctx, invoice.ID)
			return nil, err
		}
	}

	actedBy := req.ActedBy
	issued, err := s.billing.Issue(ctx, invoice.ID, billingapp.IssueInvoiceRequest{
		PaymentTermID: req.PaymentTermID,
		Payments:      req.Payments,
		IssuedBy:      &actedBy,
	})
	if err != nil {
		s.discardDraft(ctx, invoice.ID)
		return nil, err
	}
	return issued, nil
}

func (s *OrderService) discardDraft(ctx context.Context, invoiceID uuid.UUID) {
	if err := s.billing.DeleteDraft(ctx, invoiceID); err != nil {
		s.logger.Warn("failed to discard draft invoice",
			zap.String("invoice_id", invoiceID.String()), zap.Error(err))
	}
}

// authorize lets a waiter act only on their own orders
func (s *OrderService) authorize(order *restaurant.Order, actedBy uuid.UUID, canManage bool) error {
	if canManage || actedBy == uuid.Nil || order.WaiterID == actedBy {
		return nil
	}
	return shared.ErrForbidden
}

func (s *OrderService) lockSequence(ctx context.Context, repos TransactionalRepositories) (*billing.DocumentSequence, error) {
	sequence, err := repos.Sequences().FindForUpdate(ctx, billing.DocumentKindOrder)
	if err == nil {
		return sequence, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return billing.NewDocumentSequence(billing.DocumentKindOrder, orderPrefix, orderNumberPadding)
}

// freeTable releases the order's table when the order is still the one
// holding it
func (s *OrderService) freeTable(ctx context.Context, repos TransactionalRepositories, order *restaurant.Order) error {
	if order.TableID == nil {
		return nil
	}
	table, err := repos.Tables().FindByID(ctx, *order.TableID)
	if err != nil {
		return err
	}
	if table.Status != restaurant.TableStatusOccupied || table.CurrentOrderID == nil || *table.CurrentOrderID != order.ID {
		return nil
	}
	if err := table.Free(); err != nil {
		return err
	}
	return repos.Tables().Save(ctx, table)
}

// needsReservation returns true for articles whose stock is held while
// the order is open. Kits are expanded by billing at issue time, so they
// are not reserved per component here.
func (s *OrderService) needsReservation(article *catalog.Article) bool {
	return article.TrackStock && !article.IsKit()
}

func (s *OrderService) defaultWarehouse(ctx context.Context) (uuid.UUID, error) {
	warehouse, err := s.warehouseRepo.FindDefault(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, shared.NewDomainError("NO_DEFAULT_WAREHOUSE", "No default warehouse is configured")
		}
		return uuid.Nil, err
	}
	return warehouse.ID, nil
}

func (s *OrderService) releaseReservations(ctx context.Context, items []restaurant.OrderItem) error {
	for _, item := range items {
		if err := s.releaseItem(ctx, item.ArticleID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) releaseItem(ctx context.Context, articleID uuid.UUID, quantity decimal.Decimal) error {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return err
	}
	if !s.needsReservation(article) {
		return nil
	}
	warehouseID, err := s.defaultWarehouse(ctx)
	if err != nil {
		return err
	}
	return s.stock.Release(ctx, articleID, warehouseID, quantity)
}

func (s *OrderService) releaseItemQuietly(ctx context.Context, articleID uuid.UUID, quantity decimal.Decimal) {
	if err := s.releaseItem(ctx, articleID, quantity); err != nil {
		s.logger.Warn("failed to release reserved stock",
			zap.String("article_id", articleID.String()), zap.Error(err))
	}
}

func (s *OrderService) releaseQuietly(ctx context.Context, article *catalog.Article, quantity decimal.Decimal) {
	warehouseID, err := s.defaultWarehouse(ctx)
	if err != nil {
		return
	}
	if err := s.stock.Release(ctx, article.ID, warehouseID, quantity); err != nil {
		s.logger.Warn("failed to release reserved stock",
			zap.String("article_id", article.ID.String()), zap.Error(err))
	}
}

// reserveBack re-takes the reservations released ahead of a failed close
func (s *OrderService) reserveBack(ctx context.Context, items []restaurant.OrderItem) {
	for _, item := range items {
		article, err := s.articleRepo.FindByID(ctx, item.ArticleID)
		if err != nil || !s.needsReservation(article) {
			continue
		}
		warehouseID, err := s.defaultWarehouse(ctx)
		if err != nil {
			continue
		}
		if err := s.stock.Reserve(ctx, item.ArticleID, warehouseID, item.Quantity); err != nil {
			s.logger.Warn("failed to re-reserve stock after aborted close",
				zap.String("article_id", item.ArticleID.String()), zap.Error(err))
		}
	}
}

func (s *OrderService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}
