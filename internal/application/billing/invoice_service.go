// Package billing implements invoicing: drafts, issue with consecutive
// numbering, payments and cancellation.
package billing

import (
	"context"
	"errors"
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
	"go.uber.org/zap"
)

// Invoice series defaults. The sequence row is created on first issue.
const (
	invoicePrefix   = "FAC"
	sequencePadding = 6
)

// PriceResolver resolves the effective sale price of an article at a
// point in time. The catalog price list service satisfies it.
type PriceResolver interface {
	ResolvePrice(ctx context.Context, articleID uuid.UUID, at time.Time) (valueobject.Money, error)
}

// InvoiceService handles the invoice lifecycle
type InvoiceService struct {
	txScope       TransactionScope
	invoiceRepo   billing.InvoiceRepository
	sequenceRepo  billing.DocumentSequenceRepository
	termRepo      billing.PaymentTermRepository
	rateRepo      billing.ExchangeRateRepository
	customerRepo  partner.CustomerRepository
	articleRepo   catalog.ArticleRepository
	warehouseRepo inventory.WarehouseRepository
	documentRepo  receivable.DocumentRepository
	prices        PriceResolver
	eventBus      shared.EventPublisher
	logger        *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	txScope TransactionScope,
	invoiceRepo billing.InvoiceRepository,
	sequenceRepo billing.DocumentSequenceRepository,
	termRepo billing.PaymentTermRepository,
	rateRepo billing.ExchangeRateRepository,
	customerRepo partner.CustomerRepository,
	articleRepo catalog.ArticleRepository,
	warehouseRepo inventory.WarehouseRepository,
	documentRepo receivable.DocumentRepository,
	prices PriceResolver,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		txScope:       txScope,
		invoiceRepo:   invoiceRepo,
		sequenceRepo:  sequenceRepo,
		termRepo:      termRepo,
		rateRepo:      rateRepo,
		customerRepo:  customerRepo,
		articleRepo:   articleRepo,
		warehouseRepo: warehouseRepo,
		documentRepo:  documentRepo,
		prices:        prices,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// Create opens a draft invoice for a customer
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.Status == partner.CustomerStatusInactive {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Cannot invoice an inactive customer")
	}

	warehouse, err := s.resolveWarehouse(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	currency := valueobject.DefaultCurrency
	if req.Currency != "" {
		currency = valueobject.Currency(req.Currency)
	}

	invoice, err := billing.NewDraftInvoice(customer.ID, warehouse.ID, currency)
	if err != nil {
		return nil, err
	}
	invoice.OrderID = req.OrderID
	invoice.Notes = req.Notes

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("draft invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("customer", customer.Code),
	)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByNumber retrieves an issued invoice by its consecutive number
func (s *InvoiceService) GetByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := billing.InvoiceFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "created_at",
			OrderDir: "desc",
			Search:   filter.Search,
		},
		CustomerID: filter.CustomerID,
		From:       filter.From,
		To:         filter.To,
	}
	if filter.Status != "" {
		status := billing.InvoiceStatus(filter.Status)
		domainFilter.Status = &status
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceResponses(invoices), total, nil
}

// AddItem appends a line to a draft invoice
func (s *InvoiceService) AddItem(ctx context.Context, invoiceID uuid.UUID, req AddItemRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	article, err := s.articleRepo.FindByID(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	if !article.IsSellable() {
		return nil, shared.NewDomainError("ARTICLE_NOT_SELLABLE", "Article is not available for sale")
	}

	unitPrice, err := s.resolveUnitPrice(ctx, invoice, article, req.UnitPrice)
	if err != nil {
		return nil, err
	}

	if err := invoice.AddItem(article.ID, article.Code, article.Name, req.Quantity, unitPrice, req.DiscountPercent, article.TaxRate); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// UpdateItem changes the quantity of a draft invoice line
func (s *InvoiceService) UpdateItem(ctx context.Context, invoiceID, itemID uuid.UUID, req UpdateItemRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// RemoveItem removes a line from a draft invoice
func (s *InvoiceService) RemoveItem(ctx context.Context, invoiceID, itemID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Issue numbers the draft, registers the tendered payments, consumes
// stock and opens a receivable for the credit portion. Everything runs
// in one transaction against the locked sequence row, so the consecutive
// numbering has no gaps.
func (s *InvoiceService) Issue(ctx context.Context, invoiceID uuid.UUID, req IssueInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, err
	}

	term, err := s.resolveTerm(ctx, req.PaymentTermID, customer)
	if err != nil {
		return nil, err
	}

	rate, err := s.resolveRate(ctx, invoice.Currency)
	if err != nil {
		return nil, err
	}

	payments, creditTotal, err := s.buildPayments(invoice, req.Payments)
	if err != nil {
		return nil, err
	}
	if creditTotal.IsPositive() {
		if err := s.checkCredit(ctx, customer, creditTotal, rate, invoice.Currency); err != nil {
			return nil, err
		}
		if term == nil || term.IsCash() {
			return nil, shared.NewDomainError("TERM_REQUIRED", "Credit sales require a credit payment term")
		}
	}

	consumptions, err := s.stockConsumptions(ctx, invoice)
	if err != nil {
		return nil, err
	}

	var events []shared.DomainEvent
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sequence, err := s.lockSequence(ctx, repos)
		if err != nil {
			return err
		}
		number := sequence.AllocateNext()
		if err := repos.Sequences().Save(ctx, sequence); err != nil {
			return err
		}

		if err := invoice.Issue(number, term, rate); err != nil {
			return err
		}
		for _, p := range payments {
			if err := invoice.RegisterPayment(p.method, p.amount, p.reference, req.IssuedBy); err != nil {
				return err
			}
		}

		movements, alerts, err := s.postExits(ctx, repos, invoice, consumptions, req.IssuedBy)
		if err != nil {
			return err
		}
		for _, m := range movements {
			events = append(events, inventory.NewStockMovementPostedEvent(m))
		}
		events = append(events, alerts...)

		if creditTotal.IsPositive() {
			document, err := receivable.NewCustomerDocument(
				receivable.DocumentTypeInvoice,
				number,
				invoice.CustomerID,
				invoice.Currency,
				creditTotal.Amount(),
				*invoice.IssuedAt,
				invoice.DueDate,
			)
			if err != nil {
				return err
			}
			document.LinkInvoice(invoice.ID)
			if err := repos.Documents().Save(ctx, document); err != nil {
				return err
			}
			events = append(events, document.GetDomainEvents()...)
			document.ClearDomainEvents()
		}

		if err := repos.Invoices().Save(ctx, invoice); err != nil {
			return err
		}
		events = append(events, invoice.GetDomainEvents()...)
		invoice.ClearDomainEvents()

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	s.logger.Info("invoice issued",
		zap.String("number", invoice.Number),
		zap.String("customer", customer.Code),
		zap.String("total", invoice.Total.String()),
		zap.String("credit", creditTotal.String()),
	)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// RegisterPayment records a payment on an issued invoice and applies it
// to the invoice's receivable document in the same transaction, so both
// ledgers settle together. Credit is only available at issue time.
func (s *InvoiceService) RegisterPayment(ctx context.Context, invoiceID uuid.UUID, req RegisterPaymentRequest) (*InvoiceResponse, error) {
	method := billing.PaymentMethod(req.Method)
	if method == billing.PaymentMethodCredit {
		return nil, shared.NewDomainError("CREDIT_AT_ISSUE_ONLY", "Credit can only be granted when the invoice is issued")
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	amount, err := valueobject.NewMoney(req.Amount, invoice.Currency)
	if err != nil {
		return nil, err
	}

	var events []shared.DomainEvent
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := invoice.RegisterPayment(method, amount, req.Reference, req.ReceivedBy); err != nil {
			return err
		}

		document, err := repos.Documents().FindByInvoiceID(ctx, invoice.ID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if document != nil && document.IsOutstanding() {
			applied := amount.Amount()
			if applied.GreaterThan(document.Balance()) {
				applied = document.Balance()
			}
			if _, err := document.Apply(receivable.ApplicationTypePayment, applied, req.Reference, nil, req.ReceivedBy); err != nil {
				return err
			}
			if err := repos.Documents().Save(ctx, document); err != nil {
				return err
			}
			events = append(events, document.GetDomainEvents()...)
			document.ClearDomainEvents()
		}

		if err := repos.Invoices().Save(ctx, invoice); err != nil {
			return err
		}
		events = append(events, invoice.GetDomainEvents()...)
		invoice.ClearDomainEvents()

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Cancel voids an invoice. An issued invoice returns its stock, and its
// receivable is cancelled with it; a receivable with active applications
// blocks the whole cancellation.
func (s *InvoiceService) Cancel(ctx context.Context, invoiceID uuid.UUID, req CancelInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	wasIssued := invoice.Number != "" && invoice.Status != billing.InvoiceStatusCancelled

	var consumptions []stockConsumption
	if wasIssued {
		consumptions, err = s.stockConsumptions(ctx, invoice)
		if err != nil {
			return nil, err
		}
	}

	var events []shared.DomainEvent
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if wasIssued {
			document, err := repos.Documents().FindByInvoiceID(ctx, invoice.ID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if document != nil {
				if err := document.Cancel(req.Reason); err != nil {
					return err
				}
				if err := repos.Documents().Save(ctx, document); err != nil {
					return err
				}
				events = append(events, document.GetDomainEvents()...)
				document.ClearDomainEvents()
			}

			movements, err := s.postReturns(ctx, repos, invoice, consumptions)
			if err != nil {
				return err
			}
			for _, m := range movements {
				events = append(events, inventory.NewStockMovementPostedEvent(m))
			}
		}

		if err := invoice.Cancel(req.Reason); err != nil {
			return err
		}
		if err := repos.Invoices().Save(ctx, invoice); err != nil {
			return err
		}
		events = append(events, invoice.GetDomainEvents()...)
		invoice.ClearDomainEvents()

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	s.logger.Info("invoice cancelled",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("number", invoice.Number),
		zap.String("reason", req.Reason),
	)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// DeleteDraft removes a draft invoice
func (s *InvoiceService) DeleteDraft(ctx context.Context, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if invoice.Status != billing.InvoiceStatusDraft {
		return shared.NewDomainError("INVOICE_NOT_DRAFT", "Only draft invoices can be deleted")
	}
	return s.invoiceRepo.Delete(ctx, invoiceID)
}

// NextNumber returns the number the next issued invoice will receive
func (s *InvoiceService) NextNumber(ctx context.Context) (string, error) {
	sequence, err := s.sequenceRepo.FindByKind(ctx, billing.DocumentKindInvoice)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			fresh, err := billing.NewDocumentSequence(billing.DocumentKindInvoice, invoicePrefix, sequencePadding)
			if err != nil {
				return "", err
			}
			return fresh.Peek(), nil
		}
		return "", err
	}
	return sequence.Peek(), nil
}

type builtPayment struct {
	method    billing.PaymentMethod
	amount    valueobject.Money
	reference string
}

// buildPayments validates the tendered payments and returns the credit
// portion. The invoice must be fully covered at issue.
func (s *InvoiceService) buildPayments(invoice *billing.Invoice, inputs []PaymentInput) ([]builtPayment, valueobject.Money, error) {
	creditTotal := valueobject.Zero(invoice.Currency)
	tendered := valueobject.Zero(invoice.Currency)
	payments := make([]builtPayment, 0, len(inputs))

	for _, in := range inputs {
		amount, err := valueobject.NewMoney(in.Amount, invoice.Currency)
		if err != nil {
			return nil, creditTotal, err
		}
		method := billing.PaymentMethod(in.Method)
		if method == billing.PaymentMethodCredit {
			creditTotal, err = creditTotal.Add(amount)
			if err != nil {
				return nil, creditTotal, err
			}
		}
		tendered, err = tendered.Add(amount)
		if err != nil {
			return nil, creditTotal, err
		}
		payments = append(payments, builtPayment{method: method, amount: amount, reference: in.Reference})
	}

	if !tendered.Equals(invoice.Total) {
		return nil, creditTotal, shared.NewDomainError("PAYMENT_MISMATCH", "Tendered payments must cover the invoice total exactly")
	}

	return payments, creditTotal, nil
}

// checkCredit verifies the customer can absorb the new credit within the
// limit. Exposure is measured in the base currency; foreign documents
// convert at their latest registered rate.
func (s *InvoiceService) checkCredit(ctx context.Context, customer *partner.Customer, credit valueobject.Money, rate decimal.Decimal, currency valueobject.Currency) error {
	if !customer.HasCredit() {
		return shared.NewDomainError("NO_CREDIT", "Customer has no credit available")
	}

	exposure, err := s.creditExposure(ctx, customer.ID)
	if err != nil {
		return err
	}

	creditBase := credit.Amount()
	if currency != valueobject.DefaultCurrency {
		creditBase = creditBase.Mul(rate)
	}
	if exposure.Add(creditBase).GreaterThan(customer.CreditLimit.Amount()) {
		return shared.NewDomainError("CREDIT_LIMIT_EXCEEDED", "Sale would exceed the customer's credit limit")
	}
	return nil
}

// creditExposure sums the customer's outstanding balances in base currency
func (s *InvoiceService) creditExposure(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	documents, err := s.documentRepo.FindOutstandingByCustomer(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range documents {
		balance := documents[i].Balance()
		if documents[i].Type == receivable.DocumentTypeCreditNote {
			balance = balance.Neg()
		}
		if documents[i].Currency != valueobject.DefaultCurrency {
			if latest, err := s.rateRepo.FindLatest(ctx, documents[i].Currency); err == nil {
				balance = balance.Mul(latest.Rate)
			}
		}
		total = total.Add(balance)
	}
	return total, nil
}

// stockConsumption is one article/quantity pair an invoice moves. Kit
// lines expand into their components.
type stockConsumption struct {
	article  *catalog.Article
	quantity decimal.Decimal
}

func (s *InvoiceService) stockConsumptions(ctx context.Context, invoice *billing.Invoice) ([]stockConsumption, error) {
	consumptions := make([]stockConsumption, 0, len(invoice.Items))
	for _, item := range invoice.StockConsumingItems() {
		article, err := s.articleRepo.FindByID(ctx, item.ArticleID)
		if err != nil {
			return nil, err
		}

		if article.IsKit() {
			for _, component := range article.Components {
				componentArticle, err := s.articleRepo.FindByID(ctx, component.ComponentID)
				if err != nil {
					return nil, err
				}
				if !componentArticle.TrackStock {
					continue
				}
				consumptions = append(consumptions, stockConsumption{
					article:  componentArticle,
					quantity: component.Quantity.Mul(item.Quantity),
				})
			}
			continue
		}

		if !article.TrackStock {
			continue
		}
		consumptions = append(consumptions, stockConsumption{article: article, quantity: item.Quantity})
	}
	return consumptions, nil
}

// postExits issues the consumed stock from the invoice's warehouse and
// reports the items the sale pushed below their minimum
func (s *InvoiceService) postExits(ctx context.Context, repos TransactionalRepositories, invoice *billing.Invoice, consumptions []stockConsumption, postedBy *uuid.UUID) ([]*inventory.StockMovement, []shared.DomainEvent, error) {
	movements := make([]*inventory.StockMovement, 0, len(consumptions))
	var alerts []shared.DomainEvent
	for _, c := range consumptions {
		item, err := repos.StockItems().FindByArticleAndWarehouse(ctx, c.article.ID, invoice.WarehouseID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, nil, shared.ErrInsufficientStock
			}
			return nil, nil, err
		}

		unitCost := item.AverageCost
		if err := item.Issue(c.quantity); err != nil {
			return nil, nil, err
		}
		if item.IsBelowMinimum(c.article.MinStock) {
			alerts = append(alerts, inventory.NewStockBelowMinimumEvent(item, c.article.MinStock))
		}

		movement, err := inventory.NewStockMovement(c.article.ID, invoice.WarehouseID, inventory.MovementTypeExit, c.quantity.Neg(), unitCost, item.OnHand)
		if err != nil {
			return nil, nil, err
		}
		movement.WithReference("invoice", invoice.Number, &invoice.ID)
		if postedBy != nil {
			movement.WithPostedBy(*postedBy)
		}

		if err := repos.StockItems().Save(ctx, item); err != nil {
			return nil, nil, err
		}
		if err := repos.Movements().Save(ctx, movement); err != nil {
			return nil, nil, err
		}
		movements = append(movements, movement)
	}
	return movements, alerts, nil
}

// postReturns puts the consumed stock back when an issued invoice is
// cancelled. Returns are valued at the current average cost.
func (s *InvoiceService) postReturns(ctx context.Context, repos TransactionalRepositories, invoice *billing.Invoice, consumptions []stockConsumption) ([]*inventory.StockMovement, error) {
	movements := make([]*inventory.StockMovement, 0, len(consumptions))
	for _, c := range consumptions {
		item, err := repos.StockItems().FindByArticleAndWarehouse(ctx, c.article.ID, invoice.WarehouseID)
		if err != nil {
			return nil, err
		}

		unitCost := item.AverageCost
		if err := item.Receive(c.quantity, unitCost); err != nil {
			return nil, err
		}

		movement, err := inventory.NewStockMovement(c.article.ID, invoice.WarehouseID, inventory.MovementTypeEntry, c.quantity, unitCost, item.OnHand)
		if err != nil {
			return nil, err
		}
		movement.WithReference("invoice_cancel", invoice.Number, &invoice.ID)

		if err := repos.StockItems().Save(ctx, item); err != nil {
			return nil, err
		}
		if err := repos.Movements().Save(ctx, movement); err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, nil
}

// lockSequence loads the invoice sequence with the row locked, creating
// it on first use
func (s *InvoiceService) lockSequence(ctx context.Context, repos TransactionalRepositories) (*billing.DocumentSequence, error) {
	sequence, err := repos.Sequences().FindForUpdate(ctx, billing.DocumentKindInvoice)
	if err == nil {
		return sequence, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return billing.NewDocumentSequence(billing.DocumentKindInvoice, invoicePrefix, sequencePadding)
}

// resolveTerm picks the explicit term, or falls back to the customer's default
func (s *InvoiceService) resolveTerm(ctx context.Context, termID *uuid.UUID, customer *partner.Customer) (*billing.PaymentTerm, error) {
	if termID == nil {
		termID = customer.PaymentTermID
	}
	if termID == nil {
		return nil, nil
	}

	term, err := s.termRepo.FindByID(ctx, *termID)
	if err != nil {
		return nil, err
	}
	if !term.Active {
		return nil, shared.NewDomainError("TERM_INACTIVE", "Payment term is inactive")
	}
	return term, nil
}

// resolveRate captures the exchange rate to base currency at issue time
func (s *InvoiceService) resolveRate(ctx context.Context, currency valueobject.Currency) (decimal.Decimal, error) {
	if currency == valueobject.DefaultCurrency {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.rateRepo.FindLatest(ctx, currency)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, shared.NewDomainError("NO_EXCHANGE_RATE", "No exchange rate registered for the invoice currency")
		}
		return decimal.Zero, err
	}
	return rate.Rate, nil
}

func (s *InvoiceService) resolveUnitPrice(ctx context.Context, invoice *billing.Invoice, article *catalog.Article, explicit *decimal.Decimal) (valueobject.Money, error) {
	if explicit != nil {
		return valueobject.NewMoney(*explicit, invoice.Currency)
	}

	if s.prices != nil {
		price, err := s.prices.ResolvePrice(ctx, article.ID, time.Now())
		if err != nil {
			return valueobject.Money{}, err
		}
		if price.Currency() == invoice.Currency {
			return price, nil
		}
	}

	if article.BasePrice.Currency() == invoice.Currency {
		return article.BasePrice, nil
	}
	return valueobject.Money{}, shared.NewDomainError("PRICE_REQUIRED", "No price available in the invoice currency")
}

func (s *InvoiceService) resolveWarehouse(ctx context.Context, warehouseID *uuid.UUID) (*inventory.Warehouse, error) {
	if warehouseID != nil {
		warehouse, err := s.warehouseRepo.FindByID(ctx, *warehouseID)
		if err != nil {
			return nil, err
		}
		if !warehouse.Active {
			return nil, shared.NewDomainError("WAREHOUSE_INACTIVE", "Warehouse is inactive")
		}
		return warehouse, nil
	}

	warehouse, err := s.warehouseRepo.FindDefault(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NO_DEFAULT_WAREHOUSE", "No default warehouse is configured")
		}
		return nil, err
	}
	return warehouse, nil
}

func (s *InvoiceService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}
