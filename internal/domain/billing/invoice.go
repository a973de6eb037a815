package billing

import (
	"strings"
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// PaymentMethod identifies how an invoice payment was received
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodMobile   PaymentMethod = "mobile" // Pago móvil
	PaymentMethodCredit   PaymentMethod = "credit" // Creates a receivable document
)

// InvoiceItem is one line of an invoice
type InvoiceItem struct {
	ID              uuid.UUID
	InvoiceID       uuid.UUID
	ArticleID       uuid.UUID
	Code            string // Article code captured at sale time
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       valueobject.Money
	DiscountPercent decimal.Decimal
	TaxRate         decimal.Decimal
	LineSubtotal    valueobject.Money // qty * price - discount, before tax
	LineTax         valueobject.Money
	LineTotal       valueobject.Money
}

// InvoicePayment is one payment received against an invoice
type InvoicePayment struct {
	ID         uuid.UUID
	InvoiceID  uuid.UUID
	Method     PaymentMethod
	Amount     valueobject.Money
	Reference  string // Card voucher, transfer number
	ReceivedAt time.Time
	ReceivedBy *uuid.UUID
}

// Invoice is the aggregate root for billing. It starts as a draft, gets
// its consecutive number when issued, and is settled by payments or by
// the receivable it spawns on credit sales.
type Invoice struct {
	shared.AuditedAggregateRoot
	Number        string // Consecutive number, empty while draft
	CustomerID    uuid.UUID
	Status        InvoiceStatus
	Currency      valueobject.Currency
	ExchangeRate  decimal.Decimal // Rate to base currency captured at issue
	IssuedAt      *time.Time
	DueDate       *time.Time
	PaymentTermID *uuid.UUID
	OrderID       *uuid.UUID // Restaurant order this invoice settles, if any
	WarehouseID   uuid.UUID  // Stock location the sale consumes from
	Items         []InvoiceItem
	Payments      []InvoicePayment
	Subtotal      valueobject.Money
	DiscountTotal valueobject.Money
	TaxTotal      valueobject.Money
	Total         valueobject.Money
	Notes         string
}

// NewDraftInvoice creates an empty draft invoice for a customer
func NewDraftInvoice(customerID, warehouseID uuid.UUID, currency valueobject.Currency) (*Invoice, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is not supported")
	}

	return &Invoice{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		CustomerID:           customerID,
		WarehouseID:          warehouseID,
		Status:               InvoiceStatusDraft,
		Currency:             currency,
		ExchangeRate:         decimal.NewFromInt(1),
		Items:                make([]InvoiceItem, 0),
		Payments:             make([]InvoicePayment, 0),
		Subtotal:             valueobject.Zero(currency),
		DiscountTotal:        valueobject.Zero(currency),
		TaxTotal:             valueobject.Zero(currency),
		Total:                valueobject.Zero(currency),
	}, nil
}

// AddItem appends a line to a draft invoice
func (inv *Invoice) AddItem(articleID uuid.UUID, code, description string, quantity decimal.Decimal, unitPrice valueobject.Money, discountPercent, taxRate decimal.Decimal) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVOICE_NOT_DRAFT", "Items can only be modified on draft invoices")
	}
	if articleID == uuid.Nil {
		return shared.NewDomainError("INVALID_ARTICLE", "Article ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if unitPrice.Currency() != inv.Currency {
		return shared.NewDomainError("CURRENCY_MISMATCH", "Item price currency must match the invoice currency")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100")
	}

	item := InvoiceItem{
		ID:              uuid.New(),
		InvoiceID:       inv.ID,
		ArticleID:       articleID,
		Code:            code,
		Description:     strings.TrimSpace(description),
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		TaxRate:         taxRate,
	}
	item.recalculate()

	inv.Items = append(inv.Items, item)
	inv.recalculateTotals()
	inv.Touch()
	inv.IncrementVersion()

	return nil
}

// UpdateItemQuantity changes the quantity of a draft invoice line
func (inv *Invoice) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVOICE_NOT_DRAFT", "Items can only be modified on draft invoices")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}

	for i := range inv.Items {
		if inv.Items[i].ID == itemID {
			inv.Items[i].Quantity = quantity
			inv.Items[i].recalculate()
			inv.recalculateTotals()
			inv.Touch()
			inv.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Invoice item not found")
}

// RemoveItem removes a line from a draft invoice
func (inv *Invoice) RemoveItem(itemID uuid.UUID) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVOICE_NOT_DRAFT", "Items can only be modified on draft invoices")
	}

	for i := range inv.Items {
		if inv.Items[i].ID == itemID {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			inv.recalculateTotals()
			inv.Touch()
			inv.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Invoice item not found")
}

// Issue assigns the consecutive number and moves the invoice to issued.
// The payment term determines the due date; a nil term means cash.
func (inv *Invoice) Issue(number string, term *PaymentTerm, exchangeRate decimal.Decimal) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVOICE_NOT_DRAFT", "Only draft invoices can be issued")
	}
	if len(inv.Items) == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "Invoice must have at least one item")
	}
	if number == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if exchangeRate.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}

	now := time.Now()
	inv.Number = number
	inv.Status = InvoiceStatusIssued
	inv.IssuedAt = &now
	inv.ExchangeRate = exchangeRate
	if term != nil {
		due := term.DueDateFrom(now)
		inv.DueDate = &due
		inv.PaymentTermID = &term.ID
	}
	inv.Touch()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceIssuedEvent(inv))

	return nil
}

// RegisterPayment records a payment against an issued invoice
func (inv *Invoice) RegisterPayment(method PaymentMethod, amount valueobject.Money, reference string, receivedBy *uuid.UUID) error {
	if inv.Status != InvoiceStatusIssued {
		return shared.NewDomainError("INVOICE_NOT_ISSUED", "Payments require an issued invoice")
	}
	switch method {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodMobile, PaymentMethodCredit:
	default:
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Currency() != inv.Currency {
		return shared.NewDomainError("CURRENCY_MISMATCH", "Payment currency must match the invoice currency")
	}

	balance := inv.Balance()
	over, err := amount.GreaterThan(balance)
	if err != nil {
		return err
	}
	if over {
		return shared.NewDomainError("OVERPAYMENT", "Payment exceeds the invoice balance")
	}

	inv.Payments = append(inv.Payments, InvoicePayment{
		ID:         uuid.New(),
		InvoiceID:  inv.ID,
		Method:     method,
		Amount:     amount,
		Reference:  reference,
		ReceivedAt: time.Now(),
		ReceivedBy: receivedBy,
	})

	if inv.Balance().IsZero() {
		inv.Status = InvoiceStatusPaid
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	}

	inv.Touch()
	inv.IncrementVersion()

	return nil
}

// Settle marks an issued invoice paid once its receivable is collected.
// Credit sales stay issued at issue time and reach paid through here.
func (inv *Invoice) Settle() error {
	if inv.Status != InvoiceStatusIssued {
		return shared.NewDomainError("INVOICE_NOT_ISSUED", "Only issued invoices can be settled")
	}

	inv.Status = InvoiceStatusPaid
	inv.Touch()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoicePaidEvent(inv))

	return nil
}

// Reopen returns a paid invoice to issued after a settlement on its
// receivable is reversed
func (inv *Invoice) Reopen() error {
	if inv.Status != InvoiceStatusPaid {
		return shared.NewDomainError("INVOICE_NOT_PAID", "Only paid invoices can be reopened")
	}

	inv.Status = InvoiceStatusIssued
	inv.Touch()
	inv.IncrementVersion()

	return nil
}

// Cancel voids the invoice. Collected money blocks cancellation; credit
// is only a promise, so a credit-settled invoice can still be voided as
// long as its receivable has no active applications. The billing service
// enforces the receivable check before calling Cancel.
func (inv *Invoice) Cancel(reason string) error {
	if inv.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Invoice is already cancelled")
	}
	if inv.CollectedTotal().IsPositive() {
		return shared.NewDomainError("INVOICE_PAID", "Invoices with collected payments cannot be cancelled")
	}

	wasIssued := inv.Number != ""
	inv.Status = InvoiceStatusCancelled
	if reason != "" {
		inv.Notes = reason
	}
	inv.Touch()
	inv.IncrementVersion()

	if wasIssued {
		inv.AddDomainEvent(NewInvoiceCancelledEvent(inv, reason))
	}

	return nil
}

// PaidTotal returns the sum of recorded payments
func (inv *Invoice) PaidTotal() valueobject.Money {
	total := valueobject.Zero(inv.Currency)
	for _, p := range inv.Payments {
		total, _ = total.Add(p.Amount)
	}
	return total
}

// CreditTotal returns the portion of the invoice paid on credit
func (inv *Invoice) CreditTotal() valueobject.Money {
	total := valueobject.Zero(inv.Currency)
	for _, p := range inv.Payments {
		if p.Method == PaymentMethodCredit {
			total, _ = total.Add(p.Amount)
		}
	}
	return total
}

// CollectedTotal returns the money actually received. Credit payments
// are a promise recorded at issue and do not count as collected.
func (inv *Invoice) CollectedTotal() valueobject.Money {
	collected, _ := inv.PaidTotal().Subtract(inv.CreditTotal())
	return collected
}

// Balance returns the uncollected remainder. An invoice issued on
// credit keeps its credit portion in the balance until the money is
// collected, so it stays issued while its receivable is open.
func (inv *Invoice) Balance() valueobject.Money {
	balance, _ := inv.Total.Subtract(inv.CollectedTotal())
	return balance
}

// IsOverdue returns true for issued invoices past their due date
func (inv *Invoice) IsOverdue() bool {
	return inv.Status == InvoiceStatusIssued && inv.DueDate != nil && time.Now().After(*inv.DueDate)
}

// StockConsumingItems returns the lines that move inventory
func (inv *Invoice) StockConsumingItems() []InvoiceItem {
	return inv.Items
}

func (it *InvoiceItem) recalculate() {
	gross := it.UnitPrice.Multiply(it.Quantity)
	it.LineSubtotal = gross.ApplyDiscount(it.DiscountPercent).Round(4)
	it.LineTax = it.LineSubtotal.CalculatePercentage(it.TaxRate).Round(4)
	it.LineTotal, _ = it.LineSubtotal.Add(it.LineTax)
}

func (inv *Invoice) recalculateTotals() {
	subtotal := valueobject.Zero(inv.Currency)
	discount := valueobject.Zero(inv.Currency)
	tax := valueobject.Zero(inv.Currency)

	for _, item := range inv.Items {
		gross := item.UnitPrice.Multiply(item.Quantity)
		lineDiscount, _ := gross.Subtract(item.LineSubtotal)

		subtotal, _ = subtotal.Add(item.LineSubtotal)
		discount, _ = discount.Add(lineDiscount)
		tax, _ = tax.Add(item.LineTax)
	}

	inv.Subtotal = subtotal.Round(2)
	inv.DiscountTotal = discount.Round(2)
	inv.TaxTotal = tax.Round(2)
	inv.Total, _ = subtotal.Add(tax)
	inv.Total = inv.Total.Round(2)
}
