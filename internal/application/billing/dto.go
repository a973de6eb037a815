package billing

import (
	"time"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest opens a draft invoice
type CreateInvoiceRequest struct {
	CustomerID  uuid.UUID  `json:"customer_id" binding:"required"`
	WarehouseID *uuid.UUID `json:"warehouse_id"`
	Currency    string     `json:"currency" binding:"omitempty,currency"`
	OrderID     *uuid.UUID `json:"order_id"`
	Notes       string     `json:"notes"`
}

// AddItemRequest appends a line to a draft invoice. When UnitPrice is nil
// the price is resolved from the customer's price list.
type AddItemRequest struct {
	ArticleID       uuid.UUID        `json:"article_id" binding:"required"`
	Quantity        decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
}

// UpdateItemRequest changes the quantity of a draft invoice line
type UpdateItemRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// PaymentInput is one payment tendered at issue or afterwards
type PaymentInput struct {
	Method    string          `json:"method" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference"`
}

// IssueInvoiceRequest numbers a draft and registers the tendered payments.
// The credit portion, if any, opens a receivable document.
type IssueInvoiceRequest struct {
	PaymentTermID *uuid.UUID     `json:"payment_term_id"`
	Payments      []PaymentInput `json:"payments"`
	IssuedBy      *uuid.UUID     `json:"-"`
}

// RegisterPaymentRequest records a payment on an issued invoice
type RegisterPaymentRequest struct {
	Method     string          `json:"method" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Reference  string          `json:"reference"`
	ReceivedBy *uuid.UUID      `json:"-"`
}

// CancelInvoiceRequest voids an invoice
type CancelInvoiceRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// InvoiceListFilter contains filtering options for invoice listing
type InvoiceListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	Search     string     `form:"search"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
}

// InvoiceItemResponse is one invoice line
type InvoiceItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ArticleID       uuid.UUID       `json:"article_id"`
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	LineSubtotal    decimal.Decimal `json:"line_subtotal"`
	LineTax         decimal.Decimal `json:"line_tax"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// InvoicePaymentResponse is one recorded payment
type InvoicePaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	Method     string          `json:"method"`
	Amount     decimal.Decimal `json:"amount"`
	Reference  string          `json:"reference,omitempty"`
	ReceivedAt time.Time       `json:"received_at"`
	ReceivedBy *uuid.UUID      `json:"received_by,omitempty"`
}

// InvoiceResponse is the full invoice representation
type InvoiceResponse struct {
	ID            uuid.UUID                `json:"id"`
	Number        string                   `json:"number,omitempty"`
	CustomerID    uuid.UUID                `json:"customer_id"`
	Status        string                   `json:"status"`
	Currency      string                   `json:"currency"`
	ExchangeRate  decimal.Decimal          `json:"exchange_rate"`
	WarehouseID   uuid.UUID                `json:"warehouse_id"`
	OrderID       *uuid.UUID               `json:"order_id,omitempty"`
	IssuedAt      *time.Time               `json:"issued_at,omitempty"`
	DueDate       *time.Time               `json:"due_date,omitempty"`
	PaymentTermID *uuid.UUID               `json:"payment_term_id,omitempty"`
	Items         []InvoiceItemResponse    `json:"items"`
	Payments      []InvoicePaymentResponse `json:"payments"`
	Subtotal      decimal.Decimal          `json:"subtotal"`
	DiscountTotal decimal.Decimal          `json:"discount_total"`
	TaxTotal      decimal.Decimal          `json:"tax_total"`
	Total         decimal.Decimal          `json:"total"`
	PaidTotal     decimal.Decimal          `json:"paid_total"`
	Balance       decimal.Decimal          `json:"balance"`
	Notes         string                   `json:"notes,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice to its response form
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, InvoiceItemResponse{
			ID:              it.ID,
			ArticleID:       it.ArticleID,
			Code:            it.Code,
			Description:     it.Description,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice.Amount(),
			DiscountPercent: it.DiscountPercent,
			TaxRate:         it.TaxRate,
			LineSubtotal:    it.LineSubtotal.Amount(),
			LineTax:         it.LineTax.Amount(),
			LineTotal:       it.LineTotal.Amount(),
		})
	}
	payments := make([]InvoicePaymentResponse, 0, len(inv.Payments))
	for _, p := range inv.Payments {
		payments = append(payments, InvoicePaymentResponse{
			ID:         p.ID,
			Method:     string(p.Method),
			Amount:     p.Amount.Amount(),
			Reference:  p.Reference,
			ReceivedAt: p.ReceivedAt,
			ReceivedBy: p.ReceivedBy,
		})
	}

	return InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		CustomerID:    inv.CustomerID,
		Status:        string(inv.Status),
		Currency:      string(inv.Currency),
		ExchangeRate:  inv.ExchangeRate,
		WarehouseID:   inv.WarehouseID,
		OrderID:       inv.OrderID,
		IssuedAt:      inv.IssuedAt,
		DueDate:       inv.DueDate,
		PaymentTermID: inv.PaymentTermID,
		Items:         items,
		Payments:      payments,
		Subtotal:      inv.Subtotal.Amount(),
		DiscountTotal: inv.DiscountTotal.Amount(),
		TaxTotal:      inv.TaxTotal.Amount(),
		Total:         inv.Total.Amount(),
		PaidTotal:     inv.PaidTotal().Amount(),
		Balance:       inv.Balance().Amount(),
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, ToInvoiceResponse(&invoices[i]))
	}
	return responses
}

// CreatePaymentTermRequest creates a payment term
type CreatePaymentTermRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
	Days int    `json:"days"`
}

// UpdatePaymentTermRequest updates a payment term
type UpdatePaymentTermRequest struct {
	Name string `json:"name" binding:"required"`
	Days int    `json:"days"`
}

// PaymentTermResponse is the full payment term representation
type PaymentTermResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Days      int       `json:"days"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPaymentTermResponse converts a domain payment term to its response form
func ToPaymentTermResponse(t *billing.PaymentTerm) PaymentTermResponse {
	return PaymentTermResponse{
		ID:        t.ID,
		Code:      t.Code,
		Name:      t.Name,
		Days:      t.Days,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToPaymentTermResponses converts a slice of payment terms
func ToPaymentTermResponses(terms []billing.PaymentTerm) []PaymentTermResponse {
	responses := make([]PaymentTermResponse, 0, len(terms))
	for i := range terms {
		responses = append(responses, ToPaymentTermResponse(&terms[i]))
	}
	return responses
}

// RegisterRateRequest records an exchange rate for a foreign currency
type RegisterRateRequest struct {
	Currency    string          `json:"currency" binding:"required,currency"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
	EffectiveAt *time.Time      `json:"effective_at"`
	Source      string          `json:"source"`
}

// ExchangeRateResponse is one registered rate
type ExchangeRateResponse struct {
	ID          uuid.UUID       `json:"id"`
	Currency    string          `json:"currency"`
	Rate        decimal.Decimal `json:"rate"`
	EffectiveAt time.Time       `json:"effective_at"`
	Source      string          `json:"source,omitempty"`
}

// ToExchangeRateResponse converts a domain rate to its response form
func ToExchangeRateResponse(r *billing.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ID:          r.ID,
		Currency:    string(r.Currency),
		Rate:        r.Rate,
		EffectiveAt: r.EffectiveAt,
		Source:      r.Source,
	}
}

// ToExchangeRateResponses converts a slice of rates
func ToExchangeRateResponses(rates []billing.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, 0, len(rates))
	for i := range rates {
		responses = append(responses, ToExchangeRateResponse(&rates[i]))
	}
	return responses
}
