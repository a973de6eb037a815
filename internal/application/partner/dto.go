package partner

import (
	"time"

	"github.com/gestion/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest creates a new customer
type CreateCustomerRequest struct {
	Code          string           `json:"code" binding:"required"`
	Name          string           `json:"name" binding:"required"`
	Type          string           `json:"type" binding:"required"`
	TaxID         string           `json:"tax_id"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	CreditLimit   *decimal.Decimal `json:"credit_limit"`
	PaymentTermID *uuid.UUID       `json:"payment_term_id"`
	PriceListID   *uuid.UUID       `json:"price_list_id"`
	Notes         string           `json:"notes"`
}

// UpdateCustomerRequest updates mutable customer fields
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Notes   *string `json:"notes"`
	TaxID   *string `json:"tax_id"`
}

// SetCreditTermsRequest updates the customer's credit limit and term
type SetCreditTermsRequest struct {
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	PaymentTermID *uuid.UUID      `json:"payment_term_id"`
}

// BlockCustomerRequest blocks a customer's credit
type BlockCustomerRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CustomerListFilter contains filtering options for customer listing
type CustomerListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status"`
	Type     string `form:"type"`
	City     string `form:"city"`
}

// CustomerResponse is the full customer representation
type CustomerResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	TaxID         string          `json:"tax_id,omitempty"`
	Email         string          `json:"email,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city,omitempty"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	Currency      string          `json:"currency"`
	PaymentTermID *uuid.UUID      `json:"payment_term_id,omitempty"`
	PriceListID   *uuid.UUID      `json:"price_list_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to its response form
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Code:          c.Code,
		Name:          c.Name,
		Type:          string(c.Type),
		Status:        string(c.Status),
		TaxID:         c.TaxID,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		City:          c.City,
		CreditLimit:   c.CreditLimit.Amount(),
		Currency:      string(c.CreditLimit.Currency()),
		PaymentTermID: c.PaymentTermID,
		PriceListID:   c.PriceListID,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	return responses
}
