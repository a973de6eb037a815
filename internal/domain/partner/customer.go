package partner

import (
	"regexp"
	"strings"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CustomerType distinguishes natural persons from companies
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "individual"
	CustomerTypeCompany    CustomerType = "company"
)

// CustomerStatus represents the lifecycle status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
	CustomerStatusBlocked  CustomerStatus = "blocked" // Credit suspended
)

// Tax ID format: RIF (J-12345678-9, V-12345678-9) or plain national ID
var taxIDPattern = regexp.MustCompile(`^[VEJPGvejpg]-?\d{7,9}-?\d?$`)

// Customer represents a buyer the business sells to, on credit or cash
// It is the aggregate root for customer operations
type Customer struct {
	shared.AuditedAggregateRoot
	Code          string // Unique internal code
	Name          string
	Type          CustomerType
	Status        CustomerStatus
	TaxID         string // RIF / national ID
	Email         string
	Phone         string
	Address       string
	City          string
	CreditLimit   valueobject.Money // Zero means cash only
	PaymentTermID *uuid.UUID        // Default payment term for credit sales
	PriceListID   *uuid.UUID        // Optional assigned price list
	Notes         string
}

// NewCustomer creates a new active customer
func NewCustomer(code, name string, customerType CustomerType) (*Customer, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 30 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_CODE", "Customer code must be 1-30 characters")
	}
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name must be 1-200 characters")
	}
	switch customerType {
	case CustomerTypeIndividual, CustomerTypeCompany:
	default:
		return nil, shared.NewDomainError("INVALID_CUSTOMER_TYPE", "Customer type must be individual or company")
	}

	customer := &Customer{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 strings.TrimSpace(name),
		Type:                 customerType,
		Status:               CustomerStatusActive,
		CreditLimit:          valueobject.Zero(valueobject.DefaultCurrency),
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's contact information
func (c *Customer) Update(name, email, phone, address, city, notes string) error {
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name must be 1-200 characters")
	}
	if email != "" && (len(email) > 200 || !strings.Contains(email, "@")) {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}

	c.Name = strings.TrimSpace(name)
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Phone = strings.TrimSpace(phone)
	c.Address = address
	c.City = city
	c.Notes = notes
	c.Touch()
	c.IncrementVersion()

	return nil
}

// SetTaxID sets the customer's fiscal identifier
func (c *Customer) SetTaxID(taxID string) error {
	taxID = strings.ToUpper(strings.TrimSpace(taxID))
	if taxID != "" && !taxIDPattern.MatchString(taxID) {
		return shared.NewDomainError("INVALID_TAX_ID", "Tax ID format is not valid")
	}

	c.TaxID = taxID
	c.Touch()
	c.IncrementVersion()

	return nil
}

// SetCreditTerms sets the credit limit and default payment term
func (c *Customer) SetCreditTerms(limit valueobject.Money, paymentTermID *uuid.UUID) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	c.CreditLimit = limit
	c.PaymentTermID = paymentTermID
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerCreditChangedEvent(c))

	return nil
}

// SetPriceList assigns a price list to the customer
func (c *Customer) SetPriceList(priceListID *uuid.UUID) {
	c.PriceListID = priceListID
	c.Touch()
	c.IncrementVersion()
}

// HasCredit returns true if the customer may buy on credit
func (c *Customer) HasCredit() bool {
	return c.Status == CustomerStatusActive && c.CreditLimit.IsPositive()
}

// Block suspends credit sales to the customer
func (c *Customer) Block(reason string) error {
	if c.Status == CustomerStatusBlocked {
		return shared.NewDomainError("ALREADY_BLOCKED", "Customer is already blocked")
	}

	c.Status = CustomerStatusBlocked
	if reason != "" {
		c.Notes = reason
	}
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerBlockedEvent(c, reason))

	return nil
}

// Unblock restores the customer to active status
func (c *Customer) Unblock() error {
	if c.Status != CustomerStatusBlocked {
		return shared.NewDomainError("NOT_BLOCKED", "Customer is not blocked")
	}

	c.Status = CustomerStatusActive
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Deactivate retires the customer without deleting history
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}

	c.Status = CustomerStatusInactive
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Activate restores an inactive customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}

	c.Status = CustomerStatusActive
	c.Touch()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}
