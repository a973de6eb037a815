// Package partner implements customer management.
package partner

import (
	"context"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/partner"
	"github.com/gestion/backend/internal/domain/receivable"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer business operations
type CustomerService struct {
	customerRepo    partner.CustomerRepository
	paymentTermRepo billing.PaymentTermRepository
	documentRepo    receivable.DocumentRepository
	eventBus        shared.EventPublisher
	logger          *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo partner.CustomerRepository,
	paymentTermRepo billing.PaymentTermRepository,
	documentRepo receivable.DocumentRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo:    customerRepo,
		paymentTermRepo: paymentTermRepo,
		documentRepo:    documentRepo,
		eventBus:        eventBus,
		logger:          logger,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this code already exists")
	}

	customer, err := partner.NewCustomer(req.Code, req.Name, partner.CustomerType(req.Type))
	if err != nil {
		return nil, err
	}

	if req.Email != "" || req.Phone != "" || req.Address != "" || req.City != "" || req.Notes != "" {
		if err := customer.Update(req.Name, req.Email, req.Phone, req.Address, req.City, req.Notes); err != nil {
			return nil, err
		}
	}
	if req.TaxID != "" {
		if err := customer.SetTaxID(req.TaxID); err != nil {
			return nil, err
		}
	}
	if req.CreditLimit != nil && !req.CreditLimit.IsZero() {
		if req.PaymentTermID != nil {
			if _, err := s.paymentTermRepo.FindByID(ctx, *req.PaymentTermID); err != nil {
				return nil, shared.NewDomainError("PAYMENT_TERM_NOT_FOUND", "Payment term does not exist")
			}
		}
		limit, err := valueobject.NewMoney(*req.CreditLimit, valueobject.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		if err := customer.SetCreditTerms(limit, req.PaymentTermID); err != nil {
			return nil, err
		}
	}
	if req.PriceListID != nil {
		customer.SetPriceList(req.PriceListID)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, customer.GetDomainEvents())
	customer.ClearDomainEvents()

	s.logger.Info("customer created", zap.String("code", customer.Code))

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByCode retrieves a customer by code
func (s *CustomerService) GetByCode(ctx context.Context, code string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByTaxID retrieves a customer by RIF / national ID
func (s *CustomerService) GetByTaxID(ctx context.Context, taxID string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "code"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// Update updates a customer's contact information
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	email := customer.Email
	phone := customer.Phone
	address := customer.Address
	city := customer.City
	notes := customer.Notes
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Address != nil {
		address = *req.Address
	}
	if req.City != nil {
		city = *req.City
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := customer.Update(name, email, phone, address, city, notes); err != nil {
		return nil, err
	}

	if req.TaxID != nil {
		if err := customer.SetTaxID(*req.TaxID); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// SetCreditTerms updates the customer's credit limit and default term
func (s *CustomerService) SetCreditTerms(ctx context.Context, customerID uuid.UUID, req SetCreditTermsRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.PaymentTermID != nil {
		if _, err := s.paymentTermRepo.FindByID(ctx, *req.PaymentTermID); err != nil {
			return nil, shared.NewDomainError("PAYMENT_TERM_NOT_FOUND", "Payment term does not exist")
		}
	}

	limit, err := valueobject.NewMoney(req.CreditLimit, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	if err := customer.SetCreditTerms(limit, req.PaymentTermID); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// SetPriceList assigns a price list to the customer
func (s *CustomerService) SetPriceList(ctx context.Context, customerID uuid.UUID, priceListID *uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	customer.SetPriceList(priceListID)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Block suspends the customer's credit
func (s *CustomerService) Block(ctx context.Context, customerID uuid.UUID, req BlockCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.Block(req.Reason); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, customer.GetDomainEvents())
	customer.ClearDomainEvents()

	s.logger.Info("customer blocked",
		zap.String("code", customer.Code),
		zap.String("reason", req.Reason),
	)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Unblock restores the customer's credit
func (s *CustomerService) Unblock(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.Unblock(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Activate re-enables an inactive customer
func (s *CustomerService) Activate(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.Activate(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Deactivate disables a customer with no outstanding documents
func (s *CustomerService) Deactivate(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if s.documentRepo != nil {
		outstanding, err := s.documentRepo.FindOutstandingByCustomer(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if len(outstanding) > 0 {
			return nil, shared.NewDomainError("HAS_OUTSTANDING", "Customer has outstanding receivable documents")
		}
	}

	if err := customer.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes a customer with no receivable history
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return err
	}

	if s.documentRepo != nil {
		outstanding, err := s.documentRepo.FindOutstandingByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if len(outstanding) > 0 {
			return shared.NewDomainError("HAS_OUTSTANDING", "Customer has outstanding receivable documents")
		}
	}

	return s.customerRepo.Delete(ctx, customerID)
}

func (s *CustomerService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}
