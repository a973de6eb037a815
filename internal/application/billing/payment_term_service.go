package billing

import (
	"context"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentTermService handles payment term administration
type PaymentTermService struct {
	termRepo billing.PaymentTermRepository
	logger   *zap.Logger
}

// NewPaymentTermService creates a new PaymentTermService
func NewPaymentTermService(termRepo billing.PaymentTermRepository, logger *zap.Logger) *PaymentTermService {
	return &PaymentTermService{termRepo: termRepo, logger: logger}
}

// Create creates a new payment term
func (s *PaymentTermService) Create(ctx context.Context, req CreatePaymentTermRequest) (*PaymentTermResponse, error) {
	exists, err := s.termRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Payment term with this code already exists")
	}

	term, err := billing.NewPaymentTerm(req.Code, req.Name, req.Days)
	if err != nil {
		return nil, err
	}

	if err := s.termRepo.Save(ctx, term); err != nil {
		return nil, err
	}

	s.logger.Info("payment term created", zap.String("code", term.Code), zap.Int("days", term.Days))

	response := ToPaymentTermResponse(term)
	return &response, nil
}

// GetByID retrieves a payment term by ID
func (s *PaymentTermService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentTermResponse, error) {
	term, err := s.termRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPaymentTermResponse(term)
	return &response, nil
}

// List retrieves all payment terms
func (s *PaymentTermService) List(ctx context.Context) ([]PaymentTermResponse, error) {
	terms, err := s.termRepo.FindAll(ctx, shared.Filter{OrderBy: "days", OrderDir: "asc", PageSize: 100, Page: 1})
	if err != nil {
		return nil, err
	}
	return ToPaymentTermResponses(terms), nil
}

// Update updates a payment term's name and days
func (s *PaymentTermService) Update(ctx context.Context, id uuid.UUID, req UpdatePaymentTermRequest) (*PaymentTermResponse, error) {
	term, err := s.termRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := term.Update(req.Name, req.Days); err != nil {
		return nil, err
	}

	if err := s.termRepo.Save(ctx, term); err != nil {
		return nil, err
	}

	response := ToPaymentTermResponse(term)
	return &response, nil
}

// Activate puts a term back in use for new documents
func (s *PaymentTermService) Activate(ctx context.Context, id uuid.UUID) (*PaymentTermResponse, error) {
	term, err := s.termRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	term.Activate()

	if err := s.termRepo.Save(ctx, term); err != nil {
		return nil, err
	}

	response := ToPaymentTermResponse(term)
	return &response, nil
}

// Deactivate takes a term out of use. Documents already issued with it
// keep their due dates.
func (s *PaymentTermService) Deactivate(ctx context.Context, id uuid.UUID) (*PaymentTermResponse, error) {
	term, err := s.termRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	term.Deactivate()

	if err := s.termRepo.Save(ctx, term); err != nil {
		return nil, err
	}

	response := ToPaymentTermResponse(term)
	return &response, nil
}
