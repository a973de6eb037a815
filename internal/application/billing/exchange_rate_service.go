package billing

import (
	"context"
	"time"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExchangeRateService handles the exchange rate register
type ExchangeRateService struct {
	rateRepo billing.ExchangeRateRepository
	logger   *zap.Logger
}

// NewExchangeRateService creates a new ExchangeRateService
func NewExchangeRateService(rateRepo billing.ExchangeRateRepository, logger *zap.Logger) *ExchangeRateService {
	return &ExchangeRateService{rateRepo: rateRepo, logger: logger}
}

// Register records a new rate for a foreign currency
func (s *ExchangeRateService) Register(ctx context.Context, req RegisterRateRequest) (*ExchangeRateResponse, error) {
	effectiveAt := time.Now()
	if req.EffectiveAt != nil {
		effectiveAt = *req.EffectiveAt
	}
	source := req.Source
	if source == "" {
		source = "manual"
	}

	rate, err := billing.NewExchangeRate(valueobject.Currency(req.Currency), req.Rate, effectiveAt, source)
	if err != nil {
		return nil, err
	}

	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}

	s.logger.Info("exchange rate registered",
		zap.String("currency", string(rate.Currency)),
		zap.String("rate", rate.Rate.String()),
		zap.String("source", rate.Source),
	)

	response := ToExchangeRateResponse(rate)
	return &response, nil
}

// Latest returns the most recent rate for a currency
func (s *ExchangeRateService) Latest(ctx context.Context, currency string) (*ExchangeRateResponse, error) {
	rate, err := s.rateRepo.FindLatest(ctx, valueobject.Currency(currency))
	if err != nil {
		return nil, err
	}
	response := ToExchangeRateResponse(rate)
	return &response, nil
}

// At returns the rate in effect at a point in time
func (s *ExchangeRateService) At(ctx context.Context, currency string, at time.Time) (*ExchangeRateResponse, error) {
	rate, err := s.rateRepo.FindAt(ctx, valueobject.Currency(currency), at)
	if err != nil {
		return nil, err
	}
	response := ToExchangeRateResponse(rate)
	return &response, nil
}

// History returns registered rates for a currency, newest first
func (s *ExchangeRateService) History(ctx context.Context, currency string, page, pageSize int) ([]ExchangeRateResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	rates, err := s.rateRepo.FindHistory(ctx, valueobject.Currency(currency), shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  "effective_at",
		OrderDir: "desc",
	})
	if err != nil {
		return nil, err
	}
	return ToExchangeRateResponses(rates), nil
}

// ConvertToBase converts a foreign-currency amount using the latest rate
func (s *ExchangeRateService) ConvertToBase(ctx context.Context, currency string, amount decimal.Decimal) (decimal.Decimal, error) {
	cur := valueobject.Currency(currency)
	if cur == valueobject.DefaultCurrency {
		return amount, nil
	}

	money, err := valueobject.NewMoney(amount, cur)
	if err != nil {
		return decimal.Zero, err
	}
	rate, err := s.rateRepo.FindLatest(ctx, cur)
	if err != nil {
		return decimal.Zero, err
	}
	converted, err := rate.ToBase(money)
	if err != nil {
		return decimal.Zero, err
	}
	return converted.Amount(), nil
}
