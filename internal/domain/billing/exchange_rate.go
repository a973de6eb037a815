package billing

import (
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExchangeRate records how many units of the base currency one unit of a
// foreign currency was worth on a given day. Rates are append-only; a new
// rate for the same day supersedes the previous one by EffectiveAt.
type ExchangeRate struct {
	shared.BaseEntity
	Currency    valueobject.Currency // Foreign currency
	Rate        decimal.Decimal      // Units of base currency per foreign unit
	EffectiveAt time.Time
	Source      string // "bcv", "manual"
}

// NewExchangeRate registers a rate for a foreign currency
func NewExchangeRate(currency valueobject.Currency, rate decimal.Decimal, effectiveAt time.Time, source string) (*ExchangeRate, error) {
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is not supported")
	}
	if currency == valueobject.DefaultCurrency {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Cannot register a rate for the base currency")
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}
	if effectiveAt.IsZero() {
		effectiveAt = time.Now()
	}

	return &ExchangeRate{
		BaseEntity:  shared.NewBaseEntity(),
		Currency:    currency,
		Rate:        rate,
		EffectiveAt: effectiveAt,
		Source:      source,
	}, nil
}

// ToBase converts a foreign-currency amount into the base currency
func (r *ExchangeRate) ToBase(amount valueobject.Money) (valueobject.Money, error) {
	if amount.Currency() != r.Currency {
		return valueobject.Money{}, shared.NewDomainError("CURRENCY_MISMATCH", "Amount currency does not match the rate currency")
	}
	return amount.Convert(valueobject.DefaultCurrency, r.Rate)
}
