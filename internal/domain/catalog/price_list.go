package catalog

import (
	"strings"
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PriceList holds per-article price overrides (e.g. wholesale, happy hour)
type PriceList struct {
	shared.AuditedAggregateRoot
	Code      string
	Name      string
	Currency  valueobject.Currency
	ValidFrom *time.Time
	ValidTo   *time.Time
	Active    bool
	Items     []PriceListItem
}

// PriceListItem is a child entity binding an article to an override price
type PriceListItem struct {
	ID          uuid.UUID
	PriceListID uuid.UUID
	ArticleID   uuid.UUID
	Price       valueobject.Money
}

// NewPriceList creates a new active price list
func NewPriceList(code, name string, currency valueobject.Currency) (*PriceList, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 30 {
		return nil, shared.NewDomainError("INVALID_PRICE_LIST_CODE", "Price list code must be 1-30 characters")
	}
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_PRICE_LIST_NAME", "Price list name must be 1-100 characters")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is not supported")
	}

	return &PriceList{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 strings.TrimSpace(name),
		Currency:             currency,
		Active:               true,
		Items:                make([]PriceListItem, 0),
	}, nil
}

// SetValidity sets the optional validity window
func (p *PriceList) SetValidity(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return shared.NewDomainError("INVALID_VALIDITY", "Validity end cannot precede start")
	}

	p.ValidFrom = from
	p.ValidTo = to
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetPrice adds or replaces the override price for an article
func (p *PriceList) SetPrice(articleID uuid.UUID, price valueobject.Money) error {
	if articleID == uuid.Nil {
		return shared.NewDomainError("INVALID_ARTICLE", "Article ID cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if price.Currency() != p.Currency {
		return shared.NewDomainError("CURRENCY_MISMATCH", "Price currency must match the price list currency")
	}

	for i, item := range p.Items {
		if item.ArticleID == articleID {
			p.Items[i].Price = price
			p.Touch()
			p.IncrementVersion()
			return nil
		}
	}

	p.Items = append(p.Items, PriceListItem{
		ID:          uuid.New(),
		PriceListID: p.ID,
		ArticleID:   articleID,
		Price:       price,
	})
	p.Touch()
	p.IncrementVersion()

	return nil
}

// RemovePrice removes the override for an article
func (p *PriceList) RemovePrice(articleID uuid.UUID) error {
	for i, item := range p.Items {
		if item.ArticleID == articleID {
			p.Items = append(p.Items[:i], p.Items[i+1:]...)
			p.Touch()
			p.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("PRICE_NOT_FOUND", "Article has no price in this list")
}

// PriceFor returns the override price for an article, if present
func (p *PriceList) PriceFor(articleID uuid.UUID) (valueobject.Money, bool) {
	for _, item := range p.Items {
		if item.ArticleID == articleID {
			return item.Price, true
		}
	}
	return valueobject.Money{}, false
}

// IsEffective returns true if the list is active and within its validity window
func (p *PriceList) IsEffective(at time.Time) bool {
	if !p.Active {
		return false
	}
	if p.ValidFrom != nil && at.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidTo != nil && at.After(*p.ValidTo) {
		return false
	}
	return true
}

// Deactivate takes the price list out of use
func (p *PriceList) Deactivate() {
	p.Active = false
	p.Touch()
	p.IncrementVersion()
}

// Activate puts the price list back in use
func (p *PriceList) Activate() {
	p.Active = true
	p.Touch()
	p.IncrementVersion()
}
