package catalog

import (
	"strings"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ArticleType distinguishes sellable goods from services and kits
type ArticleType string

const (
	ArticleTypeProduct ArticleType = "product" // Physical good, stock-tracked
	ArticleTypeService ArticleType = "service" // No stock tracking
	ArticleTypeKit     ArticleType = "kit"     // Bundle of component articles
)

// ArticleStatus represents the lifecycle status of an article
type ArticleStatus string

const (
	ArticleStatusActive       ArticleStatus = "active"
	ArticleStatusDiscontinued ArticleStatus = "discontinued"
)

// Article represents a sellable item in the catalog
// It is the aggregate root for catalog operations
type Article struct {
	shared.AuditedAggregateRoot
	Code             string // Unique article code
	Barcode          string
	Name             string
	Description      string
	Type             ArticleType
	Status           ArticleStatus
	ClassificationID *uuid.UUID
	UnitCode         string // Base unit of measure
	BasePrice        valueobject.Money
	Cost             valueobject.Money
	TaxRate          decimal.Decimal // Percentage, e.g. 16 for IVA 16%
	TrackStock       bool
	MinStock         decimal.Decimal // Reorder threshold, zero disables the alert
	Components       []KitComponent  // Only for kit articles
}

// KitComponent is a child entity of a kit article
type KitComponent struct {
	ID          uuid.UUID
	KitID       uuid.UUID
	ComponentID uuid.UUID
	Quantity    decimal.Decimal
}

// NewArticle creates a new active article
func NewArticle(code, name string, articleType ArticleType, unitCode string, basePrice valueobject.Money) (*Article, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_ARTICLE_CODE", "Article code must be 1-50 characters")
	}
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_ARTICLE_NAME", "Article name must be 1-200 characters")
	}
	switch articleType {
	case ArticleTypeProduct, ArticleTypeService, ArticleTypeKit:
	default:
		return nil, shared.NewDomainError("INVALID_ARTICLE_TYPE", "Article type must be product, service or kit")
	}
	if unitCode == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit code is required")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}

	article := &Article{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 strings.TrimSpace(name),
		Type:                 articleType,
		Status:               ArticleStatusActive,
		UnitCode:             unitCode,
		BasePrice:            basePrice,
		Cost:                 valueobject.Zero(basePrice.Currency()),
		TaxRate:              decimal.Zero,
		TrackStock:           articleType == ArticleTypeProduct,
		MinStock:             decimal.Zero,
		Components:           make([]KitComponent, 0),
	}

	article.AddDomainEvent(NewArticleCreatedEvent(article))

	return article, nil
}

// Update updates the article's descriptive fields
func (a *Article) Update(name, description, barcode string) error {
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_ARTICLE_NAME", "Article name must be 1-200 characters")
	}
	if len(barcode) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	a.Name = strings.TrimSpace(name)
	a.Description = description
	a.Barcode = strings.TrimSpace(barcode)
	a.Touch()
	a.IncrementVersion()

	return nil
}

// SetClassification assigns the article to a classification
func (a *Article) SetClassification(classificationID *uuid.UUID) {
	a.ClassificationID = classificationID
	a.Touch()
	a.IncrementVersion()
}

// SetBasePrice updates the list price
func (a *Article) SetBasePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}

	old := a.BasePrice
	a.BasePrice = price
	a.Touch()
	a.IncrementVersion()

	a.AddDomainEvent(NewArticlePriceChangedEvent(a, old, price))

	return nil
}

// SetCost updates the unit cost used for margin and kardex valuation
func (a *Article) SetCost(cost valueobject.Money) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}

	a.Cost = cost
	a.Touch()
	a.IncrementVersion()

	return nil
}

// SetTaxRate sets the tax percentage applied on sale
func (a *Article) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}

	a.TaxRate = rate
	a.Touch()
	a.IncrementVersion()

	return nil
}

// SetMinStock sets the reorder threshold
func (a *Article) SetMinStock(minStock decimal.Decimal) error {
	if minStock.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}
	if !a.TrackStock && minStock.IsPositive() {
		return shared.NewDomainError("STOCK_NOT_TRACKED", "Article does not track stock")
	}

	a.MinStock = minStock
	a.Touch()
	a.IncrementVersion()

	return nil
}

// AddComponent adds a component line to a kit article
func (a *Article) AddComponent(componentID uuid.UUID, quantity decimal.Decimal) error {
	if a.Type != ArticleTypeKit {
		return shared.NewDomainError("NOT_A_KIT", "Only kit articles can have components")
	}
	if componentID == uuid.Nil || componentID == a.ID {
		return shared.NewDomainError("INVALID_COMPONENT", "Component article is not valid")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Component quantity must be positive")
	}
	for _, c := range a.Components {
		if c.ComponentID == componentID {
			return shared.NewDomainError("COMPONENT_EXISTS", "Component is already part of the kit")
		}
	}

	a.Components = append(a.Components, KitComponent{
		ID:          uuid.New(),
		KitID:       a.ID,
		ComponentID: componentID,
		Quantity:    quantity,
	})
	a.Touch()
	a.IncrementVersion()

	return nil
}

// RemoveComponent removes a component line from a kit article
func (a *Article) RemoveComponent(componentID uuid.UUID) error {
	for i, c := range a.Components {
		if c.ComponentID == componentID {
			a.Components = append(a.Components[:i], a.Components[i+1:]...)
			a.Touch()
			a.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("COMPONENT_NOT_FOUND", "Component is not part of the kit")
}

// Discontinue removes the article from sale without deleting history
func (a *Article) Discontinue() error {
	if a.Status == ArticleStatusDiscontinued {
		return shared.NewDomainError("ALREADY_DISCONTINUED", "Article is already discontinued")
	}

	a.Status = ArticleStatusDiscontinued
	a.Touch()
	a.IncrementVersion()

	a.AddDomainEvent(NewArticleDiscontinuedEvent(a))

	return nil
}

// Reactivate puts a discontinued article back on sale
func (a *Article) Reactivate() error {
	if a.Status == ArticleStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Article is already active")
	}

	a.Status = ArticleStatusActive
	a.Touch()
	a.IncrementVersion()

	return nil
}

// IsSellable returns true if the article can appear on new documents.
// Kits need at least one component before they can be sold.
func (a *Article) IsSellable() bool {
	if a.Status != ArticleStatusActive {
		return false
	}
	return a.Type != ArticleTypeKit || len(a.Components) > 0
}

// IsKit returns true for kit articles
func (a *Article) IsKit() bool {
	return a.Type == ArticleTypeKit
}
