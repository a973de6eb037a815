package catalog

import (
	"time"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateArticleRequest creates a new catalog article
type CreateArticleRequest struct {
	Code             string          `json:"code" binding:"required"`
	Barcode          string          `json:"barcode"`
	Name             string          `json:"name" binding:"required"`
	Description      string          `json:"description"`
	Type             string          `json:"type" binding:"required"`
	ClassificationID *uuid.UUID      `json:"classification_id"`
	UnitCode         string          `json:"unit_code" binding:"required"`
	BasePrice        decimal.Decimal `json:"base_price"`
	Currency         string          `json:"currency"`
	Cost             decimal.Decimal `json:"cost"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	MinStock         decimal.Decimal `json:"min_stock"`
}

// UpdateArticleRequest updates mutable article fields
type UpdateArticleRequest struct {
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	Barcode          *string          `json:"barcode"`
	ClassificationID *uuid.UUID       `json:"classification_id"`
	BasePrice        *decimal.Decimal `json:"base_price"`
	Cost             *decimal.Decimal `json:"cost"`
	TaxRate          *decimal.Decimal `json:"tax_rate"`
	MinStock         *decimal.Decimal `json:"min_stock"`
}

// KitComponentRequest adds a component to a kit article
type KitComponentRequest struct {
	ComponentID uuid.UUID       `json:"component_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

// ArticleListFilter contains filtering options for article listing
type ArticleListFilter struct {
	Page             int    `form:"page"`
	PageSize         int    `form:"page_size"`
	OrderBy          string `form:"order_by"`
	OrderDir         string `form:"order_dir"`
	Search           string `form:"search"`
	Type             string `form:"type"`
	Status           string `form:"status"`
	ClassificationID string `form:"classification_id"`
}

// KitComponentResponse describes one component of a kit
type KitComponentResponse struct {
	ComponentID uuid.UUID       `json:"component_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ArticleResponse is the full article representation
type ArticleResponse struct {
	ID               uuid.UUID              `json:"id"`
	Code             string                 `json:"code"`
	Barcode          string                 `json:"barcode,omitempty"`
	Name             string                 `json:"name"`
	Description      string                 `json:"description,omitempty"`
	Type             string                 `json:"type"`
	Status           string                 `json:"status"`
	ClassificationID *uuid.UUID             `json:"classification_id,omitempty"`
	UnitCode         string                 `json:"unit_code"`
	BasePrice        decimal.Decimal        `json:"base_price"`
	Currency         string                 `json:"currency"`
	Cost             decimal.Decimal        `json:"cost"`
	TaxRate          decimal.Decimal        `json:"tax_rate"`
	TrackStock       bool                   `json:"track_stock"`
	MinStock         decimal.Decimal        `json:"min_stock"`
	Components       []KitComponentResponse `json:"components,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// ToArticleResponse converts a domain article to its response form
func ToArticleResponse(a *catalog.Article) ArticleResponse {
	components := make([]KitComponentResponse, 0, len(a.Components))
	for _, c := range a.Components {
		components = append(components, KitComponentResponse{
			ComponentID: c.ComponentID,
			Quantity:    c.Quantity,
		})
	}

	return ArticleResponse{
		ID:               a.ID,
		Code:             a.Code,
		Barcode:          a.Barcode,
		Name:             a.Name,
		Description:      a.Description,
		Type:             string(a.Type),
		Status:           string(a.Status),
		ClassificationID: a.ClassificationID,
		UnitCode:         a.UnitCode,
		BasePrice:        a.BasePrice.Amount(),
		Currency:         string(a.BasePrice.Currency()),
		Cost:             a.Cost.Amount(),
		TaxRate:          a.TaxRate,
		TrackStock:       a.TrackStock,
		MinStock:         a.MinStock,
		Components:       components,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// ToArticleResponses converts a slice of articles
func ToArticleResponses(articles []catalog.Article) []ArticleResponse {
	responses := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		responses = append(responses, ToArticleResponse(&articles[i]))
	}
	return responses
}

// CreateUnitRequest creates a unit of measure
type CreateUnitRequest struct {
	Code   string `json:"code" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Symbol string `json:"symbol"`
}

// UpdateUnitRequest updates a unit of measure
type UpdateUnitRequest struct {
	Name   *string `json:"name"`
	Symbol *string `json:"symbol"`
}

// UnitResponse is the unit representation
type UnitResponse struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	Symbol string    `json:"symbol"`
}

// ToUnitResponse converts a domain unit
func ToUnitResponse(u *catalog.Unit) UnitResponse {
	return UnitResponse{
		ID:     u.ID,
		Code:   u.Code,
		Name:   u.Name,
		Symbol: u.Symbol,
	}
}

// ToUnitResponses converts a slice of units
func ToUnitResponses(units []catalog.Unit) []UnitResponse {
	responses := make([]UnitResponse, 0, len(units))
	for i := range units {
		responses = append(responses, ToUnitResponse(&units[i]))
	}
	return responses
}

// CreateClassificationRequest creates a classification node
type CreateClassificationRequest struct {
	Code     string     `json:"code" binding:"required"`
	Name     string     `json:"name" binding:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// UpdateClassificationRequest updates a classification
type UpdateClassificationRequest struct {
	Name     *string    `json:"name"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// ClassificationResponse is the classification representation
type ClassificationResponse struct {
	ID       uuid.UUID  `json:"id"`
	Code     string     `json:"code"`
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// ToClassificationResponse converts a domain classification
func ToClassificationResponse(c *catalog.Classification) ClassificationResponse {
	return ClassificationResponse{
		ID:       c.ID,
		Code:     c.Code,
		Name:     c.Name,
		ParentID: c.ParentID,
	}
}

// ToClassificationResponses converts a slice of classifications
func ToClassificationResponses(classifications []catalog.Classification) []ClassificationResponse {
	responses := make([]ClassificationResponse, 0, len(classifications))
	for i := range classifications {
		responses = append(responses, ToClassificationResponse(&classifications[i]))
	}
	return responses
}

// CreatePriceListRequest creates a price list
type CreatePriceListRequest struct {
	Code      string     `json:"code" binding:"required"`
	Name      string     `json:"name" binding:"required"`
	Currency  string     `json:"currency"`
	ValidFrom *time.Time `json:"valid_from"`
	ValidTo   *time.Time `json:"valid_to"`
}

// SetPriceRequest sets an article price override on a list
type SetPriceRequest struct {
	ArticleID uuid.UUID       `json:"article_id" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

// PriceListItemResponse describes one price override
type PriceListItemResponse struct {
	ArticleID uuid.UUID       `json:"article_id"`
	Price     decimal.Decimal `json:"price"`
}

// PriceListResponse is the price list representation
type PriceListResponse struct {
	ID        uuid.UUID               `json:"id"`
	Code      string                  `json:"code"`
	Name      string                  `json:"name"`
	Currency  string                  `json:"currency"`
	ValidFrom *time.Time              `json:"valid_from,omitempty"`
	ValidTo   *time.Time              `json:"valid_to,omitempty"`
	Active    bool                    `json:"active"`
	Items     []PriceListItemResponse `json:"items"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// ToPriceListResponse converts a domain price list
func ToPriceListResponse(p *catalog.PriceList) PriceListResponse {
	items := make([]PriceListItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, PriceListItemResponse{
			ArticleID: item.ArticleID,
			Price:     item.Price.Amount(),
		})
	}

	return PriceListResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Currency:  string(p.Currency),
		ValidFrom: p.ValidFrom,
		ValidTo:   p.ValidTo,
		Active:    p.Active,
		Items:     items,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToPriceListResponses converts a slice of price lists
func ToPriceListResponses(lists []catalog.PriceList) []PriceListResponse {
	responses := make([]PriceListResponse, 0, len(lists))
	for i := range lists {
		responses = append(responses, ToPriceListResponse(&lists[i]))
	}
	return responses
}
