package catalog

import (
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
)

// Event types for the catalog context
const (
	EventTypeArticleCreated      = "catalog.article.created"
	EventTypeArticlePriceChanged = "catalog.article.price_changed"
	EventTypeArticleDiscontinued = "catalog.article.discontinued"
)

// ArticleCreatedEvent is emitted when an article is created
type ArticleCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewArticleCreatedEvent creates a new ArticleCreatedEvent
func NewArticleCreatedEvent(a *Article) *ArticleCreatedEvent {
	return &ArticleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeArticleCreated, "Article", a.ID),
		Code:            a.Code,
		Name:            a.Name,
	}
}

// ArticlePriceChangedEvent is emitted when the base price changes
type ArticlePriceChangedEvent struct {
	shared.BaseDomainEvent
	Code     string            `json:"code"`
	OldPrice valueobject.Money `json:"old_price"`
	NewPrice valueobject.Money `json:"new_price"`
}

// NewArticlePriceChangedEvent creates a new ArticlePriceChangedEvent
func NewArticlePriceChangedEvent(a *Article, oldPrice, newPrice valueobject.Money) *ArticlePriceChangedEvent {
	return &ArticlePriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeArticlePriceChanged, "Article", a.ID),
		Code:            a.Code,
		OldPrice:        oldPrice,
		NewPrice:        newPrice,
	}
}

// ArticleDiscontinuedEvent is emitted when an article is taken off sale
type ArticleDiscontinuedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewArticleDiscontinuedEvent creates a new ArticleDiscontinuedEvent
func NewArticleDiscontinuedEvent(a *Article) *ArticleDiscontinuedEvent {
	return &ArticleDiscontinuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeArticleDiscontinued, "Article", a.ID),
		Code:            a.Code,
	}
}
