package catalog

import (
	"context"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ArticleRepository defines persistence operations for articles
type ArticleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Article, error)
	FindByCode(ctx context.Context, code string) (*Article, error)
	FindByBarcode(ctx context.Context, barcode string) (*Article, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Article, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Article, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, article *Article) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnitRepository defines persistence operations for units of measure
type UnitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)
	FindByCode(ctx context.Context, code string) (*Unit, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Unit, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	CountArticles(ctx context.Context, unitCode string) (int64, error)
	Save(ctx context.Context, unit *Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClassificationRepository defines persistence operations for classifications
type ClassificationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Classification, error)
	FindByCode(ctx context.Context, code string) (*Classification, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Classification, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Classification, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	CountArticles(ctx context.Context, id uuid.UUID) (int64, error)
	Save(ctx context.Context, classification *Classification) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PriceListRepository defines persistence operations for price lists
type PriceListRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PriceList, error)
	FindByCode(ctx context.Context, code string) (*PriceList, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PriceList, error)
	FindActive(ctx context.Context) ([]PriceList, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, priceList *PriceList) error
	Delete(ctx context.Context, id uuid.UUID) error
}
