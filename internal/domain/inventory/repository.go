package inventory

import (
	"context"
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WarehouseRepository defines persistence operations for warehouses
type WarehouseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindByCode(ctx context.Context, code string) (*Warehouse, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Warehouse, error)
	FindDefault(ctx context.Context) (*Warehouse, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, warehouse *Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StockItemRepository defines persistence operations for stock records
type StockItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)
	FindByArticleAndWarehouse(ctx context.Context, articleID, warehouseID uuid.UUID) (*StockItem, error)
	FindByArticle(ctx context.Context, articleID uuid.UUID) ([]StockItem, error)
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]StockItem, error)
	CountByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, item *StockItem) error
}

// MovementFilter narrows kardex queries
type MovementFilter struct {
	shared.Filter
	ArticleID   *uuid.UUID
	WarehouseID *uuid.UUID
	Type        *MovementType
	From        *time.Time
	To          *time.Time
}

// StockMovementRepository defines persistence operations for kardex lines
type StockMovementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)
	FindAll(ctx context.Context, filter MovementFilter) ([]StockMovement, error)
	Count(ctx context.Context, filter MovementFilter) (int64, error)
	Save(ctx context.Context, movement *StockMovement) error
}
