package inventory

import (
	"context"
	"errors"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/inventory"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockService posts kardex movements and answers stock queries. Every
// posting runs inside a transaction: the stock item row and the kardex
// line commit together or not at all.
type StockService struct {
	txScope       TransactionScope
	articleRepo   catalog.ArticleRepository
	warehouseRepo inventory.WarehouseRepository
	stockItemRepo inventory.StockItemRepository
	movementRepo  inventory.StockMovementRepository
	eventBus      shared.EventPublisher
	logger        *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	txScope TransactionScope,
	articleRepo catalog.ArticleRepository,
	warehouseRepo inventory.WarehouseRepository,
	stockItemRepo inventory.StockItemRepository,
	movementRepo inventory.StockMovementRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		txScope:       txScope,
		articleRepo:   articleRepo,
		warehouseRepo: warehouseRepo,
		stockItemRepo: stockItemRepo,
		movementRepo:  movementRepo,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// RegisterEntry posts a stock receipt and recalculates the weighted
// average cost of the article in that warehouse.
func (s *StockService) RegisterEntry(ctx context.Context, req EntryRequest) (*MovementResponse, error) {
	article, err := s.trackedArticle(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	warehouse, err := s.resolveWarehouse(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	unitCost, err := valueobject.NewMoney(req.UnitCost, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	var (
		movement *inventory.StockMovement
		events   []shared.DomainEvent
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := s.findOrCreateItem(ctx, repos, article.ID, warehouse.ID)
		if err != nil {
			return err
		}
		if err := item.Receive(req.Quantity, unitCost); err != nil {
			return err
		}

		movement, err = inventory.NewStockMovement(article.ID, warehouse.ID, inventory.MovementTypeEntry, req.Quantity, unitCost, item.OnHand)
		if err != nil {
			return err
		}
		movement.WithReference(req.ReferenceType, req.Reference, req.ReferenceID).WithNotes(req.Notes)
		if req.PostedBy != nil {
			movement.WithPostedBy(*req.PostedBy)
		}

		if err := repos.StockItems().Save(ctx, item); err != nil {
			return err
		}
		if err := repos.Movements().Save(ctx, movement); err != nil {
			return err
		}

		events = append(events, inventory.NewStockMovementPostedEvent(movement))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	s.logger.Info("stock entry posted",
		zap.String("article", article.Code),
		zap.String("warehouse", warehouse.Code),
		zap.String("quantity", req.Quantity.String()),
	)

	response := ToMovementResponse(movement)
	return &response, nil
}

// RegisterExit posts a stock issue valued at the current average cost.
// The exit fails if available stock would go negative.
func (s *StockService) RegisterExit(ctx context.Context, req ExitRequest) (*MovementResponse, error) {
	article, err := s.trackedArticle(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	warehouse, err := s.resolveWarehouse(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	var (
		movement *inventory.StockMovement
		events   []shared.DomainEvent
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.StockItems().FindByArticleAndWarehouse(ctx, article.ID, warehouse.ID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrInsufficientStock
			}
			return err
		}

		unitCost := item.AverageCost
		if err := item.Issue(req.Quantity); err != nil {
			return err
		}

		movement, err = inventory.NewStockMovement(article.ID, warehouse.ID, inventory.MovementTypeExit, req.Quantity.Neg(), unitCost, item.OnHand)
		if err != nil {
			return err
		}
		movement.WithReference(req.ReferenceType, req.Reference, req.ReferenceID).WithNotes(req.Notes)
		if req.PostedBy != nil {
			movement.WithPostedBy(*req.PostedBy)
		}

		if err := repos.StockItems().Save(ctx, item); err != nil {
			return err
		}
		if err := repos.Movements().Save(ctx, movement); err != nil {
			return err
		}

		events = append(events, inventory.NewStockMovementPostedEvent(movement))
		if item.IsBelowMinimum(article.MinStock) {
			events = append(events, inventory.NewStockBelowMinimumEvent(item, article.MinStock))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	s.logger.Info("stock exit posted",
		zap.String("article", article.Code),
		zap.String("warehouse", warehouse.Code),
		zap.String("quantity", req.Quantity.String()),
	)

	response := ToMovementResponse(movement)
	return &response, nil
}

// RegisterAdjustment sets on-hand stock to a physically counted value and
// posts the signed variance as an adjustment line.
func (s *StockService) RegisterAdjustment(ctx context.Context, req AdjustmentRequest) (*MovementResponse, error) {
	article, err := s.trackedArticle(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	warehouse, err := s.resolveWarehouse(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	var (
		movement *inventory.StockMovement
		events   []shared.DomainEvent
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := s.findOrCreateItem(ctx, repos, article.ID, warehouse.ID)
		if err != nil {
			return err
		}

		diff, err := item.AdjustTo(req.Counted)
		if err != nil {
			return err
		}
		if diff.IsZero() {
			return shared.NewDomainError("NO_VARIANCE", "Counted quantity matches the on-hand quantity")
		}

		movement, err = inventory.NewStockMovement(article.ID, warehouse.ID, inventory.MovementTypeAdjustment, diff, item.AverageCost, item.OnHand)
		if err != nil {
			return err
		}
		movement.WithReference("count", req.Reference, nil).WithNotes(req.Notes)
		if req.PostedBy != nil {
			movement.WithPostedBy(*req.PostedBy)
		}

		if err := repos.StockItems().Save(ctx, item); err != nil {
			return err
		}
		if err := repos.Movements().Save(ctx, movement); err != nil {
			return err
		}

		events = append(events, inventory.NewStockMovementPostedEvent(movement))
		if item.IsBelowMinimum(article.MinStock) {
			events = append(events, inventory.NewStockBelowMinimumEvent(item, article.MinStock))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	s.logger.Info("stock adjustment posted",
		zap.String("article", article.Code),
		zap.String("warehouse", warehouse.Code),
		zap.String("counted", req.Counted.String()),
	)

	response := ToMovementResponse(movement)
	return &response, nil
}

// RegisterTransfer moves stock between warehouses. The destination receives
// the quantity at the source's average cost, so no value is created or
// destroyed by the move.
func (s *StockService) RegisterTransfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	if req.FromWarehouseID == req.ToWarehouseID {
		return nil, shared.NewDomainError("SAME_WAREHOUSE", "Source and destination warehouses must differ")
	}

	article, err := s.trackedArticle(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}
	source, err := s.warehouseRepo.FindByID(ctx, req.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	dest, err := s.activeWarehouse(ctx, req.ToWarehouseID)
	if err != nil {
		return nil, err
	}

	var (
		outMovement *inventory.StockMovement
		inMovement  *inventory.StockMovement
		events      []shared.DomainEvent
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sourceItem, err := repos.StockItems().FindByArticleAndWarehouse(ctx, article.ID, source.ID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrInsufficientStock
			}
			return err
		}

		unitCost := sourceItem.AverageCost
		if err := sourceItem.Issue(req.Quantity); err != nil {
			return err
		}

		destItem, err := s.findOrCreateItem(ctx, repos, article.ID, dest.ID)
		if err != nil {
			return err
		}
		if err := destItem.Receive(req.Quantity, unitCost); err != nil {
			return err
		}

		outMovement, err = inventory.NewStockMovement(article.ID, source.ID, inventory.MovementTypeTransfer, req.Quantity.Neg(), unitCost, sourceItem.OnHand)
		if err != nil {
			return err
		}
		inMovement, err = inventory.NewStockMovement(article.ID, dest.ID, inventory.MovementTypeTransfer, req.Quantity, unitCost, destItem.OnHand)
		if err != nil {
			return err
		}
		outMovement.WithReference("transfer", req.Reference, &inMovement.ID).WithNotes(req.Notes)
		inMovement.WithReference("transfer", req.Reference, &outMovement.ID).WithNotes(req.Notes)
		if req.PostedBy != nil {
			outMovement.WithPostedBy(*req.PostedBy)
			inMovement.WithPostedBy(*req.PostedBy)
		}

		if err := repos.StockItems().Save(ctx, sourceItem); err != nil {
			return err
		}
		if err := repos.StockItems().Save(ctx, destItem); err != nil {
			return err
		}
		if err := repos.Movements().Save(ctx, outMovement); err != nil {
			return err
		}
		if err := repos.Movements().Save(ctx, inMovement); err != nil {
			return err
		}

		events = append(events,
			inventory.NewStockMovementPostedEvent(outMovement),
			inventory.NewStockMovementPostedEvent(inMovement),
		)
		if sourceItem.IsBelowMinimum(article.MinStock) {
			events = append(events, inventory.NewStockBelowMinimumEvent(sourceItem, article.MinStock))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, events)
	s.logger.Info("stock transfer posted",
		zap.String("article", article.Code),
		zap.String("from", source.Code),
		zap.String("to", dest.Code),
		zap.String("quantity", req.Quantity.String()),
	)

	return &TransferResponse{
		Out: ToMovementResponse(outMovement),
		In:  ToMovementResponse(inMovement),
	}, nil
}

// Reserve commits available stock to an open order
func (s *StockService) Reserve(ctx context.Context, articleID, warehouseID uuid.UUID, quantity decimal.Decimal) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.StockItems().FindByArticleAndWarehouse(ctx, articleID, warehouseID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrInsufficientStock
			}
			return err
		}
		if err := item.Reserve(quantity); err != nil {
			return err
		}
		return repos.StockItems().Save(ctx, item)
	})
}

// Release frees a previous reservation
func (s *StockService) Release(ctx context.Context, articleID, warehouseID uuid.UUID, quantity decimal.Decimal) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.StockItems().FindByArticleAndWarehouse(ctx, articleID, warehouseID)
		if err != nil {
			return err
		}
		if err := item.Release(quantity); err != nil {
			return err
		}
		return repos.StockItems().Save(ctx, item)
	})
}

// GetStock returns the stock position of one article in one warehouse
func (s *StockService) GetStock(ctx context.Context, articleID, warehouseID uuid.UUID) (*StockResponse, error) {
	item, err := s.stockItemRepo.FindByArticleAndWarehouse(ctx, articleID, warehouseID)
	if err != nil {
		return nil, err
	}
	response := ToStockResponse(item)
	return &response, nil
}

// GetArticleStock returns the article's stock position in every warehouse
func (s *StockService) GetArticleStock(ctx context.Context, articleID uuid.UUID) ([]StockResponse, error) {
	items, err := s.stockItemRepo.FindByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	return ToStockResponses(items), nil
}

// ListWarehouseStock returns the stock positions held in one warehouse
func (s *StockService) ListWarehouseStock(ctx context.Context, warehouseID uuid.UUID, filter StockListFilter) ([]StockResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "updated_at",
		OrderDir: "desc",
		Search:   filter.Search,
	}

	items, err := s.stockItemRepo.FindByWarehouse(ctx, warehouseID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.stockItemRepo.CountByWarehouse(ctx, warehouseID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStockResponses(items), total, nil
}

// Kardex returns the movement history matching the filter, newest first
func (s *StockService) Kardex(ctx context.Context, filter KardexFilter) ([]MovementResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	movementFilter := inventory.MovementFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "posted_at",
			OrderDir: "desc",
		},
		ArticleID:   filter.ArticleID,
		WarehouseID: filter.WarehouseID,
		From:        filter.From,
		To:          filter.To,
	}
	if filter.Type != "" {
		movementType := inventory.MovementType(filter.Type)
		movementFilter.Type = &movementType
	}

	movements, err := s.movementRepo.FindAll(ctx, movementFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.movementRepo.Count(ctx, movementFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToMovementResponses(movements), total, nil
}

// trackedArticle loads the article and rejects postings against articles
// that do not track stock (services, untracked kits).
func (s *StockService) trackedArticle(ctx context.Context, articleID uuid.UUID) (*catalog.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !article.TrackStock {
		return nil, shared.NewDomainError("STOCK_NOT_TRACKED", "Article does not track stock")
	}
	return article, nil
}

// resolveWarehouse returns the requested warehouse or falls back to the default
func (s *StockService) resolveWarehouse(ctx context.Context, warehouseID *uuid.UUID) (*inventory.Warehouse, error) {
	if warehouseID != nil {
		return s.activeWarehouse(ctx, *warehouseID)
	}

	warehouse, err := s.warehouseRepo.FindDefault(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NO_DEFAULT_WAREHOUSE", "No default warehouse is configured")
		}
		return nil, err
	}
	return warehouse, nil
}

func (s *StockService) activeWarehouse(ctx context.Context, warehouseID uuid.UUID) (*inventory.Warehouse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if !warehouse.Active {
		return nil, shared.NewDomainError("WAREHOUSE_INACTIVE", "Warehouse is inactive")
	}
	return warehouse, nil
}

// findOrCreateItem loads the stock record for the pair, creating an empty
// one on first use
func (s *StockService) findOrCreateItem(ctx context.Context, repos TransactionalRepositories, articleID, warehouseID uuid.UUID) (*inventory.StockItem, error) {
	item, err := repos.StockItems().FindByArticleAndWarehouse(ctx, articleID, warehouseID)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return inventory.NewStockItem(articleID, warehouseID)
}

func (s *StockService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}
