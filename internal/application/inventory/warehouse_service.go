// Package inventory implements stock management: warehouses, postings and
// the kardex movement history.
package inventory

import (
	"context"
	"errors"

	"github.com/gestion/backend/internal/domain/inventory"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WarehouseService handles warehouse administration
type WarehouseService struct {
	warehouseRepo inventory.WarehouseRepository
	stockItemRepo inventory.StockItemRepository
	logger        *zap.Logger
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(
	warehouseRepo inventory.WarehouseRepository,
	stockItemRepo inventory.StockItemRepository,
	logger *zap.Logger,
) *WarehouseService {
	return &WarehouseService{
		warehouseRepo: warehouseRepo,
		stockItemRepo: stockItemRepo,
		logger:        logger,
	}
}

// Create creates a new warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	exists, err := s.warehouseRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Warehouse with this code already exists")
	}

	warehouse, err := inventory.NewWarehouse(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Address != "" {
		if err := warehouse.Update(warehouse.Name, req.Address); err != nil {
			return nil, err
		}
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	if req.Default {
		if err := s.setDefault(ctx, warehouse); err != nil {
			return nil, err
		}
	}

	s.logger.Info("warehouse created", zap.String("code", warehouse.Code))

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// GetByID retrieves a warehouse by ID
func (s *WarehouseService) GetByID(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// List retrieves all warehouses
func (s *WarehouseService) List(ctx context.Context) ([]WarehouseResponse, error) {
	warehouses, err := s.warehouseRepo.FindAll(ctx, shared.Filter{OrderBy: "code", OrderDir: "asc", PageSize: 100, Page: 1})
	if err != nil {
		return nil, err
	}
	return ToWarehouseResponses(warehouses), nil
}

// Update updates a warehouse's descriptive fields
func (s *WarehouseService) Update(ctx context.Context, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := warehouse.Name
	address := warehouse.Address
	if req.Name != nil {
		name = *req.Name
	}
	if req.Address != nil {
		address = *req.Address
	}
	if err := warehouse.Update(name, address); err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// SetDefault makes a warehouse the default stock location
func (s *WarehouseService) SetDefault(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !warehouse.Active {
		return nil, shared.NewDomainError("WAREHOUSE_INACTIVE", "Cannot make an inactive warehouse the default")
	}

	if err := s.setDefault(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// setDefault clears the previous default, then flags the given warehouse
func (s *WarehouseService) setDefault(ctx context.Context, warehouse *inventory.Warehouse) error {
	current, err := s.warehouseRepo.FindDefault(ctx)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if current != nil && current.ID != warehouse.ID {
		current.ClearDefault()
		if err := s.warehouseRepo.Save(ctx, current); err != nil {
			return err
		}
	}

	warehouse.MarkDefault()
	return s.warehouseRepo.Save(ctx, warehouse)
}

// Activate puts a warehouse back in use
func (s *WarehouseService) Activate(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := warehouse.Activate(); err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// Deactivate takes a warehouse out of use. The default warehouse and
// warehouses still holding stock cannot be deactivated.
func (s *WarehouseService) Deactivate(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse.Default {
		return nil, shared.NewDomainError("DEFAULT_WAREHOUSE", "The default warehouse cannot be deactivated")
	}

	count, err := s.stockItemRepo.CountByWarehouse(ctx, id, shared.Filter{Filters: map[string]any{"with_stock": true}})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, shared.NewDomainError("WAREHOUSE_HAS_STOCK", "Warehouse still holds stock")
	}

	if err := warehouse.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// Delete removes a warehouse with no stock records
func (s *WarehouseService) Delete(ctx context.Context, id uuid.UUID) error {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse.Default {
		return shared.NewDomainError("DEFAULT_WAREHOUSE", "The default warehouse cannot be deleted")
	}

	count, err := s.stockItemRepo.CountByWarehouse(ctx, id, shared.Filter{})
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("WAREHOUSE_HAS_STOCK", "Warehouse has stock records")
	}

	return s.warehouseRepo.Delete(ctx, id)
}
