package restaurant

import (
	"context"

	"github.com/gestion/backend/internal/domain/restaurant"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TableService manages the physical tables on the floor
type TableService struct {
	tableRepo restaurant.TableRepository
	zoneRepo  restaurant.ZoneRepository
	logger    *zap.Logger
}

// NewTableService creates a new TableService
func NewTableService(
	tableRepo restaurant.TableRepository,
	zoneRepo restaurant.ZoneRepository,
	logger *zap.Logger,
) *TableService {
	return &TableService{tableRepo: tableRepo, zoneRepo: zoneRepo, logger: logger}
}

// Create adds a table to a zone
func (s *TableService) Create(ctx context.Context, req CreateTableRequest) (*TableResponse, error) {
	zone, err := s.zoneRepo.FindByID(ctx, req.ZoneID)
	if err != nil {
		return nil, err
	}
	if !zone.Active {
		return nil, shared.NewDomainError("ZONE_INACTIVE", "Cannot add tables to an inactive zone")
	}

	exists, err := s.tableRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	table, err := restaurant.NewTable(req.Code, zone.ID, req.Capacity)
	if err != nil {
		return nil, err
	}

	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	s.logger.Info("table created", zap.String("code", table.Code), zap.String("zone", zone.Code))

	response := ToTableResponse(table)
	return &response, nil
}

// GetByID retrieves a table by its ID
func (s *TableService) GetByID(ctx context.Context, id uuid.UUID) (*TableResponse, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTableResponse(table)
	return &response, nil
}

// List retrieves all tables
func (s *TableService) List(ctx context.Context) ([]TableResponse, error) {
	tables, err := s.tableRepo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 200, OrderBy: "code", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}
	return ToTableResponses(tables), nil
}

// ListByZone retrieves the tables of one zone
func (s *TableService) ListByZone(ctx context.Context, zoneID uuid.UUID) ([]TableResponse, error) {
	tables, err := s.tableRepo.FindByZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	return ToTableResponses(tables), nil
}

// ListByStatus retrieves tables in a given floor status
func (s *TableService) ListByStatus(ctx context.Context, status string) ([]TableResponse, error) {
	tables, err := s.tableRepo.FindByStatus(ctx, restaurant.TableStatus(status))
	if err != nil {
		return nil, err
	}
	return ToTableResponses(tables), nil
}

// Update moves or resizes a table
func (s *TableService) Update(ctx context.Context, id uuid.UUID, req UpdateTableRequest) (*TableResponse, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.zoneRepo.FindByID(ctx, req.ZoneID); err != nil {
		return nil, err
	}

	if err := table.Update(req.ZoneID, req.Capacity); err != nil {
		return nil, err
	}

	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	response := ToTableResponse(table)
	return &response, nil
}

// TakeOutOfService removes the table from the floor
func (s *TableService) TakeOutOfService(ctx context.Context, id uuid.UUID) (*TableResponse, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := table.TakeOutOfService(); err != nil {
		return nil, err
	}

	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	response := ToTableResponse(table)
	return &response, nil
}

// ReturnToService makes the table available again
func (s *TableService) ReturnToService(ctx context.Context, id uuid.UUID) (*TableResponse, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := table.ReturnToService(); err != nil {
		return nil, err
	}

	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	response := ToTableResponse(table)
	return &response, nil
}

// Delete removes a table that is not occupied
func (s *TableService) Delete(ctx context.Context, id uuid.UUID) error {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if table.Status == restaurant.TableStatusOccupied {
		return shared.NewDomainError("TABLE_OCCUPIED", "Close the open order before deleting the table")
	}

	return s.tableRepo.Delete(ctx, table.ID)
}
