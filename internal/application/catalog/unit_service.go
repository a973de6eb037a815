package catalog

import (
	"context"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UnitService handles units of measure
type UnitService struct {
	unitRepo catalog.UnitRepository
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo catalog.UnitRepository) *UnitService {
	return &UnitService{unitRepo: unitRepo}
}

// Create creates a unit of measure
func (s *UnitService) Create(ctx context.Context, req CreateUnitRequest) (*UnitResponse, error) {
	exists, err := s.unitRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Unit with this code already exists")
	}

	unit, err := catalog.NewUnit(req.Code, req.Name, req.Symbol)
	if err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	response := ToUnitResponse(unit)
	return &response, nil
}

// GetByCode retrieves a unit by code
func (s *UnitService) GetByCode(ctx context.Context, code string) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToUnitResponse(unit)
	return &response, nil
}

// List retrieves all units
func (s *UnitService) List(ctx context.Context) ([]UnitResponse, error) {
	units, err := s.unitRepo.FindAll(ctx, shared.Filter{OrderBy: "code", OrderDir: "asc", PageSize: 200, Page: 1})
	if err != nil {
		return nil, err
	}
	return ToUnitResponses(units), nil
}

// Update updates a unit
func (s *UnitService) Update(ctx context.Context, unitID uuid.UUID, req UpdateUnitRequest) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	name := unit.Name
	symbol := unit.Symbol
	if req.Name != nil {
		name = *req.Name
	}
	if req.Symbol != nil {
		symbol = *req.Symbol
	}
	if err := unit.Update(name, symbol); err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	response := ToUnitResponse(unit)
	return &response, nil
}

// Delete removes a unit that is not referenced by any article
func (s *UnitService) Delete(ctx context.Context, unitID uuid.UUID) error {
	unit, err := s.unitRepo.FindByID(ctx, unitID)
	if err != nil {
		return err
	}

	count, err := s.unitRepo.CountArticles(ctx, unit.Code)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("UNIT_IN_USE", "Unit is still used by articles")
	}

	return s.unitRepo.Delete(ctx, unitID)
}
