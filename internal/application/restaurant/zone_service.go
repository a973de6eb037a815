package restaurant

import (
	"context"

	"github.com/gestion/backend/internal/domain/restaurant"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ZoneService manages floor zones
type ZoneService struct {
	zoneRepo restaurant.ZoneRepository
	logger   *zap.Logger
}

// NewZoneService creates a new ZoneService
func NewZoneService(zoneRepo restaurant.ZoneRepository, logger *zap.Logger) *ZoneService {
	return &ZoneService{zoneRepo: zoneRepo, logger: logger}
}

// Create creates a new zone
func (s *ZoneService) Create(ctx context.Context, req CreateZoneRequest) (*ZoneResponse, error) {
	exists, err := s.zoneRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	zone, err := restaurant.NewZone(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.zoneRepo.Save(ctx, zone); err != nil {
		return nil, err
	}

	s.logger.Info("zone created", zap.String("code", zone.Code))

	response := ToZoneResponse(zone)
	return &response, nil
}

// GetByID retrieves a zone by its ID
func (s *ZoneService) GetByID(ctx context.Context, id uuid.UUID) (*ZoneResponse, error) {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToZoneResponse(zone)
	return &response, nil
}

// List retrieves all zones
func (s *ZoneService) List(ctx context.Context) ([]ZoneResponse, error) {
	zones, err := s.zoneRepo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 100, OrderBy: "code", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}
	return ToZoneResponses(zones), nil
}

// Update renames a zone
func (s *ZoneService) Update(ctx context.Context, id uuid.UUID, req UpdateZoneRequest) (*ZoneResponse, error) {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := zone.Update(req.Name); err != nil {
		return nil, err
	}

	if err := s.zoneRepo.Save(ctx, zone); err != nil {
		return nil, err
	}

	response := ToZoneResponse(zone)
	return &response, nil
}

// Activate puts the zone back in service
func (s *ZoneService) Activate(ctx context.Context, id uuid.UUID) error {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	zone.Activate()
	return s.zoneRepo.Save(ctx, zone)
}

// Deactivate takes the zone out of service
func (s *ZoneService) Deactivate(ctx context.Context, id uuid.UUID) error {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	zone.Deactivate()
	return s.zoneRepo.Save(ctx, zone)
}

// Delete removes a zone that has no tables
func (s *ZoneService) Delete(ctx context.Context, id uuid.UUID) error {
	zone, err := s.zoneRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	tables, err := s.zoneRepo.CountTables(ctx, zone.ID)
	if err != nil {
		return err
	}
	if tables > 0 {
		return shared.NewDomainError("ZONE_HAS_TABLES", "Move or delete the zone's tables first")
	}

	return s.zoneRepo.Delete(ctx, zone.ID)
}
