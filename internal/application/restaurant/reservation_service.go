package restaurant

import (
	"context"
	"time"

	"github.com/gestion/backend/internal/domain/restaurant"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reservationWindow is how long a reservation blocks its table around
// the reserved time. Two reservations closer than this conflict.
const reservationWindow = 2 * time.Hour

// ReservationService manages table reservations
type ReservationService struct {
	reservationRepo restaurant.ReservationRepository
	tableRepo       restaurant.TableRepository
	eventBus        shared.EventPublisher
	logger          *zap.Logger
}

// NewReservationService creates a new ReservationService
func NewReservationService(
	reservationRepo restaurant.ReservationRepository,
	tableRepo restaurant.TableRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		eventBus:        eventBus,
		logger:          logger,
	}
}

// Create books a table. The table must fit the party and have no other
// open reservation inside the conflict window.
func (s *ReservationService) Create(ctx context.Context, req CreateReservationRequest) (*ReservationResponse, error) {
	table, err := s.tableRepo.FindByID(ctx, req.TableID)
	if err != nil {
		return nil, err
	}
	if table.Status == restaurant.TableStatusOutOfService {
		return nil, shared.NewDomainError("TABLE_OUT_OF_SERVICE", "Table is out of service")
	}
	if req.PartySize > table.Capacity {
		return nil, shared.NewDomainError("PARTY_TOO_LARGE", "Party size exceeds the table capacity")
	}

	conflicting, err := s.reservationRepo.FindOpenByTable(ctx, table.ID, req.ReservedFor, reservationWindow)
	if err != nil {
		return nil, err
	}
	if len(conflicting) > 0 {
		return nil, shared.NewDomainError("TABLE_ALREADY_RESERVED", "Table has another reservation at that time")
	}

	reservation, err := restaurant.NewReservation(table.ID, req.GuestName, req.GuestPhone, req.PartySize, req.ReservedFor)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != nil {
		reservation.LinkCustomer(*req.CustomerID)
	}
	if req.Notes != "" {
		reservation.Notes = req.Notes
	}

	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		return nil, err
	}

	s.logger.Info("reservation created",
		zap.String("table", table.Code),
		zap.String("guest", reservation.GuestName),
		zap.Time("reserved_for", reservation.ReservedFor))

	response := ToReservationResponse(reservation)
	return &response, nil
}

// GetByID retrieves a reservation
func (s *ReservationService) GetByID(ctx context.Context, id uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToReservationResponse(reservation)
	return &response, nil
}

// List retrieves reservations with filtering and pagination
func (s *ReservationService) List(ctx context.Context, filter ReservationListFilter) ([]ReservationResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := restaurant.ReservationFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "reserved_for",
			OrderDir: "asc",
		},
		TableID: filter.TableID,
		From:    filter.From,
		To:      filter.To,
	}
	if filter.Status != "" {
		status := restaurant.ReservationStatus(filter.Status)
		domainFilter.Status = &status
	}

	reservations, err := s.reservationRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reservationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToReservationResponses(reservations), total, nil
}

// Confirm confirms a pending reservation and holds the table if it is
// free right now
func (s *ReservationService) Confirm(ctx context.Context, id uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := reservation.Confirm(); err != nil {
		return nil, err
	}

	table, err := s.tableRepo.FindByID(ctx, reservation.TableID)
	if err != nil {
		return nil, err
	}
	if table.Status == restaurant.TableStatusAvailable && time.Until(reservation.ReservedFor) <= reservationWindow {
		if err := table.Hold(); err != nil {
			return nil, err
		}
		if err := s.tableRepo.Save(ctx, table); err != nil {
			return nil, err
		}
	}

	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, reservation.GetDomainEvents())
	reservation.ClearDomainEvents()

	response := ToReservationResponse(reservation)
	return &response, nil
}

// Cancel voids a reservation and releases the held table
func (s *ReservationService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*ReservationResponse, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := reservation.Cancel(reason); err != nil {
		return nil, err
	}

	if err := s.releaseHold(ctx, reservation.TableID); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		return nil, err
	}

	response := ToReservationResponse(reservation)
	return &response, nil
}

// MarkNoShow closes a reservation whose party never arrived
func (s *ReservationService) MarkNoShow(ctx context.Context, id uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := reservation.MarkNoShow(); err != nil {
		return nil, err
	}

	if err := s.releaseHold(ctx, reservation.TableID); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		return nil, err
	}

	s.logger.Info("reservation marked no-show",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("guest", reservation.GuestName))

	response := ToReservationResponse(reservation)
	return &response, nil
}

// releaseHold frees a table that was held for the reservation
func (s *ReservationService) releaseHold(ctx context.Context, tableID uuid.UUID) error {
	table, err := s.tableRepo.FindByID(ctx, tableID)
	if err != nil {
		return err
	}
	if table.Status != restaurant.TableStatusReserved {
		return nil
	}
	if err := table.Free(); err != nil {
		return err
	}
	return s.tableRepo.Save(ctx, table)
}

func (s *ReservationService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}
