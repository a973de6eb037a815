package restaurant

import (
	"strings"
	"time"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReservationStatus represents the lifecycle of a reservation
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusSeated    ReservationStatus = "seated"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusNoShow    ReservationStatus = "no_show"
)

// Reservation books a table for a party at a future time
type Reservation struct {
	shared.AuditedAggregateRoot
	TableID     uuid.UUID
	CustomerID  *uuid.UUID // Optional link to a registered customer
	GuestName   string
	GuestPhone  string
	PartySize   int
	ReservedFor time.Time
	Status      ReservationStatus
	Notes       string
}

// NewReservation creates a pending reservation
func NewReservation(tableID uuid.UUID, guestName, guestPhone string, partySize int, reservedFor time.Time) (*Reservation, error) {
	if tableID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TABLE", "Table ID cannot be empty")
	}
	guestName = strings.TrimSpace(guestName)
	if guestName == "" || len(guestName) > 100 {
		return nil, shared.NewDomainError("INVALID_GUEST_NAME", "Guest name must be 1-100 characters")
	}
	if partySize < 1 || partySize > 50 {
		return nil, shared.NewDomainError("INVALID_PARTY_SIZE", "Party size must be between 1 and 50")
	}
	if reservedFor.Before(time.Now()) {
		return nil, shared.NewDomainError("INVALID_TIME", "Reservation time must be in the future")
	}

	return &Reservation{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		TableID:              tableID,
		GuestName:            guestName,
		GuestPhone:           strings.TrimSpace(guestPhone),
		PartySize:            partySize,
		ReservedFor:          reservedFor,
		Status:               ReservationStatusPending,
	}, nil
}

// LinkCustomer ties the reservation to a registered customer
func (r *Reservation) LinkCustomer(customerID uuid.UUID) {
	r.CustomerID = &customerID
}

// Confirm moves the reservation to confirmed
func (r *Reservation) Confirm() error {
	if r.Status != ReservationStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending reservations can be confirmed")
	}

	r.Status = ReservationStatusConfirmed
	r.Touch()
	r.IncrementVersion()

	r.AddDomainEvent(NewReservationConfirmedEvent(r))

	return nil
}

// Seat marks the party as arrived
func (r *Reservation) Seat() error {
	if r.Status != ReservationStatusConfirmed && r.Status != ReservationStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Reservation cannot be seated from its current state")
	}

	r.Status = ReservationStatusSeated
	r.Touch()
	r.IncrementVersion()

	return nil
}

// Cancel voids the reservation
func (r *Reservation) Cancel(reason string) error {
	switch r.Status {
	case ReservationStatusSeated:
		return shared.NewDomainError("ALREADY_SEATED", "Seated reservations cannot be cancelled")
	case ReservationStatusCancelled, ReservationStatusNoShow:
		return shared.NewDomainError("ALREADY_CLOSED", "Reservation is already closed")
	}

	r.Status = ReservationStatusCancelled
	if reason != "" {
		r.Notes = reason
	}
	r.Touch()
	r.IncrementVersion()

	return nil
}

// MarkNoShow closes the reservation when the party never arrived
func (r *Reservation) MarkNoShow() error {
	if r.Status != ReservationStatusConfirmed && r.Status != ReservationStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only open reservations can be marked no-show")
	}

	r.Status = ReservationStatusNoShow
	r.Touch()
	r.IncrementVersion()

	return nil
}

// IsOpen returns true while the reservation still holds the table
func (r *Reservation) IsOpen() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}
