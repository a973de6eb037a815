package restaurant

import (
	"time"

	billingapp "github.com/gestion/backend/internal/application/billing"
	"github.com/gestion/backend/internal/domain/restaurant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateZoneRequest creates a floor zone
type CreateZoneRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// UpdateZoneRequest renames a zone
type UpdateZoneRequest struct {
	Name string `json:"name" binding:"required"`
}

// ZoneResponse is the zone representation
type ZoneResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToZoneResponse converts a domain zone
func ToZoneResponse(z *restaurant.Zone) ZoneResponse {
	return ZoneResponse{
		ID:        z.ID,
		Code:      z.Code,
		Name:      z.Name,
		Active:    z.Active,
		CreatedAt: z.CreatedAt,
		UpdatedAt: z.UpdatedAt,
	}
}

// ToZoneResponses converts a slice of zones
func ToZoneResponses(zones []restaurant.Zone) []ZoneResponse {
	responses := make([]ZoneResponse, 0, len(zones))
	for i := range zones {
		responses = append(responses, ToZoneResponse(&zones[i]))
	}
	return responses
}

// CreateTableRequest adds a table to a zone
type CreateTableRequest struct {
	Code     string    `json:"code" binding:"required"`
	ZoneID   uuid.UUID `json:"zone_id" binding:"required"`
	Capacity int       `json:"capacity" binding:"required"`
}

// UpdateTableRequest moves or resizes a table
type UpdateTableRequest struct {
	ZoneID   uuid.UUID `json:"zone_id" binding:"required"`
	Capacity int       `json:"capacity" binding:"required"`
}

// TableResponse is the table representation
type TableResponse struct {
	ID             uuid.UUID  `json:"id"`
	Code           string     `json:"code"`
	ZoneID         uuid.UUID  `json:"zone_id"`
	Capacity       int        `json:"capacity"`
	Status         string     `json:"status"`
	CurrentOrderID *uuid.UUID `json:"current_order_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToTableResponse converts a domain table
func ToTableResponse(t *restaurant.Table) TableResponse {
	return TableResponse{
		ID:             t.ID,
		Code:           t.Code,
		ZoneID:         t.ZoneID,
		Capacity:       t.Capacity,
		Status:         string(t.Status),
		CurrentOrderID: t.CurrentOrderID,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToTableResponses converts a slice of tables
func ToTableResponses(tables []restaurant.Table) []TableResponse {
	responses := make([]TableResponse, 0, len(tables))
	for i := range tables {
		responses = append(responses, ToTableResponse(&tables[i]))
	}
	return responses
}

// CreateReservationRequest books a table
type CreateReservationRequest struct {
	TableID     uuid.UUID  `json:"table_id" binding:"required"`
	CustomerID  *uuid.UUID `json:"customer_id"`
	GuestName   string     `json:"guest_name" binding:"required"`
	GuestPhone  string     `json:"guest_phone"`
	PartySize   int        `json:"party_size" binding:"required"`
	ReservedFor time.Time  `json:"reserved_for" binding:"required"`
	Notes       string     `json:"notes"`
}

// ReservationListFilter contains filtering options for reservation listing
type ReservationListFilter struct {
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	TableID  *uuid.UUID `form:"table_id"`
	Status   string     `form:"status"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// ReservationResponse is the reservation representation
type ReservationResponse struct {
	ID          uuid.UUID  `json:"id"`
	TableID     uuid.UUID  `json:"table_id"`
	CustomerID  *uuid.UUID `json:"customer_id,omitempty"`
	GuestName   string     `json:"guest_name"`
	GuestPhone  string     `json:"guest_phone,omitempty"`
	PartySize   int        `json:"party_size"`
	ReservedFor time.Time  `json:"reserved_for"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToReservationResponse converts a domain reservation
func ToReservationResponse(r *restaurant.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		TableID:     r.TableID,
		CustomerID:  r.CustomerID,
		GuestName:   r.GuestName,
		GuestPhone:  r.GuestPhone,
		PartySize:   r.PartySize,
		ReservedFor: r.ReservedFor,
		Status:      string(r.Status),
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ToReservationResponses converts a slice of reservations
func ToReservationResponses(reservations []restaurant.Reservation) []ReservationResponse {
	responses := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		responses = append(responses, ToReservationResponse(&reservations[i]))
	}
	return responses
}

// OpenOrderRequest opens an order on a table, or a takeaway order when
// TableID is nil
type OpenOrderRequest struct {
	TableID       *uuid.UUID `json:"table_id"`
	ReservationID *uuid.UUID `json:"reservation_id"`
	Guests        int        `json:"guests"`
	Currency      string     `json:"currency"`
	Notes         string     `json:"notes"`
	WaiterID      uuid.UUID  `json:"-"`
}

// AddOrderItemRequest appends a line to an open order
type AddOrderItemRequest struct {
	ArticleID uuid.UUID       `json:"article_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Notes     string          `json:"notes"`
	ActedBy   uuid.UUID       `json:"-"`
	CanManage bool            `json:"-"`
}

// OrderItemActionRequest identifies the actor for item-level changes
type OrderItemActionRequest struct {
	ActedBy   uuid.UUID `json:"-"`
	CanManage bool      `json:"-"`
}

// CloseOrderRequest bills the order and frees the table
type CloseOrderRequest struct {
	CustomerID    uuid.UUID                 `json:"customer_id" binding:"required"`
	WarehouseID   *uuid.UUID                `json:"warehouse_id"`
	PaymentTermID *uuid.UUID                `json:"payment_term_id"`
	Payments      []billingapp.PaymentInput `json:"payments"`
	ActedBy       uuid.UUID                 `json:"-"`
	CanManage     bool                      `json:"-"`
}

// CancelOrderRequest voids an open order
type CancelOrderRequest struct {
	Reason    string    `json:"reason" binding:"required"`
	ActedBy   uuid.UUID `json:"-"`
	CanManage bool      `json:"-"`
}

// OrderListFilter contains filtering options for order listing
type OrderListFilter struct {
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	TableID  *uuid.UUID `form:"table_id"`
	WaiterID *uuid.UUID `form:"waiter_id"`
	Status   string     `form:"status"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// OrderItemResponse is one order line
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ArticleID uuid.UUID       `json:"article_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Notes     string          `json:"notes,omitempty"`
	Status    string          `json:"status"`
	AddedAt   time.Time       `json:"added_at"`
}

// OrderResponse is the full order representation
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	Number    string              `json:"number"`
	TableID   *uuid.UUID          `json:"table_id,omitempty"`
	WaiterID  uuid.UUID           `json:"waiter_id"`
	Status    string              `json:"status"`
	Guests    int                 `json:"guests"`
	Currency  string              `json:"currency"`
	Items     []OrderItemResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
	OpenedAt  time.Time           `json:"opened_at"`
	ClosedAt  *time.Time          `json:"closed_at,omitempty"`
	InvoiceID *uuid.UUID          `json:"invoice_id,omitempty"`
	Notes     string              `json:"notes,omitempty"`
}

// ToOrderResponse converts a domain order
func ToOrderResponse(o *restaurant.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ArticleID: item.ArticleID,
			Code:      item.Code,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Amount(),
			LineTotal: item.LineTotal().Amount(),
			Notes:     item.Notes,
			Status:    string(item.Status),
			AddedAt:   item.AddedAt,
		})
	}

	return OrderResponse{
		ID:        o.ID,
		Number:    o.Number,
		TableID:   o.TableID,
		WaiterID:  o.WaiterID,
		Status:    string(o.Status),
		Guests:    o.Guests,
		Currency:  string(o.Currency),
		Items:     items,
		Total:     o.Total().Amount(),
		OpenedAt:  o.OpenedAt,
		ClosedAt:  o.ClosedAt,
		InvoiceID: o.InvoiceID,
		Notes:     o.Notes,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []restaurant.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}
