package inventory

import (
	"time"

	"github.com/gestion/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest creates a new warehouse
type CreateWarehouseRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Default bool   `json:"default"`
}

// UpdateWarehouseRequest updates mutable warehouse fields
type UpdateWarehouseRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// WarehouseResponse is the full warehouse representation
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	Default   bool      `json:"default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToWarehouseResponse converts a domain warehouse to its response form
func ToWarehouseResponse(w *inventory.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		Active:    w.Active,
		Default:   w.Default,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ToWarehouseResponses converts a slice of warehouses
func ToWarehouseResponses(warehouses []inventory.Warehouse) []WarehouseResponse {
	responses := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		responses = append(responses, ToWarehouseResponse(&warehouses[i]))
	}
	return responses
}

// EntryRequest posts a stock receipt (purchase, production)
type EntryRequest struct {
	ArticleID     uuid.UUID       `json:"article_id" binding:"required"`
	WarehouseID   *uuid.UUID      `json:"warehouse_id"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost      decimal.Decimal `json:"unit_cost" binding:"required"`
	Reference     string          `json:"reference"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   *uuid.UUID      `json:"reference_id"`
	Notes         string          `json:"notes"`
	PostedBy      *uuid.UUID      `json:"-"`
}

// ExitRequest posts a stock issue (sale, consumption). Quantity is given
// positive; the kardex line is stored negative.
type ExitRequest struct {
	ArticleID     uuid.UUID       `json:"article_id" binding:"required"`
	WarehouseID   *uuid.UUID      `json:"warehouse_id"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Reference     string          `json:"reference"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   *uuid.UUID      `json:"reference_id"`
	Notes         string          `json:"notes"`
	PostedBy      *uuid.UUID      `json:"-"`
}

// AdjustmentRequest corrects on-hand stock to a physically counted value
type AdjustmentRequest struct {
	ArticleID   uuid.UUID       `json:"article_id" binding:"required"`
	WarehouseID *uuid.UUID      `json:"warehouse_id"`
	Counted     decimal.Decimal `json:"counted" binding:"required"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	PostedBy    *uuid.UUID      `json:"-"`
}

// TransferRequest moves stock between two warehouses
type TransferRequest struct {
	ArticleID       uuid.UUID       `json:"article_id" binding:"required"`
	FromWarehouseID uuid.UUID       `json:"from_warehouse_id" binding:"required"`
	ToWarehouseID   uuid.UUID       `json:"to_warehouse_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	Reference       string          `json:"reference"`
	Notes           string          `json:"notes"`
	PostedBy        *uuid.UUID      `json:"-"`
}

// MovementResponse is one kardex line
type MovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	ArticleID     uuid.UUID       `json:"article_id"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Currency      string          `json:"currency"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Reference     string          `json:"reference,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   *uuid.UUID      `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PostedBy      *uuid.UUID      `json:"posted_by,omitempty"`
	PostedAt      time.Time       `json:"posted_at"`
}

// ToMovementResponse converts a kardex line to its response form
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ArticleID:     m.ArticleID,
		WarehouseID:   m.WarehouseID,
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost.Amount(),
		Currency:      string(m.UnitCost.Currency()),
		BalanceAfter:  m.BalanceAfter,
		Reference:     m.Reference,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		PostedBy:      m.PostedBy,
		PostedAt:      m.PostedAt,
	}
}

// ToMovementResponses converts a slice of kardex lines
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	responses := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		responses = append(responses, ToMovementResponse(&movements[i]))
	}
	return responses
}

// TransferResponse carries the two kardex lines a transfer produces
type TransferResponse struct {
	Out MovementResponse `json:"out"`
	In  MovementResponse `json:"in"`
}

// StockResponse is the stock position of one article in one warehouse
type StockResponse struct {
	ID          uuid.UUID       `json:"id"`
	ArticleID   uuid.UUID       `json:"article_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	OnHand      decimal.Decimal `json:"on_hand"`
	Reserved    decimal.Decimal `json:"reserved"`
	Available   decimal.Decimal `json:"available"`
	AverageCost decimal.Decimal `json:"average_cost"`
	Currency    string          `json:"currency"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToStockResponse converts a stock item to its response form
func ToStockResponse(item *inventory.StockItem) StockResponse {
	return StockResponse{
		ID:          item.ID,
		ArticleID:   item.ArticleID,
		WarehouseID: item.WarehouseID,
		OnHand:      item.OnHand,
		Reserved:    item.Reserved,
		Available:   item.Available(),
		AverageCost: item.AverageCost.Amount(),
		Currency:    string(item.AverageCost.Currency()),
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToStockResponses converts a slice of stock items
func ToStockResponses(items []inventory.StockItem) []StockResponse {
	responses := make([]StockResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToStockResponse(&items[i]))
	}
	return responses
}

// KardexFilter narrows movement history queries
type KardexFilter struct {
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	ArticleID   *uuid.UUID `form:"article_id"`
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	Type        string     `form:"type"`
	From        *time.Time `form:"from" time_format:"2006-01-02"`
	To          *time.Time `form:"to" time_format:"2006-01-02"`
}

// StockListFilter narrows per-warehouse stock listings
type StockListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
}
