package inventory

import (
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem tracks the on-hand quantity and average cost of one article
// in one warehouse. It is the aggregate the kardex postings mutate, and
// its Version column is the optimistic lock that serializes concurrent
// movements against the same article/warehouse pair.
type StockItem struct {
	shared.BaseAggregateRoot
	ArticleID   uuid.UUID
	WarehouseID uuid.UUID
	OnHand      decimal.Decimal
	Reserved    decimal.Decimal // Committed to open restaurant orders
	AverageCost valueobject.Money
}

// NewStockItem creates an empty stock record for an article/warehouse pair
func NewStockItem(articleID, warehouseID uuid.UUID) (*StockItem, error) {
	if articleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ARTICLE", "Article ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ArticleID:         articleID,
		WarehouseID:       warehouseID,
		OnHand:            decimal.Zero,
		Reserved:          decimal.Zero,
		AverageCost:       valueobject.Zero(valueobject.DefaultCurrency),
	}, nil
}

// Available returns the quantity free for sale
func (s *StockItem) Available() decimal.Decimal {
	return s.OnHand.Sub(s.Reserved)
}

// Receive increases on-hand stock and recalculates the weighted average cost
func (s *StockItem) Receive(quantity decimal.Decimal, unitCost valueobject.Money) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Receipt quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	// Weighted average: (onHand*avgCost + qty*unitCost) / (onHand + qty)
	newOnHand := s.OnHand.Add(quantity)
	if unitCost.Currency() == s.AverageCost.Currency() && newOnHand.IsPositive() {
		currentValue := s.AverageCost.Multiply(s.OnHand)
		incomingValue := unitCost.Multiply(quantity)
		totalValue, err := currentValue.Add(incomingValue)
		if err != nil {
			return err
		}
		s.AverageCost = totalValue.Multiply(decimal.NewFromInt(1).Div(newOnHand)).Round(4)
	}

	s.OnHand = newOnHand
	s.Touch()
	s.IncrementVersion()

	return nil
}

// Issue decreases on-hand stock. Stock can never go negative.
func (s *StockItem) Issue(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Issue quantity must be positive")
	}
	if quantity.GreaterThan(s.Available()) {
		return shared.ErrInsufficientStock
	}

	s.OnHand = s.OnHand.Sub(quantity)
	s.Touch()
	s.IncrementVersion()

	return nil
}

// AdjustTo sets the on-hand quantity to a counted value (physical inventory)
// and returns the signed difference the kardex entry must record
func (s *StockItem) AdjustTo(counted decimal.Decimal) (decimal.Decimal, error) {
	if counted.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Counted quantity cannot be negative")
	}
	if counted.LessThan(s.Reserved) {
		return decimal.Zero, shared.NewDomainError("RESERVED_EXCEEDS_COUNT", "Counted quantity is below the reserved amount")
	}

	diff := counted.Sub(s.OnHand)
	s.OnHand = counted
	s.Touch()
	s.IncrementVersion()

	return diff, nil
}

// Reserve commits part of the available stock to an open order
func (s *StockItem) Reserve(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Reservation quantity must be positive")
	}
	if quantity.GreaterThan(s.Available()) {
		return shared.ErrInsufficientStock
	}

	s.Reserved = s.Reserved.Add(quantity)
	s.Touch()
	s.IncrementVersion()

	return nil
}

// Release frees a previous reservation
func (s *StockItem) Release(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}
	if quantity.GreaterThan(s.Reserved) {
		return shared.NewDomainError("RELEASE_EXCEEDS_RESERVED", "Cannot release more than is reserved")
	}

	s.Reserved = s.Reserved.Sub(quantity)
	s.Touch()
	s.IncrementVersion()

	return nil
}

// IsBelowMinimum returns true if available stock fell under the threshold
func (s *StockItem) IsBelowMinimum(minStock decimal.Decimal) bool {
	return minStock.IsPositive() && s.Available().LessThan(minStock)
}
