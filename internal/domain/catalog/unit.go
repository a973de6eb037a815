package catalog

import (
	"strings"

	"github.com/gestion/backend/internal/domain/shared"
)

// Unit represents a unit of measure (e.g. UND, KG, LT)
type Unit struct {
	shared.AuditedAggregateRoot
	Code   string // Unique short code
	Name   string
	Symbol string
}

// NewUnit creates a new unit of measure
func NewUnit(code, name, symbol string) (*Unit, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 10 {
		return nil, shared.NewDomainError("INVALID_UNIT_CODE", "Unit code must be 1-10 characters")
	}
	if name == "" || len(name) > 50 {
		return nil, shared.NewDomainError("INVALID_UNIT_NAME", "Unit name must be 1-50 characters")
	}

	return &Unit{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 strings.TrimSpace(name),
		Symbol:               strings.TrimSpace(symbol),
	}, nil
}

// Update updates the unit's name and symbol
func (u *Unit) Update(name, symbol string) error {
	if name == "" || len(name) > 50 {
		return shared.NewDomainError("INVALID_UNIT_NAME", "Unit name must be 1-50 characters")
	}

	u.Name = strings.TrimSpace(name)
	u.Symbol = strings.TrimSpace(symbol)
	u.Touch()
	u.IncrementVersion()

	return nil
}
