package inventory

import (
	"strings"

	"github.com/gestion/backend/internal/domain/shared"
)

// Warehouse represents a physical stock location (depósito, barra, cocina)
type Warehouse struct {
	shared.AuditedAggregateRoot
	Code    string
	Name    string
	Address string
	Active  bool
	Default bool // Movements without an explicit warehouse use the default one
}

// NewWarehouse creates a new active warehouse
func NewWarehouse(code, name string) (*Warehouse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE_CODE", "Warehouse code must be 1-20 characters")
	}
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE_NAME", "Warehouse name must be 1-100 characters")
	}

	return &Warehouse{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 strings.TrimSpace(name),
		Active:               true,
	}, nil
}

// Update updates the warehouse's descriptive fields
func (w *Warehouse) Update(name, address string) error {
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_WAREHOUSE_NAME", "Warehouse name must be 1-100 characters")
	}

	w.Name = strings.TrimSpace(name)
	w.Address = address
	w.Touch()
	w.IncrementVersion()

	return nil
}

// MarkDefault flags this warehouse as the default location
func (w *Warehouse) MarkDefault() {
	w.Default = true
	w.Touch()
	w.IncrementVersion()
}

// ClearDefault removes the default flag
func (w *Warehouse) ClearDefault() {
	w.Default = false
	w.Touch()
	w.IncrementVersion()
}

// Deactivate takes the warehouse out of use
func (w *Warehouse) Deactivate() error {
	if !w.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Warehouse is already inactive")
	}

	w.Active = false
	w.Touch()
	w.IncrementVersion()

	return nil
}

// Activate puts the warehouse back in use
func (w *Warehouse) Activate() error {
	if w.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Warehouse is already active")
	}

	w.Active = true
	w.Touch()
	w.IncrementVersion()

	return nil
}
