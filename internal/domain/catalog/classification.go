package catalog

import (
	"strings"

	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Classification groups articles into a hierarchy (e.g. Bebidas > Refrescos)
type Classification struct {
	shared.AuditedAggregateRoot
	Code     string
	Name     string
	ParentID *uuid.UUID
}

// NewClassification creates a new classification node
func NewClassification(code, name string, parentID *uuid.UUID) (*Classification, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 30 {
		return nil, shared.NewDomainError("INVALID_CLASSIFICATION_CODE", "Classification code must be 1-30 characters")
	}
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_CLASSIFICATION_NAME", "Classification name must be 1-100 characters")
	}

	return &Classification{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 strings.TrimSpace(name),
		ParentID:             parentID,
	}, nil
}

// Update updates the classification's name
func (c *Classification) Update(name string) error {
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_CLASSIFICATION_NAME", "Classification name must be 1-100 characters")
	}

	c.Name = strings.TrimSpace(name)
	c.Touch()
	c.IncrementVersion()

	return nil
}

// SetParent moves the classification under a new parent
func (c *Classification) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Classification cannot be its own parent")
	}

	c.ParentID = parentID
	c.Touch()
	c.IncrementVersion()

	return nil
}
