package identity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/gestion/backend/internal/domain/shared"
)

// Permission codes follow the "<context>:<resource>:<action>" pattern,
// e.g. "billing:invoice:issue" or "inventory:movement:create".
var permissionPattern = regexp.MustCompile(`^[a-z_]+:[a-z_]+:[a-z_]+$`)

// PermissionList is a set of permission codes stored as JSONB
type PermissionList []string

// Value implements driver.Valuer for JSONB storage
func (p PermissionList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB retrieval
func (p *PermissionList) Scan(value interface{}) error {
	if value == nil {
		*p = PermissionList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PermissionList: unsupported type")
	}

	if len(bytes) == 0 {
		*p = PermissionList{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// Contains returns true if the list contains the given permission code
func (p PermissionList) Contains(code string) bool {
	for _, c := range p {
		if c == code {
			return true
		}
	}
	return false
}

// Built-in role codes seeded by migration
const (
	RoleCodeAdmin   = "admin"
	RoleCodeCashier = "cashier"
	RoleCodeWaiter  = "waiter"
)

// Role represents a named set of permissions
// It is the aggregate root for role-related operations
type Role struct {
	shared.AuditedAggregateRoot
	Code        string
	Name        string
	Description string
	Permissions PermissionList
	IsSystem    bool // System roles cannot be modified or deleted
}

// NewRole creates a new custom role
func NewRole(code, name string) (*Role, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_ROLE_CODE", "Role code must be 1-50 characters")
	}
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_ROLE_NAME", "Role name must be 1-100 characters")
	}

	role := &Role{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 name,
		Permissions:          PermissionList{},
	}

	role.AddDomainEvent(NewRoleCreatedEvent(role))

	return role, nil
}

// Update updates the role's name and description
func (r *Role) Update(name, description string) error {
	if r.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be modified")
	}
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name must be 1-100 characters")
	}

	r.Name = name
	r.Description = description
	r.Touch()
	r.IncrementVersion()

	return nil
}

// GrantPermission adds a permission code to the role
func (r *Role) GrantPermission(code string) error {
	if r.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be modified")
	}
	if !permissionPattern.MatchString(code) {
		return shared.NewDomainError("INVALID_PERMISSION", "Permission code must be in 'context:resource:action' format")
	}
	if r.Permissions.Contains(code) {
		return nil
	}

	r.Permissions = append(r.Permissions, code)
	r.Touch()
	r.IncrementVersion()

	r.AddDomainEvent(NewRolePermissionsChangedEvent(r))

	return nil
}

// RevokePermission removes a permission code from the role
func (r *Role) RevokePermission(code string) error {
	if r.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be modified")
	}
	for i, c := range r.Permissions {
		if c == code {
			r.Permissions = append(r.Permissions[:i], r.Permissions[i+1:]...)
			r.Touch()
			r.IncrementVersion()
			r.AddDomainEvent(NewRolePermissionsChangedEvent(r))
			return nil
		}
	}
	return shared.NewDomainError("PERMISSION_NOT_GRANTED", "Role does not have this permission")
}

// SetPermissions replaces the whole permission set
func (r *Role) SetPermissions(codes []string) error {
	if r.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be modified")
	}
	perms := make(PermissionList, 0, len(codes))
	for _, code := range codes {
		if !permissionPattern.MatchString(code) {
			return shared.NewDomainError("INVALID_PERMISSION", "Permission code must be in 'context:resource:action' format")
		}
		if !perms.Contains(code) {
			perms = append(perms, code)
		}
	}

	r.Permissions = perms
	r.Touch()
	r.IncrementVersion()

	r.AddDomainEvent(NewRolePermissionsChangedEvent(r))

	return nil
}

// HasPermission returns true if the role grants the given permission
func (r *Role) HasPermission(code string) bool {
	return r.Permissions.Contains(code)
}
