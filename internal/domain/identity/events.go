package identity

import (
	"github.com/gestion/backend/internal/domain/shared"
)

// Event types for the identity context
const (
	EventTypeUserCreated            = "identity.user.created"
	EventTypeUserPasswordChanged    = "identity.user.password_changed"
	EventTypeUserRolesChanged       = "identity.user.roles_changed"
	EventTypeUserLocked             = "identity.user.locked"
	EventTypeRoleCreated            = "identity.role.created"
	EventTypeRolePermissionsChanged = "identity.role.permissions_changed"
)

// UserCreatedEvent is emitted when a user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(u *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, "User", u.ID),
		Username:        u.Username,
	}
}

// UserPasswordChangedEvent is emitted when a user's password changes
type UserPasswordChangedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewUserPasswordChangedEvent creates a new UserPasswordChangedEvent
func NewUserPasswordChangedEvent(u *User) *UserPasswordChangedEvent {
	return &UserPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserPasswordChanged, "User", u.ID),
		Username:        u.Username,
	}
}

// UserRolesChangedEvent is emitted when a user's role set changes
type UserRolesChangedEvent struct {
	shared.BaseDomainEvent
	Username  string `json:"username"`
	RoleCount int    `json:"role_count"`
}

// NewUserRolesChangedEvent creates a new UserRolesChangedEvent
func NewUserRolesChangedEvent(u *User) *UserRolesChangedEvent {
	return &UserRolesChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRolesChanged, "User", u.ID),
		Username:        u.Username,
		RoleCount:       len(u.RoleIDs),
	}
}

// UserLockedEvent is emitted when an account is locked after failed logins
type UserLockedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewUserLockedEvent creates a new UserLockedEvent
func NewUserLockedEvent(u *User) *UserLockedEvent {
	return &UserLockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserLocked, "User", u.ID),
		Username:        u.Username,
	}
}

// RoleCreatedEvent is emitted when a role is created
type RoleCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewRoleCreatedEvent creates a new RoleCreatedEvent
func NewRoleCreatedEvent(r *Role) *RoleCreatedEvent {
	return &RoleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleCreated, "Role", r.ID),
		Code:            r.Code,
	}
}

// RolePermissionsChangedEvent is emitted when a role's permissions change
type RolePermissionsChangedEvent struct {
	shared.BaseDomainEvent
	Code            string `json:"code"`
	PermissionCount int    `json:"permission_count"`
}

// NewRolePermissionsChangedEvent creates a new RolePermissionsChangedEvent
func NewRolePermissionsChangedEvent(r *Role) *RolePermissionsChangedEvent {
	return &RolePermissionsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRolePermissionsChanged, "Role", r.ID),
		Code:            r.Code,
		PermissionCount: len(r.Permissions),
	}
}
