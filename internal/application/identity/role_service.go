package identity

import (
	"context"

	"github.com/gestion/backend/internal/domain/identity"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoleService handles role administration
type RoleService struct {
	roleRepo identity.RoleRepository
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewRoleService creates a new RoleService
func NewRoleService(roleRepo identity.RoleRepository, userRepo identity.UserRepository, logger *zap.Logger) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates a new custom role
func (s *RoleService) Create(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	exists, err := s.roleRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Role with this code already exists")
	}

	role, err := identity.NewRole(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := role.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if len(req.Permissions) > 0 {
		if err := role.SetPermissions(req.Permissions); err != nil {
			return nil, err
		}
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("role created", zap.String("code", role.Code))

	response := ToRoleResponse(role)
	return &response, nil
}

// GetByID retrieves a role with its user count
func (s *RoleService) GetByID(ctx context.Context, roleID uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	response := ToRoleResponse(role)
	if count, err := s.userRepo.CountByRole(ctx, roleID); err == nil {
		response.UserCount = count
	}
	return &response, nil
}

// List retrieves roles with filtering and pagination
func (s *RoleService) List(ctx context.Context, filter RoleListFilter) ([]RoleResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "code",
		OrderDir: "asc",
		Search:   filter.Search,
	}

	roles, err := s.roleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.roleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToRoleResponses(roles), total, nil
}

// Update updates a role's name and description
func (s *RoleService) Update(ctx context.Context, roleID uuid.UUID, req UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	name := role.Name
	description := role.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := role.Update(name, description); err != nil {
		return nil, err
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	response := ToRoleResponse(role)
	return &response, nil
}

// SetPermissions replaces the role's permission set
func (s *RoleService) SetPermissions(ctx context.Context, roleID uuid.UUID, req SetPermissionsRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if err := role.SetPermissions(req.Permissions); err != nil {
		return nil, err
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("role permissions updated",
		zap.String("code", role.Code),
		zap.Int("permission_count", len(role.Permissions)),
	)

	response := ToRoleResponse(role)
	return &response, nil
}

// Delete removes a custom role that is no longer assigned
func (s *RoleService) Delete(ctx context.Context, roleID uuid.UUID) error {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be deleted")
	}

	count, err := s.userRepo.CountByRole(ctx, roleID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("ROLE_IN_USE", "Role is still assigned to users")
	}

	return s.roleRepo.Delete(ctx, roleID)
}
