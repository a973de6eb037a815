// Package identity implements authentication and account management on
// top of the identity domain.
package identity

import (
	"context"
	"errors"

	"github.com/gestion/backend/internal/domain/identity"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles login, token refresh and logout
type AuthService struct {
	userRepo   identity.UserRepository
	roleRepo   identity.RoleRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	eventBus   shared.EventPublisher
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("login attempt for unknown username", zap.String("username", input.Username))
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
		}
		return nil, err
	}

	if err := user.CanLogin(); err != nil {
		s.logger.Warn("login rejected",
			zap.String("username", user.Username),
			zap.String("status", string(user.Status)),
		)
		return nil, err
	}

	if !user.CheckPassword(input.Password) {
		user.RecordFailedLogin()
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Error("failed to record login failure", zap.Error(err))
		}
		s.publishEvents(ctx, user.GetDomainEvents())
		user.ClearDomainEvents()

		s.logger.Warn("invalid password",
			zap.String("username", user.Username),
			zap.Int("failed_attempts", user.FailedAttempts),
		)
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	roleCodes, permissions, err := s.resolveRoles(ctx, user)
	if err != nil {
		return nil, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      user.ID,
		Username:    user.Username,
		RoleCodes:   roleCodes,
		Permissions: permissions,
	})
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin(input.IP)
	if err := s.userRepo.Save(ctx, user); err != nil {
		// The user is authenticated; a failed audit update must not
		// block the login
		s.logger.Error("failed to record successful login", zap.Error(err))
	}

	s.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()),
	)

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  s.toUserInfo(user, roleCodes, permissions),
	}, nil
}

// RefreshToken exchanges a refresh token for a new pair. Roles and
// permissions are resolved again so revocations take effect.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("blacklist check failed", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate token")
		}
		if revoked {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
		}

		invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			s.logger.Error("blacklist check failed", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate token")
		}
		if invalidated {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Session has been terminated")
		}
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}
	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	roleCodes, permissions, err := s.resolveRoles(ctx, user)
	if err != nil {
		return nil, err
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, roleCodes, permissions)
	if err != nil {
		return nil, mapTokenError(err)
	}

	// The old refresh token is spent; revoke it for its remaining life
	if s.blacklist != nil {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Error("failed to revoke spent refresh token", zap.Error(err))
		}
	}

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the current token, or every session of the user when
// AllSessions is set
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil {
		return nil
	}

	if input.AllSessions {
		ttl := s.jwtService.GetRefreshTokenExpiration()
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, input.UserID.String(), ttl); err != nil {
			s.logger.Error("failed to terminate all sessions", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to terminate sessions")
		}
		s.logger.Info("all sessions terminated", zap.String("user_id", input.UserID.String()))
		return nil
	}

	if input.JTI != "" {
		if err := s.blacklist.AddToBlacklist(ctx, input.JTI, input.TokenTTL); err != nil {
			s.logger.Error("failed to revoke token", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
		}
	}

	s.logger.Info("user logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetCurrentUser returns the authenticated user's profile with resolved
// roles and permissions
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*UserInfo, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	roleCodes, permissions, err := s.resolveRoles(ctx, user)
	if err != nil {
		return nil, err
	}

	info := s.toUserInfo(user, roleCodes, permissions)
	return &info, nil
}

// ChangePassword changes the user's own password and terminates other
// sessions
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(input.CurrentPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.publishEvents(ctx, user.GetDomainEvents())
	user.ClearDomainEvents()

	// Old tokens were issued against the old password
	if s.blacklist != nil {
		ttl := s.jwtService.GetRefreshTokenExpiration()
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), ttl); err != nil {
			s.logger.Error("failed to invalidate sessions after password change", zap.Error(err))
		}
	}

	s.logger.Info("password changed", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *AuthService) findUser(ctx context.Context, userID string) (*identity.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid user ID")
	}
	return s.userRepo.FindByID(ctx, id)
}

// resolveRoles returns the role codes and the union of permissions
// granted by the user's roles
func (s *AuthService) resolveRoles(ctx context.Context, user *identity.User) ([]string, []string, error) {
	if len(user.RoleIDs) == 0 {
		return []string{}, []string{}, nil
	}

	roles, err := s.roleRepo.FindByIDs(ctx, user.RoleIDs)
	if err != nil {
		s.logger.Error("failed to load roles", zap.Error(err))
		return nil, nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load user roles")
	}

	roleCodes := make([]string, 0, len(roles))
	permSet := make(map[string]struct{})
	for i := range roles {
		roleCodes = append(roleCodes, roles[i].Code)
		for _, perm := range roles[i].Permissions {
			permSet[perm] = struct{}{}
		}
	}

	permissions := make([]string, 0, len(permSet))
	for perm := range permSet {
		permissions = append(permissions, perm)
	}

	return roleCodes, permissions, nil
}

func (s *AuthService) toUserInfo(user *identity.User, roleCodes, permissions []string) UserInfo {
	return UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Status:      string(user.Status),
		RoleCodes:   roleCodes,
		Permissions: permissions,
		LastLoginAt: user.LastLoginAt,
	}
}

func (s *AuthService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrInvalidTokenType), errors.Is(err, auth.ErrMissingUserID):
		return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate token")
	}
}
