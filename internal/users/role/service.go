// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/silo/internal/platform/constants"
	"github.com/taibuivan/silo/internal/platform/dberr"
	"github.com/taibuivan/silo/internal/platform/validate"
)

// # Service Layer

// Service orchestrates business rules for permission roles.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new role [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Role Management

/*
ListRoles returns every role with its permission map.

Returns:
  - []*Role: All roles ordered by name
  - error: Retrieval failures
*/
func (service *Service) ListRoles(context context.Context) ([]*Role, error) {
	return service.repo.List(context)
}

/*
GetRole retrieves a role by its primary key.

Returns:
  - *Role: Hydrated role entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetRole(context context.Context, id int) (*Role, error) {
	return service.repo.FindByID(context, id)
}

/*
CreateRole validates and persists a new role.

HTTP methods in the permission map are normalized to upper case so the
permission engine can compare them verbatim.

Returns:
  - error: Validation failures, Conflict on a duplicate name
*/
func (service *Service) CreateRole(context context.Context, role *Role) error {
	if err := validateRole(role); err != nil {
		return err
	}

	role.Permissions = normalizeGrants(role.Permissions)

	if err := service.repo.Create(context, role); err != nil {
		return err
	}

	service.logger.Info("role_created",
		slog.Int("role_id", role.ID),
		slog.String("name", role.Name),
	)

	return nil
}

/*
UpdateRole replaces an existing role's name and permission map.

Returns:
  - error: Validation failures, ErrNotFound if missing
*/
func (service *Service) UpdateRole(context context.Context, role *Role) error {
	if err := validateRole(role); err != nil {
		return err
	}

	role.Permissions = normalizeGrants(role.Permissions)

	if err := service.repo.Update(context, role); err != nil {
		return err
	}

	service.logger.Info("role_updated", slog.Int("role_id", role.ID))

	return nil
}

/*
DeleteRole removes a role. User assignments are dropped by cascade.

Returns:
  - error: ErrNotFound if missing
*/
func (service *Service) DeleteRole(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("role_deleted", slog.Int("role_id", id))

	return nil
}

// # Startup Bootstrap

/*
EnsureDefaultRoles creates the "user" and "admin" roles if they do not
exist yet. The operation is idempotent and runs on every startup, so a
fresh database always ends up with the two roles the rest of the system
assumes.

Returns:
  - error: Persistence failures
*/
func (service *Service) EnsureDefaultRoles(context context.Context) error {
	defaults := []*Role{
		{Name: constants.DefaultRoleName, Permissions: DefaultGrants()},
		{Name: constants.AdminRoleName, Permissions: AdminGrants()},
	}

	for _, role := range defaults {
		_, err := service.repo.FindByName(context, role.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, dberr.ErrNotFound) {
			return err
		}

		if err := service.repo.Create(context, role); err != nil {
			return err
		}

		service.logger.Info("role_bootstrapped",
			slog.Int("role_id", role.ID),
			slog.String("name", role.Name),
		)
	}

	return nil
}

// # Helpers

// validateRole runs the boundary validation shared by create and update.
func validateRole(role *Role) error {
	validator := &validate.Validator{}
	validator.Required("name", role.Name).MaxLen("name", role.Name, 100)
	validator.Custom("permissions", role.Permissions == nil, "This field is required")

	for _, methods := range role.Permissions {
		for _, method := range methods {
			validator.OneOf("permissions", strings.ToUpper(method),
				"GET", "POST", "PUT", "PATCH", "DELETE")
		}
	}

	return validator.Err()
}

// normalizeGrants upper-cases every HTTP method in the permission map.
func normalizeGrants(grants map[string][]string) map[string][]string {
	normalized := make(map[string][]string, len(grants))
	for pattern, methods := range grants {
		upper := make([]string, len(methods))
		for i, method := range methods {
			upper[i] = strings.ToUpper(method)
		}
		normalized[pattern] = upper
	}
	return normalized
}
