// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/taibuivan/silo/internal/auth"
	"github.com/taibuivan/silo/internal/platform/apperr"
	"github.com/taibuivan/silo/internal/platform/constants"
	"github.com/taibuivan/silo/internal/platform/dberr"
	"github.com/taibuivan/silo/internal/platform/sec"
	"github.com/taibuivan/silo/internal/platform/validate"
	"github.com/taibuivan/silo/internal/users/role"
)

// # Service Layer

// Service orchestrates account management. It also serves two seams for the
// rest of the system: [auth.AccountProvider] for the login flow and the
// principal resolver used by the authentication middleware.
type Service struct {
	users  Repository
	roles  role.Repository
	logger *slog.Logger
}

// NewService constructs a new user [Service].
func NewService(users Repository, roles role.Repository, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		roles:  roles,
		logger: logger,
	}
}

// # Login Integration

/*
ProvisionDirectoryAccount returns the local account for a directory login,
creating it on first sight.

Description: New accounts start active with the default "user" role, so a
fresh directory user can immediately read their own profile and nothing
else. Existing accounts are returned as-is; profile drift against the
directory is not reconciled here.

Returns:
  - *auth.Account: The local account backing the login
  - error: Persistence failures
*/
func (service *Service) ProvisionDirectoryAccount(context context.Context, username, email, fullName string) (*auth.Account, error) {
	existing, err := service.users.FindByUsername(context, username)
	if err == nil {
		return &auth.Account{
			ID:       existing.ID,
			Username: existing.Username,
			IsActive: existing.IsActive,
		}, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	created := &User{
		Username: username,
		Email:    email,
		FullName: fullName,
		IsActive: true,
	}
	if err := service.users.Create(context, created); err != nil {
		return nil, err
	}

	defaultRole, err := service.roles.FindByName(context, constants.DefaultRoleName)
	if err != nil {
		return nil, fmt.Errorf("default role missing: %w", err)
	}
	if err := service.users.AssignRole(context, created.ID, defaultRole.ID); err != nil {
		return nil, err
	}

	service.logger.Info("user_provisioned",
		slog.Int("user_id", created.ID),
		slog.String("username", created.Username),
	)

	return &auth.Account{
		ID:       created.ID,
		Username: created.Username,
		IsActive: created.IsActive,
	}, nil
}

/*
ResolvePrincipal loads the request principal for a verified token subject.

Description: The subject is the stringified user ID minted at login. A
malformed subject, a deleted account, and a deactivated account all fail
the same way; the middleware maps every failure to the same 401 so the
three cases are indistinguishable to a client.

Returns:
  - *sec.Principal: User ID, username, and the grants of all assigned roles
  - error: Any resolution failure
*/
func (service *Service) ResolvePrincipal(context context.Context, subject string) (*sec.Principal, error) {
	id, err := strconv.Atoi(subject)
	if err != nil {
		return nil, fmt.Errorf("malformed subject %q", subject)
	}

	account, err := service.users.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("user %d is inactive", id)
	}

	grants := make([]sec.PermissionMap, len(account.Roles))
	for i, assigned := range account.Roles {
		grants[i] = assigned.Permissions
	}

	return &sec.Principal{
		UserID:   account.ID,
		Username: account.Username,
		Grants:   grants,
	}, nil
}

// # Startup Bootstrap

/*
EnsureFirstAdmin guarantees at least one administrator exists.

Description: When no account holds the "admin" role, the named account is
created (or looked up) and granted it. With administrators already present
the username may be empty and nothing happens; without any, an empty
username is a deployment fault because the instance would be permanently
unmanageable.

Returns:
  - error: Missing username on a pristine database, persistence failures
*/
func (service *Service) EnsureFirstAdmin(context context.Context, username string) error {
	admins, err := service.users.CountWithRole(context, constants.AdminRoleName)
	if err != nil {
		return err
	}
	if admins > 0 {
		return nil
	}

	if username == "" {
		return errors.New("no administrator exists and no first admin user is configured")
	}

	account, err := service.users.FindByUsername(context, username)
	if errors.Is(err, dberr.ErrNotFound) {
		account = &User{Username: username, IsActive: true}
		if err := service.users.Create(context, account); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	adminRole, err := service.roles.FindByName(context, constants.AdminRoleName)
	if err != nil {
		return fmt.Errorf("admin role missing: %w", err)
	}
	if err := service.users.AssignRole(context, account.ID, adminRole.ID); err != nil {
		return err
	}

	service.logger.Info("first_admin_bootstrapped",
		slog.Int("user_id", account.ID),
		slog.String("username", account.Username),
	)

	return nil
}

// # Account Management

/*
ListUsers returns every account with its roles.

Returns:
  - []*User: All accounts ordered by username
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context) ([]*User, error) {
	return service.users.List(context)
}

/*
GetUser retrieves an account by its primary key.

Returns:
  - *User: Hydrated account entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetUser(context context.Context, id int) (*User, error) {
	return service.users.FindByID(context, id)
}

/*
CreateUser validates and persists a manually administered account.

Returns:
  - error: Validation failures, Conflict on a duplicate username
*/
func (service *Service) CreateUser(context context.Context, user *User) error {
	validator := &validate.Validator{}
	validator.Required("username", user.Username).MaxLen("username", user.Username, 150)
	if user.Email != "" {
		validator.Email("email", user.Email)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.users.Create(context, user); err != nil {
		return err
	}

	service.logger.Info("user_created",
		slog.Int("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return nil
}

/*
UpdateUser replaces an account's mutable profile fields.

The username is immutable: it is the link to the directory identity.

Returns:
  - error: Validation failures, ErrNotFound if missing
*/
func (service *Service) UpdateUser(context context.Context, user *User) error {
	validator := &validate.Validator{}
	if user.Email != "" {
		validator.Email("email", user.Email)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.users.Update(context, user); err != nil {
		return err
	}

	service.logger.Info("user_updated", slog.Int("user_id", user.ID))

	return nil
}

/*
DeleteUser removes an account. Role assignments, comments, and documents
referencing it are handled by the schema's cascade rules.

Returns:
  - error: ErrNotFound if missing
*/
func (service *Service) DeleteUser(context context.Context, id int) error {
	if err := service.users.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("user_deleted", slog.Int("user_id", id))

	return nil
}

/*
AssignRole grants a role to an account.

Both sides are verified first so the client gets a precise 404 instead of
a generic constraint violation.

Returns:
  - error: NotFound for either side, Conflict on a duplicate assignment
*/
func (service *Service) AssignRole(context context.Context, userID, roleID int) error {
	account, err := service.users.FindByID(context, userID)
	if err != nil {
		return apperr.NotFound("User")
	}

	assigned, err := service.roles.FindByID(context, roleID)
	if err != nil {
		return apperr.NotFound("Role")
	}

	if account.HasRole(assigned.Name) {
		return apperr.Conflict("User already has this role")
	}

	if err := service.users.AssignRole(context, userID, roleID); err != nil {
		return err
	}

	service.logger.Info("role_assigned",
		slog.Int("user_id", userID),
		slog.Int("role_id", roleID),
	)

	return nil
}
