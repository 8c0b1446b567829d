// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/silo/internal/platform/apperr"
	"github.com/taibuivan/silo/internal/platform/dberr"
	"github.com/taibuivan/silo/internal/platform/sec"
	"github.com/taibuivan/silo/internal/users/role"
)

// # Test Doubles

// fakeUserRepo is an in-memory [Repository]. Role assignments are tracked
// as (userID, roleID) pairs against the roles slice.
type fakeUserRepo struct {
	users       map[int]*User
	assignments map[int][]int
	roles       map[int]*role.Role
	nextID      int

	creates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:       make(map[int]*User),
		assignments: make(map[int][]int),
		roles:       make(map[int]*role.Role),
		nextID:      1,
	}
}

func (f *fakeUserRepo) withRoles(user *User) *User {
	hydrated := *user
	hydrated.Roles = nil
	for _, roleID := range f.assignments[user.ID] {
		if assigned, ok := f.roles[roleID]; ok {
			hydrated.Roles = append(hydrated.Roles, *assigned)
		}
	}
	return &hydrated
}

func (f *fakeUserRepo) List(context.Context) ([]*User, error) {
	users := make([]*User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, f.withRoles(user))
	}
	return users, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int) (*User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return f.withRoles(user), nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return f.withRoles(user), nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return apperr.Conflict("A record with these values already exists")
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	f.creates++
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *User) error {
	if _, ok := f.users[user.ID]; !ok {
		return dberr.ErrNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.users, id)
	delete(f.assignments, id)
	return nil
}

func (f *fakeUserRepo) AssignRole(_ context.Context, userID, roleID int) error {
	f.assignments[userID] = append(f.assignments[userID], roleID)
	return nil
}

func (f *fakeUserRepo) CountWithRole(_ context.Context, roleName string) (int, error) {
	count := 0
	for userID := range f.users {
		for _, roleID := range f.assignments[userID] {
			if assigned, ok := f.roles[roleID]; ok && assigned.Name == roleName {
				count++
			}
		}
	}
	return count, nil
}

// fakeRoleRepo serves the role lookups the user service performs.
type fakeRoleRepo struct {
	byName map[string]*role.Role
}

func (f *fakeRoleRepo) List(context.Context) ([]*role.Role, error) { return nil, nil }

func (f *fakeRoleRepo) FindByID(_ context.Context, id int) (*role.Role, error) {
	for _, r := range f.byName {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRoleRepo) FindByName(_ context.Context, name string) (*role.Role, error) {
	r, ok := f.byName[name]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return r, nil
}

func (f *fakeRoleRepo) Create(context.Context, *role.Role) error { return nil }
func (f *fakeRoleRepo) Update(context.Context, *role.Role) error { return nil }
func (f *fakeRoleRepo) Delete(context.Context, int) error        { return nil }

// newTestService wires a service over fresh fakes with both well-known
// roles present, mirroring a bootstrapped database.
func newTestService() (*Service, *fakeUserRepo) {
	users := newFakeUserRepo()
	userRole := &role.Role{ID: 1, Name: "user", Permissions: role.DefaultGrants()}
	adminRole := &role.Role{ID: 2, Name: "admin", Permissions: role.AdminGrants()}
	users.roles[1] = userRole
	users.roles[2] = adminRole

	roles := &fakeRoleRepo{byName: map[string]*role.Role{
		"user":  userRole,
		"admin": adminRole,
	}}

	return NewService(users, roles, slog.New(slog.DiscardHandler)), users
}

// # Login Integration Tests

/*
TestService_ProvisionDirectoryAccount covers the lazy-create path: a first
login creates an active account with the default role, a second login
returns the same account without touching the store.
*/
func TestService_ProvisionDirectoryAccount(t *testing.T) {
	service, repo := newTestService()

	account, err := service.ProvisionDirectoryAccount(
		context.Background(), "jdoe", "jdoe@example.org", "Jane Doe")
	require.NoError(t, err)
	assert.True(t, account.IsActive)
	assert.Equal(t, "jdoe", account.Username)

	stored, err := repo.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "jdoe@example.org", stored.Email)
	assert.Equal(t, "Jane Doe", stored.FullName)
	require.Len(t, stored.Roles, 1)
	assert.Equal(t, "user", stored.Roles[0].Name)

	again, err := service.ProvisionDirectoryAccount(
		context.Background(), "jdoe", "changed@example.org", "Changed")
	require.NoError(t, err)
	assert.Equal(t, account.ID, again.ID)
	assert.Equal(t, 1, repo.creates, "existing accounts are not re-created")
}

/*
TestService_ProvisionDirectoryAccount_Deactivated verifies a deactivated
account is returned as-is so the login flow can reject it.
*/
func TestService_ProvisionDirectoryAccount_Deactivated(t *testing.T) {
	service, repo := newTestService()
	require.NoError(t, repo.Create(context.Background(), &User{
		Username: "jdoe",
		IsActive: false,
	}))

	account, err := service.ProvisionDirectoryAccount(
		context.Background(), "jdoe", "", "")
	require.NoError(t, err)
	assert.False(t, account.IsActive)
}

// # Principal Resolution Tests

/*
TestService_ResolvePrincipal pins the resolver contract: a valid subject
yields the grants of every assigned role; malformed, missing, and inactive
subjects all fail.
*/
func TestService_ResolvePrincipal(t *testing.T) {
	service, repo := newTestService()

	jdoe := &User{Username: "jdoe", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), jdoe))
	require.NoError(t, repo.AssignRole(context.Background(), jdoe.ID, 1))
	require.NoError(t, repo.AssignRole(context.Background(), jdoe.ID, 2))

	inactive := &User{Username: "ghost", IsActive: false}
	require.NoError(t, repo.Create(context.Background(), inactive))

	t.Run("success", func(t *testing.T) {
		principal, err := service.ResolvePrincipal(context.Background(), "1")
		require.NoError(t, err)

		assert.Equal(t, jdoe.ID, principal.UserID)
		assert.Equal(t, "jdoe", principal.Username)
		assert.Equal(t, []sec.PermissionMap{
			role.DefaultGrants(),
			role.AdminGrants(),
		}, principal.Grants)
	})

	failures := []struct {
		name    string
		subject string
	}{
		{"malformed_subject", "jdoe"},
		{"unknown_user", "999"},
		{"inactive_user", "2"},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := service.ResolvePrincipal(context.Background(), tt.subject)
			assert.Error(t, err)
			assert.Nil(t, principal)
		})
	}
}

// # Bootstrap Tests

/*
TestService_EnsureFirstAdmin covers the startup guarantee: a pristine
database gets exactly one administrator, and subsequent runs are no-ops.
*/
func TestService_EnsureFirstAdmin(t *testing.T) {
	t.Run("creates_and_grants", func(t *testing.T) {
		service, repo := newTestService()

		require.NoError(t, service.EnsureFirstAdmin(context.Background(), "root"))

		account, err := repo.FindByUsername(context.Background(), "root")
		require.NoError(t, err)
		assert.True(t, account.IsActive)
		assert.True(t, account.HasRole("admin"))

		// Idempotent: the second run must not create or assign again.
		require.NoError(t, service.EnsureFirstAdmin(context.Background(), "root"))
		assert.Equal(t, 1, repo.creates)
		assert.Len(t, repo.assignments[account.ID], 1)
	})

	t.Run("grants_to_existing_user", func(t *testing.T) {
		service, repo := newTestService()
		existing := &User{Username: "root", IsActive: true}
		require.NoError(t, repo.Create(context.Background(), existing))

		require.NoError(t, service.EnsureFirstAdmin(context.Background(), "root"))

		account, err := repo.FindByID(context.Background(), existing.ID)
		require.NoError(t, err)
		assert.True(t, account.HasRole("admin"))
		assert.Equal(t, 1, repo.creates)
	})

	t.Run("unset_username_without_admin_fails", func(t *testing.T) {
		service, _ := newTestService()
		assert.Error(t, service.EnsureFirstAdmin(context.Background(), ""))
	})

	t.Run("unset_username_with_admin_is_fine", func(t *testing.T) {
		service, repo := newTestService()
		admin := &User{Username: "boss", IsActive: true}
		require.NoError(t, repo.Create(context.Background(), admin))
		require.NoError(t, repo.AssignRole(context.Background(), admin.ID, 2))

		assert.NoError(t, service.EnsureFirstAdmin(context.Background(), ""))
	})
}

// # Account Management Tests

/*
TestService_AssignRole checks the precise failure modes of the assignment
endpoint.
*/
func TestService_AssignRole(t *testing.T) {
	service, repo := newTestService()
	jdoe := &User{Username: "jdoe", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), jdoe))

	t.Run("success", func(t *testing.T) {
		require.NoError(t, service.AssignRole(context.Background(), jdoe.ID, 2))

		account, err := repo.FindByID(context.Background(), jdoe.ID)
		require.NoError(t, err)
		assert.True(t, account.HasRole("admin"))
	})

	t.Run("duplicate_assignment", func(t *testing.T) {
		err := service.AssignRole(context.Background(), jdoe.ID, 2)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, http.StatusConflict, appError.HTTPStatus)
	})

	t.Run("unknown_user", func(t *testing.T) {
		err := service.AssignRole(context.Background(), 999, 2)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
		assert.Equal(t, "User not found", appError.Message)
	})

	t.Run("unknown_role", func(t *testing.T) {
		err := service.AssignRole(context.Background(), jdoe.ID, 999)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
		assert.Equal(t, "Role not found", appError.Message)
	})
}

/*
TestService_CreateUser_Validation pins the boundary rules for manual
account creation.
*/
func TestService_CreateUser_Validation(t *testing.T) {
	tests := []struct {
		name string
		user *User
	}{
		{"missing_username", &User{Email: "jdoe@example.org"}},
		{"bad_email", &User{Username: "jdoe", Email: "not-an-address"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService()
			err := service.CreateUser(context.Background(), tt.user)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
			assert.Equal(t, 0, repo.creates)
		})
	}
}
