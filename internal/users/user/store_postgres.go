// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/silo/internal/platform/dberr"
	"github.com/taibuivan/silo/internal/users/role"
)

// PostgresRepository implements [Repository] using pgx.
//
// The account table is named "user", which is reserved in SQL, so every
// query quotes it.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed account store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, email, full_name, is_active, created_at, updated_at`

// List returns every account ordered by username, roles included.
func (repository *PostgresRepository) List(context context.Context) ([]*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM "user"
		ORDER BY username ASC
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*User, 0)
	ids := make([]int, 0)
	for rows.Next() {
		user := &User{}
		if err := scanUser(rows, user); err != nil {
			return nil, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
		ids = append(ids, user.ID)
	}
	rows.Close()

	assignments, err := repository.loadRoles(context, ids)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		user.Roles = assignments[user.ID]
	}

	return users, nil
}

// FindByID retrieves an account with its roles by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM "user"
		WHERE id = $1
	`
	return repository.findOne(context, query, id)
}

// FindByUsername retrieves an account with its roles by login name.
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM "user"
		WHERE username = $1
	`
	return repository.findOne(context, query, username)
}

// Create persists a new account.
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO "user" (username, email, full_name, is_active, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	err := repository.db.QueryRow(context, query,
		user.Username, user.Email, user.FullName, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)
	return dberr.Wrap(err, "create_user")
}

// Update replaces the mutable profile fields.
func (repository *PostgresRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE "user"
		SET email = $2, full_name = $3, is_active = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := repository.db.QueryRow(context, query,
		user.ID, user.Email, user.FullName, user.IsActive,
	).Scan(&user.UpdatedAt)
	return dberr.Wrap(err, "update_user")
}

// Delete removes an account.
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	const query = `DELETE FROM "user" WHERE id = $1`
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// AssignRole links a role to an account.
func (repository *PostgresRepository) AssignRole(context context.Context, userID, roleID int) error {
	const query = `
		INSERT INTO user_roles_association (user_id, role_id)
		VALUES ($1, $2)
	`
	_, err := repository.db.Exec(context, query, userID, roleID)
	return dberr.Wrap(err, "assign_role")
}

// CountWithRole returns how many accounts hold the named role.
func (repository *PostgresRepository) CountWithRole(context context.Context, roleName string) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM user_roles_association ura
		JOIN role r ON r.id = ura.role_id
		WHERE r.name = $1
	`
	var count int
	if err := repository.db.QueryRow(context, query, roleName).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_users_with_role")
	}
	return count, nil
}

// # Internals

// rowScanner is the subset of pgx row types scanUser needs.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, user *User) error {
	return row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
}

func (repository *PostgresRepository) findOne(context context.Context, query string, argument any) (*User, error) {
	user := &User{}
	if err := scanUser(repository.db.QueryRow(context, query, argument), user); err != nil {
		return nil, dberr.Wrap(err, "get_user")
	}

	assignments, err := repository.loadRoles(context, []int{user.ID})
	if err != nil {
		return nil, err
	}
	user.Roles = assignments[user.ID]

	return user, nil
}

// loadRoles fetches the role assignments for a set of accounts in one query.
func (repository *PostgresRepository) loadRoles(context context.Context, userIDs []int) (map[int][]role.Role, error) {
	assignments := make(map[int][]role.Role, len(userIDs))
	if len(userIDs) == 0 {
		return assignments, nil
	}

	const query = `
		SELECT ura.user_id, r.id, r.name, r.permissions, r.created_at, r.updated_at
		FROM user_roles_association ura
		JOIN role r ON r.id = ura.role_id
		WHERE ura.user_id = ANY($1)
		ORDER BY r.name ASC
	`
	rows, err := repository.db.Query(context, query, userIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "load_user_roles")
	}
	defer rows.Close()

	for rows.Next() {
		var userID int
		var assigned role.Role
		err := rows.Scan(&userID, &assigned.ID, &assigned.Name,
			&assigned.Permissions, &assigned.CreatedAt, &assigned.UpdatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_user_role")
		}
		assignments[userID] = append(assignments[userID], assigned)
	}

	return assignments, nil
}
