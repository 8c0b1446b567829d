// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/silo/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed role store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
List returns every role ordered by name.

Description: Permission maps come back as JSONB and are decoded straight
into [sec.PermissionMap] by pgx.
*/
func (repository *PostgresRepository) List(context context.Context) ([]*Role, error) {
	const query = `
		SELECT id, name, permissions, created_at, updated_at
		FROM role
		ORDER BY name ASC
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_roles")
	}
	defer rows.Close()

	roles := make([]*Role, 0)
	for rows.Next() {
		role := &Role{}
		if err := rows.Scan(&role.ID, &role.Name, &role.Permissions, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_role")
		}
		roles = append(roles, role)
	}

	return roles, nil
}

// FindByID retrieves a role by its primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Role, error) {
	const query = `
		SELECT id, name, permissions, created_at, updated_at
		FROM role
		WHERE id = $1
	`
	role := &Role{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&role.ID, &role.Name, &role.Permissions, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_role_by_id")
	}
	return role, nil
}

// FindByName retrieves a role by its unique name.
func (repository *PostgresRepository) FindByName(context context.Context, name string) (*Role, error) {
	const query = `
		SELECT id, name, permissions, created_at, updated_at
		FROM role
		WHERE name = $1
	`
	role := &Role{}
	err := repository.db.QueryRow(context, query, name).Scan(
		&role.ID, &role.Name, &role.Permissions, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_role_by_name")
	}
	return role, nil
}

// Create persists a new role.
func (repository *PostgresRepository) Create(context context.Context, role *Role) error {
	const query = `
		INSERT INTO role (name, permissions, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`
	err := repository.db.QueryRow(context, query, role.Name, role.Permissions).
		Scan(&role.ID, &role.CreatedAt)
	return dberr.Wrap(err, "create_role")
}

// Update replaces a role's name and permission map.
func (repository *PostgresRepository) Update(context context.Context, role *Role) error {
	const query = `
		UPDATE role
		SET name = $2, permissions = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := repository.db.QueryRow(context, query, role.ID, role.Name, role.Permissions).
		Scan(&role.UpdatedAt)
	return dberr.Wrap(err, "update_role")
}

// Delete removes a role.
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	const query = `DELETE FROM role WHERE id = $1`
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_role")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
