// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import "context"

// # Role Data Access

// Repository defines the data access contract for roles.
type Repository interface {

	/*
		List returns every role ordered by name.

		Returns:
		  - []*Role: All roles with their permission maps
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*Role, error)

	/*
		FindByID retrieves a role by its primary key.

		Returns:
		  - *Role: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id int) (*Role, error)

	/*
		FindByName retrieves a role by its unique name.

		Returns:
		  - *Role: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByName(context context.Context, name string) (*Role, error)

	/*
		Create persists a new role. The generated ID and timestamps are
		written back into the entity.

		Returns:
		  - error: Conflict when the name is taken, other persistence failures
	*/
	Create(context context.Context, role *Role) error

	/*
		Update replaces a role's name and permission map.

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, role *Role) error

	/*
		Delete removes a role and, via cascade, its user assignments.

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id int) error
}
