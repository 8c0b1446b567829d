// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import "context"

// # User Data Access

// Repository defines the data access contract for local accounts.
type Repository interface {

	/*
		List returns every account, each hydrated with its roles.

		Returns:
		  - []*User: All accounts ordered by username
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*User, error)

	/*
		FindByID retrieves an account with its roles by primary key.

		Returns:
		  - *User: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id int) (*User, error)

	/*
		FindByUsername retrieves an account with its roles by login name.

		Returns:
		  - *User: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a new account. The generated ID and timestamps
		are written back into the entity. Role assignments are not
		created here; use AssignRole.

		Returns:
		  - error: Conflict when the username is taken
	*/
	Create(context context.Context, user *User) error

	/*
		Update replaces the mutable profile fields (email, full name,
		active flag).

		Returns:
		  - error: ErrNotFound if missing
	*/
	Update(context context.Context, user *User) error

	/*
		Delete removes an account and, via cascade, its role assignments.

		Returns:
		  - error: ErrNotFound if missing
	*/
	Delete(context context.Context, id int) error

	/*
		AssignRole links a role to an account. Assigning an already-held
		role is a conflict.

		Returns:
		  - error: Unprocessable when either side is missing, Conflict on
		    a duplicate assignment
	*/
	AssignRole(context context.Context, userID, roleID int) error

	/*
		CountWithRole returns how many accounts hold the named role.

		The first-admin bootstrap uses this to decide whether an
		administrator already exists.

		Returns:
		  - int: Number of accounts holding the role
		  - error: Database retrieval failures
	*/
	CountWithRole(context context.Context, roleName string) (int, error)
}
