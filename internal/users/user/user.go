// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package user manages the local accounts backing directory logins.

Silo never stores passwords: the directory authenticates, and this package
keeps the local shadow record (profile attributes, active flag, role
assignments). Accounts are lazily created on first successful login and can
be administered through the user endpoints afterwards.
*/
package user

import (
	"time"

	"github.com/taibuivan/silo/internal/users/role"
)

// User is a local account. The password never appears here; credentials
// live in the directory.
type User struct {
	ID        int         `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	IsActive  bool        `json:"is_active"`
	Roles     []role.Role `json:"roles"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty"`
}

// HasRole reports whether the user carries the named role.
func (user *User) HasRole(name string) bool {
	for _, assigned := range user.Roles {
		if assigned.Name == name {
			return true
		}
	}
	return false
}
