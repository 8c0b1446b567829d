// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package role manages the permission roles of the Silo platform.

A role is a named bundle of grants: a JSONB map from URL path patterns to the
HTTP methods allowed on matching paths. Users collect roles through the
assignment endpoint, and the authentication middleware evaluates the union of
all their grants on every request.

Two roles are bootstrapped at startup and must always exist:

  - "user": the default role for directory users, read access to their own
    profile only.
  - "admin": the wildcard role created for the first administrator.
*/
package role

import (
	"time"

	"github.com/taibuivan/silo/internal/platform/sec"
)

// Role is a named permission bundle.
type Role struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Permissions sec.PermissionMap `json:"permissions"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty"`
}

// DefaultGrants returns the permission map of the bootstrapped "user" role.
func DefaultGrants() sec.PermissionMap {
	return sec.PermissionMap{
		"/user/myinfo": {"GET"},
	}
}

// AdminGrants returns the permission map of the bootstrapped "admin" role.
func AdminGrants() sec.PermissionMap {
	return sec.PermissionMap{
		"*": {"GET", "POST", "PUT", "PATCH", "DELETE"},
	}
}
